package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Game       GameConfig       `yaml:"game"`
	Trading    TradingConfig    `yaml:"trading"`
	Regulatory RegulatoryConfig `yaml:"regulatory"`
	Database   DatabaseConfig   `yaml:"database"`
	Telegram   TelegramConfig   `yaml:"telegram"`
	AI         AIConfig         `yaml:"ai"`
	Web        WebConfig        `yaml:"web"`
	Logging    LoggingConfig    `yaml:"logging"`
}

type GameConfig struct {
	TickMs         int     `yaml:"tick_ms"`
	IntradayTickMs int     `yaml:"intraday_tick_ms"`
	DataDir        string  `yaml:"data_dir"`
	StartingCash   float64 `yaml:"starting_cash"`
	RunYears       int     `yaml:"run_years"`
	StartYear      int     `yaml:"start_year"`
	Seed           int64   `yaml:"seed"` // 0 = random per run
}

type TradingConfig struct {
	BaseFeePercent   float64 `yaml:"base_fee_percent"`
	CooldownMs       int     `yaml:"cooldown_ms"`
	MaxPositions     int     `yaml:"max_positions"`
	LiquidationRatio float64 `yaml:"liquidation_ratio"`
	RiskWeight       float64 `yaml:"risk_weight"`
	RiskLimit        float64 `yaml:"risk_limit"`
}

type RegulatoryConfig struct {
	DecayPerDay        float64 `yaml:"decay_per_day"`
	SuspiciousReturn   float64 `yaml:"suspicious_return"`
	SuspiciousHit      float64 `yaml:"suspicious_hit"`
	ArrestThresholdMin float64 `yaml:"arrest_threshold_min"`
	ArrestThresholdMax float64 `yaml:"arrest_threshold_max"`
	DonationBaseCost   float64 `yaml:"donation_base_cost"`
	DonationReduction  float64 `yaml:"donation_reduction"`
	DonationMultiplier float64 `yaml:"donation_multiplier"`
}

type DatabaseConfig struct {
	Path string `yaml:"path"`
}

type TelegramConfig struct {
	Enabled  bool   `yaml:"enabled"`
	BotToken string `yaml:"bot_token"`
	ChatID   int64  `yaml:"chat_id"`
}

type AIConfig struct {
	APIKey         string `yaml:"api_key"`
	BaseURL        string `yaml:"base_url"`
	Model          string `yaml:"model"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

type WebConfig struct {
	Enabled bool `yaml:"enabled"`
	Port    int  `yaml:"port"`
}

type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Load reads the config file, fills defaults and validates. A missing file
// is not an error: the game is fully playable on defaults.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Default returns the configuration the game ships with.
func Default() *Config {
	cfg := &Config{}
	setDefaults(cfg)
	return cfg
}

func setDefaults(cfg *Config) {
	if cfg.Game.TickMs == 0 {
		cfg.Game.TickMs = 1000
	}
	if cfg.Game.IntradayTickMs == 0 {
		cfg.Game.IntradayTickMs = 1538
	}
	if cfg.Game.DataDir == "" {
		cfg.Game.DataDir = "assets/market_data"
	}
	if cfg.Game.StartingCash == 0 {
		cfg.Game.StartingCash = 10000
	}
	if cfg.Game.RunYears == 0 {
		cfg.Game.RunYears = 2
	}
	if cfg.Game.StartYear == 0 {
		cfg.Game.StartYear = 2008
	}
	if cfg.Trading.BaseFeePercent == 0 {
		cfg.Trading.BaseFeePercent = 0.1
	}
	if cfg.Trading.CooldownMs == 0 {
		cfg.Trading.CooldownMs = 2000
	}
	if cfg.Trading.MaxPositions == 0 {
		cfg.Trading.MaxPositions = 999
	}
	if cfg.Trading.LiquidationRatio == 0 {
		cfg.Trading.LiquidationRatio = 0.1
	}
	if cfg.Trading.RiskWeight == 0 {
		cfg.Trading.RiskWeight = 10
	}
	if cfg.Trading.RiskLimit == 0 {
		cfg.Trading.RiskLimit = 100
	}
	if cfg.Regulatory.DecayPerDay == 0 {
		cfg.Regulatory.DecayPerDay = 0.15
	}
	if cfg.Regulatory.SuspiciousReturn == 0 {
		cfg.Regulatory.SuspiciousReturn = 0.15
	}
	if cfg.Regulatory.SuspiciousHit == 0 {
		cfg.Regulatory.SuspiciousHit = 3
	}
	if cfg.Regulatory.ArrestThresholdMin == 0 {
		cfg.Regulatory.ArrestThresholdMin = 60
	}
	if cfg.Regulatory.ArrestThresholdMax == 0 {
		cfg.Regulatory.ArrestThresholdMax = 100
	}
	if cfg.Regulatory.DonationBaseCost == 0 {
		cfg.Regulatory.DonationBaseCost = 5000
	}
	if cfg.Regulatory.DonationReduction == 0 {
		cfg.Regulatory.DonationReduction = 8
	}
	if cfg.Regulatory.DonationMultiplier == 0 {
		cfg.Regulatory.DonationMultiplier = 1.8
	}
	if cfg.Database.Path == "" {
		cfg.Database.Path = "data/past-trading.db"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gpt-4o-mini"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 20
	}
	if cfg.Web.Port == 0 {
		cfg.Web.Port = 8080
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
}

func (c *Config) Validate() error {
	if c.Game.StartingCash <= 0 {
		return fmt.Errorf("game.starting_cash must be positive")
	}
	if c.Trading.LiquidationRatio <= 0 || c.Trading.LiquidationRatio >= 1 {
		return fmt.Errorf("trading.liquidation_ratio must be in (0,1)")
	}
	if c.Regulatory.ArrestThresholdMin >= c.Regulatory.ArrestThresholdMax {
		return fmt.Errorf("regulatory.arrest_threshold_min must be below arrest_threshold_max")
	}
	if c.Regulatory.DonationMultiplier <= 1 {
		return fmt.Errorf("regulatory.donation_multiplier must be above 1, donations can never get cheaper")
	}
	if c.Telegram.Enabled {
		if c.Telegram.BotToken == "" {
			return fmt.Errorf("telegram.bot_token is required when telegram is enabled")
		}
		if c.Telegram.ChatID == 0 {
			return fmt.Errorf("telegram.chat_id is required when telegram is enabled")
		}
	}
	return nil
}

func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Game.TickMs) * time.Millisecond
}

func (c *Config) IntradayTickInterval() time.Duration {
	return time.Duration(c.Game.IntradayTickMs) * time.Millisecond
}

func (c *Config) AITimeout() time.Duration {
	return c.AI.Timeout()
}

func (a AIConfig) Timeout() time.Duration {
	return time.Duration(a.TimeoutSeconds) * time.Second
}
