package game

// Sector ids for the stocks mode. Utilities and consumer staples are open
// from the first run; the rest are gated behind sector unlocks.
const (
	SectorUtilities   = "utilities"
	SectorConsumer    = "consumer"
	SectorFinance     = "finance"
	SectorHealthcare  = "healthcare"
	SectorIndustrials = "industrials"
	SectorEnergy      = "energy"
	SectorTech        = "tech"
	SectorMeme        = "meme"
)

// SectorUnlockedByDefault reports whether a sector needs no unlock.
func SectorUnlockedByDefault(sector string) bool {
	return sector == SectorUtilities || sector == SectorConsumer || sector == ""
}

var stockAssets = []AssetDef{
	{Ticker: "NEE", Name: "NextEra Energy", BasePrice: 60, Sector: SectorUtilities},
	{Ticker: "DUK", Name: "Duke Energy", BasePrice: 90, Sector: SectorUtilities},
	{Ticker: "SO", Name: "Southern Company", BasePrice: 65, Sector: SectorUtilities},
	{Ticker: "AWK", Name: "American Water Works", BasePrice: 130, Sector: SectorUtilities},
	{Ticker: "PG", Name: "Procter & Gamble", BasePrice: 140, Sector: SectorConsumer},
	{Ticker: "KO", Name: "Coca-Cola", BasePrice: 58, Sector: SectorConsumer},
	{Ticker: "WMT", Name: "Walmart", BasePrice: 150, Sector: SectorConsumer},
	{Ticker: "CL", Name: "Colgate-Palmolive", BasePrice: 75, Sector: SectorConsumer},
	{Ticker: "JPM", Name: "JPMorgan Chase", BasePrice: 140, Sector: SectorFinance},
	{Ticker: "BAC", Name: "Bank of America", BasePrice: 32, Sector: SectorFinance},
	{Ticker: "GS", Name: "Goldman Sachs", BasePrice: 340, Sector: SectorFinance},
	{Ticker: "JNJ", Name: "Johnson & Johnson", BasePrice: 160, Sector: SectorHealthcare},
	{Ticker: "PFE", Name: "Pfizer", BasePrice: 38, Sector: SectorHealthcare},
	{Ticker: "UNH", Name: "UnitedHealth", BasePrice: 480, Sector: SectorHealthcare},
	{Ticker: "CAT", Name: "Caterpillar", BasePrice: 230, Sector: SectorIndustrials},
	{Ticker: "BA", Name: "Boeing", BasePrice: 200, Sector: SectorIndustrials},
	{Ticker: "GE", Name: "General Electric", BasePrice: 100, Sector: SectorIndustrials},
	{Ticker: "XOM", Name: "Exxon Mobil", BasePrice: 105, Sector: SectorEnergy},
	{Ticker: "CVX", Name: "Chevron", BasePrice: 155, Sector: SectorEnergy},
	{Ticker: "AAPL", Name: "Appulse", BasePrice: 150, Sector: SectorTech},
	{Ticker: "MSFT", Name: "Macrosoft", BasePrice: 330, Sector: SectorTech},
	{Ticker: "NVDA", Name: "Invidia", BasePrice: 450, Sector: SectorTech},
	{Ticker: "TSLA", Name: "Tessler", BasePrice: 250, Sector: SectorTech},
	{Ticker: "GME", Name: "GameStonk", BasePrice: 20, Sector: SectorMeme},
	{Ticker: "AMC", Name: "AMC Theatres", BasePrice: 5, Sector: SectorMeme},
	{Ticker: "BBBY", Name: "Bed Bath & Bankrupt", BasePrice: 8, Sector: SectorMeme},
}

// Modes holds every trading mode, keyed by id.
var Modes = map[string]Mode{
	"stocks": {
		ID:            "stocks",
		Name:          "Stocks",
		Description:   "Trade stocks across multiple sectors. Unlock more categories as you progress.",
		UnlockRun:     0,
		UnlockCost:    0,
		VolatilityMod: 1.0,
		FeeMod:        1.0,
		HeatMod:       1.0,
		Category:      "stocks",
		Assets:        stockAssets,
	},
	"dayTrading": {
		ID:            "dayTrading",
		Name:          "Day Trading",
		Description:   "Fast trades, pattern rules apply. Male astrology.",
		UnlockRun:     0,
		UnlockCost:    5,
		VolatilityMod: 1.3,
		FeeMod:        0.8,
		HeatMod:       0.8,
		Category:      "etfs",
		Intraday:      true,
		Assets: []AssetDef{
			{Ticker: "SPY", Name: "S&P 500 ETF", BasePrice: 440},
			{Ticker: "QQQ", Name: "Nasdaq ETF", BasePrice: 370},
			{Ticker: "IWM", Name: "Small Cap ETF", BasePrice: 220},
			{Ticker: "DIA", Name: "Dow ETF", BasePrice: 350},
		},
	},
	"options": {
		ID:            "options",
		Name:          "Options",
		Description:   "Calls, puts, and the greeks. Leveraged chaos.",
		UnlockRun:     2,
		UnlockCost:    15,
		VolatilityMod: 2.0,
		FeeMod:        1.5,
		HeatMod:       1.0,
		Category:      "stocks",
		Assets: []AssetDef{
			{Ticker: "AAPL-C", Name: "Appulse Call", BasePrice: 8, IsOption: true, OptionType: "call", Strike: 155, ExpiryDays: 30},
			{Ticker: "AAPL-P", Name: "Appulse Put", BasePrice: 5, IsOption: true, OptionType: "put", Strike: 145, ExpiryDays: 30},
			{Ticker: "TSLA-C", Name: "Tessler Call", BasePrice: 15, IsOption: true, OptionType: "call", Strike: 260, ExpiryDays: 30},
			{Ticker: "TSLA-P", Name: "Tessler Put", BasePrice: 12, IsOption: true, OptionType: "put", Strike: 240, ExpiryDays: 30},
			{Ticker: "SPY-C", Name: "SPY Call", BasePrice: 6, IsOption: true, OptionType: "call", Strike: 445, ExpiryDays: 30},
			{Ticker: "SPY-P", Name: "SPY Put", BasePrice: 4, IsOption: true, OptionType: "put", Strike: 435, ExpiryDays: 30},
			{Ticker: "AAPL", Name: "Appulse", BasePrice: 150},
			{Ticker: "TSLA", Name: "Tessler", BasePrice: 250},
			{Ticker: "SPY", Name: "S&P 500 ETF", BasePrice: 440},
		},
	},
	"forex": {
		ID:            "forex",
		Name:          "Forex",
		Description:   "Currency pairs. The market that never sleeps.",
		UnlockRun:     3,
		UnlockCost:    20,
		VolatilityMod: 0.6,
		FeeMod:        0.3,
		HeatMod:       0.5,
		Category:      "forex",
		Assets: []AssetDef{
			{Ticker: "EUR/USD", Name: "Euro / Dollar", BasePrice: 1.0850},
			{Ticker: "GBP/USD", Name: "Pound / Dollar", BasePrice: 1.2650},
			{Ticker: "USD/JPY", Name: "Dollar / Yen", BasePrice: 149.50},
			{Ticker: "USD/CHF", Name: "Dollar / Franc", BasePrice: 0.8750},
			{Ticker: "AUD/USD", Name: "Aussie / Dollar", BasePrice: 0.6550},
		},
	},
	"commodities": {
		ID:            "commodities",
		Name:          "Commodities",
		Description:   "Oil, gold, wheat. Geopolitics is your friend.",
		UnlockRun:     4,
		UnlockCost:    25,
		VolatilityMod: 1.2,
		FeeMod:        1.2,
		HeatMod:       0.7,
		Category:      "commodities",
		Assets: []AssetDef{
			{Ticker: "GOLD", Name: "Gold", BasePrice: 1950},
			{Ticker: "OIL", Name: "Crude Oil", BasePrice: 78},
			{Ticker: "SLVR", Name: "Silver", BasePrice: 24},
			{Ticker: "WHEAT", Name: "Wheat", BasePrice: 6.50},
			{Ticker: "NAT.G", Name: "Natural Gas", BasePrice: 2.80},
		},
	},
	"crypto": {
		ID:            "crypto",
		Name:          "Crypto",
		Description:   "Wild west. No regulation, max degen.",
		UnlockRun:     5,
		UnlockCost:    30,
		VolatilityMod: 3.0,
		FeeMod:        0.5,
		HeatMod:       0.3,
		Category:      "crypto",
		Assets: []AssetDef{
			{Ticker: "BTC", Name: "Bitcoin", BasePrice: 42000},
			{Ticker: "ETH", Name: "Ethereum", BasePrice: 2200},
			{Ticker: "DOGE", Name: "Dogebiscuit", BasePrice: 0.08},
			{Ticker: "SOL", Name: "Solarium", BasePrice: 95},
			{Ticker: "PEPE", Name: "PepeCoin", BasePrice: 0.000001},
			{Ticker: "MOON", Name: "MoonRug Token", BasePrice: 0.50},
		},
	},
	"scalping": {
		ID:                  "scalping",
		Name:                "Scalping Bot",
		Description:         "Passive micro-profits while you trade.",
		Requires:            "algoEngine",
		VolatilityMod:       1.0,
		FeeMod:              1.0,
		HeatMod:             1.0,
		Category:            "etfs",
		Passive:             true,
		PassiveIncomePerDay: 50,
		Assets: []AssetDef{
			{Ticker: "SPY", Name: "S&P 500 ETF", BasePrice: 440},
			{Ticker: "QQQ", Name: "Nasdaq ETF", BasePrice: 370},
		},
	},
	"arbitrage": {
		ID:                  "arbitrage",
		Name:                "Arbitrage Scanner",
		Description:         "Automatically exploit price differences.",
		Requires:            "algoEngine",
		VolatilityMod:       1.0,
		FeeMod:              1.0,
		HeatMod:             1.0,
		Category:            "etfs",
		Passive:             true,
		PassiveIncomePerDay: 200,
		Assets: []AssetDef{
			{Ticker: "SPY", Name: "S&P 500 ETF", BasePrice: 440},
			{Ticker: "IWM", Name: "Small Cap ETF", BasePrice: 220},
		},
	},
	"marketMaking": {
		ID:                  "marketMaking",
		Name:                "Market Making Bot",
		Description:         "Earn the spread passively.",
		Requires:            "algoEngine",
		VolatilityMod:       1.0,
		FeeMod:              1.0,
		HeatMod:             1.0,
		Category:            "etfs",
		Passive:             true,
		PassiveIncomePerDay: 500,
		Assets: []AssetDef{
			{Ticker: "SPY", Name: "S&P 500 ETF", BasePrice: 440},
			{Ticker: "DIA", Name: "Dow ETF", BasePrice: 350},
		},
	},
	"algoTrading": {
		ID:                  "algoTrading",
		Name:                "Algo Trading Suite",
		Description:         "Automated strategy execution.",
		Requires:            "algoEngine",
		VolatilityMod:       1.0,
		FeeMod:              1.0,
		HeatMod:             1.0,
		Category:            "stocks",
		Passive:             true,
		PassiveIncomePerDay: 1000,
		Assets:              stockAssets,
	},
}
