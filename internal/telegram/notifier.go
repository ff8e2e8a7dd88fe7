package telegram

import (
	"fmt"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
)

// Notifier pushes run milestones to a Telegram chat. Disabled instances
// are safe to call; every method is a no-op.
type Notifier struct {
	bot     *tgbotapi.BotAPI
	chatID  int64
	enabled bool
	logger  *logger.Logger
}

func NewNotifier(cfg *config.Config, log *logger.Logger) *Notifier {
	if !cfg.Telegram.Enabled {
		return &Notifier{enabled: false, logger: log}
	}

	bot, err := tgbotapi.NewBotAPI(cfg.Telegram.BotToken)
	if err != nil {
		log.Error("failed to create telegram bot", "error", err)
		return &Notifier{enabled: false, logger: log}
	}

	log.Info("telegram bot connected", "username", bot.Self.UserName)

	return &Notifier{
		bot:     bot,
		chatID:  cfg.Telegram.ChatID,
		enabled: true,
		logger:  log,
	}
}

func (n *Notifier) NotifyRunStart(runNumber int, mode string, cash float64) {
	n.send(fmt.Sprintf("🔔 *Run %d started*\nMode: %s\nStarting cash: %s",
		runNumber, mode, game.FormatMoney(cash)))
}

func (n *Notifier) NotifyQuarterCleared(label string, netWorth float64, pp float64) {
	n.send(fmt.Sprintf("📈 *Target cleared: %s*\nNet worth: %s\n+%.0f PP",
		label, game.FormatMoney(netWorth), pp))
}

func (n *Notifier) NotifyLiquidation(ticker string, loss float64) {
	n.send(fmt.Sprintf("💀 *Liquidated* %s\nLost: %s", ticker, game.FormatMoney(loss)))
}

func (n *Notifier) NotifyRunEnd(outcome string, days int, netWorth, pp float64) {
	emoji := "🏁"
	switch outcome {
	case "arrested":
		emoji = "🚔"
	case "fired":
		emoji = "📦"
	case "bankrupt":
		emoji = "📉"
	}
	n.send(fmt.Sprintf("%s *Run over: %s*\nDays: %d\nFinal net worth: %s\n+%.1f PP",
		emoji, outcome, days, game.FormatMoney(netWorth), pp))
}

func (n *Notifier) NotifyError(context string, err error) {
	n.send(fmt.Sprintf("⚠️ *Error* [%s]\n%v", context, err))
}

func (n *Notifier) send(text string) {
	if !n.enabled {
		return
	}

	msg := tgbotapi.NewMessage(n.chatID, text)
	msg.ParseMode = tgbotapi.ModeMarkdown

	if _, err := n.bot.Send(msg); err != nil {
		n.logger.Error("send telegram message", "error", err)
	}
}
