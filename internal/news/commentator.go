package news

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/pastgame/past-trading/internal/config"
	"github.com/pastgame/past-trading/internal/game"
	"github.com/pastgame/past-trading/internal/logger"
)

const commentarySystemPrompt = `You are a cynical financial news anchor in a satirical trading game.
Given a market event and the player's situation, write ONE short punchy
headline-style comment (max 120 characters). Dry, sarcastic, no emoji,
no quotes around the output. Never give actual financial advice.`

// Commentary is the situation summary the commentator reacts to.
type Commentary struct {
	Day       int
	EventText string
	NetWorth  float64
	Attention float64
	Stage     string
}

// Commentator produces optional AI color commentary for major events.
// Disabled (nil client) when no API key is configured; callers treat a
// nil Commentator as always silent.
type Commentator struct {
	client *openai.Client
	model  string
	cfg    config.AIConfig
	log    *logger.Logger
}

// NewCommentator returns nil when commentary is not configured.
func NewCommentator(cfg *config.Config, log *logger.Logger) *Commentator {
	if cfg.AI.APIKey == "" {
		return nil
	}
	ocfg := openai.DefaultConfig(cfg.AI.APIKey)
	if cfg.AI.BaseURL != "" {
		ocfg.BaseURL = cfg.AI.BaseURL
	}
	return &Commentator{
		client: openai.NewClientWithConfig(ocfg),
		model:  cfg.AI.Model,
		cfg:    cfg.AI,
		log:    log,
	}
}

// Comment asks the model for a one-liner about the event. Errors are
// returned for logging but the game never depends on the result.
func (c *Commentator) Comment(ctx context.Context, in Commentary) (string, error) {
	if c == nil {
		return "", nil
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout())
	defer cancel()

	user := fmt.Sprintf("Day %d. Event: %s. Player net worth: %s. SEC attention: %.0f (%s).",
		in.Day, in.EventText, game.FormatMoney(in.NetWorth), in.Attention, in.Stage)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: commentarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: user},
		},
		MaxTokens: 80,
	})
	if err != nil {
		return "", fmt.Errorf("commentary API call: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("commentary returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	text = strings.Trim(text, `"`)
	c.log.Debug("AI commentary", "text", text)
	return text, nil
}
