// Package telegram delivers run summaries and failure alerts via the
// Telegram Bot API, with retry on transient send errors.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/brandlens/brandlens/internal/models"
)

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int, retryDelayBase time.Duration) (*Client, error) {
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("failed to create Telegram bot: %w", err)
	}

	chatIDInt, err := strconv.ParseInt(chatID, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid chat ID: %w", err)
	}

	if maxRetries <= 0 {
		maxRetries = 3
	}
	if retryDelayBase <= 0 {
		retryDelayBase = time.Second
	}

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: retryDelayBase,
	}, nil
}

// SendSummary sends the end-of-run summary.
func (c *Client) SendSummary(final *models.FinalReport) error {
	return c.send(formatSummary(final))
}

// SendError notifies about a run-level failure.
func (c *Client) SendError(runID string, err error) error {
	message := fmt.Sprintf("❌ *Analysis run failed*\n\nRun: %s\nError: %s",
		escapeMarkdownV2(runID), escapeMarkdownV2(err.Error()))
	return c.send(message)
}

func (c *Client) send(message string) error {
	msg := tgbotapi.NewMessage(c.chatID, message)
	msg.ParseMode = "MarkdownV2"

	var lastErr error
	for i := 0; i < c.maxRetries; i++ {
		_, err := c.bot.Send(msg)
		if err == nil {
			return nil
		}
		lastErr = err
		time.Sleep(c.retryDelayBase * time.Duration(i+1))
	}

	return fmt.Errorf("failed to send message after %d retries: %w", c.maxRetries, lastErr)
}

// formatSummary formats a finished run into a Telegram message
func formatSummary(final *models.FinalReport) string {
	agg := final.Aggregate

	status := "✅ complete"
	if final.Partial {
		status = "⚠️ partial \\(deadline reached\\)"
	}

	message := "📊 *Creator Analysis Finished*\n\n"
	message += fmt.Sprintf("Run: %s\n", escapeMarkdownV2(final.RunID))
	message += fmt.Sprintf("Status: %s\n", status)
	message += fmt.Sprintf("Duration: %s\n\n", escapeMarkdownV2(final.FinishedAt.Sub(final.StartedAt).Round(time.Second).String()))

	message += fmt.Sprintf("Processed: *%d* creators \\(%d failed\\)\n", agg.TotalProcessed, agg.FailedCount)
	message += fmt.Sprintf("Brand related: *%d* \\(%s\\)\n", agg.BrandRelated, escapeMarkdownV2(fmt.Sprintf("%.1f%%", agg.BrandRelatedPct)))
	message += fmt.Sprintf("Non brand: *%d* \\(%s\\)\n\n", agg.NonBrand, escapeMarkdownV2(fmt.Sprintf("%.1f%%", agg.NonBrandPct)))

	message += fmt.Sprintf("Official: %d \\| Matrix: %d \\| UGC: %d \\| Non\\-branded: %d\n",
		agg.OfficialCount, agg.MatrixCount, agg.UGCCount, agg.NonBrandedCount)

	if len(agg.Brands) > 0 {
		message += fmt.Sprintf("Distinct brands: %d\n", len(agg.Brands))
	}

	return message
}

// escapeMarkdownV2 escapes special characters for Telegram MarkdownV2
func escapeMarkdownV2(text string) string {
	result := ""
	for _, char := range text {
		switch char {
		case '_', '*', '[', ']', '(', ')', '~', '`', '>', '#', '+', '-', '=', '|', '{', '}', '.', '!':
			result += "\\" + string(char)
		default:
			result += string(char)
		}
	}
	return result
}
