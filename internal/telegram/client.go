// Package telegram provides an optional completion notification via the
// Telegram Bot API. When enabled, the pipeline sends a short summary of the
// generated report (row and event counts, output path) once the HTML file is
// on disk. Delivery uses a retry loop with linear backoff; the package plays
// no part in report generation itself.
package telegram

import (
	"fmt"
	"strconv"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Summary describes a completed report run.
type Summary struct {
	OutputPath    string
	Observations  int
	Events        int
	AlignedEvents int
	Duration      time.Duration
	RunID         string
}

// Client handles Telegram notifications
type Client struct {
	bot            *tgbotapi.BotAPI
	chatID         int64
	maxRetries     int
	retryDelayBase time.Duration
}

// NewClient creates a new Telegram client
func NewClient(botToken, chatID string, maxRetries int) (*Client, error) {
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

	return &Client{
		bot:            bot,
		chatID:         chatIDInt,
		maxRetries:     maxRetries,
		retryDelayBase: time.Second,
	}, nil
}

// Send delivers the completion summary, retrying on transient failures.
func (c *Client) Send(summary Summary) error {
	msg := tgbotapi.NewMessage(c.chatID, formatSummary(summary))
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

// formatSummary renders the completion summary as a MarkdownV2 message.
func formatSummary(s Summary) string {
	message := "📊 *Informe de burbujas generado*\n\n"
	message += fmt.Sprintf("📄 Archivo: %s\n", escapeMarkdownV2(s.OutputPath))
	message += fmt.Sprintf("📈 Observaciones: %d\n", s.Observations)
	message += fmt.Sprintf("🏷 Eventos: %d \\(%d alineados\\)\n", s.Events, s.AlignedEvents)
	message += fmt.Sprintf("⏱ Duración: %s\n", escapeMarkdownV2(formatDuration(s.Duration)))
	if s.RunID != "" {
		message += fmt.Sprintf("🔖 Run: %s\n", escapeMarkdownV2(s.RunID))
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

// formatDuration formats a duration in a human-readable way
func formatDuration(d time.Duration) string {
	if d >= time.Second {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dms", d.Milliseconds())
}
