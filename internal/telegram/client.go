// Package telegram wraps the bot API client used for replies and webhook
// registration.
package telegram

import (
	"fmt"
	"log/slog"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Replier sends a plain text message to a chat. The webhook handler depends on
// this instead of the concrete client so tests can record replies.
type Replier interface {
	Reply(chatID int64, text string) error
}

// Client is the process-lifetime messaging handle. It is constructed once at
// startup and shared by all requests; the underlying API client is safe for
// concurrent use.
type Client struct {
	api           *tgbotapi.BotAPI
	webhookSecret string
	logger        *slog.Logger
}

// New authenticates against the bot API and returns the shared client.
func New(botToken, webhookSecret string, logger *slog.Logger) (*Client, error) {
	api, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API client: %w", err)
	}

	logger.Info("telegram client initialized", "bot", api.Self.UserName)
	return &Client{
		api:           api,
		webhookSecret: webhookSecret,
		logger:        logger,
	}, nil
}

// Reply sends text to the given chat.
func (c *Client) Reply(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := c.api.Send(msg); err != nil {
		return fmt.Errorf("send message: %w", err)
	}
	return nil
}

// RegisterWebhook points the transport at {publicBaseURL}/telegram/webhook,
// authenticated with the shared secret. Telegram echoes the secret back in the
// X-Telegram-Bot-Api-Secret-Token header on every delivery.
func (c *Client) RegisterWebhook(publicBaseURL string) error {
	webhookURL := publicBaseURL + "/telegram/webhook"

	resp, err := c.api.MakeRequest("setWebhook", tgbotapi.Params{
		"url":          webhookURL,
		"secret_token": c.webhookSecret,
	})
	if err != nil {
		return fmt.Errorf("setWebhook: %w", err)
	}
	if !resp.Ok {
		return fmt.Errorf("setWebhook: %s", resp.Description)
	}

	c.logger.Info("webhook registered", "url", webhookURL)
	return nil
}

// Close releases the client. Failures are logged, never propagated: shutdown
// must not fail the process.
func (c *Client) Close() {
	c.api.StopReceivingUpdates()
	c.logger.Info("telegram client released")
}
