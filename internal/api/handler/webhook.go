package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Bhola-kumar/content-snatcher/internal/service"
	"github.com/Bhola-kumar/content-snatcher/internal/telegram"
	"github.com/Bhola-kumar/content-snatcher/internal/transform"
)

const greeting = "Hello! Send me any text and I'll add 'bhola' before it. Send a video link and I'll republish it."

// WebhookHandler dispatches inbound Telegram updates. Secret validation
// happens in middleware before this handler runs.
type WebhookHandler struct {
	pipeline Pipeline
	replier  telegram.Replier
	logger   *slog.Logger
}

// NewWebhookHandler creates a new webhook handler.
func NewWebhookHandler(pipeline Pipeline, replier telegram.Replier, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		pipeline: pipeline,
		replier:  replier,
		logger:   logger,
	}
}

// Handle handles POST /telegram/webhook. Once an update parses, the response
// is always 200: failures are reported to the chat, not to Telegram, which
// would otherwise redeliver the update.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid update payload")
		return
	}

	h.dispatch(r.Context(), &update)
	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) dispatch(ctx context.Context, update *tgbotapi.Update) {
	msg := update.Message
	if msg == nil || msg.Chat == nil || msg.Text == "" {
		return
	}
	chatID := msg.Chat.ID

	if msg.IsCommand() {
		if msg.Command() == "start" {
			h.reply(chatID, greeting)
		}
		return
	}

	if url, ok := transform.FindURL(msg.Text); ok {
		h.runMediaPipeline(ctx, chatID, url)
		return
	}

	h.reply(chatID, transform.Process(msg.Text))
}

func (h *WebhookHandler) runMediaPipeline(ctx context.Context, chatID int64, url string) {
	h.reply(chatID, "Processing your link, this can take a while...")

	result, err := h.pipeline.Process(ctx, service.UploadRequest{URL: url})
	if err != nil {
		h.logger.Error("media pipeline failed", "chat_id", chatID, "url", url, "error", err)
		h.reply(chatID, "Sorry, that didn't work: "+err.Error())
		return
	}

	h.reply(chatID, "Done! "+result.ShareLink())
}

func (h *WebhookHandler) reply(chatID int64, text string) {
	if err := h.replier.Reply(chatID, text); err != nil {
		h.logger.Error("reply failed", "chat_id", chatID, "error", err)
	}
}
