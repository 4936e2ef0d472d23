package handler

import (
	"crypto/subtle"
	"encoding/json"
	"net/http"

	"masterbook/internal/bot"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// secretTokenHeader is set by Telegram on every webhook delivery when the
// webhook was registered with a secret.
const secretTokenHeader = "X-Telegram-Bot-Api-Secret-Token"

type WebhookHandler struct {
	log           *logrus.Logger
	bot           *bot.Bot
	webhookSecret string
}

func NewWebhookHandler(log *logrus.Logger, b *bot.Bot, webhookSecret string) *WebhookHandler {
	return &WebhookHandler{
		log:           log,
		bot:           b,
		webhookSecret: webhookSecret,
	}
}

// Handle processes one Telegram update. It always answers 200 for
// authenticated requests: Telegram retries non-2xx deliveries and a poison
// update must not wedge the queue.
func (h *WebhookHandler) Handle(w http.ResponseWriter, r *http.Request) {
	got := r.Header.Get(secretTokenHeader)
	if subtle.ConstantTimeCompare([]byte(got), []byte(h.webhookSecret)) != 1 {
		h.log.Warn("Webhook request with bad secret token rejected")
		w.WriteHeader(http.StatusForbidden)
		return
	}

	var update tgbotapi.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		h.log.Warnf("Failed to decode webhook update: %+v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	h.bot.HandleUpdate(r.Context(), update)
	w.WriteHeader(http.StatusOK)
}
