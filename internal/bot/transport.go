package bot

import (
	"errors"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// ErrUserBlocked signals that the user blocked the bot. Callers treat it
// differently from generic transport failures: the client is flipped to
// blocked instead of retried.
var ErrUserBlocked = errors.New("user blocked the bot")

type telegramClient interface {
	Send(tgbotapi.Chattable) (tgbotapi.Message, error)
	Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error)
	SelfUser() tgbotapi.User
}

type realTelegramClient struct {
	api *tgbotapi.BotAPI
}

func (c *realTelegramClient) Send(msg tgbotapi.Chattable) (tgbotapi.Message, error) {
	return c.api.Send(msg)
}

func (c *realTelegramClient) Request(msg tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return c.api.Request(msg)
}

func (c *realTelegramClient) SelfUser() tgbotapi.User {
	return c.api.Self
}

// Transport wraps outbound Telegram calls and normalizes the 403
// "bot was blocked by the user" failure into ErrUserBlocked.
type Transport struct {
	tg  telegramClient
	log *logrus.Logger
}

func NewTransport(token string, log *logrus.Logger) (*Transport, error) {
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Transport{tg: &realTelegramClient{api: api}, log: log}, nil
}

// NewTransportWithClient allows injecting a mocked Telegram client for tests.
func NewTransportWithClient(tg telegramClient, log *logrus.Logger) *Transport {
	return &Transport{tg: tg, log: log}
}

func (t *Transport) Self() tgbotapi.User {
	return t.tg.SelfUser()
}

func (t *Transport) SendText(chatID int64, text string) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	_, err := t.tg.Send(msg)
	return normalizeSendError(err)
}

func (t *Transport) SendKeyboard(chatID int64, text string, keyboard tgbotapi.InlineKeyboardMarkup) error {
	msg := tgbotapi.NewMessage(chatID, text)
	msg.ParseMode = tgbotapi.ModeHTML
	msg.ReplyMarkup = keyboard
	_, err := t.tg.Send(msg)
	return normalizeSendError(err)
}

// EditMessage replaces text and markup of a previously sent message. Used by
// the flow controller so one message works as the dialogue screen.
func (t *Transport) EditMessage(chatID int64, messageID int, text string, keyboard *tgbotapi.InlineKeyboardMarkup) error {
	var edit tgbotapi.Chattable
	if keyboard != nil {
		c := tgbotapi.NewEditMessageTextAndMarkup(chatID, messageID, text, *keyboard)
		c.ParseMode = tgbotapi.ModeHTML
		edit = c
	} else {
		c := tgbotapi.NewEditMessageText(chatID, messageID, text)
		c.ParseMode = tgbotapi.ModeHTML
		edit = c
	}
	_, err := t.tg.Send(edit)
	return normalizeSendError(err)
}

// AnswerCallback acknowledges a callback query, optionally with a toast.
func (t *Transport) AnswerCallback(callbackID, text string) {
	if _, err := t.tg.Request(tgbotapi.NewCallback(callbackID, text)); err != nil {
		t.log.Warnf("Failed to answer callback query: %+v", err)
	}
}

// AnswerCallbackAlert shows a modal alert instead of a toast.
func (t *Transport) AnswerCallbackAlert(callbackID, text string) {
	if _, err := t.tg.Request(tgbotapi.NewCallbackWithAlert(callbackID, text)); err != nil {
		t.log.Warnf("Failed to answer callback query: %+v", err)
	}
}

func normalizeSendError(err error) error {
	if err == nil {
		return nil
	}
	var apiErr *tgbotapi.Error
	if errors.As(err, &apiErr) && apiErr.Code == 403 {
		return ErrUserBlocked
	}
	return err
}
