package bot

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// Bot routes Telegram updates to the client booking flow and the master
// schedule surface.
type Bot struct {
	log       *logrus.Logger
	transport *Transport
	sessions  *SessionStore
	loc       *time.Location

	clients  usecase.ClientUsecase
	booking  usecase.BookingUsecase
	slots    usecase.SlotUsecase
	services usecase.ServiceUsecase
	masters  usecase.MasterUsecase
}

func New(
	log *logrus.Logger,
	transport *Transport,
	sessions *SessionStore,
	loc *time.Location,
	clients usecase.ClientUsecase,
	booking usecase.BookingUsecase,
	slots usecase.SlotUsecase,
	services usecase.ServiceUsecase,
	masters usecase.MasterUsecase,
) *Bot {
	return &Bot{
		log:       log,
		transport: transport,
		sessions:  sessions,
		loc:       loc,
		clients:   clients,
		booking:   booking,
		slots:     slots,
		services:  services,
		masters:   masters,
	}
}

// HandleUpdate processes one webhook update. Errors are logged, never
// returned: Telegram retries failed webhook deliveries and a permanent
// handler error would wedge the queue.
func (b *Bot) HandleUpdate(ctx context.Context, update tgbotapi.Update) {
	switch {
	case update.Message != nil:
		b.handleMessage(ctx, update.Message)
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	}
}

func (b *Bot) handleMessage(ctx context.Context, msg *tgbotapi.Message) {
	if msg.From == nil {
		return
	}

	master, err := b.masters.GetByTgUserID(ctx, msg.From.ID)
	if err != nil {
		b.log.Errorf("Failed to resolve master for message: %+v", err)
		return
	}
	if master != nil {
		b.showMasterMenu(msg.Chat.ID)
		return
	}

	client, err := b.resolveClient(ctx, msg.From, msg.Chat.ID)
	if err != nil {
		return
	}

	// Any text, /start included, lands on the main menu.
	var next *entity.Appointment
	if upcoming, err := b.booking.ClientUpcoming(ctx, client.ID); err == nil && len(upcoming) > 0 {
		next = &upcoming[0]
	}
	if err := b.transport.SendKeyboard(msg.Chat.ID, greetingText(client.FirstName, next, b.loc), mainMenuKeyboard()); err != nil {
		b.logSendError(ctx, client.ID, err)
	}
}

func (b *Bot) handleCallback(ctx context.Context, cb *tgbotapi.CallbackQuery) {
	if cb.From == nil || cb.Message == nil {
		return
	}
	action, arg := splitCallback(cb.Data)

	switch action {
	case cbMasterToday, cbMasterTomorrow, cbMaster7Days, cbMasterStatuses,
		cbPrefixMasterArrived, cbPrefixMasterDone, cbPrefixMasterCancel:
		b.handleMasterCallback(ctx, cb, action, arg)
		return
	}

	client, err := b.resolveClient(ctx, cb.From, cb.Message.Chat.ID)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	switch action {
	case cbMenu:
		b.handleMenu(ctx, cb, client)
	case cbBookStart:
		b.handleBookStart(ctx, cb, client)
	case cbPrefixService:
		b.handleServiceChosen(ctx, cb, client, arg)
	case cbPrefixDay:
		b.handleDayChosen(ctx, cb, client, arg)
	case cbPrefixSlot:
		b.handleSlotChosen(ctx, cb, client, arg)
	case cbPrefixBookConfirm:
		b.handleBookConfirm(ctx, cb, client, arg)
	case cbMyAppointments:
		b.handleMyAppointments(ctx, cb, client)
	case cbUnsubscribe:
		b.handleUnsubscribe(ctx, cb, client)
	case cbPrefixAptConfirm:
		b.handleAptConfirm(ctx, cb, client, arg)
	case cbPrefixCancelAsk:
		b.handleCancelAsk(ctx, cb, client, arg)
	case cbPrefixCancelConfirm:
		b.handleCancelConfirm(ctx, cb, client, arg)
	default:
		b.log.Warnf("Unknown callback action %q from user %d", action, cb.From.ID)
		b.transport.AnswerCallback(cb.ID, "")
	}
}

func (b *Bot) resolveClient(ctx context.Context, from *tgbotapi.User, chatID int64) (*clientIdentity, error) {
	client, err := b.clients.GetOrCreate(ctx, usecase.ClientProfile{
		TgUserID:  from.ID,
		TgChatID:  chatID,
		FirstName: from.FirstName,
		LastName:  from.LastName,
		Username:  from.UserName,
	})
	if err != nil {
		b.log.Errorf("Failed to resolve client tg_user_id=%d: %+v", from.ID, err)
		return nil, err
	}
	return &clientIdentity{
		ID:        client.ID,
		TgUserID:  client.TgUserID,
		TgChatID:  chatID,
		FirstName: client.FirstName,
	}, nil
}

// clientIdentity is the slice of the client row the handlers need.
type clientIdentity struct {
	ID        int
	TgUserID  int64
	TgChatID  int64
	FirstName string
}

func (b *Bot) logSendError(ctx context.Context, clientID int, err error) {
	if errors.Is(err, ErrUserBlocked) {
		if markErr := b.clients.MarkBlocked(ctx, clientID); markErr != nil {
			b.log.Errorf("Failed to mark client %d blocked: %+v", clientID, markErr)
		}
		return
	}
	b.log.Warnf("Failed to send message to client %d: %+v", clientID, err)
}

// edit replaces the dialogue screen in place, falling back to a fresh
// message when the original can no longer be edited.
func (b *Bot) edit(cb *tgbotapi.CallbackQuery, text string, keyboard *tgbotapi.InlineKeyboardMarkup) {
	chatID := cb.Message.Chat.ID
	if err := b.transport.EditMessage(chatID, cb.Message.MessageID, text, keyboard); err != nil {
		if keyboard != nil {
			err = b.transport.SendKeyboard(chatID, text, *keyboard)
		} else {
			err = b.transport.SendText(chatID, text)
		}
		if err != nil {
			b.log.Warnf("Failed to send dialogue screen to chat %d: %+v", chatID, err)
		}
	}
}
