package bot

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) showMasterMenu(chatID int64) {
	if err := b.transport.SendKeyboard(chatID, "Панель мастера", masterMenuKeyboard()); err != nil {
		b.log.Warnf("Failed to send master menu: %+v", err)
	}
}

// handleMasterCallback serves master views and actions. Authorization is by
// identity: the sender's Telegram id must match the master record.
func (b *Bot) handleMasterCallback(ctx context.Context, cb *tgbotapi.CallbackQuery, action, arg string) {
	master, err := b.masters.GetByTgUserID(ctx, cb.From.ID)
	if err != nil {
		b.log.Errorf("Failed to resolve master: %+v", err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}
	if master == nil {
		b.transport.AnswerCallbackAlert(cb.ID, notMasterText)
		return
	}

	switch action {
	case cbMasterToday:
		b.showMasterSchedule(ctx, cb, master, 0, 1, "📋 <b>Сегодня</b>")
	case cbMasterTomorrow:
		b.showMasterSchedule(ctx, cb, master, 1, 2, "📋 <b>Завтра</b>")
	case cbMaster7Days:
		b.showMasterSchedule(ctx, cb, master, 0, 7, "📋 <b>Ближайшие 7 дней</b>")
	case cbMasterStatuses:
		b.showMasterStatuses(ctx, cb, master)
	case cbPrefixMasterArrived:
		b.masterAction(ctx, cb, master, arg, b.booking.MarkArrived, "Отмечено: клиент пришёл")
	case cbPrefixMasterDone:
		b.masterAction(ctx, cb, master, arg, b.booking.MarkDone, "Отмечено: выполнено")
	case cbPrefixMasterCancel:
		b.masterCancel(ctx, cb, master, arg)
	}
}

// showMasterSchedule lists appointments for [today+fromDays, today+toDays)
// in the master's zone.
func (b *Bot) showMasterSchedule(ctx context.Context, cb *tgbotapi.CallbackQuery, master *entity.Master, fromDays, toDays int, title string) {
	loc := master.Location()
	now := time.Now().In(loc)
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)
	from := midnight.AddDate(0, 0, fromDays).UTC()
	to := midnight.AddDate(0, 0, toDays).UTC()

	appointments, err := b.booking.MasterSchedule(ctx, master.ID, from, to)
	if err != nil {
		b.log.Errorf("Failed to load master schedule: %+v", err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	b.transport.AnswerCallback(cb.ID, "")
	text := masterScheduleText(title, appointments, loc)
	kb := masterActionsKeyboard(appointments)
	if len(kb.InlineKeyboard) == 0 {
		b.edit(cb, text, nil)
		return
	}
	b.edit(cb, text, &kb)
}

// showMasterStatuses shows actionable appointments from now on: whoever is
// expected, arrived, or overdue a status change.
func (b *Bot) showMasterStatuses(ctx context.Context, cb *tgbotapi.CallbackQuery, master *entity.Master) {
	loc := master.Location()
	from := time.Now().UTC().Add(-12 * time.Hour)
	to := time.Now().UTC().AddDate(0, 0, 1)

	appointments, err := b.booking.MasterSchedule(ctx, master.ID, from, to)
	if err != nil {
		b.log.Errorf("Failed to load master schedule: %+v", err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	actionable := appointments[:0]
	for _, apt := range appointments {
		if apt.Status != entity.AppointmentStatusDone {
			actionable = append(actionable, apt)
		}
	}

	b.transport.AnswerCallback(cb.ID, "")
	text := masterScheduleText("📋 <b>Статусы записей</b>", actionable, loc)
	kb := masterActionsKeyboard(actionable)
	if len(kb.InlineKeyboard) == 0 {
		b.edit(cb, text, nil)
		return
	}
	b.edit(cb, text, &kb)
}

func (b *Bot) masterAction(
	ctx context.Context,
	cb *tgbotapi.CallbackQuery,
	master *entity.Master,
	arg string,
	op func(context.Context, int, int) (*entity.Appointment, error),
	okText string,
) {
	aptID, err := parseID(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	_, err = op(ctx, aptID, master.ID)
	switch {
	case errors.Is(err, usecase.ErrNotActive), errors.Is(err, usecase.ErrAppointmentNotFound):
		b.transport.AnswerCallbackAlert(cb.ID, "Статус записи уже изменён")
		return
	case err != nil:
		b.log.Errorf("Failed master action on appointment %d: %+v", aptID, err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}
	b.transport.AnswerCallback(cb.ID, okText)
}

// masterCancel cancels on behalf of the master and notifies the client.
func (b *Bot) masterCancel(ctx context.Context, cb *tgbotapi.CallbackQuery, master *entity.Master, arg string) {
	aptID, err := parseID(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	apt, err := b.booking.Cancel(ctx, aptID, entity.ActorMaster, master.TgUserID)
	switch {
	case errors.Is(err, usecase.ErrAlreadyCancelled), errors.Is(err, usecase.ErrNotActive),
		errors.Is(err, usecase.ErrAppointmentNotFound):
		b.transport.AnswerCallbackAlert(cb.ID, "Эту запись уже нельзя отменить")
		return
	case err != nil:
		b.log.Errorf("Failed to cancel appointment %d: %+v", aptID, err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}
	b.transport.AnswerCallback(cb.ID, "Запись отменена")
	b.notifyClientOfCancel(ctx, apt.ID)
}

func (b *Bot) notifyClientOfCancel(ctx context.Context, aptID int) {
	apt, err := b.booking.Details(ctx, aptID)
	if err != nil {
		b.log.Warnf("Failed to load appointment %d for cancel notice: %+v", aptID, err)
		return
	}
	loc := b.loc
	text := cancelledByMasterText(apt.Service.Name, apt, loc)
	if err := b.transport.SendText(apt.Client.TgChatID, text); err != nil {
		b.logSendError(ctx, apt.ClientID, err)
	}
}
