package bot

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/usecase"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (b *Bot) handleMenu(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity) {
	if err := b.sessions.Clear(ctx, client.TgUserID); err != nil {
		b.log.Warnf("Failed to clear session for user %d: %+v", client.TgUserID, err)
	}
	b.transport.AnswerCallback(cb.ID, "")
	kb := mainMenuKeyboard()
	b.edit(cb, menuText(client.FirstName), &kb)
}

func (b *Bot) handleBookStart(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity) {
	b.transport.AnswerCallback(cb.ID, "")

	services, err := b.services.GetActive(ctx)
	if err != nil {
		b.log.Errorf("Failed to load services: %+v", err)
		return
	}
	if len(services) == 0 {
		b.edit(cb, "Пока нет доступных услуг.", nil)
		return
	}

	state := &FlowState{Step: StepChoosingService}
	if err := b.sessions.Put(ctx, client.TgUserID, state); err != nil {
		b.log.Errorf("Failed to store session for user %d: %+v", client.TgUserID, err)
		return
	}

	kb := servicesKeyboard(services)
	b.edit(cb, chooseServiceText, &kb)
}

func (b *Bot) handleServiceChosen(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	serviceID, err := parseID(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	master, err := b.masters.Get(ctx)
	if err != nil {
		b.log.Errorf("Failed to load master: %+v", err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	services, err := b.services.GetActive(ctx)
	if err != nil {
		b.log.Errorf("Failed to load services: %+v", err)
		return
	}
	var chosen *entity.Service
	for i := range services {
		if services[i].ID == serviceID {
			chosen = &services[i]
			break
		}
	}
	if chosen == nil {
		b.transport.AnswerCallbackAlert(cb.ID, "Услуга больше не доступна")
		return
	}

	dates, err := b.slots.AvailableDates(ctx, master.ID, chosen.DurationMin)
	if err != nil {
		b.log.Errorf("Failed to compute available dates: %+v", err)
		return
	}
	b.transport.AnswerCallback(cb.ID, "")
	if len(dates) == 0 {
		_ = b.sessions.Clear(ctx, client.TgUserID)
		b.edit(cb, noSlotsText, nil)
		return
	}

	state := &FlowState{
		Step:        StepChoosingDay,
		MasterID:    master.ID,
		ServiceID:   chosen.ID,
		DurationMin: chosen.DurationMin,
	}
	if err := b.sessions.Put(ctx, client.TgUserID, state); err != nil {
		b.log.Errorf("Failed to store session for user %d: %+v", client.TgUserID, err)
		return
	}

	kb := daysKeyboard(dates, b.loc)
	b.edit(cb, chooseDayText, &kb)
}

func (b *Bot) handleDayChosen(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	state, err := b.sessions.Get(ctx, client.TgUserID)
	if err != nil {
		b.log.Errorf("Failed to load session for user %d: %+v", client.TgUserID, err)
		return
	}
	if state.Step != StepChoosingDay && state.Step != StepChoosingTime {
		b.transport.AnswerCallback(cb.ID, "")
		b.edit(cb, sessionLostText, nil)
		return
	}

	day, err := parseDay(arg, b.loc)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	slots, err := b.slots.AvailableSlots(ctx, state.MasterID, state.DurationMin, day)
	if err != nil {
		b.log.Errorf("Failed to compute slots: %+v", err)
		return
	}
	b.transport.AnswerCallback(cb.ID, "")
	if len(slots) == 0 {
		b.edit(cb, noSlotsOnDayText, nil)
		return
	}

	state.Step = StepChoosingTime
	state.ChosenDate = arg
	if err := b.sessions.Put(ctx, client.TgUserID, state); err != nil {
		b.log.Errorf("Failed to store session for user %d: %+v", client.TgUserID, err)
		return
	}

	kb := slotsKeyboard(slots, b.loc)
	b.edit(cb, chooseTimeText, &kb)
}

func (b *Bot) handleSlotChosen(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	state, err := b.sessions.Get(ctx, client.TgUserID)
	if err != nil {
		b.log.Errorf("Failed to load session for user %d: %+v", client.TgUserID, err)
		return
	}
	if state.Step != StepChoosingTime {
		b.transport.AnswerCallback(cb.ID, "")
		b.edit(cb, sessionLostText, nil)
		return
	}

	start, err := parseSlot(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	price, err := b.booking.CurrentPrice(ctx, state.MasterID, state.ServiceID)
	if err != nil {
		if errors.Is(err, usecase.ErrPriceUnavailable) {
			b.transport.AnswerCallbackAlert(cb.ID, "Для услуги не настроена цена")
			return
		}
		b.log.Errorf("Failed to load price: %+v", err)
		return
	}

	var serviceName string
	if services, err := b.services.GetActive(ctx); err == nil {
		for _, svc := range services {
			if svc.ID == state.ServiceID {
				serviceName = svc.Name
				break
			}
		}
	}

	state.Step = StepConfirming
	state.ChosenStart = start
	if err := b.sessions.Put(ctx, client.TgUserID, state); err != nil {
		b.log.Errorf("Failed to store session for user %d: %+v", client.TgUserID, err)
		return
	}

	b.transport.AnswerCallback(cb.ID, "")
	kb := confirmBookingKeyboard(state.ServiceID, start)
	b.edit(cb, confirmBookingText(serviceName, start, price.String(), b.loc), &kb)
}

func (b *Bot) handleBookConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	serviceID, start, err := parseBookConfirm(arg)
	if err != nil {
		b.log.Warnf("Malformed book_confirm from user %d: %+v", client.TgUserID, err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	state, err := b.sessions.Get(ctx, client.TgUserID)
	if err != nil {
		b.log.Errorf("Failed to load session for user %d: %+v", client.TgUserID, err)
		return
	}
	if state.Step != StepConfirming || state.ServiceID != serviceID || !state.ChosenStart.Equal(start) {
		b.transport.AnswerCallback(cb.ID, "")
		b.edit(cb, sessionLostText, nil)
		return
	}

	apt, err := b.booking.Create(ctx, usecase.CreateBookingInput{
		MasterID:  state.MasterID,
		ClientID:  client.ID,
		ServiceID: serviceID,
		Start:     start,
		ActorID:   client.TgUserID,
	})
	_ = b.sessions.Clear(ctx, client.TgUserID)

	switch {
	case errors.Is(err, usecase.ErrSlotAlreadyTaken):
		// Never rebook automatically; the user picks again from scratch.
		b.transport.AnswerCallback(cb.ID, "")
		kb := mainMenuKeyboard()
		b.edit(cb, slotTakenText, &kb)
		return
	case errors.Is(err, usecase.ErrPriceUnavailable):
		b.transport.AnswerCallbackAlert(cb.ID, "Для услуги не настроена цена")
		return
	case err != nil:
		b.log.Errorf("Failed to create booking for client %d: %+v", client.ID, err)
		b.transport.AnswerCallbackAlert(cb.ID, "Не получилось создать запись, попробуйте ещё раз")
		return
	}

	var serviceName string
	if services, svcErr := b.services.GetAll(ctx); svcErr == nil {
		for _, svc := range services {
			if svc.ID == serviceID {
				serviceName = svc.Name
				break
			}
		}
	}

	b.transport.AnswerCallback(cb.ID, "Запись создана!")
	b.edit(cb, bookingCreatedText(serviceName, apt, b.loc), nil)
}

func (b *Bot) handleMyAppointments(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity) {
	appointments, err := b.booking.ClientUpcoming(ctx, client.ID)
	if err != nil {
		b.log.Errorf("Failed to load appointments for client %d: %+v", client.ID, err)
		return
	}
	b.transport.AnswerCallback(cb.ID, "")
	kb := appointmentsKeyboard(appointments)
	b.edit(cb, myAppointmentsText(appointments, b.loc), &kb)
}

func (b *Bot) handleUnsubscribe(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity) {
	if err := b.clients.Unsubscribe(ctx, client.TgUserID); err != nil {
		b.log.Errorf("Failed to unsubscribe client %d: %+v", client.ID, err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}
	b.transport.AnswerCallback(cb.ID, "")
	b.edit(cb, unsubscribedText, nil)
}

func (b *Bot) handleAptConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	aptID, err := parseID(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	_, err = b.booking.Confirm(ctx, aptID, client.ID)
	switch {
	case errors.Is(err, usecase.ErrNotConfirmable), errors.Is(err, usecase.ErrAppointmentNotFound):
		b.transport.AnswerCallbackAlert(cb.ID, "Запись уже подтверждена или отменена")
		return
	case err != nil:
		b.log.Errorf("Failed to confirm appointment %d: %+v", aptID, err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	b.transport.AnswerCallback(cb.ID, "")
	b.edit(cb, "✅ Визит подтверждён. Ждём вас!", nil)
}

func (b *Bot) handleCancelAsk(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	aptID, err := parseID(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	apt, err := b.booking.FindByID(ctx, aptID)
	if err != nil {
		b.transport.AnswerCallbackAlert(cb.ID, "Запись не найдена")
		return
	}
	if !apt.IsUpcoming() {
		b.transport.AnswerCallbackAlert(cb.ID, "Эту запись уже нельзя отменить")
		return
	}

	late := apt.StartTs.Sub(time.Now().UTC()) < time.Hour
	b.transport.AnswerCallback(cb.ID, "")
	kb := cancelConfirmKeyboard(aptID)
	b.edit(cb, cancelAskText(apt, b.loc, late), &kb)
}

func (b *Bot) handleCancelConfirm(ctx context.Context, cb *tgbotapi.CallbackQuery, client *clientIdentity, arg string) {
	aptID, err := parseID(arg)
	if err != nil {
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	apt, err := b.booking.Cancel(ctx, aptID, entity.ActorClient, client.TgUserID)
	switch {
	case errors.Is(err, usecase.ErrAlreadyCancelled):
		b.transport.AnswerCallbackAlert(cb.ID, "Запись уже отменена")
		return
	case errors.Is(err, usecase.ErrNotActive), errors.Is(err, usecase.ErrAppointmentNotFound):
		b.transport.AnswerCallbackAlert(cb.ID, "Эту запись уже нельзя отменить")
		return
	case err != nil:
		b.log.Errorf("Failed to cancel appointment %d: %+v", aptID, err)
		b.transport.AnswerCallback(cb.ID, "")
		return
	}

	b.transport.AnswerCallback(cb.ID, "")
	text := "Запись отменена."
	if apt.Status == entity.AppointmentStatusLateCancel {
		text = "Запись отменена (поздняя отмена)."
	}
	b.edit(cb, text, nil)
}
