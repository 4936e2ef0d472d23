package bot

import (
	"fmt"
	"time"

	"masterbook/internal/domain/entity"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func mainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Записаться", cbBookStart),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗓 Мои записи", cbMyAppointments),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔕 Отписаться", cbUnsubscribe),
		),
	)
}

func servicesKeyboard(services []entity.Service) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(services)+1)
	for _, svc := range services {
		label := fmt.Sprintf("%s (%d мин)", svc.Name, svc.DurationMin)
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(label, encodeService(svc.ID)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func daysKeyboard(days []time.Time, loc *time.Location) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(days)+1)
	for _, day := range days {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(formatDay(day, loc), encodeDay(day, loc)),
		))
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// slotsKeyboard lays out start times three per row.
func slotsKeyboard(slots []time.Time, loc *time.Location) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, slot := range slots {
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(
			slot.In(loc).Format("15:04"), encodeSlot(slot),
		))
		if len(row) == 3 {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func confirmBookingKeyboard(serviceID int, start time.Time) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтвердить", encodeBookConfirm(serviceID, start)),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Назад", cbMenu),
		),
	)
}

func reminderKeyboard(kind entity.ReminderKind, appointmentID int) tgbotapi.InlineKeyboardMarkup {
	if kind == entity.ReminderKindRemind3h {
		return tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("❌ Отменить запись", encodeID(cbPrefixCancelAsk, appointmentID)),
			),
		)
	}
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Подтверждаю", encodeID(cbPrefixAptConfirm, appointmentID)),
			tgbotapi.NewInlineKeyboardButtonData("❌ Отменить", encodeID(cbPrefixCancelAsk, appointmentID)),
		),
	)
}

func reactivationKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📅 Записаться", cbBookStart),
		),
	)
}

func cancelConfirmKeyboard(appointmentID int) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("❌ Да, отменить", encodeID(cbPrefixCancelConfirm, appointmentID)),
			tgbotapi.NewInlineKeyboardButtonData("↩️ Назад", cbMenu),
		),
	)
}

func appointmentsKeyboard(appointments []entity.Appointment) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(appointments)+1)
	for _, apt := range appointments {
		if apt.Status == entity.AppointmentStatusBooked {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("✅ Подтвердить #%d", apt.ID), encodeID(cbPrefixAptConfirm, apt.ID)),
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("❌ Отменить #%d", apt.ID), encodeID(cbPrefixCancelAsk, apt.ID)),
			))
		} else {
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("❌ Отменить #%d", apt.ID), encodeID(cbPrefixCancelAsk, apt.ID)),
			))
		}
	}
	rows = append(rows, backRow())
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func masterMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("Сегодня", cbMasterToday),
			tgbotapi.NewInlineKeyboardButtonData("Завтра", cbMasterTomorrow),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("7 дней", cbMaster7Days),
			tgbotapi.NewInlineKeyboardButtonData("Статусы", cbMasterStatuses),
		),
	)
}

func masterActionsKeyboard(appointments []entity.Appointment) tgbotapi.InlineKeyboardMarkup {
	var rows [][]tgbotapi.InlineKeyboardButton
	for _, apt := range appointments {
		switch apt.Status {
		case entity.AppointmentStatusBooked, entity.AppointmentStatusConfirmed:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("🚶 Пришёл #%d", apt.ID), encodeID(cbPrefixMasterArrived, apt.ID)),
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("❌ Отменить #%d", apt.ID), encodeID(cbPrefixMasterCancel, apt.ID)),
			))
		case entity.AppointmentStatusArrived:
			rows = append(rows, tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData(
					fmt.Sprintf("✔️ Выполнено #%d", apt.ID), encodeID(cbPrefixMasterDone, apt.ID)),
			))
		}
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

func backRow() []tgbotapi.InlineKeyboardButton {
	return tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("↩️ В меню", cbMenu),
	)
}
