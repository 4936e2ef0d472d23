package bot

import (
	"fmt"
	"strings"
	"time"

	"masterbook/internal/domain/entity"
)

// All human-readable texts live here so handlers stay mechanical.

var ruMonths = [13]string{"", "янв", "фев", "мар", "апр", "май", "июн", "июл", "авг", "сен", "окт", "ноя", "дек"}
var ruWeekdays = [7]string{"вс", "пн", "вт", "ср", "чт", "пт", "сб"}

// formatInstant renders a UTC instant as local wall clock, e.g. "пн 15 янв в 14:30".
func formatInstant(ts time.Time, loc *time.Location) string {
	local := ts.In(loc)
	return fmt.Sprintf("%s %d %s в %s",
		ruWeekdays[local.Weekday()], local.Day(), ruMonths[local.Month()], local.Format("15:04"))
}

// formatDay renders a calendar date, e.g. "пн 15 янв".
func formatDay(ts time.Time, loc *time.Location) string {
	local := ts.In(loc)
	return fmt.Sprintf("%s %d %s", ruWeekdays[local.Weekday()], local.Day(), ruMonths[local.Month()])
}

func statusLabel(status entity.AppointmentStatus) string {
	switch status {
	case entity.AppointmentStatusBooked:
		return "⏳ ожидает подтверждения"
	case entity.AppointmentStatusConfirmed:
		return "✅ подтверждено"
	case entity.AppointmentStatusArrived:
		return "🚶 клиент пришёл"
	case entity.AppointmentStatusDone:
		return "✔️ выполнено"
	case entity.AppointmentStatusCancelled:
		return "❌ отменено"
	case entity.AppointmentStatusLateCancel:
		return "❌ поздняя отмена"
	}
	return string(status)
}

func menuText(firstName string) string {
	if firstName == "" {
		return "Здравствуйте! Чем могу помочь?"
	}
	return fmt.Sprintf("Здравствуйте, %s! Чем могу помочь?", firstName)
}

// greetingText is the /start screen; it carries the nearest upcoming
// appointment when there is one.
func greetingText(firstName string, next *entity.Appointment, loc *time.Location) string {
	base := menuText(firstName)
	if next == nil {
		return base
	}
	return fmt.Sprintf("%s\n\n📅 Ближайшая запись: %s — %s\n%s",
		base, formatInstant(next.StartTs, loc), next.Service.Name, statusLabel(next.Status))
}

const (
	chooseServiceText = "Выберите услугу:"
	chooseDayText     = "Выберите день:"
	chooseTimeText    = "Выберите время:"
	noSlotsText       = "😔 Свободных окон на ближайшую неделю нет.\nПопробуйте позже."
	noSlotsOnDayText  = "На этот день свободных окон не осталось. Выберите другой день."
	slotTakenText     = "😔 Это время только что заняли. Начните запись заново."
	sessionLostText   = "Сессия устарела. Начните запись заново."
	unsubscribedText  = "Вы отписаны от напоминаний. Напишите нам, когда захотите вернуться."
	notMasterText     = "Эта команда доступна только мастеру."
)

func confirmBookingText(serviceName string, start time.Time, price string, loc *time.Location) string {
	return fmt.Sprintf(
		"Подтвердите запись:\n\n📋 Услуга: %s\n📅 Дата и время: %s\n💰 Стоимость: <b>%s ₽</b>",
		serviceName, formatInstant(start, loc), price)
}

func bookingCreatedText(serviceName string, apt *entity.Appointment, loc *time.Location) string {
	return fmt.Sprintf(
		"✅ <b>Запись создана!</b>\n\n📋 Услуга: %s\n📅 Дата и время: %s\n💰 Сумма: <b>%s ₽</b>\n\n"+
			"Подготовьте %s ₽. Мы напомним о визите за 24 часа.",
		serviceName, formatInstant(apt.StartTs, loc), apt.PriceSnapshot.String(), apt.PriceSnapshot.String())
}

func reminderText(kind entity.ReminderKind, apt *entity.Appointment, serviceName string, loc *time.Location) string {
	switch kind {
	case entity.ReminderKindConfirm24h, entity.ReminderKindConfirm6h:
		hours := 24
		if kind == entity.ReminderKindConfirm6h {
			hours = 6
		}
		return fmt.Sprintf(
			"⏰ <b>Напоминание о записи</b>\n\nУ вас запись через %d ч:\n📋 %s\n📅 %s\n\n"+
				"Подтвердите, пожалуйста, свой визит.",
			hours, serviceName, formatInstant(apt.StartTs, loc))
	case entity.ReminderKindRemind3h:
		return fmt.Sprintf(
			"🔔 <b>Ждём вас через 3 часа!</b>\n\n📋 %s\n📅 %s\n💰 %s ₽",
			serviceName, formatInstant(apt.StartTs, loc), apt.PriceSnapshot.String())
	}
	return ""
}

const reactivationText = "👋 Давно не виделись!\n\n" +
	"Будем рады снова видеть вас. Запишитесь на удобное время — " +
	"свободные слоты ждут вас."

func cancelledByMasterText(serviceName string, apt *entity.Appointment, loc *time.Location) string {
	return fmt.Sprintf(
		"😔 К сожалению, мастер не сможет вас принять в запланированное время.\n\n"+
			"Ваша запись на <b>%s</b> (%s) отменена.\n\n"+
			"Извините за неудобства. Вы можете записаться на другое время.",
		serviceName, formatInstant(apt.StartTs, loc))
}

func cancelAskText(apt *entity.Appointment, loc *time.Location, late bool) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Запись: %s\n\n", formatInstant(apt.StartTs, loc))
	if late {
		b.WriteString("⚠️ До визита меньше часа — отмена будет учтена как поздняя.\n\n")
	}
	b.WriteString("Подтверждаете отмену?")
	return b.String()
}

func myAppointmentsText(appointments []entity.Appointment, loc *time.Location) string {
	if len(appointments) == 0 {
		return "У вас нет предстоящих записей."
	}
	var b strings.Builder
	b.WriteString("📅 <b>Ваши записи:</b>\n")
	for _, apt := range appointments {
		fmt.Fprintf(&b, "\n%s — %s\n%s\n", formatInstant(apt.StartTs, loc), apt.Service.Name, statusLabel(apt.Status))
	}
	return b.String()
}

func masterScheduleText(title string, appointments []entity.Appointment, loc *time.Location) string {
	if len(appointments) == 0 {
		return title + "\n\nЗаписей нет."
	}
	var b strings.Builder
	b.WriteString(title + "\n")
	for _, apt := range appointments {
		fmt.Fprintf(&b, "\n#%d %s — %s\n%s %s, %s ₽\n",
			apt.ID, formatInstant(apt.StartTs, loc), apt.Service.Name,
			apt.Client.FirstName, apt.Client.LastName, apt.PriceSnapshot.String())
		fmt.Fprintf(&b, "%s\n", statusLabel(apt.Status))
	}
	return b.String()
}
