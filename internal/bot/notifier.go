package bot

import (
	"time"

	"masterbook/internal/domain/entity"
)

// Notifier renders and sends scheduler-driven messages. It satisfies the
// dispatcher and sweeper notifier contracts.
type Notifier struct {
	transport *Transport
	loc       *time.Location
}

func NewNotifier(transport *Transport, loc *time.Location) *Notifier {
	return &Notifier{transport: transport, loc: loc}
}

// SendReminder expects the reminder's appointment, client and service to be
// preloaded.
func (n *Notifier) SendReminder(reminder *entity.Reminder) error {
	apt := &reminder.Appointment
	text := reminderText(reminder.Kind, apt, apt.Service.Name, n.loc)
	return n.transport.SendKeyboard(apt.Client.TgChatID, text, reminderKeyboard(reminder.Kind, apt.ID))
}

func (n *Notifier) SendReactivation(chatID int64) error {
	return n.transport.SendKeyboard(chatID, reactivationText, reactivationKeyboard())
}

// SendCancelledByMaster notifies the client that the master cancelled.
func (n *Notifier) SendCancelledByMaster(chatID int64, apt *entity.Appointment, serviceName string) error {
	return n.transport.SendText(chatID, cancelledByMasterText(serviceName, apt, n.loc))
}
