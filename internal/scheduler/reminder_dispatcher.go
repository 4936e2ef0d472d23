package scheduler

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/bot"
	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"
	"masterbook/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ReminderNotifier renders and delivers one reminder message.
type ReminderNotifier interface {
	SendReminder(reminder *entity.Reminder) error
}

// ReminderDispatcher drains due reminders once per tick. Sends happen
// against the live transport; all state mutations of the batch commit in a
// single transaction at the end of the run, so a failed commit leaves every
// reminder pending and the next tick retries the batch.
type ReminderDispatcher struct {
	db           *gorm.DB
	log          *logrus.Logger
	reminderRepo repository.ReminderRepository
	clientRepo   repository.ClientRepository
	events       service.EventService
	notifier     ReminderNotifier
	now          func() time.Time
}

func NewReminderDispatcher(
	db *gorm.DB,
	log *logrus.Logger,
	reminderRepo repository.ReminderRepository,
	clientRepo repository.ClientRepository,
	events service.EventService,
	notifier ReminderNotifier,
) *ReminderDispatcher {
	return &ReminderDispatcher{
		db:           db,
		log:          log,
		reminderRepo: reminderRepo,
		clientRepo:   clientRepo,
		events:       events,
		notifier:     notifier,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (d *ReminderDispatcher) Name() string {
	return "reminder_dispatcher"
}

type dispatchAction int

const (
	actionSend dispatchAction = iota
	actionCancel
)

// classifyReminder decides whether a due reminder is still worth sending.
// The parent appointment must be preloaded.
func classifyReminder(r *entity.Reminder) dispatchAction {
	apt := &r.Appointment
	if apt.Status != entity.AppointmentStatusBooked && apt.Status != entity.AppointmentStatusConfirmed {
		return actionCancel
	}
	// The 6h nudge asks for confirmation; pointless once confirmed.
	if r.Kind == entity.ReminderKindConfirm6h && apt.ConfirmedAt != nil {
		return actionCancel
	}
	// The 3h reminder goes only to clients who confirmed.
	if r.Kind == entity.ReminderKindRemind3h && apt.ConfirmedAt == nil {
		return actionCancel
	}
	return actionSend
}

func sentEventType(kind entity.ReminderKind) string {
	switch kind {
	case entity.ReminderKindConfirm24h:
		return entity.EventReminderSent24h
	case entity.ReminderKindConfirm6h:
		return entity.EventReminderSent6h
	default:
		return entity.EventReminderSent3h
	}
}

type reminderOutcome struct {
	reminder    *entity.Reminder
	status      entity.ReminderStatus
	sentAt      *time.Time
	eventType   string
	payload     entity.JSON
	blockClient bool
}

func (d *ReminderDispatcher) Run(ctx context.Context) error {
	now := d.now()
	due, err := d.reminderRepo.FindDue(d.db.WithContext(ctx), now)
	if err != nil {
		return err
	}
	if len(due) == 0 {
		return nil
	}

	outcomes := make([]reminderOutcome, 0, len(due))
	for i := range due {
		r := &due[i]
		if classifyReminder(r) == actionCancel {
			outcomes = append(outcomes, reminderOutcome{
				reminder: r,
				status:   entity.ReminderStatusCancelled,
			})
			continue
		}
		outcomes = append(outcomes, d.send(r, now))
	}

	if err := d.commit(ctx, outcomes); err != nil {
		d.log.Errorf("Failed to commit reminder batch, will retry next tick: %+v", err)
		return err
	}
	d.log.Infof("Processed %d due reminders", len(due))
	return nil
}

func (d *ReminderDispatcher) send(r *entity.Reminder, now time.Time) reminderOutcome {
	err := d.notifier.SendReminder(r)
	if err == nil {
		sentAt := now
		return reminderOutcome{
			reminder:  r,
			status:    entity.ReminderStatusSent,
			sentAt:    &sentAt,
			eventType: sentEventType(r.Kind),
		}
	}
	if errors.Is(err, bot.ErrUserBlocked) {
		return reminderOutcome{
			reminder:    r,
			status:      entity.ReminderStatusFailed,
			eventType:   entity.EventReminderFailed,
			payload:     entity.JSON{"reason": "bot_blocked", "reminder_id": r.ID},
			blockClient: true,
		}
	}
	d.log.Errorf("Failed to send reminder %d: %+v", r.ID, err)
	return reminderOutcome{
		reminder:  r,
		status:    entity.ReminderStatusFailed,
		eventType: entity.EventReminderFailed,
		payload:   entity.JSON{"reason": err.Error(), "reminder_id": r.ID},
	}
}

func (d *ReminderDispatcher) commit(ctx context.Context, outcomes []reminderOutcome) error {
	now := d.now()
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range outcomes {
			if err := d.reminderRepo.UpdateStatus(tx, o.reminder.ID, o.status, o.sentAt); err != nil {
				return err
			}
			if o.eventType != "" {
				apt := &o.reminder.Appointment
				if err := d.events.EmitAppointment(tx, o.eventType, apt,
					entity.ActorScheduler, 0, o.payload); err != nil {
					return err
				}
			}
			if o.blockClient {
				if err := d.blockClient(tx, o.reminder.Appointment.ClientID, now); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

func (d *ReminderDispatcher) blockClient(tx *gorm.DB, clientID int, now time.Time) error {
	client, err := d.clientRepo.FindByID(tx, clientID)
	if err != nil {
		return err
	}
	if client == nil || client.TgStatus == entity.ClientStatusBlocked {
		return nil
	}
	client.TgStatus = entity.ClientStatusBlocked
	client.TgStatusUpdatedAt = &now
	if err := d.clientRepo.Update(tx, client); err != nil {
		return err
	}
	return d.events.EmitClient(tx, entity.EventClientBlockedBot, client.ID, entity.ActorScheduler, 0)
}
