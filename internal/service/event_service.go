package service

import (
	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// EventService writes append-only audit events. Callers pass the transaction
// they are committing under so event rows live or die with the mutation.
type EventService interface {
	Emit(tx *gorm.DB, event *entity.Event) error
	EmitAppointment(tx *gorm.DB, eventType string, apt *entity.Appointment, actor entity.ActorKind, actorID int64, payload entity.JSON) error
	EmitClient(tx *gorm.DB, eventType string, clientID int, actor entity.ActorKind, actorID int64) error
}

type eventService struct {
	log       *logrus.Logger
	eventRepo repository.EventRepository
}

func NewEventService(log *logrus.Logger, eventRepo repository.EventRepository) EventService {
	return &eventService{
		log:       log,
		eventRepo: eventRepo,
	}
}

func (s *eventService) Emit(tx *gorm.DB, event *entity.Event) error {
	if err := s.eventRepo.Create(tx, event); err != nil {
		s.log.Warnf("Failed to write event %s: %+v", event.EventType, err)
		return err
	}
	return nil
}

func (s *eventService) EmitAppointment(tx *gorm.DB, eventType string, apt *entity.Appointment, actor entity.ActorKind, actorID int64, payload entity.JSON) error {
	return s.Emit(tx, &entity.Event{
		EventType:     eventType,
		AppointmentID: &apt.ID,
		ClientID:      &apt.ClientID,
		MasterID:      &apt.MasterID,
		ActorType:     actor,
		ActorID:       actorID,
		Payload:       payload,
	})
}

func (s *eventService) EmitClient(tx *gorm.DB, eventType string, clientID int, actor entity.ActorKind, actorID int64) error {
	return s.Emit(tx, &entity.Event{
		EventType: eventType,
		ClientID:  &clientID,
		ActorType: actor,
		ActorID:   actorID,
	})
}
