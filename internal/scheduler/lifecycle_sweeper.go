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

// ReactivationNotifier delivers the come-back-soon message.
type ReactivationNotifier interface {
	SendReactivation(chatID int64) error
}

// LifecycleSweeper runs weekly and nudges dormant clients: active clients
// whose last visit is older than the threshold and who were not nudged
// within the cooldown window.
type LifecycleSweeper struct {
	db         *gorm.DB
	log        *logrus.Logger
	clientRepo repository.ClientRepository
	events     service.EventService
	notifier   ReactivationNotifier

	thresholdDays int
	cooldownDays  int
	now           func() time.Time
}

func NewLifecycleSweeper(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	events service.EventService,
	notifier ReactivationNotifier,
	thresholdDays, cooldownDays int,
) *LifecycleSweeper {
	return &LifecycleSweeper{
		db:            db,
		log:           log,
		clientRepo:    clientRepo,
		events:        events,
		notifier:      notifier,
		thresholdDays: thresholdDays,
		cooldownDays:  cooldownDays,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

func (s *LifecycleSweeper) Name() string {
	return "lifecycle_sweeper"
}

func (s *LifecycleSweeper) Run(ctx context.Context) error {
	now := s.now()
	visitBefore := now.AddDate(0, 0, -s.thresholdDays)
	reactivationBefore := now.AddDate(0, 0, -s.cooldownDays)

	dormant, err := s.clientRepo.FindDormant(s.db.WithContext(ctx), visitBefore, reactivationBefore)
	if err != nil {
		return err
	}
	if len(dormant) == 0 {
		return nil
	}

	var nudged, blocked int
	for i := range dormant {
		client := &dormant[i]
		sendErr := s.notifier.SendReactivation(client.TgChatID)
		switch {
		case sendErr == nil:
			if err := s.markSleeping(ctx, client, now); err != nil {
				s.log.Errorf("Failed to mark client %d sleeping: %+v", client.ID, err)
				continue
			}
			nudged++
		case errors.Is(sendErr, bot.ErrUserBlocked):
			if err := s.markBlocked(ctx, client, now); err != nil {
				s.log.Errorf("Failed to mark client %d blocked: %+v", client.ID, err)
				continue
			}
			blocked++
		default:
			// Transient failure: leave the client active so the next sweep
			// retries.
			s.log.Warnf("Failed to send reactivation to client %d: %+v", client.ID, sendErr)
		}
	}

	s.log.Infof("Lifecycle sweep: %d dormant, %d nudged, %d blocked", len(dormant), nudged, blocked)
	return nil
}

func (s *LifecycleSweeper) markSleeping(ctx context.Context, client *entity.Client, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client.TgStatus = entity.ClientStatusSleeping
		client.TgStatusUpdatedAt = &now
		client.LastReactivationSentAt = &now
		if err := s.clientRepo.Update(tx, client); err != nil {
			return err
		}
		return s.events.EmitClient(tx, entity.EventClientReactivated, client.ID, entity.ActorScheduler, 0)
	})
}

func (s *LifecycleSweeper) markBlocked(ctx context.Context, client *entity.Client, now time.Time) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client.TgStatus = entity.ClientStatusBlocked
		client.TgStatusUpdatedAt = &now
		if err := s.clientRepo.Update(tx, client); err != nil {
			return err
		}
		return s.events.EmitClient(tx, entity.EventClientBlockedBot, client.ID, entity.ActorScheduler, 0)
	})
}
