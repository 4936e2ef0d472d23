package usecase

import (
	"context"
	"errors"
	"time"

	"masterbook/internal/domain/entity"
	"masterbook/internal/domain/repository"
	"masterbook/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrClientNotFound = errors.New("client not found")

// ClientProfile is the transport-side identity of an incoming user.
type ClientProfile struct {
	TgUserID  int64
	TgChatID  int64
	FirstName string
	LastName  string
	Username  string
}

// ClientUsecase manages client identity and lifecycle transitions driven by
// user-initiated contact.
type ClientUsecase interface {
	// GetOrCreate returns the client for an incoming update, creating an
	// active row on first contact. Any contact from a sleeping, blocked or
	// unsubscribed client reactivates it and emits client_reactivated.
	GetOrCreate(ctx context.Context, profile ClientProfile) (*entity.Client, error)
	Unsubscribe(ctx context.Context, tgUserID int64) error
	MarkBlocked(ctx context.Context, clientID int) error
}

type clientUsecase struct {
	db         *gorm.DB
	log        *logrus.Logger
	clientRepo repository.ClientRepository
	events     service.EventService
	now        func() time.Time
}

func NewClientUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	clientRepo repository.ClientRepository,
	events service.EventService,
) ClientUsecase {
	return &clientUsecase{
		db:         db,
		log:        log,
		clientRepo: clientRepo,
		events:     events,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

func (u *clientUsecase) GetOrCreate(ctx context.Context, profile ClientProfile) (*entity.Client, error) {
	db := u.db.WithContext(ctx)

	client, err := u.clientRepo.FindByTgUserID(db, profile.TgUserID)
	if err != nil {
		return nil, err
	}

	if client == nil {
		client = &entity.Client{
			TgUserID:  profile.TgUserID,
			TgChatID:  profile.TgChatID,
			FirstName: profile.FirstName,
			LastName:  profile.LastName,
			Username:  profile.Username,
			TgStatus:  entity.ClientStatusActive,
		}
		if err := u.clientRepo.Create(db, client); err != nil {
			u.log.Warnf("Failed to create client tg_user_id=%d: %+v", profile.TgUserID, err)
			return nil, err
		}
		return client, nil
	}

	if client.NeedsReactivation() {
		err = db.Transaction(func(tx *gorm.DB) error {
			now := u.now()
			client.TgStatus = entity.ClientStatusActive
			client.TgStatusUpdatedAt = &now
			if err := u.clientRepo.Update(tx, client); err != nil {
				return err
			}
			return u.events.EmitClient(tx, entity.EventClientReactivated, client.ID,
				entity.ActorClient, profile.TgUserID)
		})
		if err != nil {
			return nil, err
		}
		u.log.Infof("Client reactivated: id=%d", client.ID)
	}
	return client, nil
}

func (u *clientUsecase) Unsubscribe(ctx context.Context, tgUserID int64) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := u.clientRepo.FindByTgUserID(tx, tgUserID)
		if err != nil {
			return err
		}
		if client == nil {
			return ErrClientNotFound
		}

		now := u.now()
		client.TgStatus = entity.ClientStatusUnsubscribed
		client.TgStatusUpdatedAt = &now
		if err := u.clientRepo.Update(tx, client); err != nil {
			return err
		}
		return u.events.EmitClient(tx, entity.EventClientUnsubscribed, client.ID,
			entity.ActorClient, tgUserID)
	})
}

func (u *clientUsecase) MarkBlocked(ctx context.Context, clientID int) error {
	return u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		client, err := u.clientRepo.FindByID(tx, clientID)
		if err != nil {
			return err
		}
		if client == nil {
			return ErrClientNotFound
		}

		now := u.now()
		client.TgStatus = entity.ClientStatusBlocked
		client.TgStatusUpdatedAt = &now
		if err := u.clientRepo.Update(tx, client); err != nil {
			return err
		}
		return u.events.EmitClient(tx, entity.EventClientBlockedBot, client.ID,
			entity.ActorScheduler, 0)
	})
}
