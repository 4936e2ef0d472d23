package entity

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ActorKind identifies who triggered an event
type ActorKind string

const (
	ActorClient    ActorKind = "client"
	ActorMaster    ActorKind = "master"
	ActorScheduler ActorKind = "scheduler"
	ActorAdmin     ActorKind = "admin"
)

// Event is an append-only audit record. Rows are never updated or deleted;
// entity references are weak and may outlive their targets.
type Event struct {
	ID            int64      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventType     string     `gorm:"type:varchar(100);not null;index:ix_events_type" json:"event_type"`
	AppointmentID *int       `gorm:"index" json:"appointment_id,omitempty"`
	ClientID      *int       `json:"client_id,omitempty"`
	MasterID      *int       `json:"master_id,omitempty"`
	ActorType     ActorKind  `gorm:"type:varchar(50);not null" json:"actor_type"`
	ActorID       int64      `gorm:"not null" json:"actor_id"`
	Payload       JSON       `gorm:"type:jsonb" json:"payload,omitempty"`
	CreatedAt     time.Time  `gorm:"autoCreateTime;index:ix_events_created_at" json:"created_at"`
}

func (Event) TableName() string {
	return "events"
}

// JSON type for GORM JSONB support
type JSON map[string]interface{}

// Value returns json value, implement driver.Valuer interface
func (j JSON) Value() (driver.Value, error) {
	if len(j) == 0 {
		return nil, nil
	}
	return json.Marshal(j)
}

// Scan scan value into Jsonb, implements sql.Scanner interface
func (j *JSON) Scan(value interface{}) error {
	if value == nil {
		*j = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New(fmt.Sprint("Failed to unmarshal JSONB value:", value))
	}

	result := map[string]interface{}{}
	err := json.Unmarshal(bytes, &result)
	*j = JSON(result)
	return err
}

// Event types emitted by the system
const (
	EventAppointmentCreated           = "appointment_created"
	EventAppointmentConfirmed         = "appointment_confirmed"
	EventAppointmentCancelledByClient = "appointment_cancelled_by_client"
	EventAppointmentCancelledByMaster = "appointment_cancelled_by_master"
	EventLateCancel                   = "late_cancel"
	EventClientArrived                = "client_arrived"
	EventServiceDone                  = "service_done"
	EventReminderSent24h              = "reminder_sent_24h"
	EventReminderSent6h               = "reminder_sent_6h"
	EventReminderSent3h               = "reminder_sent_3h"
	EventReminderFailed               = "reminder_failed"
	EventClientBlockedBot             = "client_blocked_bot"
	EventClientUnsubscribed           = "client_unsubscribed"
	EventClientReactivated            = "client_reactivated"
	EventPriceChanged                 = "price_changed"
	EventBlackoutCreated              = "blackout_created"
	EventServiceUpdated               = "service_updated"
	EventAdminAdded                   = "admin_added"
	EventAdminRemoved                 = "admin_removed"
)
