package entity

import (
	"time"
)

// ClientStatus represents the lifecycle status of a bot client
type ClientStatus string

const (
	ClientStatusActive       ClientStatus = "active"
	ClientStatusSleeping     ClientStatus = "sleeping"
	ClientStatusBlocked      ClientStatus = "blocked"
	ClientStatusUnsubscribed ClientStatus = "unsubscribed"
)

// Client represents an end user of the booking bot.
type Client struct {
	ID                     int          `gorm:"primaryKey;autoIncrement" json:"id"`
	TgUserID               int64        `gorm:"not null;uniqueIndex" json:"tg_user_id"`
	TgChatID               int64        `gorm:"not null" json:"tg_chat_id"`
	FirstName              string       `gorm:"type:varchar(255)" json:"first_name"`
	LastName               string       `gorm:"type:varchar(255)" json:"last_name"`
	Username               string       `gorm:"type:varchar(255)" json:"username"`
	TgStatus               ClientStatus `gorm:"type:client_status;not null;default:'active'" json:"tg_status"`
	TgStatusUpdatedAt      *time.Time   `json:"tg_status_updated_at,omitempty"`
	LastVisitAt            *time.Time   `json:"last_visit_at,omitempty"`
	LastReactivationSentAt *time.Time   `json:"last_reactivation_sent_at,omitempty"`
	CreatedAt              time.Time    `gorm:"autoCreateTime" json:"created_at"`
}

func (Client) TableName() string {
	return "clients"
}

// NeedsReactivation reports whether user-initiated contact should flip the
// client back to active.
func (c *Client) NeedsReactivation() bool {
	return c.TgStatus == ClientStatusBlocked || c.TgStatus == ClientStatusUnsubscribed || c.TgStatus == ClientStatusSleeping
}
