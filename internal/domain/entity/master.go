package entity

import (
	"time"
)

// Master represents the service provider. MVP runs with a single row,
// but the schema stays multi-master and every query takes an explicit id.
type Master struct {
	ID            int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DisplayName   string    `gorm:"type:varchar(255);not null" json:"display_name"`
	TgUserID      int64     `gorm:"not null;uniqueIndex" json:"tg_user_id"`
	Timezone      string    `gorm:"type:varchar(50);not null;default:'Europe/Moscow'" json:"timezone"`
	WorkStartTime string    `gorm:"type:time;not null;default:'09:00:00'" json:"work_start_time"`
	WorkEndTime   string    `gorm:"type:time;not null;default:'20:00:00'" json:"work_end_time"`
	BufferMin     int       `gorm:"not null;default:10" json:"buffer_min"`
	CreatedAt     time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Master) TableName() string {
	return "masters"
}

// Location resolves the master's IANA zone, falling back to UTC on a bad value.
func (m *Master) Location() *time.Location {
	loc, err := time.LoadLocation(m.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}
