package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MasterServicePrice is a time-effective price for a master × service pair.
// The current price is the row with the greatest active_from not in the future.
type MasterServicePrice struct {
	ID         int             `gorm:"primaryKey;autoIncrement" json:"id"`
	MasterID   int             `gorm:"not null;index:ix_msp_master_service" json:"master_id"`
	ServiceID  int             `gorm:"not null;index:ix_msp_master_service" json:"service_id"`
	Price      decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"price"`
	ActiveFrom time.Time       `gorm:"type:date;not null" json:"active_from"`
	CreatedAt  time.Time       `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Master  Master  `gorm:"foreignKey:MasterID" json:"master,omitempty"`
	Service Service `gorm:"foreignKey:ServiceID" json:"service,omitempty"`
}

func (MasterServicePrice) TableName() string {
	return "master_service_prices"
}
