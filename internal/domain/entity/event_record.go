package entity

import (
	"time"

	"gorm.io/datatypes"
)

type EventRecord struct {
	ID           int64          `gorm:"primaryKey;autoIncrement"`
	CartID       int64          `gorm:"not null;uniqueIndex:ux_cart_events_cart_version,priority:1;index:ix_cart_events_cart_order,priority:1"`
	Version      int            `gorm:"not null;uniqueIndex:ux_cart_events_cart_version,priority:2"`
	EventType    string         `gorm:"not null"`
	DataJSON     datatypes.JSON `gorm:"column:data_json;type:jsonb;not null"`
	CreatedAtUTC time.Time      `gorm:"column:created_at_utc;not null"`
	CreatedBy    string         `gorm:"not null;default:''"`
}

func (EventRecord) TableName() string {
	return "cart_events"
}
