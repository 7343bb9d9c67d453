package models

import "time"

// Holiday is a single globally blocked delivery date.
type Holiday struct {
	Date      time.Time `gorm:"column:date;type:date;primaryKey" json:"date"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
