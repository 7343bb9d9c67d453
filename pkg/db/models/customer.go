package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer is the owning party of a subscription. Customer CRUD lives in the
// admin surface; the scheduling core only reads it for bag listings.
type Customer struct {
	ID           uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerCode string    `gorm:"column:customer_code;not null;uniqueIndex" json:"customerCode"`
	Fullname     string    `gorm:"column:fullname;not null" json:"fullname"`
	Address      *string   `gorm:"column:address" json:"address,omitempty"`
	Remark       *string   `gorm:"column:remark" json:"remark,omitempty"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
