package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/sirimeals/mealops-backend/pkg/enums"
)

// DeliveryItem is one trackable meal unit inside a bag. DeliveryAt is a
// denormalized copy of the owning bag's date and must always equal it.
type DeliveryItem struct {
	ID             uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID uuid.UUID `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	BagID          uuid.UUID `gorm:"column:bag_id;type:uuid;not null;index" json:"bagId"`

	DeliveryAt time.Time      `gorm:"column:delivery_at;type:date;not null" json:"deliveryAt"`
	MealType   enums.MealType `gorm:"column:meal_type;not null" json:"mealType"`

	// QRCode is the deterministic per-item code stamped for no-remark
	// subscriptions; nil otherwise. InBagStatus is nil until verified.
	QRCode      *string `gorm:"column:qr_code" json:"qrCode,omitempty"`
	InBagStatus *bool   `gorm:"column:in_bag_status" json:"inBagStatus,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
