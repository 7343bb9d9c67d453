package models

import (
	"time"

	"github.com/google/uuid"
)

// Bag is one physical per-date delivery package. Bags packed together in the
// same weekday-pair/week bucket share a QRCode; the code is the only link
// between them, a code group has no persisted identity of its own.
type Bag struct {
	ID             uuid.UUID     `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SubscriptionID uuid.UUID     `gorm:"column:subscription_id;type:uuid;not null;index" json:"subscriptionId"`
	Subscription   *Subscription `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`

	DeliveryAt   time.Time `gorm:"column:delivery_at;type:date;not null;index" json:"deliveryAt"`
	Address      *string   `gorm:"column:address" json:"address,omitempty"`
	NoRemarkType bool      `gorm:"column:no_remark_type;not null;default:false" json:"noRemarkType"`
	QRCode       string    `gorm:"column:qr_code;not null;index" json:"qrCode"`

	// Basket is the staging container label staff assign during packing.
	// InBasketStatus is nil until the bag goes through verification.
	Basket         *string `gorm:"column:basket" json:"basket,omitempty"`
	InBasketStatus *bool   `gorm:"column:in_basket_status" json:"inBasketStatus,omitempty"`

	Items []DeliveryItem `gorm:"foreignKey:BagID;constraint:OnDelete:CASCADE" json:"items,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}
