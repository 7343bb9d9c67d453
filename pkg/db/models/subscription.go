package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/sirimeals/mealops-backend/pkg/types"
)

// Subscription is a customer's recurring meal-delivery agreement over a date
// range. Each enabled meal type carries a per-delivery count; the count is
// only meaningful while its prefer toggle is on.
type Subscription struct {
	ID         uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	CustomerID uuid.UUID `gorm:"column:customer_id;type:uuid;not null" json:"customerId"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`

	StartDate    time.Time          `gorm:"column:start_date;type:date;not null" json:"startDate"`
	EndDate      time.Time          `gorm:"column:end_date;type:date;not null" json:"endDate"`
	DeliveryOn   types.DeliveryDays `gorm:"column:delivery_on;type:jsonb;serializer:json" json:"deliveryOn"`
	DeliveryTime *string            `gorm:"column:delivery_time" json:"deliveryTime,omitempty"`

	PreferBreakfast      bool `gorm:"column:prefer_breakfast;not null;default:false" json:"preferBreakfast"`
	BreakfastCount       int  `gorm:"column:breakfast_count;not null;default:0" json:"breakfastCount"`
	PreferBreakfastSnack bool `gorm:"column:prefer_breakfast_snack;not null;default:false" json:"preferBreakfastSnack"`
	BreakfastSnackCount  int  `gorm:"column:breakfast_snack_count;not null;default:0" json:"breakfastSnackCount"`
	PreferLunch          bool `gorm:"column:prefer_lunch;not null;default:false" json:"preferLunch"`
	LunchCount           int  `gorm:"column:lunch_count;not null;default:0" json:"lunchCount"`
	PreferLunchSnack     bool `gorm:"column:prefer_lunch_snack;not null;default:false" json:"preferLunchSnack"`
	LunchSnackCount      int  `gorm:"column:lunch_snack_count;not null;default:0" json:"lunchSnackCount"`
	PreferDinner         bool `gorm:"column:prefer_dinner;not null;default:false" json:"preferDinner"`
	DinnerCount          int  `gorm:"column:dinner_count;not null;default:0" json:"dinnerCount"`
	PreferDinnerSnack    bool `gorm:"column:prefer_dinner_snack;not null;default:false" json:"preferDinnerSnack"`
	DinnerSnackCount     int  `gorm:"column:dinner_snack_count;not null;default:0" json:"dinnerSnackCount"`

	Remark      *string         `gorm:"column:remark" json:"remark,omitempty"`
	Address     *string         `gorm:"column:address" json:"address,omitempty"`
	PaymentType *string         `gorm:"column:payment_type" json:"paymentType,omitempty"`
	Total       decimal.Decimal `gorm:"column:total;type:numeric(10,2);not null;default:0" json:"total"`

	Bags []Bag `gorm:"foreignKey:SubscriptionID;constraint:OnDelete:CASCADE" json:"bags,omitempty"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updatedAt"`
}

// NoRemarkType reports whether the subscription qualifies for deterministic
// per-item scan codes and week-grouped bag codes.
func (s *Subscription) NoRemarkType() bool {
	return s.Remark == nil || *s.Remark == ""
}
