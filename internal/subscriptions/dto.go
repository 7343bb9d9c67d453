package subscriptions

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/multierr"

	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/types"
)

// MealPlanInput carries the six toggle/count pairs of a subscription.
type MealPlanInput struct {
	PreferBreakfast      bool `json:"preferBreakfast"`
	BreakfastCount       int  `json:"breakfastCount"`
	PreferBreakfastSnack bool `json:"preferBreakfastSnack"`
	BreakfastSnackCount  int  `json:"breakfastSnackCount"`
	PreferLunch          bool `json:"preferLunch"`
	LunchCount           int  `json:"lunchCount"`
	PreferLunchSnack     bool `json:"preferLunchSnack"`
	LunchSnackCount      int  `json:"lunchSnackCount"`
	PreferDinner         bool `json:"preferDinner"`
	DinnerCount          int  `json:"dinnerCount"`
	PreferDinnerSnack    bool `json:"preferDinnerSnack"`
	DinnerSnackCount     int  `json:"dinnerSnackCount"`
}

func (m MealPlanInput) validate() error {
	var err error
	counts := map[string]int{
		"breakfastCount":      m.BreakfastCount,
		"breakfastSnackCount": m.BreakfastSnackCount,
		"lunchCount":          m.LunchCount,
		"lunchSnackCount":     m.LunchSnackCount,
		"dinnerCount":         m.DinnerCount,
		"dinnerSnackCount":    m.DinnerSnackCount,
	}
	for field, count := range counts {
		if count < 0 {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, field+" must not be negative"))
		}
	}
	return err
}

func (m MealPlanInput) applyTo(sub *models.Subscription) {
	sub.PreferBreakfast = m.PreferBreakfast
	sub.BreakfastCount = m.BreakfastCount
	sub.PreferBreakfastSnack = m.PreferBreakfastSnack
	sub.BreakfastSnackCount = m.BreakfastSnackCount
	sub.PreferLunch = m.PreferLunch
	sub.LunchCount = m.LunchCount
	sub.PreferLunchSnack = m.PreferLunchSnack
	sub.LunchSnackCount = m.LunchSnackCount
	sub.PreferDinner = m.PreferDinner
	sub.DinnerCount = m.DinnerCount
	sub.PreferDinnerSnack = m.PreferDinnerSnack
	sub.DinnerSnackCount = m.DinnerSnackCount
}

// CreateSubscriptionInput is the payload for materializing a new schedule.
type CreateSubscriptionInput struct {
	CustomerID   uuid.UUID          `json:"customerId"`
	StartDate    time.Time          `json:"startDate"`
	EndDate      time.Time          `json:"endDate"`
	DeliveryOn   types.DeliveryDays `json:"deliveryOn"`
	DeliveryTime *string            `json:"deliveryTime,omitempty"`

	MealPlanInput

	Remark      *string         `json:"remark,omitempty"`
	Address     *string         `json:"address,omitempty"`
	PaymentType *string         `json:"paymentType,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// Validate collects every payload problem instead of stopping at the first.
// An inverted date range is legal and yields an empty schedule.
func (in CreateSubscriptionInput) Validate() error {
	var err error
	if in.CustomerID == uuid.Nil {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "customerId is required"))
	}
	if in.StartDate.IsZero() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "startDate is required"))
	}
	if in.EndDate.IsZero() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "endDate is required"))
	}
	if in.Total.IsNegative() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "total must not be negative"))
	}
	err = multierr.Append(err, in.MealPlanInput.validate())
	return err
}

func (in CreateSubscriptionInput) toModel() *models.Subscription {
	sub := &models.Subscription{
		ID:           uuid.New(),
		CustomerID:   in.CustomerID,
		StartDate:    schedule.DateOnly(in.StartDate),
		EndDate:      schedule.DateOnly(in.EndDate),
		DeliveryOn:   in.DeliveryOn,
		DeliveryTime: in.DeliveryTime,
		Remark:       in.Remark,
		Address:      in.Address,
		PaymentType:  in.PaymentType,
		Total:        in.Total,
	}
	in.MealPlanInput.applyTo(sub)
	return sub
}

// EditSubscriptionInput replaces a subscription's plan fields. The customer
// binding is immutable.
type EditSubscriptionInput struct {
	StartDate    time.Time          `json:"startDate"`
	EndDate      time.Time          `json:"endDate"`
	DeliveryOn   types.DeliveryDays `json:"deliveryOn"`
	DeliveryTime *string            `json:"deliveryTime,omitempty"`

	MealPlanInput

	Remark      *string         `json:"remark,omitempty"`
	Address     *string         `json:"address,omitempty"`
	PaymentType *string         `json:"paymentType,omitempty"`
	Total       decimal.Decimal `json:"total"`
}

// Validate collects every payload problem instead of stopping at the first.
func (in EditSubscriptionInput) Validate() error {
	var err error
	if in.StartDate.IsZero() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "startDate is required"))
	}
	if in.EndDate.IsZero() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "endDate is required"))
	}
	if in.Total.IsNegative() {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "total must not be negative"))
	}
	err = multierr.Append(err, in.MealPlanInput.validate())
	return err
}

func (in EditSubscriptionInput) applyTo(sub *models.Subscription) {
	sub.StartDate = schedule.DateOnly(in.StartDate)
	sub.EndDate = schedule.DateOnly(in.EndDate)
	sub.DeliveryOn = in.DeliveryOn
	sub.DeliveryTime = in.DeliveryTime
	sub.Remark = in.Remark
	sub.Address = in.Address
	sub.PaymentType = in.PaymentType
	sub.Total = in.Total
	in.MealPlanInput.applyTo(sub)
}

// Filters narrows a subscription listing.
type Filters struct {
	CustomerID *uuid.UUID
	ActiveOn   *time.Time
	From       *time.Time
	To         *time.Time
}
