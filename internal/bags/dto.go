package bags

import (
	"time"

	"github.com/google/uuid"
	"go.uber.org/multierr"

	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
)

// UpdateBagInput carries per-meal-type target counts and an optional address
// override for a single bag.
type UpdateBagInput struct {
	Counts  map[enums.MealType]int `json:"counts"`
	Address *string                `json:"address,omitempty"`
}

// Validate collects every payload problem instead of stopping at the first.
func (in UpdateBagInput) Validate() error {
	var err error
	if len(in.Counts) == 0 && in.Address == nil {
		err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "nothing to update"))
	}
	for mealType, count := range in.Counts {
		if !mealType.Valid() {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, "unknown meal type "+string(mealType)))
		}
		if count < 0 {
			err = multierr.Append(err, pkgerrors.New(pkgerrors.CodeValidation, string(mealType)+" count must not be negative"))
		}
	}
	return err
}

// BasketAssignment labels one bag with the staging container it was packed
// into.
type BasketAssignment struct {
	BagID  uuid.UUID `json:"bagId"`
	Basket string    `json:"basket"`
}

// Filters narrows a bag listing.
type Filters struct {
	From         *time.Time
	To           *time.Time
	MealType     *enums.MealType
	CustomerText string
	QRCode       *string
}
