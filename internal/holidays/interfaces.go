package holidays

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
)

// Repository defines persistence operations for the holiday calendar.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	ListDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
	ListYear(ctx context.Context, year int) ([]models.Holiday, error)
	Put(ctx context.Context, date time.Time) error
	Remove(ctx context.Context, date time.Time) error
}
