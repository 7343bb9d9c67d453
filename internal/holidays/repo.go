package holidays

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a holiday repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) ListDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error) {
	var holidays []models.Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", schedule.DateOnly(from), schedule.DateOnly(to)).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}

	dates := make([]time.Time, 0, len(holidays))
	for _, h := range holidays {
		dates = append(dates, schedule.DateOnly(h.Date))
	}
	return dates, nil
}

func (r *repository) ListYear(ctx context.Context, year int) ([]models.Holiday, error) {
	from := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(year, time.December, 31, 0, 0, 0, 0, time.UTC)

	var holidays []models.Holiday
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", from, to).
		Order("date ASC").
		Find(&holidays).Error
	if err != nil {
		return nil, err
	}
	return holidays, nil
}

func (r *repository) Put(ctx context.Context, date time.Time) error {
	holiday := models.Holiday{Date: schedule.DateOnly(date)}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&holiday).Error
}

func (r *repository) Remove(ctx context.Context, date time.Time) error {
	return r.db.WithContext(ctx).
		Where("date = ?", schedule.DateOnly(date)).
		Delete(&models.Holiday{}).Error
}
