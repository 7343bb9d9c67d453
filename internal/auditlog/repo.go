package auditlog

import (
	"context"

	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds an audit-log repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateLog(ctx context.Context, log *models.AuditLog) error {
	return r.db.WithContext(ctx).Create(log).Error
}

func (r *repository) ListLogs(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.AuditLog], error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.AuditLog{})
	if filters.Event != nil {
		query = query.Where("event_type = ?", *filters.Event)
	}
	if filters.ActorID != nil {
		query = query.Where("actor_id = ?", *filters.ActorID)
	}
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.From != nil {
		query = query.Where("created_at >= ?", *filters.From)
	}
	if filters.To != nil {
		query = query.Where("created_at < ?", *filters.To)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	var logs []models.AuditLog
	err := query.
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&logs).Error
	if err != nil {
		return nil, err
	}

	return &pagination.Page[models.AuditLog]{Items: logs, Count: count}, nil
}
