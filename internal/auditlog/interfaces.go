package auditlog

import (
	"context"

	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

// Repository defines persistence operations for the audit trail.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateLog(ctx context.Context, log *models.AuditLog) error
	ListLogs(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.AuditLog], error)
}

// Recorder is the write-only surface the other services depend on. Record
// must never fail the caller's operation.
type Recorder interface {
	Record(ctx context.Context, entry Entry)
}
