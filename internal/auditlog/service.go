package auditlog

import (
	"context"
	"fmt"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

// Service exposes audit-trail operations.
type Service interface {
	Recorder
	List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.AuditLog], error)
}

type service struct {
	repo Repository
	logg *logger.Logger
}

// NewService builds an audit-log service with the provided repository.
func NewService(repo Repository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("audit log repository required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, logg: logg}, nil
}

// Record persists one audit entry. Failures are logged and swallowed so the
// trail never breaks the operation it describes.
func (s *service) Record(ctx context.Context, entry Entry) {
	log := &models.AuditLog{
		ActorID:    entry.ActorID,
		CustomerID: entry.CustomerID,
		BagID:      entry.BagID,
		EventType:  entry.Event,
		Detail:     entry.Detail,
		Status:     entry.Status,
	}
	if err := s.repo.CreateLog(ctx, log); err != nil {
		ctx = s.logg.WithField(ctx, "event_type", string(entry.Event))
		s.logg.Error(ctx, "writing audit log", err)
	}
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.AuditLog], error) {
	page, err := s.repo.ListLogs(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list audit logs")
	}
	return page, nil
}
