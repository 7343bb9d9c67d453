package holidays

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
)

// Service exposes holiday-calendar operations. Changing the calendar only
// affects schedules materialized afterwards; existing bags keep their dates.
type Service interface {
	ListYear(ctx context.Context, year int) ([]models.Holiday, error)
	Block(ctx context.Context, actorID uuid.UUID, date time.Time) error
	Unblock(ctx context.Context, actorID uuid.UUID, date time.Time) error
}

type service struct {
	repo  Repository
	audit auditlog.Recorder
}

// NewService builds a holiday service with the provided repository.
func NewService(repo Repository, audit auditlog.Recorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("holiday repository required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	return &service{repo: repo, audit: audit}, nil
}

func (s *service) ListYear(ctx context.Context, year int) ([]models.Holiday, error) {
	if year < 2000 || year > 2100 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "year out of range")
	}
	holidays, err := s.repo.ListYear(ctx, year)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list holidays")
	}
	return holidays, nil
}

func (s *service) Block(ctx context.Context, actorID uuid.UUID, date time.Time) error {
	if date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if err := s.repo.Put(ctx, date); err != nil {
		s.recordChange(ctx, actorID, date, "block", enums.AuditStatusFail)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "block holiday")
	}
	s.recordChange(ctx, actorID, date, "block", enums.AuditStatusSuccess)
	return nil
}

func (s *service) Unblock(ctx context.Context, actorID uuid.UUID, date time.Time) error {
	if date.IsZero() {
		return pkgerrors.New(pkgerrors.CodeValidation, "date is required")
	}
	if err := s.repo.Remove(ctx, date); err != nil {
		s.recordChange(ctx, actorID, date, "unblock", enums.AuditStatusFail)
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unblock holiday")
	}
	s.recordChange(ctx, actorID, date, "unblock", enums.AuditStatusSuccess)
	return nil
}

func (s *service) recordChange(ctx context.Context, actorID uuid.UUID, date time.Time, action string, status enums.AuditStatus) {
	s.audit.Record(ctx, auditlog.Entry{
		ActorID: actorID,
		Event:   enums.AuditEventUpdateHoliday,
		Detail:  fmt.Sprintf("%s %s", action, schedule.FormatDate(date)),
		Status:  status,
	})
}
