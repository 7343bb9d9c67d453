package packing

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
	"github.com/sirimeals/mealops-backend/pkg/metrics"
)

// Service is the pack-time verification state machine. Items move
// Unverified -> InBag(true|false), bags move Unverified -> InBasket(true|false).
// Both transitions re-evaluate from persisted state and overwrite the flag,
// so replaying a scan converges on the same terminal state.
type Service interface {
	VerifyItem(ctx context.Context, actorID uuid.UUID, bagCode string, itemID uuid.UUID) error
	VerifyBag(ctx context.Context, actorID uuid.UUID, bagCode, basket string) error
}

type service struct {
	repo    Repository
	audit   auditlog.Recorder
	logg    *logger.Logger
	metrics *metrics.SchedulingMetrics
}

// NewService builds a packing verifier with the provided repository.
func NewService(repo Repository, audit auditlog.Recorder, logg *logger.Logger, met *metrics.SchedulingMetrics) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("packing repository required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	return &service{repo: repo, audit: audit, logg: logg, metrics: met}, nil
}

// VerifyItem marks an item as packed when it belongs to a bag sharing
// bagCode. A known item scanned against the wrong code is flagged false and
// reported missing from the group.
func (s *service) VerifyItem(ctx context.Context, actorID uuid.UUID, bagCode string, itemID uuid.UUID) error {
	if bagCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "bagCode is required")
	}

	item, bag, err := s.repo.FindItemWithBag(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			s.metrics.IncVerification("item", "not_found")
			s.recordItemAudit(ctx, actorID, nil, itemID, enums.AuditStatusFail)
			return pkgerrors.New(pkgerrors.CodeNotFound, "item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load item")
	}

	matched := bag.QRCode == bagCode
	if err := s.repo.SetItemInBag(ctx, item.ID, matched); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set item status")
	}

	if !matched {
		s.metrics.IncVerification("item", "not_found")
		s.recordItemAudit(ctx, actorID, &bag.ID, itemID, enums.AuditStatusFail)
		return pkgerrors.New(pkgerrors.CodeNotFound, "item does not belong to the scanned bag group").
			WithDetails(map[string]string{"itemId": itemID.String(), "bagCode": bagCode})
	}

	s.metrics.IncVerification("item", "success")
	s.recordItemAudit(ctx, actorID, &bag.ID, itemID, enums.AuditStatusSuccess)
	return nil
}

// VerifyBag checks the scanned basket label against the stored one and flips
// in_basket_status for every bag sharing bagCode, true on match and false on
// mismatch.
func (s *service) VerifyBag(ctx context.Context, actorID uuid.UUID, bagCode, basket string) error {
	if bagCode == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "bagCode is required")
	}
	if basket == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "basket is required")
	}

	bags, err := s.repo.FindBagsByCode(ctx, bagCode)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag group")
	}
	if len(bags) == 0 {
		s.metrics.IncVerification("bag", "not_found")
		s.recordBagAudit(ctx, actorID, nil, bagCode, basket, enums.AuditStatusFail)
		return pkgerrors.New(pkgerrors.CodeNotFound, "no bags carry the scanned code")
	}

	matched := false
	for _, bag := range bags {
		if bag.Basket != nil && *bag.Basket == basket {
			matched = true
			break
		}
	}

	if err := s.repo.SetBasketStatusByCode(ctx, bagCode, matched); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "set basket status")
	}

	groupLead := bags[0].ID
	if !matched {
		s.metrics.IncVerification("bag", "mismatch")
		s.recordBagAudit(ctx, actorID, &groupLead, bagCode, basket, enums.AuditStatusFail)
		return pkgerrors.New(pkgerrors.CodeScanMismatch, "basket label does not match the bag group").
			WithDetails(map[string]string{"bagCode": bagCode, "basket": basket})
	}

	s.metrics.IncVerification("bag", "success")
	s.recordBagAudit(ctx, actorID, &groupLead, bagCode, basket, enums.AuditStatusSuccess)
	return nil
}

func (s *service) recordItemAudit(ctx context.Context, actorID uuid.UUID, bagID *uuid.UUID, itemID uuid.UUID, status enums.AuditStatus) {
	s.audit.Record(ctx, auditlog.Entry{
		ActorID: actorID,
		BagID:   bagID,
		Event:   enums.AuditEventCheckItem,
		Detail:  fmt.Sprintf("item %s", itemID),
		Status:  status,
	})
}

func (s *service) recordBagAudit(ctx context.Context, actorID uuid.UUID, bagID *uuid.UUID, bagCode, basket string, status enums.AuditStatus) {
	s.audit.Record(ctx, auditlog.Entry{
		ActorID: actorID,
		BagID:   bagID,
		Event:   enums.AuditEventCheckBag,
		Detail:  fmt.Sprintf("code %s against basket %s", bagCode, basket),
		Status:  status,
	})
}
