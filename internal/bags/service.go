package bags

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service exposes bag-scoped operations: listing, single-bag quantity edits,
// basket assignment, removal and spreadsheet export. Only strictly-future
// bags may be mutated.
type Service interface {
	Get(ctx context.Context, id uuid.UUID) (*models.Bag, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Bag], error)
	Update(ctx context.Context, actorID, bagID uuid.UUID, input UpdateBagInput) (*models.Bag, error)
	Remove(ctx context.Context, actorID, bagID uuid.UUID) error
	AssignBaskets(ctx context.Context, actorID uuid.UUID, assignments []BasketAssignment) error
	Export(ctx context.Context, filters Filters) ([]byte, error)
}

type service struct {
	tx    txRunner
	repo  Repository
	audit auditlog.Recorder
	logg  *logger.Logger

	now func() time.Time
}

// NewService builds a bag service. nowFunc defaults to the wall clock when
// nil.
func NewService(tx txRunner, repo Repository, audit auditlog.Recorder, logg *logger.Logger, nowFunc func() time.Time) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("bags repository required")
	}
	if audit == nil {
		return nil, fmt.Errorf("audit recorder required")
	}
	if logg == nil {
		return nil, fmt.Errorf("logger required")
	}
	if nowFunc == nil {
		nowFunc = time.Now
	}
	return &service{tx: tx, repo: repo, audit: audit, logg: logg, now: nowFunc}, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Bag, error) {
	bag, err := s.repo.FindBag(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "bag not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag")
	}
	return bag, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Bag], error) {
	page, err := s.repo.ListBags(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list bags")
	}
	return page, nil
}

// Update applies a per-meal-type diff: targets of zero clear the type,
// shortfalls append freshly stamped items, excess deletes the oldest rows
// down to the target. The address override is applied unconditionally.
func (s *service) Update(ctx context.Context, actorID, bagID uuid.UUID, input UpdateBagInput) (*models.Bag, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid bag payload")
	}

	ctx = s.logg.WithBagID(ctx, bagID.String())
	bag, err := s.Get(ctx, bagID)
	if err != nil {
		return nil, err
	}
	if err := s.requireFuture(bag); err != nil {
		return nil, err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		if len(input.Counts) > 0 {
			items, err := repo.FindItemsByBag(ctx, bag.ID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load bag items")
			}
			if err := s.applyCountDiffs(ctx, repo, bag, items, input.Counts); err != nil {
				return err
			}
		}

		if input.Address != nil {
			bag.Address = input.Address
		}
		if err := repo.UpdateBag(ctx, bag); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update bag")
		}
		return nil
	})
	if err != nil {
		s.recordBagAudit(ctx, actorID, bag, enums.AuditEventUpdateBag, enums.AuditStatusFail)
		return nil, err
	}

	s.recordBagAudit(ctx, actorID, bag, enums.AuditEventUpdateBag, enums.AuditStatusSuccess)
	s.logg.Info(ctx, "bag updated")
	return s.Get(ctx, bagID)
}

func (s *service) applyCountDiffs(ctx context.Context, repo Repository, bag *models.Bag, items []models.DeliveryItem, counts map[enums.MealType]int) error {
	byType := map[enums.MealType][]models.DeliveryItem{}
	for _, item := range items {
		byType[item.MealType] = append(byType[item.MealType], item)
	}

	var toCreate []models.DeliveryItem
	var toDelete []uuid.UUID
	for mealType, target := range counts {
		current := byType[mealType]
		switch {
		case target == len(current):
			continue
		case target < len(current):
			for _, item := range current[:len(current)-target] {
				toDelete = append(toDelete, item.ID)
			}
		default:
			for i := len(current); i < target; i++ {
				item := models.DeliveryItem{
					ID:             uuid.New(),
					SubscriptionID: bag.SubscriptionID,
					BagID:          bag.ID,
					DeliveryAt:     schedule.DateOnly(bag.DeliveryAt),
					MealType:       mealType,
				}
				if bag.NoRemarkType {
					code := schedule.ItemCode(item.DeliveryAt.Weekday(), mealType)
					item.QRCode = &code
				}
				toCreate = append(toCreate, item)
			}
		}
	}

	if err := repo.DeleteItemsByIDs(ctx, toDelete); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete excess items")
	}
	if err := repo.CreateItems(ctx, toCreate); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create items")
	}
	return nil
}

// Remove hard-deletes a future bag together with its items.
func (s *service) Remove(ctx context.Context, actorID, bagID uuid.UUID) error {
	ctx = s.logg.WithBagID(ctx, bagID.String())
	bag, err := s.Get(ctx, bagID)
	if err != nil {
		return err
	}
	if err := s.requireFuture(bag); err != nil {
		return err
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.DeleteItemsByBag(ctx, bag.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete bag items")
		}
		if err := repo.DeleteBag(ctx, bag.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete bag")
		}
		return nil
	})
	if err != nil {
		s.recordBagAudit(ctx, actorID, bag, enums.AuditEventRemoveBag, enums.AuditStatusFail)
		return err
	}

	s.recordBagAudit(ctx, actorID, bag, enums.AuditEventRemoveBag, enums.AuditStatusSuccess)
	s.logg.Info(ctx, "bag removed")
	return nil
}

// AssignBaskets labels the given bags with their staging containers in one
// transaction.
func (s *service) AssignBaskets(ctx context.Context, actorID uuid.UUID, assignments []BasketAssignment) error {
	if len(assignments) == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "no assignments given")
	}
	for _, a := range assignments {
		if a.BagID == uuid.Nil {
			return pkgerrors.New(pkgerrors.CodeValidation, "bagId is required")
		}
		if a.Basket == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "basket label is required")
		}
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, a := range assignments {
			if err := repo.SetBasket(ctx, a.BagID, a.Basket); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "assign basket")
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	for _, a := range assignments {
		bagID := a.BagID
		s.audit.Record(ctx, auditlog.Entry{
			ActorID: actorID,
			BagID:   &bagID,
			Event:   enums.AuditEventUpdateBag,
			Detail:  fmt.Sprintf("assign basket %s", a.Basket),
			Status:  enums.AuditStatusSuccess,
		})
	}
	return nil
}

func (s *service) requireFuture(bag *models.Bag) error {
	today := schedule.DateOnly(s.now())
	if !schedule.DateOnly(bag.DeliveryAt).After(today) {
		return pkgerrors.New(pkgerrors.CodeFutureOnly, "bag delivery date is not after today").
			WithDetails(map[string]string{"deliveryAt": schedule.FormatDate(bag.DeliveryAt)})
	}
	return nil
}

func (s *service) recordBagAudit(ctx context.Context, actorID uuid.UUID, bag *models.Bag, event enums.AuditEvent, status enums.AuditStatus) {
	bagID := bag.ID
	var customerID *uuid.UUID
	if bag.Subscription != nil {
		id := bag.Subscription.CustomerID
		customerID = &id
	}
	s.audit.Record(ctx, auditlog.Entry{
		ActorID:    actorID,
		CustomerID: customerID,
		BagID:      &bagID,
		Event:      event,
		Detail:     fmt.Sprintf("bag for %s", schedule.FormatDate(bag.DeliveryAt)),
		Status:     status,
	})
}
