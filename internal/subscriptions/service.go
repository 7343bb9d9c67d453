package subscriptions

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/internal/auditlog"
	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/config"
	"github.com/sirimeals/mealops-backend/pkg/db"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	pkgerrors "github.com/sirimeals/mealops-backend/pkg/errors"
	"github.com/sirimeals/mealops-backend/pkg/logger"
	"github.com/sirimeals/mealops-backend/pkg/metrics"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type holidayLister interface {
	ListDatesInRange(ctx context.Context, from, to time.Time) ([]time.Time, error)
}

// Service materializes subscriptions into holiday-aware delivery schedules
// and rebuilds the future portion on edit.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, input CreateSubscriptionInput) (*models.Subscription, error)
	Edit(ctx context.Context, actorID, subscriptionID uuid.UUID, input EditSubscriptionInput) (*models.Subscription, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Subscription], error)
}

type service struct {
	tx       txRunner
	repo     Repository
	holidays holidayLister
	audit    auditlog.Recorder
	logg     *logger.Logger
	metrics  *metrics.SchedulingMetrics
	cfg      config.SchedulingConfig

	now     func() time.Time
	newCode func() string
}

// NewService builds the scheduling orchestrator. nowFunc and newCode default
// to the wall clock and random UUIDs when nil.
func NewService(
	tx txRunner,
	repo Repository,
	holidays holidayLister,
	audit auditlog.Recorder,
	logg *logger.Logger,
	met *metrics.SchedulingMetrics,
	cfg config.SchedulingConfig,
	nowFunc func() time.Time,
	newCode func() string,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if repo == nil {
		return nil, fmt.Errorf("subscriptions repository required")
	}
	if holidays == nil {
		return nil, fmt.Errorf("holiday lister required")
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
	if newCode == nil {
		newCode = uuid.NewString
	}
	return &service{
		tx:       tx,
		repo:     repo,
		holidays: holidays,
		audit:    audit,
		logg:     logg,
		metrics:  met,
		cfg:      cfg,
		now:      nowFunc,
		newCode:  newCode,
	}, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, input CreateSubscriptionInput) (*models.Subscription, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription payload")
	}

	sub := input.toModel()
	ctx = s.logg.WithSubscriptionID(ctx, sub.ID.String())
	started := s.now()

	dates := schedule.Expand(sub.DeliveryOn, sub.StartDate, sub.EndDate)
	resolved, shifted, err := s.resolveHolidays(ctx, dates, sub.StartDate, sub.EndDate)
	if err != nil {
		return nil, err
	}

	var bagCount, itemCount int
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.CreateSubscription(ctx, sub); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.Wrap(pkgerrors.CodeConflict, err, "subscription already exists")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create subscription")
		}
		bags, items, err := s.materialize(ctx, repo, sub, resolved)
		if err != nil {
			return err
		}
		bagCount, itemCount = bags, items
		return nil
	})
	if err != nil {
		s.recordSubscriptionAudit(ctx, actorID, sub, enums.AuditEventCreateSubscription, enums.AuditStatusFail)
		return nil, err
	}

	s.metrics.ObserveMaterialize("create", s.now().Sub(started))
	s.metrics.AddShiftedDates(shifted)
	s.metrics.AddBagsCreated(bagCount)
	s.metrics.AddItemsCreated(itemCount)
	s.recordSubscriptionAudit(ctx, actorID, sub, enums.AuditEventCreateSubscription, enums.AuditStatusSuccess)

	ctx = s.logg.WithFields(ctx, map[string]any{"bags": bagCount, "items": itemCount, "shifted": shifted})
	s.logg.Info(ctx, "subscription schedule materialized")
	return sub, nil
}

// Edit replaces the subscription's plan and rebuilds the strictly-future
// portion of its schedule. The rebuild reuses the delivery dates of the
// deleted future bags rather than re-expanding the recurrence, so past
// holiday shifts stay in effect. Past bags are never touched.
func (s *service) Edit(ctx context.Context, actorID, subscriptionID uuid.UUID, input EditSubscriptionInput) (*models.Subscription, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid subscription payload")
	}

	ctx = s.logg.WithSubscriptionID(ctx, subscriptionID.String())
	sub, err := s.Get(ctx, subscriptionID)
	if err != nil {
		return nil, err
	}

	input.applyTo(sub)
	today := schedule.DateOnly(s.now())
	started := s.now()

	var bagCount, itemCount int
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		if err := repo.UpdateSubscription(ctx, sub); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update subscription")
		}

		futureBags, err := repo.FindBagsAfter(ctx, sub.ID, today)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load future bags")
		}

		bagIDs := make([]uuid.UUID, 0, len(futureBags))
		dates := make([]time.Time, 0, len(futureBags))
		for _, bag := range futureBags {
			bagIDs = append(bagIDs, bag.ID)
			dates = append(dates, schedule.DateOnly(bag.DeliveryAt))
		}

		if err := repo.DeleteItemsByBagIDs(ctx, bagIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete future items")
		}
		if err := repo.DeleteBagsByIDs(ctx, bagIDs); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete future bags")
		}

		bags, items, err := s.materialize(ctx, repo, sub, dates)
		if err != nil {
			return err
		}
		bagCount, itemCount = bags, items
		return nil
	})
	if err != nil {
		s.recordSubscriptionAudit(ctx, actorID, sub, enums.AuditEventUpdateSubscription, enums.AuditStatusFail)
		return nil, err
	}

	s.metrics.ObserveMaterialize("edit", s.now().Sub(started))
	s.metrics.AddBagsCreated(bagCount)
	s.metrics.AddItemsCreated(itemCount)
	s.recordSubscriptionAudit(ctx, actorID, sub, enums.AuditEventUpdateSubscription, enums.AuditStatusSuccess)

	ctx = s.logg.WithFields(ctx, map[string]any{"bags": bagCount, "items": itemCount})
	s.logg.Info(ctx, "subscription schedule rebuilt")
	return sub, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	sub, err := s.repo.FindSubscription(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "subscription not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load subscription")
	}
	return sub, nil
}

func (s *service) List(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Subscription], error) {
	page, err := s.repo.ListSubscriptions(ctx, params, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list subscriptions")
	}
	return page, nil
}

// resolveHolidays loads the blocked dates over the schedule window plus the
// configured lookahead and moves generated dates off them.
func (s *service) resolveHolidays(ctx context.Context, dates []time.Time, start, end time.Time) ([]time.Time, int, error) {
	if len(dates) == 0 {
		return dates, 0, nil
	}
	lookahead := s.cfg.HolidayLookaheadDays
	if lookahead <= 0 {
		lookahead = 90
	}
	blocked, err := s.holidays.ListDatesInRange(ctx, start, end.AddDate(0, 0, lookahead))
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load holidays")
	}
	resolved, shifted := schedule.NewResolver(blocked).Resolve(dates)
	return resolved, shifted, nil
}

// materialize persists one bag per delivery date and fans the subscription's
// meal counts out into items, inside the caller's transaction.
func (s *service) materialize(ctx context.Context, repo Repository, sub *models.Subscription, dates []time.Time) (int, int, error) {
	if len(dates) == 0 {
		return 0, 0, nil
	}

	bags := s.buildBags(sub, dates)
	if err := repo.CreateBags(ctx, bags); err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create bags")
	}

	items := schedule.BuildItems(sub, bags)
	if err := repo.CreateItemsInBatches(ctx, items, s.cfg.ItemBatchSize); err != nil {
		return 0, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create delivery items")
	}
	return len(bags), len(items), nil
}

// buildBags assigns scan codes and assembles bag rows. No-remark
// subscriptions share one code per weekday-pair/week bucket; remarked
// subscriptions get a fresh code per bag.
func (s *service) buildBags(sub *models.Subscription, dates []time.Time) []models.Bag {
	noRemark := sub.NoRemarkType()

	var grouped map[time.Time]string
	if noRemark {
		grouped = schedule.AssignCodes(dates, s.newCode)
	}

	bags := make([]models.Bag, 0, len(dates))
	for _, date := range dates {
		date = schedule.DateOnly(date)
		code := ""
		if noRemark {
			code = grouped[date]
		} else {
			code = s.newCode()
		}
		bags = append(bags, models.Bag{
			ID:             uuid.New(),
			SubscriptionID: sub.ID,
			DeliveryAt:     date,
			Address:        sub.Address,
			NoRemarkType:   noRemark,
			QRCode:         code,
		})
	}
	return bags
}

func (s *service) recordSubscriptionAudit(ctx context.Context, actorID uuid.UUID, sub *models.Subscription, event enums.AuditEvent, status enums.AuditStatus) {
	customerID := sub.CustomerID
	s.audit.Record(ctx, auditlog.Entry{
		ActorID:    actorID,
		CustomerID: &customerID,
		Event:      event,
		Detail:     fmt.Sprintf("subscription %s (%s to %s)", sub.ID, schedule.FormatDate(sub.StartDate), schedule.FormatDate(sub.EndDate)),
		Status:     status,
	})
}
