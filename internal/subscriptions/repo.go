package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a subscriptions repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) CreateSubscription(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Create(sub).Error
}

func (r *repository) UpdateSubscription(ctx context.Context, sub *models.Subscription) error {
	return r.db.WithContext(ctx).Save(sub).Error
}

func (r *repository) FindSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error) {
	var sub models.Subscription
	err := r.db.WithContext(ctx).
		Preload("Customer").
		Where("id = ?", id).
		First(&sub).Error
	if err != nil {
		return nil, err
	}
	return &sub, nil
}

func (r *repository) ListSubscriptions(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Subscription], error) {
	params = params.Normalize()

	query := r.db.WithContext(ctx).Model(&models.Subscription{})
	if filters.CustomerID != nil {
		query = query.Where("customer_id = ?", *filters.CustomerID)
	}
	if filters.ActiveOn != nil {
		on := schedule.DateOnly(*filters.ActiveOn)
		query = query.Where("start_date <= ? AND end_date >= ?", on, on)
	}
	if filters.From != nil {
		query = query.Where("end_date >= ?", schedule.DateOnly(*filters.From))
	}
	if filters.To != nil {
		query = query.Where("start_date <= ?", schedule.DateOnly(*filters.To))
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	var subs []models.Subscription
	err := query.
		Preload("Customer").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&subs).Error
	if err != nil {
		return nil, err
	}

	return &pagination.Page[models.Subscription]{Items: subs, Count: count}, nil
}

func (r *repository) CreateBags(ctx context.Context, bags []models.Bag) error {
	if len(bags) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&bags).Error
}

func (r *repository) CreateItemsInBatches(ctx context.Context, items []models.DeliveryItem, batchSize int) error {
	if len(items) == 0 {
		return nil
	}
	if batchSize <= 0 {
		batchSize = len(items)
	}
	return r.db.WithContext(ctx).CreateInBatches(&items, batchSize).Error
}

func (r *repository) FindBagsAfter(ctx context.Context, subscriptionID uuid.UUID, after time.Time) ([]models.Bag, error) {
	var bags []models.Bag
	err := r.db.WithContext(ctx).
		Where("subscription_id = ? AND delivery_at > ?", subscriptionID, schedule.DateOnly(after)).
		Order("delivery_at ASC").
		Find(&bags).Error
	if err != nil {
		return nil, err
	}
	return bags, nil
}

func (r *repository) DeleteItemsByBagIDs(ctx context.Context, bagIDs []uuid.UUID) error {
	if len(bagIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("bag_id IN ?", bagIDs).
		Delete(&models.DeliveryItem{}).Error
}

func (r *repository) DeleteBagsByIDs(ctx context.Context, bagIDs []uuid.UUID) error {
	if len(bagIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", bagIDs).
		Delete(&models.Bag{}).Error
}
