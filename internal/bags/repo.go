package bags

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/internal/schedule"
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a bags repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) FindBag(ctx context.Context, id uuid.UUID) (*models.Bag, error) {
	var bag models.Bag
	err := r.db.WithContext(ctx).
		Preload("Items").
		Preload("Subscription").
		Preload("Subscription.Customer").
		Where("id = ?", id).
		First(&bag).Error
	if err != nil {
		return nil, err
	}
	return &bag, nil
}

func (r *repository) applyFilters(query *gorm.DB, filters Filters) *gorm.DB {
	if filters.From != nil {
		query = query.Where("bags.delivery_at >= ?", schedule.DateOnly(*filters.From))
	}
	if filters.To != nil {
		query = query.Where("bags.delivery_at <= ?", schedule.DateOnly(*filters.To))
	}
	if filters.QRCode != nil {
		query = query.Where("bags.qr_code = ?", *filters.QRCode)
	}
	if filters.MealType != nil {
		query = query.Where(
			"EXISTS (SELECT 1 FROM delivery_items WHERE delivery_items.bag_id = bags.id AND delivery_items.meal_type = ?)",
			*filters.MealType,
		)
	}
	if filters.CustomerText != "" {
		pattern := "%" + filters.CustomerText + "%"
		query = query.
			Joins("JOIN subscriptions ON subscriptions.id = bags.subscription_id").
			Joins("JOIN customers ON customers.id = subscriptions.customer_id").
			Where("customers.fullname LIKE ? OR customers.customer_code LIKE ?", pattern, pattern)
	}
	return query
}

func (r *repository) ListBags(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Bag], error) {
	params = params.Normalize()

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Bag{}), filters)

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return nil, err
	}

	var bags []models.Bag
	err := query.
		Preload("Items").
		Preload("Subscription.Customer").
		Order("bags.delivery_at ASC, bags.created_at ASC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&bags).Error
	if err != nil {
		return nil, err
	}

	return &pagination.Page[models.Bag]{Items: bags, Count: count}, nil
}

func (r *repository) ListBagsForExport(ctx context.Context, filters Filters) ([]models.Bag, error) {
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.Bag{}), filters)

	var bags []models.Bag
	err := query.
		Preload("Items").
		Preload("Subscription.Customer").
		Order("bags.delivery_at ASC, bags.created_at ASC").
		Find(&bags).Error
	if err != nil {
		return nil, err
	}
	return bags, nil
}

func (r *repository) UpdateBag(ctx context.Context, bag *models.Bag) error {
	return r.db.WithContext(ctx).Omit("Items", "Subscription").Save(bag).Error
}

func (r *repository) DeleteBag(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Bag{}).Error
}

func (r *repository) FindItemsByBag(ctx context.Context, bagID uuid.UUID) ([]models.DeliveryItem, error) {
	var items []models.DeliveryItem
	err := r.db.WithContext(ctx).
		Where("bag_id = ?", bagID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) CreateItems(ctx context.Context, items []models.DeliveryItem) error {
	if len(items) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&items).Error
}

func (r *repository) DeleteItemsByIDs(ctx context.Context, ids []uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Delete(&models.DeliveryItem{}).Error
}

func (r *repository) DeleteItemsByBag(ctx context.Context, bagID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("bag_id = ?", bagID).
		Delete(&models.DeliveryItem{}).Error
}

func (r *repository) SetBasket(ctx context.Context, bagID uuid.UUID, basket string) error {
	return r.db.WithContext(ctx).
		Model(&models.Bag{}).
		Where("id = ?", bagID).
		Update("basket", basket).Error
}
