package packing

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a packing repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) FindBagsByCode(ctx context.Context, code string) ([]models.Bag, error) {
	var bags []models.Bag
	err := r.db.WithContext(ctx).
		Where("qr_code = ?", code).
		Order("delivery_at ASC").
		Find(&bags).Error
	if err != nil {
		return nil, err
	}
	return bags, nil
}

func (r *repository) FindItemWithBag(ctx context.Context, itemID uuid.UUID) (*models.DeliveryItem, *models.Bag, error) {
	var item models.DeliveryItem
	err := r.db.WithContext(ctx).
		Where("id = ?", itemID).
		First(&item).Error
	if err != nil {
		return nil, nil, err
	}

	var bag models.Bag
	err = r.db.WithContext(ctx).
		Where("id = ?", item.BagID).
		First(&bag).Error
	if err != nil {
		return nil, nil, err
	}
	return &item, &bag, nil
}

func (r *repository) SetItemInBag(ctx context.Context, itemID uuid.UUID, status bool) error {
	return r.db.WithContext(ctx).
		Model(&models.DeliveryItem{}).
		Where("id = ?", itemID).
		Update("in_bag_status", status).Error
}

func (r *repository) SetBasketStatusByCode(ctx context.Context, code string, status bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Bag{}).
		Where("qr_code = ?", code).
		Update("in_basket_status", status).Error
}
