package bags

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

// Repository defines persistence operations for bags and their items.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindBag(ctx context.Context, id uuid.UUID) (*models.Bag, error)
	ListBags(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Bag], error)
	ListBagsForExport(ctx context.Context, filters Filters) ([]models.Bag, error)
	UpdateBag(ctx context.Context, bag *models.Bag) error
	DeleteBag(ctx context.Context, id uuid.UUID) error
	FindItemsByBag(ctx context.Context, bagID uuid.UUID) ([]models.DeliveryItem, error)
	CreateItems(ctx context.Context, items []models.DeliveryItem) error
	DeleteItemsByIDs(ctx context.Context, ids []uuid.UUID) error
	DeleteItemsByBag(ctx context.Context, bagID uuid.UUID) error
	SetBasket(ctx context.Context, bagID uuid.UUID, basket string) error
}
