package subscriptions

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
)

// Repository defines persistence operations for subscriptions and the bag/item
// rows materialized from them.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	CreateSubscription(ctx context.Context, sub *models.Subscription) error
	UpdateSubscription(ctx context.Context, sub *models.Subscription) error
	FindSubscription(ctx context.Context, id uuid.UUID) (*models.Subscription, error)
	ListSubscriptions(ctx context.Context, params pagination.Params, filters Filters) (*pagination.Page[models.Subscription], error)
	CreateBags(ctx context.Context, bags []models.Bag) error
	CreateItemsInBatches(ctx context.Context, items []models.DeliveryItem, batchSize int) error
	FindBagsAfter(ctx context.Context, subscriptionID uuid.UUID, after time.Time) ([]models.Bag, error)
	DeleteItemsByBagIDs(ctx context.Context, bagIDs []uuid.UUID) error
	DeleteBagsByIDs(ctx context.Context, bagIDs []uuid.UUID) error
}
