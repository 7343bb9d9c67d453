package packing

import (
	"context"

	"github.com/google/uuid"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
)

// Repository defines persistence operations for packing verification. Bags
// sharing one scan code form a group; the code is the only link between them.
// Verification writes are single-statement flag flips, so there is no
// transactional variant.
type Repository interface {
	FindBagsByCode(ctx context.Context, code string) ([]models.Bag, error)
	FindItemWithBag(ctx context.Context, itemID uuid.UUID) (*models.DeliveryItem, *models.Bag, error)
	SetItemInBag(ctx context.Context, itemID uuid.UUID, status bool) error
	SetBasketStatusByCode(ctx context.Context, code string, status bool) error
}
