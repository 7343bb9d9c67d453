package subscriptions

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	"github.com/sirimeals/mealops-backend/pkg/pagination"
	"github.com/sirimeals/mealops-backend/pkg/types"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func setupSubscriptionsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	customers := `
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  customer_code TEXT NOT NULL,
  fullname TEXT NOT NULL,
  address TEXT,
  remark TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	subscriptions := `
CREATE TABLE IF NOT EXISTS subscriptions (
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  delivery_on TEXT NOT NULL,
  delivery_time TEXT,
  prefer_breakfast INTEGER NOT NULL DEFAULT 0,
  breakfast_count INTEGER NOT NULL DEFAULT 0,
  prefer_breakfast_snack INTEGER NOT NULL DEFAULT 0,
  breakfast_snack_count INTEGER NOT NULL DEFAULT 0,
  prefer_lunch INTEGER NOT NULL DEFAULT 0,
  lunch_count INTEGER NOT NULL DEFAULT 0,
  prefer_lunch_snack INTEGER NOT NULL DEFAULT 0,
  lunch_snack_count INTEGER NOT NULL DEFAULT 0,
  prefer_dinner INTEGER NOT NULL DEFAULT 0,
  dinner_count INTEGER NOT NULL DEFAULT 0,
  prefer_dinner_snack INTEGER NOT NULL DEFAULT 0,
  dinner_snack_count INTEGER NOT NULL DEFAULT 0,
  remark TEXT,
  address TEXT,
  payment_type TEXT,
  total TEXT NOT NULL DEFAULT '0',
  created_at DATETIME,
  updated_at DATETIME
);`
	bags := `
CREATE TABLE IF NOT EXISTS bags (
  id TEXT PRIMARY KEY,
  subscription_id TEXT NOT NULL,
  delivery_at DATETIME NOT NULL,
  address TEXT,
  no_remark_type INTEGER NOT NULL DEFAULT 0,
  qr_code TEXT NOT NULL,
  basket TEXT,
  in_basket_status INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`
	deliveryItems := `
CREATE TABLE IF NOT EXISTS delivery_items (
  id TEXT PRIMARY KEY,
  subscription_id TEXT NOT NULL,
  bag_id TEXT NOT NULL,
  delivery_at DATETIME NOT NULL,
  meal_type TEXT NOT NULL,
  qr_code TEXT,
  in_bag_status INTEGER,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(customers).Error)
	require.NoError(t, db.Exec(subscriptions).Error)
	require.NoError(t, db.Exec(bags).Error)
	require.NoError(t, db.Exec(deliveryItems).Error)
	return db
}

func mustCreateTestCustomer(t *testing.T, db *gorm.DB) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		ID:           uuid.New(),
		CustomerCode: "C-" + uuid.NewString()[:8],
		Fullname:     "Repo Tester",
	}
	require.NoError(t, db.Create(customer).Error)
	return customer
}

func mustCreateTestSubscription(t *testing.T, db *gorm.DB, customerID uuid.UUID, start, end time.Time) *models.Subscription {
	t.Helper()
	sub := &models.Subscription{
		ID:          uuid.New(),
		CustomerID:  customerID,
		StartDate:   start,
		EndDate:     end,
		DeliveryOn:  types.DeliveryDays{Monday: true},
		PreferLunch: true,
		LunchCount:  1,
	}
	require.NoError(t, db.Create(sub).Error)
	return sub
}

func TestSubscriptionsRepository_CreateFind(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := mustCreateTestCustomer(t, db)
	sub := &models.Subscription{
		ID:          uuid.New(),
		CustomerID:  customer.ID,
		StartDate:   day(2024, time.January, 1),
		EndDate:     day(2024, time.January, 31),
		DeliveryOn:  types.DeliveryDays{Monday: true, Friday: true},
		PreferLunch: true,
		LunchCount:  2,
	}
	require.NoError(t, repo.CreateSubscription(ctx, sub))

	found, err := repo.FindSubscription(ctx, sub.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.ID, found.ID)
	assert.True(t, found.DeliveryOn.Monday)
	assert.True(t, found.DeliveryOn.Friday)
	require.NotNil(t, found.Customer)
	assert.Equal(t, customer.ID, found.Customer.ID)

	t.Run("missing id yields record not found", func(t *testing.T) {
		_, err := repo.FindSubscription(ctx, uuid.New())
		assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	})
}

func TestSubscriptionsRepository_List(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	alice := mustCreateTestCustomer(t, db)
	bob := mustCreateTestCustomer(t, db)
	mustCreateTestSubscription(t, db, alice.ID, day(2024, time.January, 1), day(2024, time.January, 31))
	mustCreateTestSubscription(t, db, alice.ID, day(2024, time.March, 1), day(2024, time.March, 31))
	mustCreateTestSubscription(t, db, bob.ID, day(2024, time.January, 15), day(2024, time.February, 15))

	t.Run("filters by customer", func(t *testing.T) {
		page, err := repo.ListSubscriptions(ctx, pagination.Params{}, Filters{CustomerID: &alice.ID})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Count)
	})

	t.Run("filters by overlapping range", func(t *testing.T) {
		from := day(2024, time.January, 20)
		to := day(2024, time.February, 1)
		page, err := repo.ListSubscriptions(ctx, pagination.Params{}, Filters{From: &from, To: &to})
		require.NoError(t, err)
		assert.EqualValues(t, 2, page.Count)
	})

	t.Run("filters by active date", func(t *testing.T) {
		on := day(2024, time.March, 10)
		page, err := repo.ListSubscriptions(ctx, pagination.Params{}, Filters{ActiveOn: &on})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Count)
	})
}

func TestSubscriptionsRepository_BagsAndItems(t *testing.T) {
	db := setupSubscriptionsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	customer := mustCreateTestCustomer(t, db)
	sub := mustCreateTestSubscription(t, db, customer.ID, day(2024, time.January, 1), day(2024, time.January, 31))

	bags := []models.Bag{
		{ID: uuid.New(), SubscriptionID: sub.ID, DeliveryAt: day(2024, time.January, 8), QRCode: "QR-A"},
		{ID: uuid.New(), SubscriptionID: sub.ID, DeliveryAt: day(2024, time.January, 10), QRCode: "QR-B"},
		{ID: uuid.New(), SubscriptionID: sub.ID, DeliveryAt: day(2024, time.January, 12), QRCode: "QR-B"},
	}
	require.NoError(t, repo.CreateBags(ctx, bags))

	items := []models.DeliveryItem{
		{ID: uuid.New(), SubscriptionID: sub.ID, BagID: bags[0].ID, DeliveryAt: bags[0].DeliveryAt, MealType: enums.MealTypeLunch},
		{ID: uuid.New(), SubscriptionID: sub.ID, BagID: bags[1].ID, DeliveryAt: bags[1].DeliveryAt, MealType: enums.MealTypeLunch},
		{ID: uuid.New(), SubscriptionID: sub.ID, BagID: bags[2].ID, DeliveryAt: bags[2].DeliveryAt, MealType: enums.MealTypeDinner},
	}
	require.NoError(t, repo.CreateItemsInBatches(ctx, items, 2))

	t.Run("finds strictly-future bags", func(t *testing.T) {
		future, err := repo.FindBagsAfter(ctx, sub.ID, day(2024, time.January, 10))
		require.NoError(t, err)
		require.Len(t, future, 1)
		assert.Equal(t, bags[2].ID, future[0].ID)
	})

	t.Run("deletes items before bags", func(t *testing.T) {
		ids := []uuid.UUID{bags[1].ID, bags[2].ID}
		require.NoError(t, repo.DeleteItemsByBagIDs(ctx, ids))
		require.NoError(t, repo.DeleteBagsByIDs(ctx, ids))

		var bagCount, itemCount int64
		require.NoError(t, db.Model(&models.Bag{}).Count(&bagCount).Error)
		require.NoError(t, db.Model(&models.DeliveryItem{}).Count(&itemCount).Error)
		assert.EqualValues(t, 1, bagCount)
		assert.EqualValues(t, 1, itemCount)
	})

	t.Run("empty id set is a no-op", func(t *testing.T) {
		require.NoError(t, repo.DeleteItemsByBagIDs(ctx, nil))
		require.NoError(t, repo.DeleteBagsByIDs(ctx, nil))
	})
}
