package bags

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

func setupBagsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	statements := []string{`
CREATE TABLE IF NOT EXISTS customers (
  id TEXT PRIMARY KEY,
  customer_code TEXT NOT NULL,
  fullname TEXT NOT NULL,
  address TEXT,
  remark TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`, `
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
);`, `
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
);`, `
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
);`}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type seeded struct {
	customer *models.Customer
	sub      *models.Subscription
	bag      *models.Bag
}

func seedBagRow(t *testing.T, db *gorm.DB, fullname string, deliveryAt time.Time, qrCode string, mealType enums.MealType) seeded {
	t.Helper()

	customer := &models.Customer{
		ID:           uuid.New(),
		CustomerCode: "C-" + uuid.NewString()[:8],
		Fullname:     fullname,
	}
	require.NoError(t, db.Create(customer).Error)

	sub := &models.Subscription{
		ID:         uuid.New(),
		CustomerID: customer.ID,
		StartDate:  deliveryAt,
		EndDate:    deliveryAt,
		DeliveryOn: types.DeliveryDays{Monday: true},
	}
	require.NoError(t, db.Create(sub).Error)

	bag := &models.Bag{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		DeliveryAt:     deliveryAt,
		QRCode:         qrCode,
		NoRemarkType:   true,
	}
	require.NoError(t, db.Create(bag).Error)

	item := &models.DeliveryItem{
		ID:             uuid.New(),
		SubscriptionID: sub.ID,
		BagID:          bag.ID,
		DeliveryAt:     deliveryAt,
		MealType:       mealType,
	}
	require.NoError(t, db.Create(item).Error)

	return seeded{customer: customer, sub: sub, bag: bag}
}

func TestBagsRepository_FindBag(t *testing.T) {
	db := setupBagsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	row := seedBagRow(t, db, "Somsak", day(2024, time.January, 8), "QR-1", enums.MealTypeLunch)

	bag, err := repo.FindBag(ctx, row.bag.ID)
	require.NoError(t, err)
	require.Len(t, bag.Items, 1)
	require.NotNil(t, bag.Subscription)
	require.NotNil(t, bag.Subscription.Customer)
	assert.Equal(t, "Somsak", bag.Subscription.Customer.Fullname)

	_, err = repo.FindBag(ctx, uuid.New())
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestBagsRepository_ListBags(t *testing.T) {
	db := setupBagsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	seedBagRow(t, db, "Somsak", day(2024, time.January, 8), "QR-1", enums.MealTypeLunch)
	seedBagRow(t, db, "Malee", day(2024, time.January, 15), "QR-2", enums.MealTypeDinner)

	t.Run("filters by date range", func(t *testing.T) {
		from := day(2024, time.January, 10)
		page, err := repo.ListBags(ctx, pagination.Params{}, Filters{From: &from})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Count)
		assert.Equal(t, "QR-2", page.Items[0].QRCode)
	})

	t.Run("filters by meal type", func(t *testing.T) {
		mealType := enums.MealTypeDinner
		page, err := repo.ListBags(ctx, pagination.Params{}, Filters{MealType: &mealType})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Count)
		assert.Equal(t, "QR-2", page.Items[0].QRCode)
	})

	t.Run("filters by customer text", func(t *testing.T) {
		page, err := repo.ListBags(ctx, pagination.Params{}, Filters{CustomerText: "Som"})
		require.NoError(t, err)
		require.EqualValues(t, 1, page.Count)
		assert.Equal(t, "QR-1", page.Items[0].QRCode)
	})

	t.Run("filters by code", func(t *testing.T) {
		code := "QR-2"
		page, err := repo.ListBags(ctx, pagination.Params{}, Filters{QRCode: &code})
		require.NoError(t, err)
		assert.EqualValues(t, 1, page.Count)
	})

	t.Run("orders ascending by delivery date", func(t *testing.T) {
		page, err := repo.ListBags(ctx, pagination.Params{}, Filters{})
		require.NoError(t, err)
		require.EqualValues(t, 2, page.Count)
		assert.Equal(t, "QR-1", page.Items[0].QRCode)
	})
}

func TestBagsRepository_SetBasket(t *testing.T) {
	db := setupBagsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	row := seedBagRow(t, db, "Somsak", day(2024, time.January, 8), "QR-1", enums.MealTypeLunch)

	require.NoError(t, repo.SetBasket(ctx, row.bag.ID, "B-7"))

	bag, err := repo.FindBag(ctx, row.bag.ID)
	require.NoError(t, err)
	require.NotNil(t, bag.Basket)
	assert.Equal(t, "B-7", *bag.Basket)
}

func TestBagsRepository_ItemLifecycle(t *testing.T) {
	db := setupBagsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	row := seedBagRow(t, db, "Somsak", day(2024, time.January, 8), "QR-1", enums.MealTypeLunch)

	extra := []models.DeliveryItem{
		{ID: uuid.New(), SubscriptionID: row.sub.ID, BagID: row.bag.ID, DeliveryAt: row.bag.DeliveryAt, MealType: enums.MealTypeLunch},
		{ID: uuid.New(), SubscriptionID: row.sub.ID, BagID: row.bag.ID, DeliveryAt: row.bag.DeliveryAt, MealType: enums.MealTypeDinner},
	}
	require.NoError(t, repo.CreateItems(ctx, extra))

	items, err := repo.FindItemsByBag(ctx, row.bag.ID)
	require.NoError(t, err)
	require.Len(t, items, 3)

	require.NoError(t, repo.DeleteItemsByIDs(ctx, []uuid.UUID{extra[0].ID}))
	items, err = repo.FindItemsByBag(ctx, row.bag.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	require.NoError(t, repo.DeleteItemsByBag(ctx, row.bag.ID))
	items, err = repo.FindItemsByBag(ctx, row.bag.ID)
	require.NoError(t, err)
	assert.Empty(t, items)
}
