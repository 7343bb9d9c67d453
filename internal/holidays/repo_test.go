package holidays

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupHolidayTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	schema := `
CREATE TABLE IF NOT EXISTS holidays (
  date DATETIME PRIMARY KEY,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(schema).Error)
	return db
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestHolidayRepository_PutRemove(t *testing.T) {
	db := setupHolidayTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, day(2024, time.January, 3)))

	dates, err := repo.ListDatesInRange(ctx, day(2024, time.January, 3), day(2024, time.January, 3))
	require.NoError(t, err)
	assert.Len(t, dates, 1)

	t.Run("put is idempotent", func(t *testing.T) {
		require.NoError(t, repo.Put(ctx, day(2024, time.January, 3)))
		dates, err := repo.ListDatesInRange(ctx, day(2024, time.January, 1), day(2024, time.January, 31))
		require.NoError(t, err)
		assert.Len(t, dates, 1)
	})

	t.Run("remove deletes the date", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, day(2024, time.January, 3)))
		dates, err := repo.ListDatesInRange(ctx, day(2024, time.January, 3), day(2024, time.January, 3))
		require.NoError(t, err)
		assert.Empty(t, dates)
	})

	t.Run("remove of a missing date is a no-op", func(t *testing.T) {
		require.NoError(t, repo.Remove(ctx, day(2024, time.June, 1)))
	})
}

func TestHolidayRepository_ListDatesInRange(t *testing.T) {
	db := setupHolidayTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, day(2024, time.January, 3)))
	require.NoError(t, repo.Put(ctx, day(2024, time.February, 14)))
	require.NoError(t, repo.Put(ctx, day(2024, time.December, 25)))

	dates, err := repo.ListDatesInRange(ctx, day(2024, time.January, 1), day(2024, time.March, 1))
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.Equal(t, day(2024, time.January, 3), dates[0])
	assert.Equal(t, day(2024, time.February, 14), dates[1])
}

func TestHolidayRepository_ListYear(t *testing.T) {
	db := setupHolidayTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, day(2023, time.December, 31)))
	require.NoError(t, repo.Put(ctx, day(2024, time.January, 1)))
	require.NoError(t, repo.Put(ctx, day(2024, time.December, 31)))
	require.NoError(t, repo.Put(ctx, day(2025, time.January, 1)))

	holidays, err := repo.ListYear(ctx, 2024)
	require.NoError(t, err)
	require.Len(t, holidays, 2)
	assert.Equal(t, day(2024, time.January, 1), holidays[0].Date.UTC())
}
