package schedule

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
	"github.com/sirimeals/mealops-backend/pkg/types"
)

func date(t *testing.T, value string) time.Time {
	t.Helper()
	d, err := ParseDate(value)
	require.NoError(t, err)
	return d
}

func dates(t *testing.T, values ...string) []time.Time {
	t.Helper()
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		out = append(out, date(t, v))
	}
	return out
}

func TestExpand(t *testing.T) {
	monWedFri := types.DeliveryDays{Monday: true, Wednesday: true, Friday: true}

	t.Run("walks the inclusive range in ascending order", func(t *testing.T) {
		got := Expand(monWedFri, date(t, "2024-01-01"), date(t, "2024-01-12"))
		want := dates(t, "2024-01-01", "2024-01-03", "2024-01-05", "2024-01-08", "2024-01-10", "2024-01-12")
		assert.Equal(t, want, got)
	})

	t.Run("single-day range with enabled weekday", func(t *testing.T) {
		got := Expand(monWedFri, date(t, "2024-01-01"), date(t, "2024-01-01"))
		assert.Equal(t, dates(t, "2024-01-01"), got)
	})

	t.Run("empty mask yields no dates", func(t *testing.T) {
		got := Expand(types.DeliveryDays{}, date(t, "2024-01-01"), date(t, "2024-01-31"))
		assert.Empty(t, got)
	})

	t.Run("inverted range yields no dates", func(t *testing.T) {
		got := Expand(monWedFri, date(t, "2024-01-12"), date(t, "2024-01-01"))
		assert.Empty(t, got)
	})

	t.Run("strips time components before comparing", func(t *testing.T) {
		start := time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC)
		end := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)
		got := Expand(monWedFri, start, end)
		assert.Equal(t, dates(t, "2024-01-01"), got)
	})
}

func TestResolver(t *testing.T) {
	t.Run("no holidays leaves dates untouched", func(t *testing.T) {
		in := dates(t, "2024-01-01", "2024-01-03", "2024-01-05")
		got, shifts := NewResolver(nil).Resolve(in)
		assert.Equal(t, in, got)
		assert.Zero(t, shifts)
	})

	t.Run("holiday shifts forward one week", func(t *testing.T) {
		r := NewResolver(dates(t, "2024-01-03"))
		got, shifts := r.Resolve(dates(t, "2024-01-01", "2024-01-03"))
		assert.Equal(t, dates(t, "2024-01-01", "2024-01-10"), got)
		assert.Equal(t, 1, shifts)
	})

	t.Run("shift landing on an original date doubles to two weeks", func(t *testing.T) {
		// 01-03 is a holiday; one week forward is 01-10, which the
		// generator already produced, so the shift continues to 01-17.
		r := NewResolver(dates(t, "2024-01-03"))
		in := dates(t, "2024-01-01", "2024-01-03", "2024-01-05", "2024-01-08", "2024-01-10", "2024-01-12")
		got, shifts := r.Resolve(in)
		want := dates(t, "2024-01-01", "2024-01-17", "2024-01-05", "2024-01-08", "2024-01-10", "2024-01-12")
		assert.Equal(t, want, got)
		assert.Equal(t, 2, shifts)
	})

	t.Run("consecutive weekly holidays chain shifts", func(t *testing.T) {
		r := NewResolver(dates(t, "2024-01-03", "2024-01-10"))
		got, shifts := r.Resolve(dates(t, "2024-01-03"))
		assert.Equal(t, dates(t, "2024-01-17"), got)
		assert.Equal(t, 2, shifts)
	})

	t.Run("preserves input order and length", func(t *testing.T) {
		r := NewResolver(dates(t, "2024-01-05"))
		in := dates(t, "2024-01-05", "2024-01-01")
		got, _ := r.Resolve(in)
		require.Len(t, got, 2)
		assert.Equal(t, date(t, "2024-01-12"), got[0])
		assert.Equal(t, date(t, "2024-01-01"), got[1])
	})

	t.Run("resolving an already-clear set is a no-op", func(t *testing.T) {
		r := NewResolver(dates(t, "2024-01-03"))
		first, _ := r.Resolve(dates(t, "2024-01-03", "2024-01-05"))
		second, shifts := r.Resolve(first)
		assert.Equal(t, first, second)
		assert.Zero(t, shifts)
	})
}

func sequentialCodes() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("QR-%d", n)
	}
}

func TestAssignCodes(t *testing.T) {
	t.Run("same weekday pair and week share one code", func(t *testing.T) {
		// 2024-01-01 Mon, 2024-01-02 Tue: one bucket.
		got := AssignCodes(dates(t, "2024-01-01", "2024-01-02"), sequentialCodes())
		assert.Equal(t, got[date(t, "2024-01-01")], got[date(t, "2024-01-02")])
	})

	t.Run("different pairs in one week get distinct codes", func(t *testing.T) {
		// Mon/Wed/Fri split into three buckets.
		got := AssignCodes(dates(t, "2024-01-01", "2024-01-03", "2024-01-05"), sequentialCodes())
		codes := map[string]struct{}{}
		for _, c := range got {
			codes[c] = struct{}{}
		}
		assert.Len(t, codes, 3)
	})

	t.Run("same pair in different weeks gets distinct codes", func(t *testing.T) {
		got := AssignCodes(dates(t, "2024-01-01", "2024-01-08"), sequentialCodes())
		assert.NotEqual(t, got[date(t, "2024-01-01")], got[date(t, "2024-01-08")])
	})

	t.Run("sunday buckets alone", func(t *testing.T) {
		// 2024-01-06 Sat, 2024-01-07 Sun: Saturday pairs with Friday,
		// Sunday stands alone, so the codes differ.
		got := AssignCodes(dates(t, "2024-01-06", "2024-01-07"), sequentialCodes())
		assert.NotEqual(t, got[date(t, "2024-01-06")], got[date(t, "2024-01-07")])
	})
}

func TestItemCode(t *testing.T) {
	assert.Equal(t, "NRQ-MON-BF", ItemCode(time.Monday, enums.MealTypeBreakfast))
	assert.Equal(t, "NRQ-WED-LN", ItemCode(time.Wednesday, enums.MealTypeLunch))
	assert.Equal(t, "NRQ-SUN-DS", ItemCode(time.Sunday, enums.MealTypeDinnerSnack))

	t.Run("unique per weekday and slot", func(t *testing.T) {
		seen := map[string]struct{}{}
		for wd := time.Sunday; wd <= time.Saturday; wd++ {
			for _, mt := range enums.MealTypes() {
				code := ItemCode(wd, mt)
				_, dup := seen[code]
				require.False(t, dup, "duplicate code %s", code)
				seen[code] = struct{}{}
			}
		}
	})
}

func TestEnabledMealCounts(t *testing.T) {
	t.Run("toggle off suppresses the count", func(t *testing.T) {
		s := &models.Subscription{PreferLunch: false, LunchCount: 2, PreferDinner: true, DinnerCount: 1}
		got := EnabledMealCounts(s)
		require.Len(t, got, 1)
		assert.Equal(t, enums.MealTypeDinner, got[0].Type)
	})

	t.Run("zero count suppresses an enabled slot", func(t *testing.T) {
		s := &models.Subscription{PreferBreakfast: true, BreakfastCount: 0}
		assert.Empty(t, EnabledMealCounts(s))
	})

	t.Run("menu order is preserved", func(t *testing.T) {
		s := &models.Subscription{
			PreferDinner: true, DinnerCount: 1,
			PreferBreakfast: true, BreakfastCount: 1,
			PreferLunchSnack: true, LunchSnackCount: 2,
		}
		got := EnabledMealCounts(s)
		require.Len(t, got, 3)
		assert.Equal(t, enums.MealTypeBreakfast, got[0].Type)
		assert.Equal(t, enums.MealTypeLunchSnack, got[1].Type)
		assert.Equal(t, enums.MealTypeDinner, got[2].Type)
	})
}

func TestBuildItems(t *testing.T) {
	sub := &models.Subscription{
		ID:          uuid.New(),
		PreferLunch: true,
		LunchCount:  2,
	}
	bagsFor := func(noRemark bool, values ...string) []models.Bag {
		out := make([]models.Bag, 0, len(values))
		for _, v := range values {
			out = append(out, models.Bag{
				ID:           uuid.New(),
				DeliveryAt:   date(t, v),
				NoRemarkType: noRemark,
			})
		}
		return out
	}

	t.Run("count times dates fan-out", func(t *testing.T) {
		bags := bagsFor(false, "2024-01-01", "2024-01-03", "2024-01-05")
		items := BuildItems(sub, bags)
		require.Len(t, items, 6)
		perBag := map[uuid.UUID]int{}
		for _, it := range items {
			assert.Equal(t, sub.ID, it.SubscriptionID)
			assert.Equal(t, enums.MealTypeLunch, it.MealType)
			assert.Nil(t, it.QRCode)
			perBag[it.BagID]++
		}
		for _, bag := range bags {
			assert.Equal(t, 2, perBag[bag.ID])
		}
	})

	t.Run("item date mirrors the owning bag", func(t *testing.T) {
		bags := bagsFor(false, "2024-01-01")
		items := BuildItems(sub, bags)
		require.NotEmpty(t, items)
		for _, it := range items {
			assert.Equal(t, bags[0].DeliveryAt, it.DeliveryAt)
		}
	})

	t.Run("no-remark bags stamp deterministic codes", func(t *testing.T) {
		bags := bagsFor(true, "2024-01-01")
		items := BuildItems(sub, bags)
		require.Len(t, items, 2)
		for _, it := range items {
			require.NotNil(t, it.QRCode)
			assert.Equal(t, "NRQ-MON-LN", *it.QRCode)
		}
	})

	t.Run("no enabled slots yields no items", func(t *testing.T) {
		empty := &models.Subscription{ID: uuid.New()}
		assert.Empty(t, BuildItems(empty, bagsFor(false, "2024-01-01")))
	})
}
