package schedule

import (
	"github.com/sirimeals/mealops-backend/pkg/db/models"
	"github.com/sirimeals/mealops-backend/pkg/enums"
)

// MealCount pairs a meal slot with how many units of it each delivery gets.
type MealCount struct {
	Type  enums.MealType
	Count int
}

// EnabledMealCounts extracts the active meal slots from a subscription in
// menu order. A slot contributes only when its prefer toggle is on and its
// count is positive.
func EnabledMealCounts(s *models.Subscription) []MealCount {
	candidates := []struct {
		on    bool
		count int
		typ   enums.MealType
	}{
		{s.PreferBreakfast, s.BreakfastCount, enums.MealTypeBreakfast},
		{s.PreferBreakfastSnack, s.BreakfastSnackCount, enums.MealTypeBreakfastSnack},
		{s.PreferLunch, s.LunchCount, enums.MealTypeLunch},
		{s.PreferLunchSnack, s.LunchSnackCount, enums.MealTypeLunchSnack},
		{s.PreferDinner, s.DinnerCount, enums.MealTypeDinner},
		{s.PreferDinnerSnack, s.DinnerSnackCount, enums.MealTypeDinnerSnack},
	}

	counts := make([]MealCount, 0, len(candidates))
	for _, c := range candidates {
		if c.on && c.count > 0 {
			counts = append(counts, MealCount{Type: c.typ, Count: c.count})
		}
	}
	return counts
}

// BuildItems fans the subscription's meal counts out across the given bags:
// each bag receives count units of every enabled slot, so a bag's item total
// is the sum of the counts. Items of no-remark bags are stamped with the
// deterministic weekday/slot code; remarked bags leave QRCode nil because
// their items are verified by eye against the printed remark.
func BuildItems(s *models.Subscription, bags []models.Bag) []models.DeliveryItem {
	counts := EnabledMealCounts(s)
	if len(counts) == 0 || len(bags) == 0 {
		return nil
	}

	perBag := 0
	for _, mc := range counts {
		perBag += mc.Count
	}

	items := make([]models.DeliveryItem, 0, perBag*len(bags))
	for _, bag := range bags {
		date := DateOnly(bag.DeliveryAt)
		for _, mc := range counts {
			for i := 0; i < mc.Count; i++ {
				item := models.DeliveryItem{
					SubscriptionID: s.ID,
					BagID:          bag.ID,
					DeliveryAt:     date,
					MealType:       mc.Type,
				}
				if bag.NoRemarkType {
					code := ItemCode(date.Weekday(), mc.Type)
					item.QRCode = &code
				}
				items = append(items, item)
			}
		}
	}
	return items
}
