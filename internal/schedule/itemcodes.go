package schedule

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirimeals/mealops-backend/pkg/enums"
)

// Deterministic per-item scan codes. No-remark subscriptions stamp every
// item with a code derived from its weekday and meal slot, so the packing
// station can pre-print one label sheet per weekday instead of printing per
// order. The table is fixed at startup; changing a code invalidates every
// label already printed.

var mealTypeShortCodes = map[enums.MealType]string{
	enums.MealTypeBreakfast:      "BF",
	enums.MealTypeBreakfastSnack: "BS",
	enums.MealTypeLunch:          "LN",
	enums.MealTypeLunchSnack:     "LS",
	enums.MealTypeDinner:         "DN",
	enums.MealTypeDinnerSnack:    "DS",
}

var itemCodes = buildItemCodeTable()

func buildItemCodeTable() map[time.Weekday]map[enums.MealType]string {
	table := make(map[time.Weekday]map[enums.MealType]string, 7)
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		day := strings.ToUpper(wd.String()[:3])
		row := make(map[enums.MealType]string, len(mealTypeShortCodes))
		for _, mt := range enums.MealTypes() {
			row[mt] = fmt.Sprintf("NRQ-%s-%s", day, mealTypeShortCodes[mt])
		}
		table[wd] = row
	}
	return table
}

// ItemCode returns the fixed scan code for a weekday/meal-type slot, e.g.
// "NRQ-MON-BF" for a Monday breakfast.
func ItemCode(weekday time.Weekday, mealType enums.MealType) string {
	return itemCodes[weekday][mealType]
}
