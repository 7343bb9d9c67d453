package schedule

import (
	"time"

	"github.com/sirimeals/mealops-backend/pkg/types"
)

// Expand walks the inclusive [startDate, endDate] range and returns every
// date whose weekday is enabled in the recurrence mask, in ascending order.
// An empty mask or an inverted range yields an empty sequence, not an error.
func Expand(days types.DeliveryDays, startDate, endDate time.Time) []time.Time {
	dates := []time.Time{}
	if !days.Any() {
		return dates
	}

	start := DateOnly(startDate)
	end := DateOnly(endDate)
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if days.Enabled(d.Weekday()) {
			dates = append(dates, d)
		}
	}
	return dates
}
