package schedule

import "time"

// pairKey buckets a delivery date into the weekday pair it is packed with.
// Monday/Tuesday bags travel together, as do Wednesday/Thursday and
// Friday/Saturday; Sunday stands alone.
type pairKey string

const (
	pairMonTue pairKey = "mon-tue"
	pairWedThu pairKey = "wed-thu"
	pairFriSat pairKey = "fri-sat"
	pairOther  pairKey = "other"
)

func pairOf(d time.Time) pairKey {
	switch d.Weekday() {
	case time.Monday, time.Tuesday:
		return pairMonTue
	case time.Wednesday, time.Thursday:
		return pairWedThu
	case time.Friday, time.Saturday:
		return pairFriSat
	default:
		return pairOther
	}
}

// groupKey identifies one packing bucket: a weekday pair within one ISO week.
// Bags in the same bucket share a single QR code.
type groupKey struct {
	pair pairKey
	year int
	week int
}

func keyOf(d time.Time) groupKey {
	year, week := d.ISOWeek()
	return groupKey{pair: pairOf(d), year: year, week: week}
}

// AssignCodes maps each date to its bucket's shared QR code, minting one
// fresh code per bucket via newCode. Dates in the same weekday pair and ISO
// week receive the same code; the result is keyed by normalized date.
func AssignCodes(dates []time.Time, newCode func() string) map[time.Time]string {
	codes := make(map[groupKey]string)
	byDate := make(map[time.Time]string, len(dates))
	for _, d := range dates {
		d = DateOnly(d)
		key := keyOf(d)
		code, ok := codes[key]
		if !ok {
			code = newCode()
			codes[key] = code
		}
		byDate[d] = code
	}
	return byDate
}
