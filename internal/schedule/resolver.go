package schedule

import "time"

// Resolver moves generated delivery dates off blocked holiday dates. The
// holiday set must cover [startDate, endDate+lookahead] because shifting can
// push a delivery past the original end date.
type Resolver struct {
	holidays map[time.Time]struct{}
}

// NewResolver builds a resolver over the given holiday dates.
func NewResolver(holidays []time.Time) *Resolver {
	set := make(map[time.Time]struct{}, len(holidays))
	for _, h := range holidays {
		set[DateOnly(h)] = struct{}{}
	}
	return &Resolver{holidays: set}
}

// Resolve returns a same-length, same-order sequence where every date that
// fell on a holiday has been advanced in 7-day steps until clear. When a
// single step lands on a date already present in the original generated set,
// the shift doubles to 14 days to avoid colliding with it. Collisions are
// checked against the original set only, not the evolving resolved set; two
// inputs shifting through overlapping holiday runs can in rare cases still
// meet. Downstream grouping assumes at most one bag per date, so this must
// not be changed without coordinating the bag layer.
//
// The second return value counts how many 7-day shifts were applied.
func (r *Resolver) Resolve(dates []time.Time) ([]time.Time, int) {
	original := make(map[time.Time]struct{}, len(dates))
	for _, d := range dates {
		original[DateOnly(d)] = struct{}{}
	}

	shifts := 0
	resolved := make([]time.Time, len(dates))
	for i, d := range dates {
		cur := DateOnly(d)
		for r.isHoliday(cur) {
			cur = cur.AddDate(0, 0, 7)
			shifts++
			if _, taken := original[cur]; taken {
				cur = cur.AddDate(0, 0, 7)
				shifts++
			}
		}
		resolved[i] = cur
	}
	return resolved, shifts
}

func (r *Resolver) isHoliday(d time.Time) bool {
	_, ok := r.holidays[d]
	return ok
}
