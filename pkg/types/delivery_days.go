package types

import "time"

// DeliveryDays is the weekly recurrence mask of a subscription, stored as a
// jsonb column keyed by weekday name.
type DeliveryDays struct {
	Sunday    bool `json:"Sunday"`
	Monday    bool `json:"Monday"`
	Tuesday   bool `json:"Tuesday"`
	Wednesday bool `json:"Wednesday"`
	Thursday  bool `json:"Thursday"`
	Friday    bool `json:"Friday"`
	Saturday  bool `json:"Saturday"`
}

// Enabled reports whether the mask includes the given weekday.
func (d DeliveryDays) Enabled(day time.Weekday) bool {
	switch day {
	case time.Sunday:
		return d.Sunday
	case time.Monday:
		return d.Monday
	case time.Tuesday:
		return d.Tuesday
	case time.Wednesday:
		return d.Wednesday
	case time.Thursday:
		return d.Thursday
	case time.Friday:
		return d.Friday
	case time.Saturday:
		return d.Saturday
	default:
		return false
	}
}

// Any reports whether at least one weekday is enabled.
func (d DeliveryDays) Any() bool {
	return d.Sunday || d.Monday || d.Tuesday || d.Wednesday ||
		d.Thursday || d.Friday || d.Saturday
}
