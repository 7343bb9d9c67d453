package schedule

import "time"

// DateLayout is the canonical wire/date-column format.
const DateLayout = "2006-01-02"

// DateOnly strips the time component, normalizing to midnight UTC so dates
// can be used as map keys and compared with ==.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders a date in the canonical layout.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses a canonical-layout date into a midnight-UTC time.
func ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, err
	}
	return t, nil
}
