package pagination

const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// Params carries limit/offset paging for list endpoints.
type Params struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// Normalize clamps the params into the supported range.
func (p Params) Normalize() Params {
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	if p.Limit > MaxLimit {
		p.Limit = MaxLimit
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
	return p
}

// Page is a generic paged result.
type Page[T any] struct {
	Items []T   `json:"items"`
	Count int64 `json:"count"`
}
