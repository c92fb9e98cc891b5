package pagination

const (
	// DefaultPageSize is used when a page size is not provided.
	DefaultPageSize = 5
)

// Params holds offset pagination inputs from controllers.
type Params struct {
	Page     int
	PageSize int
}

// Normalize clamps negative pages and applies the default page size. Any
// positive page size is honored as-is; bounds belong to the HTTP layer.
func Normalize(p Params) Params {
	if p.Page < 0 {
		p.Page = 0
	}
	if p.PageSize <= 0 {
		p.PageSize = DefaultPageSize
	}
	return p
}

// Offset returns the number of rows to skip.
func (p Params) Offset() int {
	return p.Page * p.PageSize
}

// Limit returns the maximum number of rows to return.
func (p Params) Limit() int {
	return p.PageSize
}
