package ledger

import (
	"github.com/liblend/library-ledger-go/library/core"
)

const (
	defaultPage     = 1
	defaultPageSize = 10
)

// PageQuery represents the intent to list a filtered page of the ledger.
type PageQuery struct {
	Page     int
	PageSize int
	Filters  core.RecordFilters
}

// BuildPageQuery creates a new PageQuery, falling back to the first page
// and the default page size for out-of-range values.
func BuildPageQuery(page int, pageSize int, filters core.RecordFilters) PageQuery {
	if page < 1 {
		page = defaultPage
	}

	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	return PageQuery{
		Page:     page,
		PageSize: pageSize,
		Filters:  filters,
	}
}
