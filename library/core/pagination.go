package core

import (
	"slices"
	"strings"
)

// RecordFilters narrows a ledger listing. Zero values mean "no filter".
// UserID and Status match exactly; BookTitle matches on substring.
type RecordFilters struct {
	UserID    int
	Status    string
	BookTitle string
}

func (f RecordFilters) matches(record BorrowRecord) bool {
	if f.UserID != 0 && record.UserID != f.UserID {
		return false
	}

	if f.Status != "" && record.Status != f.Status {
		return false
	}

	if f.BookTitle != "" && !strings.Contains(record.BookTitle, f.BookTitle) {
		return false
	}

	return true
}

// RecordPage is one page of a filtered ledger listing.
// Total is the filtered count before slicing.
type RecordPage struct {
	Data     []BorrowRecord
	Total    int
	Page     int
	PageSize int
}

// PageOfRecords filters the ledger, orders it by borrow date descending
// (most recent first), and returns the requested 1-indexed page.
func PageOfRecords(records []BorrowRecord, page int, pageSize int, filters RecordFilters) RecordPage {
	filtered := make([]BorrowRecord, 0, len(records))
	for _, record := range records {
		if filters.matches(record) {
			filtered = append(filtered, record)
		}
	}

	slices.SortStableFunc(filtered, func(a, b BorrowRecord) int {
		return b.BorrowDate.Compare(a.BorrowDate)
	})

	data, total := slicePage(filtered, page, pageSize)

	return RecordPage{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}
