package core

import (
	"strings"
)

// Book represents one title in the catalog. Stock counts the copies
// currently available to borrow, Total the copies the library owns;
// Stock always stays within [0, Total].
//
// The JSON field names are the persisted format and must stay stable.
// PublishDate is kept as the original YYYY-MM-DD string.
type Book struct {
	ID          int     `json:"id"`
	ISBN        string  `json:"isbn"`
	Title       string  `json:"title"`
	Author      string  `json:"author"`
	Publisher   string  `json:"publisher"`
	Category    string  `json:"category"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Total       int     `json:"total"`
	PublishDate string  `json:"publishDate"`
	Description string  `json:"description"`
}

// NextBookID allocates the id for a new book: one above the highest
// existing id, or 1 for an empty catalog.
func NextBookID(books []Book) int {
	maxID := 0
	for _, book := range books {
		if book.ID > maxID {
			maxID = book.ID
		}
	}

	return maxID + 1
}

// BookFilters narrows a catalog listing. Zero values mean "no filter".
// Title, Author, and ISBN match on substring; Category matches exactly.
type BookFilters struct {
	Title    string
	Author   string
	Category string
	ISBN     string
}

func (f BookFilters) matches(book Book) bool {
	if f.Title != "" && !strings.Contains(book.Title, f.Title) {
		return false
	}

	if f.Author != "" && !strings.Contains(book.Author, f.Author) {
		return false
	}

	if f.Category != "" && book.Category != f.Category {
		return false
	}

	if f.ISBN != "" && !strings.Contains(book.ISBN, f.ISBN) {
		return false
	}

	return true
}

// BookPage is one page of a filtered catalog listing.
// Total is the filtered count before slicing.
type BookPage struct {
	Data     []Book
	Total    int
	Page     int
	PageSize int
}

// PageOfBooks filters the catalog and returns the requested 1-indexed page
// in catalog insertion order.
func PageOfBooks(books []Book, page int, pageSize int, filters BookFilters) BookPage {
	filtered := make([]Book, 0, len(books))
	for _, book := range books {
		if filters.matches(book) {
			filtered = append(filtered, book)
		}
	}

	data, total := slicePage(filtered, page, pageSize)

	return BookPage{
		Data:     data,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}
}

// slicePage cuts the 1-indexed page out of a filtered slice, clamping
// out-of-range pages to an empty result.
func slicePage[T any](filtered []T, page int, pageSize int) ([]T, int) {
	total := len(filtered)

	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return []T{}, total
	}

	end := start + pageSize
	if end > total {
		end = total
	}

	return filtered[start:end], total
}
