package core

import (
	"math"
	"time"
)

// Loan status values. Overdue is a derived state: a borrowed record whose
// due date has passed flips to overdue when a listing re-derives it -
// there is no operation that sets it directly.
const (
	StatusBorrowed = "borrowed"
	StatusReturned = "returned"
	StatusOverdue  = "overdue"
)

// LoanPeriodDays is the borrow period: the due date is this many days after the borrow date.
const LoanPeriodDays = 30

// FinePerDay is the fine, in currency units, for each started day past the due date.
const FinePerDay = 0.5

// BorrowRecord represents one borrow transaction in the ledger.
//
// UserName and BookTitle are display snapshots captured at borrow time;
// they are not refreshed if the user or book is later renamed.
//
// The JSON field names are the persisted format and must stay stable.
type BorrowRecord struct {
	ID         int        `json:"id"`
	UserID     int        `json:"userId"`
	BookID     int        `json:"bookId"`
	UserName   string     `json:"userName"`
	BookTitle  string     `json:"bookTitle"`
	BorrowDate time.Time  `json:"borrowDate"`
	DueDate    time.Time  `json:"dueDate"`
	ReturnDate *time.Time `json:"returnDate"`
	Status     string     `json:"status"`
	Fine       float64    `json:"fine"`
}

// BuildBorrowRecord creates a new record in the borrowed state.
// The due date is derived from the borrow date and never changes afterwards.
func BuildBorrowRecord(id int, userID int, bookID int, userName string, bookTitle string, borrowedAt time.Time) BorrowRecord {
	return BorrowRecord{
		ID:         id,
		UserID:     userID,
		BookID:     bookID,
		UserName:   userName,
		BookTitle:  bookTitle,
		BorrowDate: borrowedAt,
		DueDate:    borrowedAt.AddDate(0, 0, LoanPeriodDays),
		ReturnDate: nil,
		Status:     StatusBorrowed,
		Fine:       0,
	}
}

// IsActive returns true while the record has not been returned, whether it is
// currently marked borrowed or overdue.
func (r BorrowRecord) IsActive() bool {
	return r.Status != StatusReturned
}

// IsOverdueAt reports whether the record is a borrowed loan whose due date has
// passed at the given time. Records already flipped to the overdue status are
// deliberately not reported; callers that want both must also check Status.
func (r BorrowRecord) IsOverdueAt(now time.Time) bool {
	return r.Status == StatusBorrowed && r.DueDate.Before(now)
}

// NextRecordID allocates the id for a new record: one above the highest
// existing id, or 1 for an empty ledger.
func NextRecordID(records []BorrowRecord) int {
	maxID := 0
	for _, record := range records {
		if record.ID > maxID {
			maxID = record.ID
		}
	}

	return maxID + 1
}

// FineFor computes the fine for a return at returnedAt against the given due
// date: every started day of lateness costs FinePerDay, an on-time return
// costs nothing.
func FineFor(dueDate time.Time, returnedAt time.Time) float64 {
	if !returnedAt.After(dueDate) {
		return 0
	}

	lateDays := math.Ceil(returnedAt.Sub(dueDate).Hours() / 24)

	return lateDays * FinePerDay
}
