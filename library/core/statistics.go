package core

import (
	"fmt"
	"slices"
	"time"
)

// RankingLimit caps the book ranking at the ten most borrowed titles.
const RankingLimit = 10

// MonthlyBuckets is the number of calendar months covered by the monthly
// statistics: the current month and the five preceding ones.
const MonthlyBuckets = 6

// RankingEntry is one title in the borrow ranking.
type RankingEntry struct {
	Title string
	Count int
}

// MonthlyCount is the number of borrows started in one calendar month,
// keyed YYYY-MM.
type MonthlyCount struct {
	Month string
	Count int
}

// Statistics aggregates the whole ledger.
//
// OverdueCount counts borrowed records whose due date has passed at
// computation time. A record that a listing has already flipped to the
// overdue status is NOT counted - this mirrors the two distinct derivation
// paths of the source system, which can disagree depending on call order.
type Statistics struct {
	TotalBorrows    int
	CurrentBorrowed int
	OverdueCount    int
	BookRanking     []RankingEntry
	MonthlyStats    []MonthlyCount
	CategoryStats   map[string]int
}

// CategoryResolver resolves the category of a book by id.
// It reports false when the book no longer resolves; such records are
// silently skipped by the category aggregation.
type CategoryResolver func(bookID int) (string, bool)

// ComputeStatistics derives the aggregate view from the full record set.
// It never mutates the records.
func ComputeStatistics(records []BorrowRecord, now time.Time, resolveCategory CategoryResolver) Statistics {
	stats := Statistics{
		TotalBorrows:  len(records),
		CategoryStats: make(map[string]int),
	}

	for _, record := range records {
		if record.IsActive() {
			stats.CurrentBorrowed++
		}

		if record.IsOverdueAt(now) {
			stats.OverdueCount++
		}

		if resolveCategory != nil {
			if category, ok := resolveCategory(record.BookID); ok {
				stats.CategoryStats[category]++
			}
		}
	}

	stats.BookRanking = rankBooks(records)
	stats.MonthlyStats = countByMonth(records, now)

	return stats
}

// rankBooks counts borrows per title and returns the top titles by count
// descending. Ties keep the order in which a title was first encountered in
// the record set, so the ranking is stable across recomputations.
func rankBooks(records []BorrowRecord) []RankingEntry {
	counts := make(map[string]int)
	titlesInOrder := make([]string, 0)

	for _, record := range records {
		if _, seen := counts[record.BookTitle]; !seen {
			titlesInOrder = append(titlesInOrder, record.BookTitle)
		}

		counts[record.BookTitle]++
	}

	ranking := make([]RankingEntry, 0, len(titlesInOrder))
	for _, title := range titlesInOrder {
		ranking = append(ranking, RankingEntry{Title: title, Count: counts[title]})
	}

	slices.SortStableFunc(ranking, func(a, b RankingEntry) int {
		return b.Count - a.Count
	})

	if len(ranking) > RankingLimit {
		ranking = ranking[:RankingLimit]
	}

	return ranking
}

// countByMonth buckets borrows into the last MonthlyBuckets calendar months,
// oldest bucket first. Months are anchored at the first of the current month
// so month-end dates cannot skew the bucket keys.
func countByMonth(records []BorrowRecord, now time.Time) []MonthlyCount {
	anchor := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	monthly := make([]MonthlyCount, 0, MonthlyBuckets)

	for i := MonthlyBuckets - 1; i >= 0; i-- {
		bucket := anchor.AddDate(0, -i, 0)

		count := 0
		for _, record := range records {
			if record.BorrowDate.Year() == bucket.Year() && record.BorrowDate.Month() == bucket.Month() {
				count++
			}
		}

		monthly = append(monthly, MonthlyCount{
			Month: fmt.Sprintf("%04d-%02d", bucket.Year(), int(bucket.Month())),
			Count: count,
		})
	}

	return monthly
}
