package ledger_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/liblend/library-ledger-go/library/catalog"
	"github.com/liblend/library-ledger-go/library/core"
	"github.com/liblend/library-ledger-go/library/ledger"
	"github.com/liblend/library-ledger-go/library/shell"
	"github.com/liblend/library-ledger-go/testutil/storemem"
)

var fixedNow = time.Date(2024, time.June, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	store   *storemem.Store
	catalog *catalog.Service
	ledger  *ledger.Ledger
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	store := storemem.NewStore()
	ctx := context.Background()

	catalogService, err := catalog.NewService(ctx, store)
	require.NoError(t, err)

	borrowLedger, err := ledger.NewLedger(ctx, store, catalogService, ledger.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	return fixture{store: store, catalog: catalogService, ledger: borrowLedger}
}

func (f fixture) stockOf(t *testing.T, bookID int) int {
	t.Helper()

	book, err := f.catalog.BookByID(bookID)
	require.NoError(t, err)

	return book.Stock
}

func Test_Borrow_AppendsRecordAndDecrementsStock(t *testing.T) {
	// arrange
	f := newFixture(t)
	stockBefore := f.stockOf(t, 1)

	// act
	record, err := f.ledger.Borrow(context.Background(),
		ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 1, record.ID)
	assert.Equal(t, core.StatusBorrowed, record.Status)
	assert.Equal(t, fixedNow.AddDate(0, 0, core.LoanPeriodDays), record.DueDate)
	assert.Nil(t, record.ReturnDate)
	assert.Zero(t, record.Fine)
	assert.Equal(t, stockBefore-1, f.stockOf(t, 1))
	assert.NotNil(t, f.store.Stored(shell.KeyBorrowRecords))
}

func Test_Borrow_Error_WhenBookDoesNotExist(t *testing.T) {
	// arrange
	f := newFixture(t)

	// act
	_, err := f.ledger.Borrow(context.Background(), ledger.BuildBorrowCommand(7, 99, "alice", "ghost", fixedNow))

	// assert
	assert.ErrorIs(t, err, catalog.ErrBookNotFound)
}

func Test_Borrow_Error_WhenBookIsOutOfStock(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.catalog.BookByID(3)
	require.NoError(t, err)

	_, err = f.catalog.AdjustStock(ctx, 3, -book.Stock)
	require.NoError(t, err)

	// act
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 3, "alice", "Clean Code", fixedNow))

	// assert
	assert.ErrorIs(t, err, ledger.ErrOutOfStock)
	assert.Empty(t, f.ledger.RecordsForUser(7))
}

func Test_Borrow_Error_WhenUserAlreadyHasActiveLoanOfSameBook(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	stockAfterFirst := f.stockOf(t, 1)

	// act
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))

	// assert
	assert.ErrorIs(t, err, ledger.ErrDuplicateActiveLoan)
	assert.Equal(t, stockAfterFirst, f.stockOf(t, 1))
}

func Test_Borrow_Allowed_AfterPreviousLoanWasReturned(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(first.ID, fixedNow.AddDate(0, 0, 5)))
	require.NoError(t, err)

	// act
	second, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow.AddDate(0, 0, 6)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func Test_Borrow_CompensatesStock_WhenSaveFails(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()
	stockBefore := f.stockOf(t, 1)

	f.store.FailSaves = true

	// act
	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))

	// assert
	assert.ErrorIs(t, err, storemem.ErrSaveFailed)
	assert.Empty(t, f.ledger.RecordsForUser(7))

	f.store.FailSaves = false
	assert.Equal(t, stockBefore, f.stockOf(t, 1))
}

func Test_Return_SetsStatusAndIncrementsStock(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	stockWhileBorrowed := f.stockOf(t, 1)
	returnedAt := fixedNow.AddDate(0, 0, 10)

	// act
	returned, err := f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.Equal(t, core.StatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnDate)
	assert.Equal(t, returnedAt, *returned.ReturnDate)
	assert.Zero(t, returned.Fine)
	assert.Equal(t, stockWhileBorrowed+1, f.stockOf(t, 1))
}

func Test_Return_Error_WhenRecordDoesNotExist(t *testing.T) {
	// arrange
	f := newFixture(t)

	// act
	_, err := f.ledger.Return(context.Background(), ledger.BuildReturnCommand(42, fixedNow))

	// assert
	assert.ErrorIs(t, err, ledger.ErrRecordNotFound)
}

func Test_Return_Error_WhenRecordWasAlreadyReturned(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, fixedNow))
	require.NoError(t, err)

	stockAfterReturn := f.stockOf(t, 1)

	// act
	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, fixedNow))

	// assert
	assert.ErrorIs(t, err, ledger.ErrAlreadyReturned)
	assert.Equal(t, stockAfterReturn, f.stockOf(t, 1))
}

func Test_Return_FreezesFine_WhenReturnedLate(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	// three full days past the due date at half a unit per day
	returnedAt := record.DueDate.AddDate(0, 0, 3)

	// act
	returned, err := f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.InDelta(t, 1.5, returned.Fine, 0.0001)
}

func Test_Return_FineRoundsUpPartialDays(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	// one hour past the due date already counts as a full day
	returnedAt := record.DueDate.Add(time.Hour)

	// act
	returned, err := f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, returnedAt))

	// assert
	require.NoError(t, err)
	assert.InDelta(t, 0.5, returned.Fine, 0.0001)
}

func Test_Return_CompensatesStock_WhenSaveFails(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	record, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	stockWhileBorrowed := f.stockOf(t, 1)

	f.store.FailSaves = true

	// act
	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, fixedNow))

	// assert
	assert.ErrorIs(t, err, storemem.ErrSaveFailed)

	f.store.FailSaves = false
	assert.Equal(t, stockWhileBorrowed, f.stockOf(t, 1))

	records := f.ledger.RecordsForUser(7)
	require.Len(t, records, 1)
	assert.Equal(t, core.StatusBorrowed, records[0].Status)
}

func Test_BorrowAndReturn_RoundTrip_WithLastCopy(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	book, err := f.catalog.BookByID(3)
	require.NoError(t, err)

	_, err = f.catalog.AdjustStock(ctx, 3, -(book.Stock - 1))
	require.NoError(t, err)

	record, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 3, "alice", "Clean Code", fixedNow))
	require.NoError(t, err)
	require.Equal(t, 0, f.stockOf(t, 3))

	// act - a second borrower is rejected until the copy comes back
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(8, 3, "bob", "Clean Code", fixedNow))
	assert.ErrorIs(t, err, ledger.ErrOutOfStock)

	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(record.ID, fixedNow.AddDate(0, 0, 2)))
	require.NoError(t, err)

	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(8, 3, "bob", "Clean Code", fixedNow.AddDate(0, 0, 3)))

	// assert
	require.NoError(t, err)
	assert.Equal(t, 0, f.stockOf(t, 3))
}

func Test_NewLedger_LoadsPersistedRecords(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)

	// act - a second ledger over the same store sees the record
	reopened, err := ledger.NewLedger(ctx, f.store, f.catalog, ledger.WithClock(func() time.Time { return fixedNow }))

	// assert
	require.NoError(t, err)
	assert.Len(t, reopened.RecordsForUser(7), 1)
}

func Test_NewLedger_StartsEmpty_WhenStoredDocumentIsUnreadable(t *testing.T) {
	// arrange
	store := storemem.NewStore()
	ctx := context.Background()

	catalogService, err := catalog.NewService(ctx, store)
	require.NoError(t, err)

	doc, err := shell.DocumentFrom(shell.KeyBorrowRecords, map[string]string{"not": "a record list"})
	require.NoError(t, err)
	require.NoError(t, store.Save(ctx, doc))

	// act
	borrowLedger, err := ledger.NewLedger(ctx, store, catalogService)

	// assert
	require.NoError(t, err)
	assert.Empty(t, borrowLedger.RecordsForUser(7))
}

func Test_RecordsForUser_ReturnsOnlyThatUsersRecords_InInsertionOrder(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(8, 2, "bob", "Designing Data-Intensive Applications", fixedNow))
	require.NoError(t, err)
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 4, "alice", "Crime and Punishment", fixedNow.AddDate(0, 0, 1)))
	require.NoError(t, err)

	// act
	records := f.ledger.RecordsForUser(7)

	// assert
	require.Len(t, records, 2)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, 3, records[1].ID)
}

func Test_RecordsPage_PaginatesMostRecentFirst(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	for day := range 15 {
		bookID := day%8 + 1
		userID := 100 + day

		_, err := f.ledger.Borrow(ctx,
			ledger.BuildBorrowCommand(userID, bookID, fmt.Sprintf("reader-%d", userID), "a title", fixedNow.AddDate(0, 0, day)))
		require.NoError(t, err)
	}

	// act
	page := f.ledger.RecordsPage(ledger.BuildPageQuery(2, 10, core.RecordFilters{}))

	// assert
	assert.Equal(t, 15, page.Total)
	require.Len(t, page.Data, 5)
	assert.True(t, page.Data[0].BorrowDate.After(page.Data[4].BorrowDate))
}

func Test_RecordsPage_FlipsOverdueStatus_WithoutPersisting(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	borrowedAt := fixedNow.AddDate(0, 0, -(core.LoanPeriodDays + 5))
	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", borrowedAt))
	require.NoError(t, err)

	savesBefore := f.store.SaveCalls

	// act
	page := f.ledger.RecordsPage(ledger.BuildPageQuery(1, 10, core.RecordFilters{}))

	// assert
	require.Len(t, page.Data, 1)
	assert.Equal(t, core.StatusOverdue, page.Data[0].Status)
	assert.Equal(t, savesBefore, f.store.SaveCalls)

	// the flip lives only in memory until the next mutation writes it out
	reopened, err := ledger.NewLedger(ctx, f.store, f.catalog, ledger.WithClock(func() time.Time { return fixedNow }))
	require.NoError(t, err)

	records := reopened.RecordsForUser(7)
	require.Len(t, records, 1)
	assert.Equal(t, core.StatusBorrowed, records[0].Status)
}

func Test_RecordsPage_FiltersByUserStatusAndTitle(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	first, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", fixedNow))
	require.NoError(t, err)
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 4, "alice", "Crime and Punishment", fixedNow))
	require.NoError(t, err)
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(8, 2, "bob", "Designing Data-Intensive Applications", fixedNow))
	require.NoError(t, err)

	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(first.ID, fixedNow.AddDate(0, 0, 1)))
	require.NoError(t, err)

	// act
	byUser := f.ledger.RecordsPage(ledger.BuildPageQuery(1, 10, core.RecordFilters{UserID: 7}))
	byStatus := f.ledger.RecordsPage(ledger.BuildPageQuery(1, 10, core.RecordFilters{Status: core.StatusReturned}))
	byTitle := f.ledger.RecordsPage(ledger.BuildPageQuery(1, 10, core.RecordFilters{BookTitle: "Crime"}))

	// assert
	assert.Equal(t, 2, byUser.Total)
	require.Equal(t, 1, byStatus.Total)
	assert.Equal(t, first.ID, byStatus.Data[0].ID)
	require.Equal(t, 1, byTitle.Total)
	assert.Equal(t, "Crime and Punishment", byTitle.Data[0].BookTitle)
}

func Test_Statistics_AggregatesLedger(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	overdueStart := fixedNow.AddDate(0, 0, -(core.LoanPeriodDays + 2))
	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", overdueStart))
	require.NoError(t, err)

	second, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 4, "alice", "Crime and Punishment", fixedNow))
	require.NoError(t, err)
	_, err = f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(8, 4, "bob", "Crime and Punishment", fixedNow))
	require.NoError(t, err)

	_, err = f.ledger.Return(ctx, ledger.BuildReturnCommand(second.ID, fixedNow))
	require.NoError(t, err)

	// act
	stats := f.ledger.Statistics()

	// assert
	assert.Equal(t, 3, stats.TotalBorrows)
	assert.Equal(t, 2, stats.CurrentBorrowed)
	assert.Equal(t, 1, stats.OverdueCount)
	require.NotEmpty(t, stats.BookRanking)
	assert.Equal(t, "Crime and Punishment", stats.BookRanking[0].Title)
	assert.Equal(t, 2, stats.BookRanking[0].Count)
	assert.Len(t, stats.MonthlyStats, core.MonthlyBuckets)
	assert.Equal(t, 2, stats.CategoryStats["Fiction"])
	assert.Equal(t, 1, stats.CategoryStats["Computing"])
}

func Test_Statistics_DoesNotCountRecordsAListingAlreadyFlipped(t *testing.T) {
	// arrange
	f := newFixture(t)
	ctx := context.Background()

	borrowedAt := fixedNow.AddDate(0, 0, -(core.LoanPeriodDays + 5))
	_, err := f.ledger.Borrow(ctx, ledger.BuildBorrowCommand(7, 1, "alice", "The Go Programming Language", borrowedAt))
	require.NoError(t, err)

	before := f.ledger.Statistics()
	require.Equal(t, 1, before.OverdueCount)

	// act - the listing flips the stored status, the derivation then misses it
	f.ledger.RecordsPage(ledger.BuildPageQuery(1, 10, core.RecordFilters{}))
	after := f.ledger.Statistics()

	// assert
	assert.Equal(t, 0, after.OverdueCount)
	assert.Equal(t, 1, after.CurrentBorrowed)
}
