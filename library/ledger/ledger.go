package ledger

import (
	"context"
	"errors"
	"slices"
	"time"

	"github.com/liblend/library-ledger-go/library/core"
	"github.com/liblend/library-ledger-go/library/shell"
	"github.com/liblend/library-ledger-go/recordstore"
)

const (
	logMsgBookBorrowed       = "book borrowed"
	logMsgBookReturned       = "book returned"
	logMsgStoredLedgerBroken = "stored ledger is unreadable, starting empty"
	logMsgCompensatedStock   = "compensated stock adjustment after failed save"
	logMsgCompensationFailed = "failed to compensate stock adjustment, stock and ledger disagree"
	logAttrCommandType       = "command_type"
	logAttrRecordID          = "record_id"
	logAttrUserID            = "user_id"
	logAttrBookID            = "book_id"
	logAttrFine              = "fine"
	logAttrError             = "error"
)

// Catalog defines the interface the ledger needs from the Catalog Service.
type Catalog interface {
	BookByID(id int) (core.Book, error)
	AdjustStock(ctx context.Context, id int, delta int) (core.Book, error)
}

// Ledger owns the borrow records. It is constructed once per process, loads
// its state from the store, and persists wholesale after every mutation.
//
// Commands carry their own occurrence time; queries read the injected clock.
type Ledger struct {
	store   shell.Storage
	catalog Catalog
	records []core.BorrowRecord
	clock   func() time.Time
	logger  recordstore.Logger
}

// Option defines a functional option for configuring the Ledger.
type Option func(*Ledger) error

// WithClock sets the time source used by the query derivations.
func WithClock(clock func() time.Time) Option {
	return func(l *Ledger) error {
		l.clock = clock
		return nil
	}
}

// WithLogger sets the logger for the Ledger.
func WithLogger(logger recordstore.Logger) Option {
	return func(l *Ledger) error {
		l.logger = logger
		return nil
	}
}

// NewLedger creates the Borrow Ledger, loading the record set from the store.
// An absent or unreadable document yields an empty ledger.
func NewLedger(ctx context.Context, store shell.Storage, catalog Catalog, options ...Option) (*Ledger, error) {
	ledger := &Ledger{
		store:   store,
		catalog: catalog,
		clock:   time.Now,
	}

	for _, option := range options {
		if err := option(ledger); err != nil {
			return nil, err
		}
	}

	doc, err := store.Load(ctx, shell.KeyBorrowRecords)

	switch {
	case errors.Is(err, recordstore.ErrDocumentNotFound):
		ledger.records = make([]core.BorrowRecord, 0)

	case err != nil:
		return nil, err

	default:
		if mapErr := shell.CollectionFrom(doc, &ledger.records); mapErr != nil {
			ledger.logWarn(logMsgStoredLedgerBroken, logAttrError, mapErr.Error())
			ledger.records = make([]core.BorrowRecord, 0)
		}
	}

	return ledger, nil
}

// Borrow executes a borrow transaction: it validates the book and the
// duplicate-loan guard, decrements the stock through the Catalog Service,
// appends the new record, and persists the ledger.
//
// A failed precondition aborts with nothing mutated. A failed save after the
// stock decrement compensates the stock change before returning the error.
func (l *Ledger) Borrow(ctx context.Context, command BorrowCommand) (core.BorrowRecord, error) {
	book, err := l.catalog.BookByID(command.BookID)
	if err != nil {
		return core.BorrowRecord{}, err
	}

	if book.Stock <= 0 {
		return core.BorrowRecord{}, ErrOutOfStock
	}

	// The guard deliberately checks only the borrowed status, not overdue.
	for _, record := range l.records {
		if record.UserID == command.UserID && record.BookID == command.BookID && record.Status == core.StatusBorrowed {
			return core.BorrowRecord{}, ErrDuplicateActiveLoan
		}
	}

	record := core.BuildBorrowRecord(
		core.NextRecordID(l.records),
		command.UserID,
		command.BookID,
		command.UserName,
		command.BookTitle,
		command.OccurredAt,
	)

	if _, err := l.catalog.AdjustStock(ctx, command.BookID, -1); err != nil {
		return core.BorrowRecord{}, err
	}

	updated := append(slices.Clone(l.records), record)

	if err := l.saveRecords(ctx, updated); err != nil {
		l.compensateStock(ctx, command.BookID, +1)
		return core.BorrowRecord{}, err
	}

	l.records = updated
	l.logInfo(logMsgBookBorrowed,
		logAttrCommandType, command.CommandType(),
		logAttrRecordID, record.ID,
		logAttrUserID, record.UserID,
		logAttrBookID, record.BookID,
	)

	return record, nil
}

// Return executes a return transaction: it sets the return date and status,
// freezes the fine, increments the stock through the Catalog Service, and
// persists the ledger.
func (l *Ledger) Return(ctx context.Context, command ReturnCommand) (core.BorrowRecord, error) {
	index := l.indexOf(command.RecordID)
	if index < 0 {
		return core.BorrowRecord{}, ErrRecordNotFound
	}

	record := l.records[index]

	if record.Status == core.StatusReturned {
		return core.BorrowRecord{}, ErrAlreadyReturned
	}

	if _, err := l.catalog.AdjustStock(ctx, record.BookID, +1); err != nil {
		return core.BorrowRecord{}, err
	}

	returnedAt := command.OccurredAt
	record.ReturnDate = &returnedAt
	record.Status = core.StatusReturned
	record.Fine = core.FineFor(record.DueDate, returnedAt)

	updated := slices.Clone(l.records)
	updated[index] = record

	if err := l.saveRecords(ctx, updated); err != nil {
		l.compensateStock(ctx, record.BookID, -1)
		return core.BorrowRecord{}, err
	}

	l.records = updated
	l.logInfo(logMsgBookReturned,
		logAttrCommandType, command.CommandType(),
		logAttrRecordID, record.ID,
		logAttrBookID, record.BookID,
		logAttrFine, record.Fine,
	)

	return record, nil
}

// RecordsForUser returns all records of the user, unfiltered, in insertion order.
func (l *Ledger) RecordsForUser(userID int) []core.BorrowRecord {
	records := make([]core.BorrowRecord, 0)
	for _, record := range l.records {
		if record.UserID == userID {
			records = append(records, record)
		}
	}

	return records
}

// RecordsPage lists one filtered page of the ledger, most recent borrow first.
//
// Before filtering it re-derives the status of every stored record: borrowed
// records past their due date flip to overdue. The flip mutates the in-memory
// record set but is not persisted - only the next mutating operation writes
// it out. This mirrors the system this replaces; see the package comment.
func (l *Ledger) RecordsPage(query PageQuery) core.RecordPage {
	now := l.clock()

	for index, record := range l.records {
		if record.IsOverdueAt(now) {
			l.records[index].Status = core.StatusOverdue
		}
	}

	return core.PageOfRecords(l.records, query.Page, query.PageSize, query.Filters)
}

// Statistics computes the aggregate view over the full record set.
// Unlike RecordsPage it never mutates statuses; see the package comment.
func (l *Ledger) Statistics() core.Statistics {
	return core.ComputeStatistics(l.records, l.clock(), func(bookID int) (string, bool) {
		book, err := l.catalog.BookByID(bookID)
		if err != nil {
			return "", false
		}

		return book.Category, true
	})
}

func (l *Ledger) indexOf(recordID int) int {
	for index, record := range l.records {
		if record.ID == recordID {
			return index
		}
	}

	return -1
}

func (l *Ledger) saveRecords(ctx context.Context, records []core.BorrowRecord) error {
	doc, err := shell.DocumentFrom(shell.KeyBorrowRecords, records)
	if err != nil {
		return err
	}

	return l.store.Save(ctx, doc)
}

// compensateStock undoes a stock adjustment after a failed ledger save so
// stock and outstanding loans stay reconciled.
func (l *Ledger) compensateStock(ctx context.Context, bookID int, delta int) {
	if _, err := l.catalog.AdjustStock(ctx, bookID, delta); err != nil {
		l.logError(logMsgCompensationFailed, logAttrBookID, bookID, logAttrError, err.Error())
		return
	}

	l.logWarn(logMsgCompensatedStock, logAttrBookID, bookID)
}

func (l *Ledger) logInfo(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *Ledger) logWarn(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}

func (l *Ledger) logError(msg string, args ...any) {
	if l.logger != nil {
		l.logger.Error(msg, args...)
	}
}
