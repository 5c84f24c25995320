package catalog

import (
	"context"
	"errors"
	"slices"

	"github.com/liblend/library-ledger-go/library/core"
	"github.com/liblend/library-ledger-go/library/shell"
	"github.com/liblend/library-ledger-go/recordstore"
)

const (
	logMsgSeededDefaultCatalog = "seeded default catalog"
	logMsgStoredCatalogBroken  = "stored catalog is unreadable, falling back to seed"
	logAttrBookCount           = "book_count"
	logAttrError               = "error"
)

// Service owns the book collection. It is constructed once per process,
// loads its state from the store, and persists wholesale after every mutation.
// Single-threaded by design, like the rest of the system.
type Service struct {
	store  shell.Storage
	books  []core.Book
	logger recordstore.Logger
}

// Option defines a functional option for configuring the Service.
type Option func(*Service) error

// WithLogger sets the logger for the Service.
func WithLogger(logger recordstore.Logger) Option {
	return func(s *Service) error {
		s.logger = logger
		return nil
	}
}

// NewService creates the Catalog Service, loading the catalog from the store.
// An absent or unreadable document yields the seed catalog.
func NewService(ctx context.Context, store shell.Storage, options ...Option) (*Service, error) {
	service := &Service{store: store}

	for _, option := range options {
		if err := option(service); err != nil {
			return nil, err
		}
	}

	doc, err := store.Load(ctx, shell.KeyBooks)

	switch {
	case errors.Is(err, recordstore.ErrDocumentNotFound):
		service.books = defaultBooks()
		service.logInfo(logMsgSeededDefaultCatalog, logAttrBookCount, len(service.books))

		if saveErr := service.saveBooks(ctx, service.books); saveErr != nil {
			return nil, saveErr
		}

	case err != nil:
		return nil, err

	default:
		if mapErr := shell.CollectionFrom(doc, &service.books); mapErr != nil {
			service.logWarn(logMsgStoredCatalogBroken, logAttrError, mapErr.Error())
			service.books = defaultBooks()
		}
	}

	return service, nil
}

// BookByID returns the book with the given id.
func (s *Service) BookByID(id int) (core.Book, error) {
	for _, book := range s.books {
		if book.ID == id {
			return book, nil
		}
	}

	return core.Book{}, ErrBookNotFound
}

// AdjustStock changes the stock of a book by delta (negative for a borrow,
// positive for a return) and persists the catalog. The resulting stock must
// stay within [0, Total]; violations abort with nothing mutated.
func (s *Service) AdjustStock(ctx context.Context, id int, delta int) (core.Book, error) {
	index := s.indexOf(id)
	if index < 0 {
		return core.Book{}, ErrBookNotFound
	}

	book := s.books[index]
	newStock := book.Stock + delta

	if newStock < 0 {
		return core.Book{}, ErrStockUnderflow
	}

	if newStock > book.Total {
		return core.Book{}, ErrStockOverflow
	}

	book.Stock = newStock

	updated := slices.Clone(s.books)
	updated[index] = book

	if err := s.saveBooks(ctx, updated); err != nil {
		return core.Book{}, err
	}

	s.books = updated

	return book, nil
}

// Add inserts a new book. The ISBN must be unique; the initial stock equals
// Total so every copy starts available.
func (s *Service) Add(ctx context.Context, book core.Book) (core.Book, error) {
	for _, existing := range s.books {
		if existing.ISBN == book.ISBN {
			return core.Book{}, ErrDuplicateISBN
		}
	}

	book.ID = core.NextBookID(s.books)
	if book.Total < 1 {
		book.Total = 1
	}
	book.Stock = book.Total

	updated := append(slices.Clone(s.books), book)

	if err := s.saveBooks(ctx, updated); err != nil {
		return core.Book{}, err
	}

	s.books = updated

	return book, nil
}

// Update replaces the stored book that has the same id.
func (s *Service) Update(ctx context.Context, book core.Book) (core.Book, error) {
	index := s.indexOf(book.ID)
	if index < 0 {
		return core.Book{}, ErrBookNotFound
	}

	updated := slices.Clone(s.books)
	updated[index] = book

	if err := s.saveBooks(ctx, updated); err != nil {
		return core.Book{}, err
	}

	s.books = updated

	return book, nil
}

// Delete removes the book with the given id.
func (s *Service) Delete(ctx context.Context, id int) error {
	index := s.indexOf(id)
	if index < 0 {
		return ErrBookNotFound
	}

	updated := slices.Delete(slices.Clone(s.books), index, index+1)

	if err := s.saveBooks(ctx, updated); err != nil {
		return err
	}

	s.books = updated

	return nil
}

// Page returns one page of the filtered catalog.
func (s *Service) Page(page int, pageSize int, filters core.BookFilters) core.BookPage {
	return core.PageOfBooks(s.books, page, pageSize, filters)
}

// All returns a copy of the full catalog in insertion order.
func (s *Service) All() []core.Book {
	return slices.Clone(s.books)
}

// Categories returns the distinct categories in first-encountered order.
func (s *Service) Categories() []string {
	seen := make(map[string]bool)
	categories := make([]string, 0)

	for _, book := range s.books {
		if !seen[book.Category] {
			seen[book.Category] = true
			categories = append(categories, book.Category)
		}
	}

	return categories
}

func (s *Service) indexOf(id int) int {
	for index, book := range s.books {
		if book.ID == id {
			return index
		}
	}

	return -1
}

func (s *Service) saveBooks(ctx context.Context, books []core.Book) error {
	doc, err := shell.DocumentFrom(shell.KeyBooks, books)
	if err != nil {
		return err
	}

	return s.store.Save(ctx, doc)
}

func (s *Service) logInfo(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Info(msg, args...)
	}
}

func (s *Service) logWarn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
