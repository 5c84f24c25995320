package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/liblend/library-ledger-go/library/catalog"
	"github.com/liblend/library-ledger-go/library/config"
	"github.com/liblend/library-ledger-go/library/core"
	"github.com/liblend/library-ledger-go/library/identity"
	"github.com/liblend/library-ledger-go/library/ledger"
	"github.com/liblend/library-ledger-go/library/shell"
	"github.com/liblend/library-ledger-go/recordstore/boltengine"
	"github.com/liblend/library-ledger-go/recordstore/oteladapters"
	"github.com/liblend/library-ledger-go/recordstore/sqliteengine"
)

type services struct {
	catalog  *catalog.Service
	identity *identity.Service
	ledger   *ledger.Ledger
}

func main() {
	cfg := config.MustLoad()

	logger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: cfg.LogLevel}),
	)

	log.Printf("Using store engine: %s (path: %s)", cfg.StoreEngine, cfg.StorePath)

	store, cleanup, err := buildStore(cfg, logger)
	if err != nil {
		log.Fatalf("Failed to create store: %v", err)
	}
	defer cleanup()

	ctx := context.Background()

	app, err := buildServices(ctx, store, logger)
	if err != nil {
		log.Fatalf("Failed to wire services: %v", err)
	}

	if err := runDemo(ctx, app); err != nil {
		log.Fatalf("Demo run failed: %v", err)
	}
}

func buildStore(cfg config.Config, logger *oteladapters.SlogBridgeLogger) (shell.Storage, func(), error) {
	switch cfg.StoreEngine {
	case config.EngineBolt:
		db, err := config.BoltDatabaseConfig(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}

		store, err := boltengine.NewStoreFromBolt(db, boltengine.WithLogger(logger))
		if err != nil {
			closeIgnoringError(db.Close)
			return nil, nil, err
		}

		return store, func() { closeIgnoringError(db.Close) }, nil

	case config.EngineSQLite:
		db, err := config.SQLiteDatabaseConfig(cfg.StorePath)
		if err != nil {
			return nil, nil, err
		}

		store, err := sqliteengine.NewStoreFromSQLX(db, sqliteengine.WithLogger(logger))
		if err != nil {
			closeIgnoringError(db.Close)
			return nil, nil, err
		}

		return store, func() { closeIgnoringError(db.Close) }, nil

	default:
		return nil, nil, fmt.Errorf("%w: %q", config.ErrUnknownEngine, cfg.StoreEngine)
	}
}

func buildServices(ctx context.Context, store shell.Storage, logger *oteladapters.SlogBridgeLogger) (services, error) {
	catalogService, err := catalog.NewService(ctx, store, catalog.WithLogger(logger))
	if err != nil {
		return services{}, err
	}

	identityService, err := identity.NewService(ctx, store, identity.WithLogger(logger))
	if err != nil {
		return services{}, err
	}

	borrowLedger, err := ledger.NewLedger(ctx, store, catalogService, ledger.WithLogger(logger))
	if err != nil {
		return services{}, err
	}

	return services{catalog: catalogService, identity: identityService, ledger: borrowLedger}, nil
}

// runDemo walks one full lending cycle: admin login, reader registration,
// borrow, listing, return, statistics.
func runDemo(ctx context.Context, app services) error {
	session, err := app.identity.Login(ctx, "admin", "admin123")
	if err != nil {
		return err
	}

	log.Printf("Logged in as %s (role: %s)", session.Username, session.Role)

	books := app.catalog.Page(1, 5, core.BookFilters{})
	log.Printf("Catalog holds %d books, first page:", books.Total)

	for _, book := range books.Data {
		log.Printf("  [%d] %s by %s (%d of %d in stock)", book.ID, book.Title, book.Author, book.Stock, book.Total)
	}

	reader, err := registerOrReuseReader(ctx, app.identity)
	if err != nil {
		return err
	}

	borrowed := make([]core.BorrowRecord, 0)

	for _, bookID := range []int{1, 4} {
		book, lookupErr := app.catalog.BookByID(bookID)
		if lookupErr != nil {
			return lookupErr
		}

		record, borrowErr := app.ledger.Borrow(ctx,
			ledger.BuildBorrowCommand(reader.ID, book.ID, reader.Name, book.Title, time.Now()))

		// A rerun against an existing store still holds the active loan.
		if errors.Is(borrowErr, ledger.ErrDuplicateActiveLoan) {
			log.Printf("Skipping %q, reader already holds it", book.Title)
			continue
		}

		if borrowErr != nil {
			return borrowErr
		}

		borrowed = append(borrowed, record)
		log.Printf("Borrowed %q, due %s", record.BookTitle, record.DueDate.Format("2006-01-02"))
	}

	page := app.ledger.RecordsPage(ledger.BuildPageQuery(1, 10, core.RecordFilters{UserID: reader.ID}))
	log.Printf("Reader has %d records on the ledger", page.Total)

	if len(borrowed) > 0 {
		returned, returnErr := app.ledger.Return(ctx, ledger.BuildReturnCommand(borrowed[0].ID, time.Now()))
		if returnErr != nil {
			return returnErr
		}

		log.Printf("Returned %q, fine: %.2f", returned.BookTitle, returned.Fine)
	}

	stats := app.ledger.Statistics()
	log.Printf("Totals: %d borrows, %d outstanding, %d overdue",
		stats.TotalBorrows, stats.CurrentBorrowed, stats.OverdueCount)

	for _, entry := range stats.BookRanking {
		log.Printf("  ranking: %q borrowed %d times", entry.Title, entry.Count)
	}

	return app.identity.Logout(ctx)
}

// registerOrReuseReader registers the demo reader, reusing the account from
// an earlier run against the same store.
func registerOrReuseReader(ctx context.Context, identityService *identity.Service) (core.User, error) {
	reader, err := identityService.Register(ctx, "m.reader", "reading-is-fun", "Morgan Reader", "morgan@example.org", "555-0100")
	if err == nil {
		return reader, nil
	}

	if !errors.Is(err, identity.ErrUsernameTaken) {
		return core.User{}, err
	}

	for _, user := range identityService.Users() {
		if user.Username == "m.reader" {
			return user, nil
		}
	}

	return core.User{}, identity.ErrUserNotFound
}

func closeIgnoringError(closeFn func() error) {
	_ = closeFn()
}
