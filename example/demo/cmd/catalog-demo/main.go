// Command catalog-demo runs the product catalog example end to end with an
// in-memory store: two commands, a validation rejection and both queries,
// all dispatched through the full behavior chain.
//
// With -postgres-journal the command journal is persisted to PostgreSQL
// through the postgresengine transaction manager instead of being kept in
// memory; the catalog state itself stays in memory either way.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/dispatch/oteladapters"
	"github.com/mediatorkit/dispatch-pipeline-go/dispatch/postgresengine"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/command/changeproductprice"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/command/createproduct"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/query/productbyid"
	"github.com/mediatorkit/dispatch-pipeline-go/example/features/query/productsincatalog"
	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/shell"
	"github.com/mediatorkit/dispatch-pipeline-go/example/shared/shell/config"
)

func main() {
	postgresJournal := flag.Bool("postgres-journal", false,
		"persist the command journal to PostgreSQL instead of memory")
	journalDriver := flag.String("journal-driver", "pgx",
		"database driver for the PostgreSQL journal: pgx, sqldb or sqlx")
	flag.Parse()

	ctx := shell.WithCurrentUser(context.Background(), dispatch.User{
		ID:            "demo-user",
		Name:          "Demo",
		Authenticated: true,
	})

	store := shell.NewInMemoryProductStore()

	var manager dispatch.TransactionManager
	var inMemoryManager *shell.InMemoryTransactionManager

	if *postgresJournal {
		postgresManager, closeDB, err := newPostgresTransactionManager(ctx, *journalDriver)
		if err != nil {
			log.Fatalf("Failed to create transaction manager: %v", err)
		}
		defer closeDB()

		manager = postgresManager
	} else {
		inMemoryManager = shell.NewInMemoryTransactionManager(store)
		manager = inMemoryManager
	}

	contextualLogger := oteladapters.NewSlogBridgeLoggerWithHandler(
		slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	dispatcher, err := shell.BuildDispatcher(shell.Dependencies{
		Store:              store,
		TransactionManager: manager,
		ContextualLogger:   contextualLogger,
	})
	if err != nil {
		log.Fatalf("Failed to build dispatcher: %v", err)
	}

	deskID := uuid.New()
	now := time.Now().UTC()

	createResult, err := dispatch.Dispatch[createproduct.Result](
		ctx, dispatcher, createproduct.BuildCommand(deskID, "Walnut Desk", 49900, now))
	if err != nil {
		log.Fatalf("Failed to create product: %v", err)
	}
	fmt.Printf("created product %s\n", createResult.ProductID)

	priceResult, err := dispatch.Dispatch[changeproductprice.Result](
		ctx, dispatcher, changeproductprice.BuildCommand(deskID, 44900, now.Add(time.Minute)))
	if err != nil {
		log.Fatalf("Failed to change price: %v", err)
	}
	fmt.Printf("changed price from %d to %d\n", priceResult.OldPriceCents, priceResult.NewPriceCents)

	// An invalid command is rejected before any handler or unit of work runs.
	_, err = dispatch.Dispatch[createproduct.Result](
		ctx, dispatcher, createproduct.BuildCommand(uuid.Nil, "", 0, now))
	var validationErr *dispatch.ValidationError
	if errors.As(err, &validationErr) {
		fmt.Printf("rejected invalid command with %d validation failures\n", len(validationErr.Failures))
	}

	view, err := dispatch.Dispatch[productbyid.ProductView](
		ctx, dispatcher, productbyid.BuildQuery(deskID))
	if err != nil {
		log.Fatalf("Failed to query product: %v", err)
	}
	fmt.Printf("product %q now costs %d cents\n", view.Name, view.PriceCents)

	catalog, err := dispatch.Dispatch[productsincatalog.ProductsInCatalog](
		ctx, dispatcher, productsincatalog.BuildQuery())
	if err != nil {
		log.Fatalf("Failed to list catalog: %v", err)
	}
	fmt.Printf("catalog holds %d product(s)\n", catalog.Count)

	if inMemoryManager != nil {
		fmt.Printf("command journal holds %d entr(y/ies)\n", len(inMemoryManager.Journal()))
	} else {
		fmt.Println("command journal persisted to PostgreSQL")
	}
}

// newPostgresTransactionManager builds a journal-persisting transaction
// manager on the requested driver, returning a close function for the
// underlying connection.
func newPostgresTransactionManager(
	ctx context.Context,
	driver string,
) (*postgresengine.TransactionManager, func(), error) {
	switch driver {
	case "pgx":
		pgxPool, err := pgxpool.NewWithConfig(ctx, config.PostgresPGXPoolConfig())
		if err != nil {
			return nil, nil, err
		}

		if err := pgxPool.Ping(ctx); err != nil {
			pgxPool.Close()
			return nil, nil, err
		}

		manager, err := postgresengine.NewTransactionManagerFromPGXPool(pgxPool)
		if err != nil {
			pgxPool.Close()
			return nil, nil, err
		}

		return manager, pgxPool.Close, nil

	case "sqldb":
		db := config.PostgresSQLDBConfig()

		manager, err := postgresengine.NewTransactionManagerFromSQLDB(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return manager, func() { _ = db.Close() }, nil

	case "sqlx":
		db := config.PostgresSQLXConfig()

		manager, err := postgresengine.NewTransactionManagerFromSQLX(db)
		if err != nil {
			_ = db.Close()
			return nil, nil, err
		}

		return manager, func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown journal driver %q", driver)
	}
}
