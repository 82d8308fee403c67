// Package postgresengine provides a PostgreSQL implementation of the dispatch
// transaction manager.
//
// This package binds command dispatches to real database transactions,
// supporting multiple database adapters (pgx, sql.DB, sqlx) with configurable
// command journaling inside the transaction boundary.
//
// Key features:
//   - Multiple database adapter support (PGX, SQL, SQLX)
//   - One database transaction per outermost command dispatch
//   - Optional command journal written atomically with the command's effects
//   - Configurable journal table name and logging
//
// Usage examples:
//
//	// Basic usage
//	db, _ := pgxpool.New(context.Background(), dsn)
//	manager, _ := postgresengine.NewTransactionManagerFromPGXPool(db)
//
//	// With a custom journal table and logging
//	manager, _ := postgresengine.NewTransactionManagerFromPGXPool(
//		db,
//		postgresengine.WithJournalTableName("dispatched_commands"),
//		postgresengine.WithLogger(logger),
//	)
//
//	behavior, _ := dispatch.NewTransactionBehavior(manager, dispatch.WithCommandJournaling())
package postgresengine
