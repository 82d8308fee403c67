// Package adapters provides database adapter implementations for the PostgreSQL
// transaction manager.
//
// This package implements the adapter pattern to support multiple PostgreSQL
// database libraries: pgx.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent transaction semantics through a common TxStarter interface,
// allowing the transaction manager to work with any supported connection type.
//
// The adapters handle the specifics of each database library while presenting
// a unified interface for beginning, committing, and rolling back transactions.
package adapters
