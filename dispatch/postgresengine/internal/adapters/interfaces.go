package adapters

import "context"

// TxStarter defines the interface for beginning database transactions
type TxStarter interface {
	BeginTx(ctx context.Context) (Tx, error)
}

// Tx defines the interface for one open database transaction
type Tx interface {
	Exec(ctx context.Context, query string) (int64, error)
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}
