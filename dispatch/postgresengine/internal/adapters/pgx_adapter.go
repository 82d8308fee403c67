package adapters

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PGXStarter implements TxStarter for pgxpool.Pool.
type PGXStarter struct {
	pool *pgxpool.Pool
}

// NewPGXStarter creates a new PGX transaction starter.
func NewPGXStarter(pool *pgxpool.Pool) *PGXStarter {
	return &PGXStarter{pool: pool}
}

// BeginTx begins a transaction on the pgx pool and returns it wrapped.
func (p *PGXStarter) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := p.pool.Begin(ctx)
	if err != nil {
		return nil, err
	}

	return &pgxTx{tx: tx}, nil
}

// pgxTx wraps pgx.Tx to implement the Tx interface.
type pgxTx struct {
	tx pgx.Tx
}

// Exec executes a statement inside the transaction and returns the rows affected.
func (p *pgxTx) Exec(ctx context.Context, query string) (int64, error) {
	tag, err := p.tx.Exec(ctx, query)
	if err != nil {
		return 0, err
	}

	return tag.RowsAffected(), nil
}

// Commit commits the transaction.
func (p *pgxTx) Commit(ctx context.Context) error {
	return p.tx.Commit(ctx)
}

// Rollback rolls the transaction back.
func (p *pgxTx) Rollback(ctx context.Context) error {
	return p.tx.Rollback(ctx)
}
