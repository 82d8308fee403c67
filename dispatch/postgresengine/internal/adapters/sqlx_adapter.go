package adapters

import (
	"context"

	"github.com/jmoiron/sqlx"
)

// SQLXStarter implements TxStarter for sqlx.DB
type SQLXStarter struct {
	db *sqlx.DB
}

// NewSQLXStarter creates a new SQLX transaction starter
func NewSQLXStarter(db *sqlx.DB) *SQLXStarter {
	return &SQLXStarter{db: db}
}

// BeginTx begins a transaction on the sqlx.DB and returns it wrapped.
func (s *SQLXStarter) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx.Tx}, nil
}
