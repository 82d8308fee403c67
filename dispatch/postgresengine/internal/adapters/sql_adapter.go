package adapters

import (
	"context"
	"database/sql"
)

// SQLStarter implements TxStarter for sql.DB
type SQLStarter struct {
	db *sql.DB
}

// NewSQLStarter creates a new SQL transaction starter
func NewSQLStarter(db *sql.DB) *SQLStarter {
	return &SQLStarter{db: db}
}

func (s *SQLStarter) BeginTx(ctx context.Context) (Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}

	return &stdTx{tx: tx}, nil
}
