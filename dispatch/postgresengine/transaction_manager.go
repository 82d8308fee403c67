package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // driver import
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/mediatorkit/dispatch-pipeline-go/dispatch"
	"github.com/mediatorkit/dispatch-pipeline-go/dispatch/postgresengine/internal/adapters"
)

const (
	defaultJournalTableName      = "command_journal"
	logMsgBuildInsertQueryFailed = "failed to build journal insert query"
	logMsgDBExecFailed           = "database execution failed during command journaling"
	logMsgCommandJournaled       = "command journaled"
	logAttrError                 = "error"
	logAttrRequestType           = "request_type"
	logAttrDurationMS            = "duration_ms"
	colRequestType               = "request_type"
	colCorrelationID             = "correlation_id"
	colOccurredAt                = "occurred_at"
	colPayload                   = "payload"
	dialectPostgres              = "postgres"
	castText                     = "?::text"
	castUUID                     = "?::uuid"
	castTimestamp                = "?::timestamp with time zone"
	castJsonb                    = "?::jsonb"
)

var (
	// ErrNilDatabaseConnection is returned when a TransactionManager is created without a database connection.
	ErrNilDatabaseConnection = errors.New("nil database connection supplied")

	// ErrEmptyJournalTableName is returned when an empty journal table name is configured.
	ErrEmptyJournalTableName = errors.New("journal table name must not be empty")

	// ErrJournalInsertFailed wraps database failures while inserting a journal row.
	ErrJournalInsertFailed = errors.New("journal insert failed")
)

// TransactionManager opens one PostgreSQL transaction per outermost command
// dispatch. It leverages a database adapter and supports customizable logging
// and journal table configuration.
type TransactionManager struct {
	db               adapters.TxStarter
	journalTableName string
	logger           dispatch.Logger
}

// Option defines a functional option for configuring TransactionManager.
type Option func(*TransactionManager) error

// WithJournalTableName sets the journal table name for the TransactionManager.
func WithJournalTableName(tableName string) Option {
	return func(tm *TransactionManager) error {
		if tableName == "" {
			return ErrEmptyJournalTableName
		}

		tm.journalTableName = tableName

		return nil
	}
}

// WithLogger sets the logger for the TransactionManager.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: Journal inserts with execution timing (development use)
// Error level: Critical failures that cause operation failures.
func WithLogger(logger dispatch.Logger) Option {
	return func(tm *TransactionManager) error {
		tm.logger = logger
		return nil
	}
}

// NewTransactionManagerFromPGXPool creates a new TransactionManager using a pgx Pool with optional configuration.
func NewTransactionManagerFromPGXPool(db *pgxpool.Pool, options ...Option) (*TransactionManager, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newTransactionManager(adapters.NewPGXStarter(db), options...)
}

// NewTransactionManagerFromSQLDB creates a new TransactionManager using a sql.DB with optional configuration.
func NewTransactionManagerFromSQLDB(db *sql.DB, options ...Option) (*TransactionManager, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newTransactionManager(adapters.NewSQLStarter(db), options...)
}

// NewTransactionManagerFromSQLX creates a new TransactionManager using a sqlx.DB with optional configuration.
func NewTransactionManagerFromSQLX(db *sqlx.DB, options ...Option) (*TransactionManager, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newTransactionManager(adapters.NewSQLXStarter(db), options...)
}

func newTransactionManager(db adapters.TxStarter, options ...Option) (*TransactionManager, error) {
	tm := &TransactionManager{
		db:               db,
		journalTableName: defaultJournalTableName,
	}

	for _, option := range options {
		if err := option(tm); err != nil {
			return nil, err
		}
	}

	return tm, nil
}

// Begin implements the dispatch.TransactionManager interface. It opens one
// database transaction and returns it as a unit of work supporting command
// journaling.
func (tm *TransactionManager) Begin(ctx context.Context) (dispatch.UnitOfWork, error) {
	tx, err := tm.db.BeginTx(ctx)
	if err != nil {
		return nil, err
	}

	return &unitOfWork{tx: tx, manager: tm}, nil
}

// unitOfWork is one open transaction. Journal rows are written inside it, so
// they commit or roll back together with the command's effects.
type unitOfWork struct {
	tx      adapters.Tx
	manager *TransactionManager
}

// Commit commits the transaction.
func (u *unitOfWork) Commit(ctx context.Context) error {
	return u.tx.Commit(ctx)
}

// Rollback rolls the transaction back.
func (u *unitOfWork) Rollback(ctx context.Context) error {
	return u.tx.Rollback(ctx)
}

// JournalCommand inserts one journal row for the handled command.
func (u *unitOfWork) JournalCommand(ctx context.Context, entry dispatch.JournalEntry) error {
	tm := u.manager

	sqlQuery, buildQueryErr := tm.buildJournalInsertQuery(entry)
	if buildQueryErr != nil {
		if tm.logger != nil {
			tm.logger.Error(logMsgBuildInsertQueryFailed, logAttrError, buildQueryErr.Error())
		}

		return buildQueryErr
	}

	start := time.Now()
	_, execErr := u.tx.Exec(ctx, sqlQuery)
	duration := time.Since(start)

	if execErr != nil {
		if tm.logger != nil {
			tm.logger.Error(logMsgDBExecFailed, logAttrError, execErr.Error(), logAttrRequestType, entry.RequestType)
		}

		return errors.Join(ErrJournalInsertFailed, execErr)
	}

	if tm.logger != nil {
		tm.logger.Debug(logMsgCommandJournaled,
			logAttrRequestType, entry.RequestType,
			logAttrDurationMS, float64(duration.Nanoseconds())/1e6)
	}

	return nil
}

// buildJournalInsertQuery builds the journal insert statement with explicit
// casts so the payload lands as jsonb.
func (tm *TransactionManager) buildJournalInsertQuery(entry dispatch.JournalEntry) (string, error) {
	builder := goqu.Dialect(dialectPostgres)

	insertStmt := builder.
		Insert(tm.journalTableName).
		Cols(colRequestType, colCorrelationID, colOccurredAt, colPayload).
		FromQuery(builder.
			Select(
				goqu.L(castText, entry.RequestType).As(colRequestType),
				goqu.L(castUUID, entry.CorrelationID.String()).As(colCorrelationID),
				goqu.L(castTimestamp, entry.OccurredAt).As(colOccurredAt),
				goqu.L(castJsonb, string(entry.Payload)).As(colPayload),
			))

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		return "", toSQLErr
	}

	return sqlQuery, nil
}

// Ensure TransactionManager implements dispatch.TransactionManager.
var _ dispatch.TransactionManager = (*TransactionManager)(nil)

// Ensure unitOfWork supports command journaling.
var _ dispatch.CommandJournaler = (*unitOfWork)(nil)
