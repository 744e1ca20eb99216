package repository

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/pkg/errors"
	"go.uber.org/zap"

	"novated-lease/domain"
)

const quoteTable = "quote_records"

const createQuoteTable = `CREATE TABLE IF NOT EXISTS quote_records (
	id         uuid PRIMARY KEY,
	kind       text        NOT NULL,
	quoted_on  date        NOT NULL,
	created_at timestamptz NOT NULL,
	payload    jsonb       NOT NULL
)`

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// PostgresRepository stores records in a single jsonb-backed table.
type PostgresRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewPostgresRepository(ctx context.Context, dsn string, logger *zap.Logger) (*PostgresRepository, error) {
	pool, err := pgxpool.Connect(ctx, dsn)
	if err != nil {
		return nil, errors.Wrap(err, "failed to connect to postgres")
	}
	return &PostgresRepository{pool: pool, logger: logger}, nil
}

// Migrate creates the records table when it is missing.
func (r *PostgresRepository) Migrate(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, createQuoteTable); err != nil {
		return errors.Wrap(err, "failed to create quote_records")
	}
	return nil
}

func insertQuoteSQL(record domain.QuoteRecord) (string, []interface{}, error) {
	return psql.Insert(quoteTable).
		Columns("id", "kind", "quoted_on", "created_at", "payload").
		Values(record.ID, string(record.Kind), record.QuotedOn.String(), record.CreatedAt, string(record.Payload)).
		Suffix("RETURNING id").
		ToSql()
}

func (r *PostgresRepository) Save(ctx context.Context, record domain.QuoteRecord) (domain.QuoteRecord, error) {
	query, args, err := insertQuoteSQL(record)
	if err != nil {
		return domain.QuoteRecord{}, errors.Wrap(err, "failed to build insert")
	}

	var id string
	if err := r.pool.QueryRow(ctx, query, args...).Scan(&id); err != nil {
		return domain.QuoteRecord{}, errors.Wrapf(err, "failed to insert %s record", record.Kind)
	}
	r.logger.Debug("saved record", zap.String("id", id), zap.String("kind", string(record.Kind)))

	record.ID = id
	return record, nil
}

func (r *PostgresRepository) Close() {
	r.pool.Close()
}
