package maintenance

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// Querier is the subset of pgxpool.Pool the postgres prober needs.
type Querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// PostgresProber reads one row from a small table.
type PostgresProber struct {
	db    Querier
	query string
}

// NewPostgresProber probes table with a single-row select.
func NewPostgresProber(db Querier, table string) *PostgresProber {
	if table == "" {
		table = "events"
	}
	return &PostgresProber{
		db:    db,
		query: fmt.Sprintf("SELECT 1 FROM %s LIMIT 1", pgx.Identifier{table}.Sanitize()),
	}
}

func (p *PostgresProber) Probe(ctx context.Context) error {
	var one int
	err := p.db.QueryRow(ctx, p.query).Scan(&one)
	if err == nil || errors.Is(err, pgx.ErrNoRows) {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &BackendError{Code: pgErr.Code, Message: pgErr.Message}
	}
	return err
}
