package store

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"

	"github.com/whoisrunning/civic-research/internal/model"
)

// Pool is the subset of pgxpool.Pool the store uses. pgxmock satisfies it
// in tests.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Ping(ctx context.Context) error
	Close()
}

// PostgresStore implements Store using pgxpool.
type PostgresStore struct {
	pool Pool
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}
	pgxCfg.MaxConns = 10
	pgxCfg.MinConns = 2
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS contributions (
	id              TEXT PRIMARY KEY,
	session_id      TEXT NOT NULL UNIQUE,
	amount_cents    BIGINT NOT NULL,
	currency        TEXT NOT NULL DEFAULT 'usd',
	email           TEXT,
	recurring       BOOLEAN NOT NULL DEFAULT false,
	customer_id     TEXT,
	subscription_id TEXT,
	status          TEXT NOT NULL DEFAULT 'active',
	created_at      TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS error_reports (
	id             TEXT PRIMARY KEY,
	candidate_id   TEXT NOT NULL,
	candidate_name TEXT NOT NULL,
	error_type     TEXT NOT NULL,
	description    TEXT NOT NULL,
	email          TEXT,
	source         TEXT,
	created_at     TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_contributions_status ON contributions(status);
CREATE INDEX IF NOT EXISTS idx_contributions_subscription ON contributions(subscription_id);
CREATE INDEX IF NOT EXISTS idx_error_reports_candidate ON error_reports(candidate_id);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) CreateContribution(ctx context.Context, c *model.Contribution) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = model.ContributionActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO contributions (id, session_id, amount_cents, currency, email, recurring, customer_id, subscription_id, status, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		c.ID, c.SessionID, c.AmountCents, c.Currency, c.Email, c.Recurring,
		c.CustomerID, c.SubscriptionID, string(c.Status), c.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert contribution")
}

func (s *PostgresStore) GetContributionBySession(ctx context.Context, sessionID string) (*model.Contribution, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT id, session_id, amount_cents, currency, email, recurring, customer_id, subscription_id, status, created_at
		 FROM contributions WHERE session_id = $1`, sessionID)

	c, err := scanPgContribution(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "postgres: get contribution")
	}
	return c, nil
}

func (s *PostgresStore) CancelContributionBySubscription(ctx context.Context, subscriptionID string) error {
	tag, err := s.pool.Exec(ctx,
		`UPDATE contributions SET status = $1 WHERE subscription_id = $2`,
		string(model.ContributionCancelled), subscriptionID,
	)
	if err != nil {
		return eris.Wrapf(err, "postgres: cancel contribution %s", subscriptionID)
	}
	if tag.RowsAffected() == 0 {
		return eris.Wrapf(ErrNotFound, "contribution %s", subscriptionID)
	}
	return nil
}

func (s *PostgresStore) ListContributions(ctx context.Context, filter ContributionFilter) ([]model.Contribution, error) {
	query := `SELECT id, session_id, amount_cents, currency, email, recurring, customer_id, subscription_id, status, created_at
		 FROM contributions`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = $1`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ` + placeholder(len(args)+1) + ` OFFSET ` + placeholder(len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list contributions")
	}
	defer rows.Close()

	var out []model.Contribution
	for rows.Next() {
		c, err := scanPgContribution(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres: scan contribution")
		}
		out = append(out, *c)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate contributions")
}

func (s *PostgresStore) ContributionStats(ctx context.Context) (*model.ContributionStats, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount_cents), 0), COALESCE(AVG(amount_cents), 0)
		 FROM contributions WHERE status = $1`, string(model.ContributionActive))

	var stats model.ContributionStats
	if err := row.Scan(&stats.ContributorCount, &stats.TotalRaisedCents, &stats.AverageCents); err != nil {
		return nil, eris.Wrap(err, "postgres: contribution stats")
	}
	return &stats, nil
}

func (s *PostgresStore) CreateErrorReport(ctx context.Context, r *model.ErrorReport) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO error_reports (id, candidate_id, candidate_name, error_type, description, email, source, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.CandidateID, r.CandidateName, r.ErrorType, r.Description, r.Email, r.Source, r.CreatedAt,
	)
	return eris.Wrap(err, "postgres: insert error report")
}

func (s *PostgresStore) ListErrorReports(ctx context.Context, limit, offset int) ([]model.ErrorReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.pool.Query(ctx,
		`SELECT id, candidate_id, candidate_name, error_type, description, email, source, created_at
		 FROM error_reports ORDER BY created_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list error reports")
	}
	defer rows.Close()

	var out []model.ErrorReport
	for rows.Next() {
		var r model.ErrorReport
		var email, source *string
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.CandidateName, &r.ErrorType, &r.Description, &email, &source, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "postgres: scan error report")
		}
		if email != nil {
			r.Email = *email
		}
		if source != nil {
			r.Source = *source
		}
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "postgres: iterate error reports")
}

func placeholder(n int) string {
	return "$" + strconv.Itoa(n)
}

func scanPgContribution(row pgx.Row) (*model.Contribution, error) {
	var c model.Contribution
	var email, customerID, subscriptionID *string
	var status string

	err := row.Scan(&c.ID, &c.SessionID, &c.AmountCents, &c.Currency, &email,
		&c.Recurring, &customerID, &subscriptionID, &status, &c.CreatedAt)
	if err != nil {
		return nil, err
	}

	c.Status = model.ContributionStatus(status)
	if email != nil {
		c.Email = *email
	}
	if customerID != nil {
		c.CustomerID = *customerID
	}
	if subscriptionID != nil {
		c.SubscriptionID = *subscriptionID
	}
	return &c, nil
}
