package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	_ "modernc.org/sqlite"

	"github.com/whoisrunning/civic-research/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=NORMAL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS contributions (
	id              TEXT PRIMARY KEY,
	session_id      TEXT NOT NULL UNIQUE,
	amount_cents    INTEGER NOT NULL,
	currency        TEXT NOT NULL DEFAULT 'usd',
	email           TEXT,
	recurring       INTEGER NOT NULL DEFAULT 0,
	customer_id     TEXT,
	subscription_id TEXT,
	status          TEXT NOT NULL DEFAULT 'active',
	created_at      DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE TABLE IF NOT EXISTS error_reports (
	id             TEXT PRIMARY KEY,
	candidate_id   TEXT NOT NULL,
	candidate_name TEXT NOT NULL,
	error_type     TEXT NOT NULL,
	description    TEXT NOT NULL,
	email          TEXT,
	source         TEXT,
	created_at     DATETIME NOT NULL DEFAULT (datetime('now'))
);

CREATE INDEX IF NOT EXISTS idx_contributions_status ON contributions(status);
CREATE INDEX IF NOT EXISTS idx_contributions_subscription ON contributions(subscription_id);
CREATE INDEX IF NOT EXISTS idx_error_reports_candidate ON error_reports(candidate_id);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) CreateContribution(ctx context.Context, c *model.Contribution) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = model.ContributionActive
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO contributions (id, session_id, amount_cents, currency, email, recurring, customer_id, subscription_id, status, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.SessionID, c.AmountCents, c.Currency, c.Email, c.Recurring,
		c.CustomerID, c.SubscriptionID, string(c.Status), c.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert contribution")
}

func (s *SQLiteStore) GetContributionBySession(ctx context.Context, sessionID string) (*model.Contribution, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, session_id, amount_cents, currency, email, recurring, customer_id, subscription_id, status, created_at
		 FROM contributions WHERE session_id = ?`, sessionID)
	return scanContribution(row)
}

func (s *SQLiteStore) CancelContributionBySubscription(ctx context.Context, subscriptionID string) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE contributions SET status = ? WHERE subscription_id = ?`,
		string(model.ContributionCancelled), subscriptionID,
	)
	if err != nil {
		return eris.Wrapf(err, "sqlite: cancel contribution %s", subscriptionID)
	}
	return checkRowsAffected(res, "contribution", subscriptionID)
}

func (s *SQLiteStore) ListContributions(ctx context.Context, filter ContributionFilter) ([]model.Contribution, error) {
	query := `SELECT id, session_id, amount_cents, currency, email, recurring, customer_id, subscription_id, status, created_at
		 FROM contributions`
	args := []any{}
	if filter.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, string(filter.Status))
	}
	query += ` ORDER BY created_at DESC`
	if filter.Limit > 0 {
		query += ` LIMIT ? OFFSET ?`
		args = append(args, filter.Limit, filter.Offset)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list contributions")
	}
	defer rows.Close()

	var out []model.Contribution
	for rows.Next() {
		c, err := scanContribution(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate contributions")
}

func (s *SQLiteStore) ContributionStats(ctx context.Context) (*model.ContributionStats, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*), COALESCE(SUM(amount_cents), 0), COALESCE(AVG(amount_cents), 0)
		 FROM contributions WHERE status = ?`, string(model.ContributionActive))

	var stats model.ContributionStats
	if err := row.Scan(&stats.ContributorCount, &stats.TotalRaisedCents, &stats.AverageCents); err != nil {
		return nil, eris.Wrap(err, "sqlite: contribution stats")
	}
	return &stats, nil
}

func (s *SQLiteStore) CreateErrorReport(ctx context.Context, r *model.ErrorReport) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.CreatedAt.IsZero() {
		r.CreatedAt = time.Now().UTC()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO error_reports (id, candidate_id, candidate_name, error_type, description, email, source, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.CandidateID, r.CandidateName, r.ErrorType, r.Description, r.Email, r.Source, r.CreatedAt,
	)
	return eris.Wrap(err, "sqlite: insert error report")
}

func (s *SQLiteStore) ListErrorReports(ctx context.Context, limit, offset int) ([]model.ErrorReport, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, candidate_id, candidate_name, error_type, description, email, source, created_at
		 FROM error_reports ORDER BY created_at DESC LIMIT ? OFFSET ?`, limit, offset)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list error reports")
	}
	defer rows.Close()

	var out []model.ErrorReport
	for rows.Next() {
		var r model.ErrorReport
		var email, source sql.NullString
		if err := rows.Scan(&r.ID, &r.CandidateID, &r.CandidateName, &r.ErrorType, &r.Description, &email, &source, &r.CreatedAt); err != nil {
			return nil, eris.Wrap(err, "sqlite: scan error report")
		}
		r.Email = email.String
		r.Source = source.String
		out = append(out, r)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: iterate error reports")
}

// helpers

func checkRowsAffected(res sql.Result, entity, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return eris.Wrap(err, "rows affected")
	}
	if n == 0 {
		return eris.Wrapf(ErrNotFound, "%s %s", entity, id)
	}
	return nil
}

type scannable interface {
	Scan(dest ...any) error
}

func scanContribution(row scannable) (*model.Contribution, error) {
	var c model.Contribution
	var email, customerID, subscriptionID sql.NullString

	err := row.Scan(&c.ID, &c.SessionID, &c.AmountCents, &c.Currency, &email,
		&c.Recurring, &customerID, &subscriptionID, &c.Status, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: scan contribution")
	}

	c.Email = email.String
	c.CustomerID = customerID.String
	c.SubscriptionID = subscriptionID.String
	return &c, nil
}
