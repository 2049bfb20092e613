// Package store persists contributions and community error reports. Two
// backends are provided: SQLite for single-node deployments and Postgres
// for shared ones.
package store

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/whoisrunning/civic-research/internal/model"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = eris.New("store: not found")

// ContributionFilter specifies criteria for listing contributions.
type ContributionFilter struct {
	Status model.ContributionStatus `json:"status,omitempty"`
	Limit  int                      `json:"limit,omitempty"`
	Offset int                      `json:"offset,omitempty"`
}

// Store defines the persistence interface.
type Store interface {
	// Contributions
	CreateContribution(ctx context.Context, c *model.Contribution) error
	GetContributionBySession(ctx context.Context, sessionID string) (*model.Contribution, error)
	CancelContributionBySubscription(ctx context.Context, subscriptionID string) error
	ListContributions(ctx context.Context, filter ContributionFilter) ([]model.Contribution, error)
	ContributionStats(ctx context.Context) (*model.ContributionStats, error)

	// Community error reports
	CreateErrorReport(ctx context.Context, r *model.ErrorReport) error
	ListErrorReports(ctx context.Context, limit, offset int) ([]model.ErrorReport, error)

	// Lifecycle
	Migrate(ctx context.Context) error
	Close() error
}
