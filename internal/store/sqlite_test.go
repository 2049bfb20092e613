package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/whoisrunning/civic-research/internal/model"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, s.Migrate(context.Background()))
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteContributionRoundTrip(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	c := &model.Contribution{
		SessionID:   "cs_test_123",
		AmountCents: 2500,
		Currency:    "usd",
		Email:       "donor@example.com",
	}
	require.NoError(t, s.CreateContribution(ctx, c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, model.ContributionActive, c.Status)
	assert.False(t, c.CreatedAt.IsZero())

	got, err := s.GetContributionBySession(ctx, "cs_test_123")
	require.NoError(t, err)
	assert.Equal(t, c.ID, got.ID)
	assert.Equal(t, int64(2500), got.AmountCents)
	assert.Equal(t, "donor@example.com", got.Email)
	assert.False(t, got.Recurring)
}

func TestSQLiteGetContributionNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetContributionBySession(context.Background(), "cs_missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteDuplicateSessionRejected(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateContribution(ctx, &model.Contribution{SessionID: "cs_dup", AmountCents: 100, Currency: "usd"}))
	err := s.CreateContribution(ctx, &model.Contribution{SessionID: "cs_dup", AmountCents: 200, Currency: "usd"})
	assert.Error(t, err)
}

func TestSQLiteCancelBySubscription(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.CreateContribution(ctx, &model.Contribution{
		SessionID:      "cs_recur",
		AmountCents:    1000,
		Currency:       "usd",
		Recurring:      true,
		SubscriptionID: "sub_123",
	}))

	require.NoError(t, s.CancelContributionBySubscription(ctx, "sub_123"))

	got, err := s.GetContributionBySession(ctx, "cs_recur")
	require.NoError(t, err)
	assert.Equal(t, model.ContributionCancelled, got.Status)

	assert.ErrorIs(t, s.CancelContributionBySubscription(ctx, "sub_missing"), ErrNotFound)
}

func TestSQLiteListContributions(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for _, c := range []*model.Contribution{
		{SessionID: "cs_1", AmountCents: 500, Currency: "usd"},
		{SessionID: "cs_2", AmountCents: 1500, Currency: "usd", Recurring: true, SubscriptionID: "sub_a"},
		{SessionID: "cs_3", AmountCents: 2500, Currency: "usd"},
	} {
		require.NoError(t, s.CreateContribution(ctx, c))
	}
	require.NoError(t, s.CancelContributionBySubscription(ctx, "sub_a"))

	all, err := s.ListContributions(ctx, ContributionFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)

	active, err := s.ListContributions(ctx, ContributionFilter{Status: model.ContributionActive})
	require.NoError(t, err)
	assert.Len(t, active, 2)

	limited, err := s.ListContributions(ctx, ContributionFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestSQLiteContributionStats(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// Empty ledger yields zeroes rather than an error.
	stats, err := s.ContributionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, stats.ContributorCount)
	assert.Equal(t, int64(0), stats.TotalRaisedCents)

	require.NoError(t, s.CreateContribution(ctx, &model.Contribution{SessionID: "cs_1", AmountCents: 1000, Currency: "usd"}))
	require.NoError(t, s.CreateContribution(ctx, &model.Contribution{SessionID: "cs_2", AmountCents: 3000, Currency: "usd"}))
	require.NoError(t, s.CreateContribution(ctx, &model.Contribution{
		SessionID: "cs_3", AmountCents: 9000, Currency: "usd", SubscriptionID: "sub_x",
	}))
	require.NoError(t, s.CancelContributionBySubscription(ctx, "sub_x"))

	// Cancelled contributions are excluded.
	stats, err = s.ContributionStats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.ContributorCount)
	assert.Equal(t, int64(4000), stats.TotalRaisedCents)
	assert.InDelta(t, 2000, stats.AverageCents, 0.01)
}

func TestSQLiteErrorReports(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	r := &model.ErrorReport{
		CandidateID:   "jane-doe",
		CandidateName: "Jane Doe",
		ErrorType:     "incorrect_party",
		Description:   "Listed as Independent but is a registered Democrat.",
		Email:         "reader@example.com",
	}
	require.NoError(t, s.CreateErrorReport(ctx, r))
	assert.NotEmpty(t, r.ID)

	reports, err := s.ListErrorReports(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, reports, 1)
	assert.Equal(t, "jane-doe", reports[0].CandidateID)
	assert.Equal(t, "incorrect_party", reports[0].ErrorType)
}
