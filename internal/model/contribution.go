package model

import "time"

// ContributionStatus tracks the lifecycle of a donation.
type ContributionStatus string

const (
	ContributionActive    ContributionStatus = "active"
	ContributionCancelled ContributionStatus = "cancelled"
)

// Contribution is one donation recorded from the payment processor.
type Contribution struct {
	ID             string             `json:"id"`
	SessionID      string             `json:"session_id"`
	AmountCents    int64              `json:"amount_cents"`
	Currency       string             `json:"currency"`
	Email          string             `json:"email,omitempty"`
	Recurring      bool               `json:"recurring"`
	CustomerID     string             `json:"customer_id,omitempty"`
	SubscriptionID string             `json:"subscription_id,omitempty"`
	Status         ContributionStatus `json:"status"`
	CreatedAt      time.Time          `json:"created_at"`
}

// ContributionStats aggregates the active contribution ledger.
type ContributionStats struct {
	ContributorCount int     `json:"contributor_count"`
	TotalRaisedCents int64   `json:"total_raised_cents"`
	AverageCents     float64 `json:"average_cents"`
}

// ErrorReport is a community-submitted correction for candidate data.
type ErrorReport struct {
	ID            string    `json:"id"`
	CandidateID   string    `json:"candidate_id"`
	CandidateName string    `json:"candidate_name"`
	ErrorType     string    `json:"error_type"`
	Description   string    `json:"description"`
	Email         string    `json:"email,omitempty"`
	Source        string    `json:"source,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}
