package payment

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81/webhook"

	"github.com/whoisrunning/civic-research/internal/config"
	"github.com/whoisrunning/civic-research/internal/model"
	"github.com/whoisrunning/civic-research/internal/store"
)

// fakeStore records contribution writes in memory.
type fakeStore struct {
	contributions []model.Contribution
	cancelled     []string
}

func (f *fakeStore) CreateContribution(_ context.Context, c *model.Contribution) error {
	f.contributions = append(f.contributions, *c)
	return nil
}

func (f *fakeStore) GetContributionBySession(context.Context, string) (*model.Contribution, error) {
	return nil, store.ErrNotFound
}

func (f *fakeStore) CancelContributionBySubscription(_ context.Context, subscriptionID string) error {
	if subscriptionID == "sub_unknown" {
		return store.ErrNotFound
	}
	f.cancelled = append(f.cancelled, subscriptionID)
	return nil
}

func (f *fakeStore) ListContributions(context.Context, store.ContributionFilter) ([]model.Contribution, error) {
	return f.contributions, nil
}

func (f *fakeStore) ContributionStats(context.Context) (*model.ContributionStats, error) {
	return &model.ContributionStats{}, nil
}

func (f *fakeStore) CreateErrorReport(context.Context, *model.ErrorReport) error { return nil }

func (f *fakeStore) ListErrorReports(context.Context, int, int) ([]model.ErrorReport, error) {
	return nil, nil
}

func (f *fakeStore) Migrate(context.Context) error { return nil }
func (f *fakeStore) Close() error                  { return nil }

const webhookSecret = "whsec_test_secret"

func newTestService(st store.Store) *Service {
	return NewService(config.StripeConfig{
		SecretKey:     "sk_test_key",
		WebhookSecret: webhookSecret,
		SuccessURL:    "https://whoisrunning.org/payment/success?session_id={CHECKOUT_SESSION_ID}",
		CancelURL:     "https://whoisrunning.org/#chip-in",
	}, st)
}

func signedPayload(t *testing.T, body string) ([]byte, string) {
	t.Helper()
	sp := webhook.GenerateTestSignedPayload(&webhook.UnsignedPayload{
		Payload:   []byte(body),
		Secret:    webhookSecret,
		Timestamp: time.Now(),
	})
	return sp.Payload, sp.Header
}

func TestCreateCheckoutRejectsNonPositiveAmount(t *testing.T) {
	svc := newTestService(&fakeStore{})

	_, err := svc.CreateCheckout(context.Background(), CheckoutRequest{AmountCents: 0})
	assert.Error(t, err)

	_, err = svc.CreateCheckout(context.Background(), CheckoutRequest{AmountCents: -500})
	assert.Error(t, err)
}

func TestHandleWebhookRejectsBadSignature(t *testing.T) {
	svc := newTestService(&fakeStore{})

	err := svc.HandleWebhook(context.Background(), []byte(`{"type":"checkout.session.completed"}`), "t=1,v1=bogus")
	assert.Error(t, err)
}

func TestHandleWebhookCheckoutCompleted(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st)

	body := `{
		"id": "evt_1",
		"api_version": "2025-02-24.acacia",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_live_1",
				"amount_total": 2500,
				"currency": "usd",
				"customer_email": "donor@example.com",
				"mode": "payment"
			}
		}
	}`
	payload, header := signedPayload(t, body)

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	require.Len(t, st.contributions, 1)

	c := st.contributions[0]
	assert.Equal(t, "cs_live_1", c.SessionID)
	assert.Equal(t, int64(2500), c.AmountCents)
	assert.Equal(t, "usd", c.Currency)
	assert.Equal(t, "donor@example.com", c.Email)
	assert.False(t, c.Recurring)
	assert.Equal(t, model.ContributionActive, c.Status)
}

func TestHandleWebhookSubscriptionCheckout(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st)

	body := `{
		"id": "evt_2",
		"api_version": "2025-02-24.acacia",
		"type": "checkout.session.completed",
		"data": {
			"object": {
				"id": "cs_live_2",
				"amount_total": 1000,
				"currency": "usd",
				"mode": "subscription",
				"customer": {"id": "cus_9"},
				"subscription": {"id": "sub_9"},
				"customer_details": {"email": "monthly@example.com"}
			}
		}
	}`
	payload, header := signedPayload(t, body)

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	require.Len(t, st.contributions, 1)

	c := st.contributions[0]
	assert.True(t, c.Recurring)
	assert.Equal(t, "cus_9", c.CustomerID)
	assert.Equal(t, "sub_9", c.SubscriptionID)
	assert.Equal(t, "monthly@example.com", c.Email)
}

func TestHandleWebhookSubscriptionDeleted(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st)

	body := `{
		"id": "evt_3",
		"api_version": "2025-02-24.acacia",
		"type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_9"}}
	}`
	payload, header := signedPayload(t, body)

	require.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	assert.Equal(t, []string{"sub_9"}, st.cancelled)
}

func TestHandleWebhookUnknownSubscriptionTolerated(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st)

	body := `{
		"id": "evt_4",
		"api_version": "2025-02-24.acacia",
		"type": "customer.subscription.deleted",
		"data": {"object": {"id": "sub_unknown"}}
	}`
	payload, header := signedPayload(t, body)

	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	assert.Empty(t, st.cancelled)
}

func TestHandleWebhookIgnoresUnknownEvents(t *testing.T) {
	st := &fakeStore{}
	svc := newTestService(st)

	body := `{"id": "evt_5", "api_version": "2025-02-24.acacia", "type": "charge.refunded", "data": {"object": {}}}`
	payload, header := signedPayload(t, body)

	assert.NoError(t, svc.HandleWebhook(context.Background(), payload, header))
	assert.Empty(t, st.contributions)
}
