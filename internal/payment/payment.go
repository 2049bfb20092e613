// Package payment handles donation checkout and the payment processor's
// webhook callbacks, recording completed contributions in the store.
package payment

import (
	"context"
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
	"github.com/stripe/stripe-go/v81/webhook"
	"go.uber.org/zap"

	"github.com/whoisrunning/civic-research/internal/config"
	"github.com/whoisrunning/civic-research/internal/model"
	"github.com/whoisrunning/civic-research/internal/store"
)

const (
	productName        = "Support WhoIsRunning.org"
	productDescription = "Keep democracy free, accurate, and accessible for everyone"
)

// Service creates checkout sessions and processes webhook events.
type Service struct {
	api   *client.API
	store store.Store
	cfg   config.StripeConfig
}

// NewService creates a payment Service.
func NewService(cfg config.StripeConfig, st store.Store) *Service {
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &Service{api: api, store: st, cfg: cfg}
}

// CheckoutRequest is the donation form input.
type CheckoutRequest struct {
	// AmountCents is the donation amount in cents.
	AmountCents int64 `json:"amount_cents"`

	// Recurring selects a monthly subscription instead of a one-off payment.
	Recurring bool `json:"recurring"`
}

// Checkout is the created session handed back to the donation form.
type Checkout struct {
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// CreateCheckout opens a hosted checkout session for a donation.
func (s *Service) CreateCheckout(ctx context.Context, req CheckoutRequest) (*Checkout, error) {
	if req.AmountCents <= 0 {
		return nil, eris.New("payment: amount must be positive")
	}

	priceData := &stripe.CheckoutSessionLineItemPriceDataParams{
		Currency:   stripe.String("usd"),
		UnitAmount: stripe.Int64(req.AmountCents),
		ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name:        stripe.String(productName),
			Description: stripe.String(productDescription),
		},
	}
	mode := stripe.CheckoutSessionModePayment
	contributorType := "one-time"
	if req.Recurring {
		priceData.Recurring = &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
			Interval: stripe.String("month"),
		}
		mode = stripe.CheckoutSessionModeSubscription
		contributorType = "monthly"
	}

	params := &stripe.CheckoutSessionParams{
		Params:             stripe.Params{Context: ctx},
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(mode)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{{
			PriceData: priceData,
			Quantity:  stripe.Int64(1),
		}},
		SuccessURL: stripe.String(s.cfg.SuccessURL),
		CancelURL:  stripe.String(s.cfg.CancelURL),
	}
	params.AddMetadata("contributor_type", contributorType)

	sess, err := s.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, eris.Wrap(err, "payment: create checkout session")
	}

	zap.L().Info("checkout session created",
		zap.String("session_id", sess.ID),
		zap.Int64("amount_cents", req.AmountCents),
		zap.Bool("recurring", req.Recurring))

	return &Checkout{SessionID: sess.ID, URL: sess.URL}, nil
}

// HandleWebhook verifies and processes one webhook delivery. With no
// webhook secret configured the payload is trusted unverified; that is a
// development convenience and logs loudly.
func (s *Service) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	var event stripe.Event
	if s.cfg.WebhookSecret == "" {
		zap.L().Warn("no webhook secret configured, skipping signature verification")
		if err := json.Unmarshal(payload, &event); err != nil {
			return eris.Wrap(err, "payment: parse webhook event")
		}
	} else {
		var err error
		event, err = webhook.ConstructEvent(payload, signature, s.cfg.WebhookSecret)
		if err != nil {
			return eris.Wrap(err, "payment: verify webhook signature")
		}
	}

	switch event.Type {
	case "checkout.session.completed":
		return s.handleCheckoutCompleted(ctx, event)
	case "customer.subscription.deleted":
		return s.handleSubscriptionDeleted(ctx, event)
	case "invoice.payment_succeeded":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return eris.Wrap(err, "payment: parse invoice")
		}
		zap.L().Info("recurring payment succeeded",
			zap.String("invoice_id", invoice.ID),
			zap.Int64("amount_cents", invoice.AmountPaid))
		return nil
	case "invoice.payment_failed":
		var invoice stripe.Invoice
		if err := json.Unmarshal(event.Data.Raw, &invoice); err != nil {
			return eris.Wrap(err, "payment: parse invoice")
		}
		zap.L().Warn("recurring payment failed", zap.String("invoice_id", invoice.ID))
		return nil
	default:
		zap.L().Debug("unhandled webhook event", zap.String("type", string(event.Type)))
		return nil
	}
}

func (s *Service) handleCheckoutCompleted(ctx context.Context, event stripe.Event) error {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &sess); err != nil {
		return eris.Wrap(err, "payment: parse checkout session")
	}

	c := &model.Contribution{
		SessionID:   sess.ID,
		AmountCents: sess.AmountTotal,
		Currency:    string(sess.Currency),
		Email:       sessionEmail(&sess),
		Recurring:   sess.Mode == stripe.CheckoutSessionModeSubscription,
		Status:      model.ContributionActive,
	}
	if sess.Customer != nil {
		c.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		c.SubscriptionID = sess.Subscription.ID
	}

	if err := s.store.CreateContribution(ctx, c); err != nil {
		return eris.Wrap(err, "payment: record contribution")
	}

	zap.L().Info("contribution recorded",
		zap.String("session_id", sess.ID),
		zap.Int64("amount_cents", c.AmountCents),
		zap.Bool("recurring", c.Recurring))
	return nil
}

func (s *Service) handleSubscriptionDeleted(ctx context.Context, event stripe.Event) error {
	var sub stripe.Subscription
	if err := json.Unmarshal(event.Data.Raw, &sub); err != nil {
		return eris.Wrap(err, "payment: parse subscription")
	}

	err := s.store.CancelContributionBySubscription(ctx, sub.ID)
	if eris.Is(err, store.ErrNotFound) {
		// Cancellation for a subscription we never recorded. Nothing to do.
		zap.L().Warn("cancellation for unknown subscription", zap.String("subscription_id", sub.ID))
		return nil
	}
	if err != nil {
		return eris.Wrap(err, "payment: cancel contribution")
	}

	zap.L().Info("subscription cancelled", zap.String("subscription_id", sub.ID))
	return nil
}

func sessionEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerEmail != "" {
		return sess.CustomerEmail
	}
	if sess.CustomerDetails != nil {
		return sess.CustomerDetails.Email
	}
	return ""
}
