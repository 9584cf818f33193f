package service

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"

	"newshub/internal/model"
	"newshub/internal/payment"
	"newshub/internal/repository"
)

// RecordPaymentInput is what the client reports after the gateway confirmed a payment.
type RecordPaymentInput struct {
	Amount        int64          `json:"amount"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transactionId"`
	Metadata      map[string]any `json:"metadata"`
}

type PaymentService interface {
	// CreateIntent opens a gateway payment for price (major units) and returns its client secret.
	CreateIntent(ctx context.Context, price float64) (string, error)
	// Record appends a payment made by email.
	Record(ctx context.Context, email string, in RecordPaymentInput) (*model.Payment, error)
}

type paymentService struct {
	gateway  payment.Gateway
	repo     repository.PaymentRepository
	currency string
	now      func() time.Time
}

func NewPaymentService(gateway payment.Gateway, repo repository.PaymentRepository, currency string) PaymentService {
	return &paymentService{gateway: gateway, repo: repo, currency: strings.ToLower(currency), now: time.Now}
}

func (s *paymentService) CreateIntent(ctx context.Context, price float64) (string, error) {
	if math.IsNaN(price) || math.IsInf(price, 0) || price <= 0 {
		return "", invalid("price must be greater than zero")
	}
	amount := int64(math.Round(price * 100))
	if amount < 1 {
		return "", invalid("price must be at least one cent")
	}

	intent, err := s.gateway.CreatePaymentIntent(ctx, amount, s.currency)
	if err != nil {
		return "", err
	}
	return intent.ClientSecret, nil
}

func (s *paymentService) Record(ctx context.Context, email string, in RecordPaymentInput) (*model.Payment, error) {
	if in.Amount <= 0 {
		return nil, invalid("amount must be greater than zero")
	}
	if strings.TrimSpace(in.TransactionID) == "" {
		return nil, invalid("transactionId is required")
	}
	currency := strings.ToLower(strings.TrimSpace(in.Currency))
	if currency == "" {
		currency = s.currency
	}
	status := strings.TrimSpace(in.Status)
	if status == "" {
		status = "succeeded"
	}

	p := &model.Payment{
		ID:            uuid.NewString(),
		Email:         canonicalEmail(email),
		Amount:        in.Amount,
		Currency:      currency,
		Status:        status,
		TransactionID: strings.TrimSpace(in.TransactionID),
		Metadata:      in.Metadata,
		CreatedAt:     s.now().UTC(),
	}
	stored, err := s.repo.Create(ctx, p)
	if err != nil {
		return nil, fmt.Errorf("record payment: %w", err)
	}
	return stored, nil
}
