package model

import "time"

// Payment is an append-only record of a completed gateway payment.
// Metadata keeps whatever else the client reported.
type Payment struct {
	ID            string         `json:"id"`
	Email         string         `json:"email"`
	Amount        int64          `json:"amount"`
	Currency      string         `json:"currency"`
	Status        string         `json:"status"`
	TransactionID string         `json:"transactionId"`
	Metadata      map[string]any `json:"metadata,omitempty"`
	CreatedAt     time.Time      `json:"createdAt"`
}
