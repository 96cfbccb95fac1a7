package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus is the lifecycle state of a payment.
type PaymentStatus string

const (
	StatusCreated   PaymentStatus = "Created"
	StatusPaid      PaymentStatus = "Paid"
	StatusCancelled PaymentStatus = "Cancelled"
	StatusCompleted PaymentStatus = "Completed"
)

// ParsePaymentStatus converts a string into a known PaymentStatus.
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case StatusCreated, StatusPaid, StatusCancelled, StatusCompleted:
		return PaymentStatus(s), nil
	}
	return "", fmt.Errorf("unknown payment status %q", s)
}

// IsTerminal reports whether no further status changes are accepted.
// Completed is not terminal: the source system only freezes Paid and
// Cancelled payments.
func (s PaymentStatus) IsTerminal() bool {
	return s == StatusPaid || s == StatusCancelled
}

// Payment is a single monetary transaction record.
type Payment struct {
	ID           uuid.UUID       `json:"payment_id" db:"payment_id"`
	CardNumber   string          `json:"card_number" db:"card_number"`
	FirstName    string          `json:"first_name" db:"first_name"`
	LastName     string          `json:"last_name" db:"last_name"`
	SecondName   *string         `json:"second_name" db:"second_name"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CreationTime time.Time       `json:"creation_time" db:"creation_time"`
	Status       PaymentStatus   `json:"status" db:"status"`
}
