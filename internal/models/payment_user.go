package models

import (
	"github.com/google/uuid"
)

// PaymentUser links a payment to the email of the user who created it.
// Deleting the payment cascades to its link row.
type PaymentUser struct {
	UserEmail string    `json:"user_email" db:"user_email"`
	PaymentID uuid.UUID `json:"payment_id" db:"payment_id"`
}
