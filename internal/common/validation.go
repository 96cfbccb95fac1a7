package common

import (
	"fmt"
	"math"
	"net/mail"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

const (
	MaxFirstNameLen = 32
	MaxLastNameLen  = 64
	MaxEmailLen     = 255
	MinPasswordLen  = 4
)

// ValidateCardNumber coerces a bound card_number value into a 4-digit string.
// JSON may deliver it as a string ("1234") or a number (1234); both are
// accepted, anything non-digit or of the wrong length is not.
func ValidateCardNumber(val any) (string, error) {
	var s string
	switch v := val.(type) {
	case string:
		s = v
	case float64:
		if v < 0 || v != math.Trunc(v) {
			return "", fmt.Errorf("incorrect card number")
		}
		s = strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		if v < 0 {
			return "", fmt.Errorf("incorrect card number")
		}
		s = strconv.Itoa(v)
	default:
		return "", fmt.Errorf("incorrect card number")
	}

	if len(s) != 4 {
		return "", fmt.Errorf("card number must be exactly 4 digits")
	}
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return "", fmt.Errorf("incorrect card number")
		}
	}
	return s, nil
}

// ValidatePaymentName checks a payment name field: Latin letters and hyphens
// only, every letter uppercase, at least one letter present.
func ValidatePaymentName(val, fieldName string, maxLen int) error {
	if val == "" {
		return fmt.Errorf("%s must be non-empty", fieldName)
	}
	if len(val) > maxLen {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLen)
	}

	letters := 0
	for _, ch := range val {
		switch {
		case ch >= 'A' && ch <= 'Z':
			letters++
		case ch == '-':
		default:
			return fmt.Errorf("%s contains invalid characters", fieldName)
		}
	}
	if letters == 0 {
		return fmt.Errorf("%s must contain at least one letter", fieldName)
	}
	return nil
}

// ValidateUserName checks a registration name field: letters and hyphens
// only, any case, at least one letter present.
func ValidateUserName(val, fieldName string, maxLen int) error {
	if val == "" {
		return fmt.Errorf("%s must be non-empty", fieldName)
	}
	if len(val) > maxLen {
		return fmt.Errorf("%s cannot exceed %d characters", fieldName, maxLen)
	}

	letters := 0
	for _, ch := range val {
		switch {
		case ch >= 'A' && ch <= 'Z', ch >= 'a' && ch <= 'z':
			letters++
		case ch == '-':
		default:
			return fmt.Errorf("%s contains invalid characters", fieldName)
		}
	}
	if letters == 0 {
		return fmt.Errorf("%s must contain at least one letter", fieldName)
	}
	return nil
}

// ValidateEmail checks address syntax and the storage length limit.
func ValidateEmail(email string) error {
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("user_email is required")
	}
	if len(email) > MaxEmailLen {
		return fmt.Errorf("user_email cannot exceed %d characters", MaxEmailLen)
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return fmt.Errorf("user_email is not a valid email address")
	}
	return nil
}

// ValidatePassword enforces the minimum plaintext length checked before
// any hashing happens.
func ValidatePassword(password string) error {
	if len(password) < MinPasswordLen {
		return fmt.Errorf("user_password must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// ValidateAmount enforces the numeric(12, 3) column shape: positive, at
// most 3 decimal places, integer part within 9 digits.
func ValidateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return fmt.Errorf("amount must be greater than zero")
	}
	if amount.Exponent() < -3 {
		return fmt.Errorf("amount cannot have more than 3 decimal places")
	}
	if !amount.LessThan(decimal.New(1, 9)) {
		return fmt.Errorf("amount exceeds the maximum of 12 total digits")
	}
	return nil
}
