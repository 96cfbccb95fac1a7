package testhelpers

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/kept7/payment-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// TestDB holds the database connection for integration tests.
type TestDB struct {
	Pool    *pgxpool.Pool
	Cleanup func() error
}

// SetupTestDB connects to the database named by TEST_DATABASE_URL. Tests
// calling it should skip themselves when the variable is unset.
func SetupTestDB(t *testing.T, connString string) *TestDB {
	t.Helper()

	if connString == "" {
		connString = os.Getenv("TEST_DATABASE_URL")
		if connString == "" {
			t.Skip("TEST_DATABASE_URL is not set")
		}
	}

	pool, err := pgxpool.New(context.Background(), connString)
	if err != nil {
		t.Fatalf("Failed to connect to test database: %v", err)
	}

	return &TestDB{
		Pool: pool,
		Cleanup: func() error {
			pool.Close()
			return nil
		},
	}
}

// SetupTestUser inserts a user row and returns it. The email is unique
// per call so tests do not collide.
func SetupTestUser(t *testing.T, db *TestDB) *models.User {
	t.Helper()

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    "Test",
		LastName:     "User",
		Email:        uuid.NewString() + "@test.local",
		PasswordHash: "$argon2id$v=19$m=32768,t=2,p=8$dGVzdHNhbHQ$dGVzdGtleQ",
	}

	query := `
		INSERT INTO auth_data (id, first_name, last_name, user_email, user_password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash)
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM auth_data WHERE user_email = $1`, user.Email)
	})
	return user
}

// SetupTestPayment inserts a payment row linked to the given user.
func SetupTestPayment(t *testing.T, db *TestDB, userEmail string, status models.PaymentStatus) *models.Payment {
	t.Helper()

	payment := &models.Payment{
		ID:           uuid.New(),
		CardNumber:   "1234",
		FirstName:    "TEST",
		LastName:     "PAYER",
		Amount:       decimal.RequireFromString("99.990"),
		CreationTime: time.Now().UTC(),
		Status:       status,
	}

	query := `
		INSERT INTO payment (payment_id, card_number, first_name, last_name, second_name, amount, creation_time, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`
	_, err := db.Pool.Exec(context.Background(), query,
		payment.ID, payment.CardNumber, payment.FirstName, payment.LastName,
		payment.SecondName, payment.Amount, payment.CreationTime, payment.Status)
	if err != nil {
		t.Fatalf("Failed to create test payment: %v", err)
	}

	_, err = db.Pool.Exec(context.Background(),
		`INSERT INTO payment_user (user_email, payment_id) VALUES ($1, $2)`, userEmail, payment.ID)
	if err != nil {
		t.Fatalf("Failed to create test payment-user relation: %v", err)
	}

	t.Cleanup(func() {
		_, _ = db.Pool.Exec(context.Background(), `DELETE FROM payment WHERE payment_id = $1`, payment.ID)
	})
	return payment
}
