package repositories

import (
	"context"
	"errors"

	"github.com/kept7/payment-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

type PaymentRepository interface {
	// Create inserts a new payment and fills in the server-assigned
	// creation time. Returns (nil, nil) on a constraint violation.
	Create(ctx context.Context, payment *models.Payment) (*models.Payment, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetAll(ctx context.Context) ([]*models.Payment, error)
	// GetByStatus returns the payment only when it currently has the
	// given status, nil otherwise.
	GetByStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Payment, error)
	// GetByAmountLessThan returns the payment only when its amount is
	// strictly below the given bound, nil otherwise.
	GetByAmountLessThan(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Payment, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type paymentRepo struct {
	db DB
}

func NewPaymentRepository(db DB) PaymentRepository {
	return &paymentRepo{db: db}
}

const paymentColumns = `payment_id, card_number, first_name, last_name, second_name, amount, creation_time, status`

func (r *paymentRepo) Create(ctx context.Context, payment *models.Payment) (*models.Payment, error) {
	created := *payment
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO payment (payment_id, card_number, first_name, last_name, second_name, amount, creation_time, status)
			VALUES ($1, $2, $3, $4, $5, $6, NOW(), $7)
			RETURNING creation_time
		`
		return tx.QueryRow(ctx, query,
			payment.ID, payment.CardNumber, payment.FirstName, payment.LastName,
			payment.SecondName, payment.Amount, payment.Status,
		).Scan(&created.CreationTime)
	})
	if isIntegrityViolation(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *paymentRepo) Get(ctx context.Context, id uuid.UUID) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE payment_id = $1`
	return r.getOne(ctx, query, id)
}

func (r *paymentRepo) GetByStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE payment_id = $1 AND status = $2`
	return r.getOne(ctx, query, id, status)
}

func (r *paymentRepo) GetByAmountLessThan(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (*models.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payment WHERE payment_id = $1 AND amount < $2`
	return r.getOne(ctx, query, id, amount)
}

func (r *paymentRepo) getOne(ctx context.Context, query string, args ...any) (*models.Payment, error) {
	payment := &models.Payment{}
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		return tx.QueryRow(ctx, query, args...).Scan(
			&payment.ID, &payment.CardNumber, &payment.FirstName, &payment.LastName,
			&payment.SecondName, &payment.Amount, &payment.CreationTime, &payment.Status,
		)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return payment, nil
}

func (r *paymentRepo) GetAll(ctx context.Context) ([]*models.Payment, error) {
	var payments []*models.Payment
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT ` + paymentColumns + ` FROM payment ORDER BY creation_time`
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			payment := &models.Payment{}
			if err := rows.Scan(
				&payment.ID, &payment.CardNumber, &payment.FirstName, &payment.LastName,
				&payment.SecondName, &payment.Amount, &payment.CreationTime, &payment.Status,
			); err != nil {
				return err
			}
			payments = append(payments, payment)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return payments, nil
}

func (r *paymentRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `UPDATE payment SET status = $1 WHERE payment_id = $2`
		_, err := tx.Exec(ctx, query, status, id)
		return err
	})
}

func (r *paymentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `DELETE FROM payment WHERE payment_id = $1`
		_, err := tx.Exec(ctx, query, id)
		return err
	})
}
