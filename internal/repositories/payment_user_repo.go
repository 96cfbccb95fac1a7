package repositories

import (
	"context"
	"errors"

	"github.com/kept7/payment-service/internal/models"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type PaymentUserRepository interface {
	// Create inserts a link row. Returns (nil, nil) on a constraint
	// violation (duplicate link or missing payment).
	Create(ctx context.Context, userEmail string, paymentID uuid.UUID) (*models.PaymentUser, error)
	Get(ctx context.Context, paymentID uuid.UUID) (*models.PaymentUser, error)
	GetAll(ctx context.Context) ([]*models.PaymentUser, error)
	GetByUser(ctx context.Context, userEmail string) ([]*models.PaymentUser, error)
	Delete(ctx context.Context, paymentID uuid.UUID) error
}

type paymentUserRepo struct {
	db DB
}

func NewPaymentUserRepository(db DB) PaymentUserRepository {
	return &paymentUserRepo{db: db}
}

func (r *paymentUserRepo) Create(ctx context.Context, userEmail string, paymentID uuid.UUID) (*models.PaymentUser, error) {
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `INSERT INTO payment_user (user_email, payment_id) VALUES ($1, $2)`
		_, err := tx.Exec(ctx, query, userEmail, paymentID)
		return err
	})
	if isIntegrityViolation(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &models.PaymentUser{UserEmail: userEmail, PaymentID: paymentID}, nil
}

func (r *paymentUserRepo) Get(ctx context.Context, paymentID uuid.UUID) (*models.PaymentUser, error) {
	link := &models.PaymentUser{}
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `SELECT user_email, payment_id FROM payment_user WHERE payment_id = $1`
		return tx.QueryRow(ctx, query, paymentID).Scan(&link.UserEmail, &link.PaymentID)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return link, nil
}

func (r *paymentUserRepo) GetAll(ctx context.Context) ([]*models.PaymentUser, error) {
	query := `SELECT user_email, payment_id FROM payment_user`
	return r.getMany(ctx, query)
}

func (r *paymentUserRepo) GetByUser(ctx context.Context, userEmail string) ([]*models.PaymentUser, error) {
	query := `SELECT user_email, payment_id FROM payment_user WHERE user_email = $1`
	return r.getMany(ctx, query, userEmail)
}

func (r *paymentUserRepo) getMany(ctx context.Context, query string, args ...any) ([]*models.PaymentUser, error) {
	var links []*models.PaymentUser
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		rows, err := tx.Query(ctx, query, args...)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			link := &models.PaymentUser{}
			if err := rows.Scan(&link.UserEmail, &link.PaymentID); err != nil {
				return err
			}
			links = append(links, link)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (r *paymentUserRepo) Delete(ctx context.Context, paymentID uuid.UUID) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `DELETE FROM payment_user WHERE payment_id = $1`
		_, err := tx.Exec(ctx, query, paymentID)
		return err
	})
}
