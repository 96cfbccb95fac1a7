package repositories

import (
	"context"
	"errors"

	"github.com/kept7/payment-service/internal/models"

	"github.com/jackc/pgx/v5"
)

type UserRepository interface {
	// Create inserts a new user. Returns (nil, nil) when the email is
	// already taken; callers rely on that to detect duplicates.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdatePassword(ctx context.Context, email, passwordHash string) error
	Delete(ctx context.Context, email string) error
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, user *models.User) (*models.User, error) {
	created := *user
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			INSERT INTO auth_data (id, first_name, last_name, user_email, user_password_hash)
			VALUES ($1, $2, $3, $4, $5)
		`
		_, err := tx.Exec(ctx, query, user.ID, user.FirstName, user.LastName, user.Email, user.PasswordHash)
		return err
	})
	if isIntegrityViolation(err) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &created, nil
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	user := &models.User{}
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, first_name, last_name, user_email, user_password_hash
			FROM auth_data
			WHERE user_email = $1
		`
		return tx.QueryRow(ctx, query, email).
			Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash)
	})
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *userRepo) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	err := withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `
			SELECT id, first_name, last_name, user_email, user_password_hash
			FROM auth_data
			ORDER BY user_email
		`
		rows, err := tx.Query(ctx, query)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			user := &models.User{}
			if err := rows.Scan(&user.ID, &user.FirstName, &user.LastName, &user.Email, &user.PasswordHash); err != nil {
				return err
			}
			users = append(users, user)
		}
		return rows.Err()
	})
	if err != nil {
		return nil, err
	}
	return users, nil
}

func (r *userRepo) UpdatePassword(ctx context.Context, email, passwordHash string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `UPDATE auth_data SET user_password_hash = $1 WHERE user_email = $2`
		_, err := tx.Exec(ctx, query, passwordHash, email)
		return err
	})
}

func (r *userRepo) Delete(ctx context.Context, email string) error {
	return withTx(ctx, r.db, func(tx pgx.Tx) error {
		query := `DELETE FROM auth_data WHERE user_email = $1`
		_, err := tx.Exec(ctx, query, email)
		return err
	})
}
