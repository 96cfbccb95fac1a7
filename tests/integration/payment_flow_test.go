package integration

import (
	"context"
	"testing"

	"github.com/kept7/payment-service/internal/models"
	"github.com/kept7/payment-service/internal/repositories"
	"github.com/kept7/payment-service/testhelpers"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPaymentFlow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	testDB := testhelpers.SetupTestDB(t, "")
	defer testDB.Cleanup()

	ctx := context.Background()
	user := testhelpers.SetupTestUser(t, testDB)

	paymentRepo := repositories.NewPaymentRepository(testDB.Pool)
	linkRepo := repositories.NewPaymentUserRepository(testDB.Pool)

	t.Run("create payment and link", func(t *testing.T) {
		payment := testhelpers.SetupTestPayment(t, testDB, user.Email, models.StatusCreated)

		found, err := paymentRepo.Get(ctx, payment.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, payment.ID, found.ID)
		assert.True(t, payment.Amount.Equal(found.Amount))

		links, err := linkRepo.GetByUser(ctx, user.Email)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, payment.ID, links[0].PaymentID)
	})

	t.Run("duplicate link returns nil", func(t *testing.T) {
		payment := testhelpers.SetupTestPayment(t, testDB, user.Email, models.StatusCreated)

		link, err := linkRepo.Create(ctx, user.Email, payment.ID)
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("link to a missing payment returns nil", func(t *testing.T) {
		link, err := linkRepo.Create(ctx, user.Email, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("status update round trip", func(t *testing.T) {
		payment := testhelpers.SetupTestPayment(t, testDB, user.Email, models.StatusCreated)

		require.NoError(t, paymentRepo.UpdateStatus(ctx, payment.ID, models.StatusPaid))

		found, err := paymentRepo.Get(ctx, payment.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, models.StatusPaid, found.Status)
	})

	t.Run("deleting a payment cascades to its link", func(t *testing.T) {
		payment := testhelpers.SetupTestPayment(t, testDB, user.Email, models.StatusCreated)

		require.NoError(t, paymentRepo.Delete(ctx, payment.ID))

		link, err := linkRepo.Get(ctx, payment.ID)
		require.NoError(t, err)
		assert.Nil(t, link)
	})

	t.Run("user repository duplicate email", func(t *testing.T) {
		userRepo := repositories.NewUserRepository(testDB.Pool)
		dup := &models.User{
			ID:           uuid.New(),
			FirstName:    "Dup",
			LastName:     "User",
			Email:        user.Email,
			PasswordHash: "hash",
		}
		created, err := userRepo.Create(ctx, dup)
		require.NoError(t, err)
		assert.Nil(t, created)
	})
}
