package usecase

import (
	"context"
	"errors"
	"testing"

	"jaggery_shop/internal/domain"
	"jaggery_shop/internal/repository"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlaceOrder_Success(t *testing.T) {
	placed := &domain.Order{
		ID:          "order-1",
		UserID:      "user-1",
		TotalAmount: 52500,
		Status:      domain.OrderPending,
		Items: []domain.OrderItem{
			{ProductID: "prod-1", Quantity: 2, Price: 15000},
			{ProductID: "prod-2", Quantity: 1, Price: 22500},
		},
	}
	repo := &mockOrderRepo{PlacedOrder: placed}
	uc := NewOrderUseCase(repo, testLogger())

	order, err := uc.PlaceOrder(context.Background(), "user-1", "  12 Strand Rd, Yangon  ", "COD")

	require.NoError(t, err)
	assert.Equal(t, "order-1", order.ID)
	assert.Equal(t, 1, repo.PlaceCalls)
	// Inputs reach the repository trimmed.
	assert.Equal(t, "12 Strand Rd, Yangon", repo.LastShipping)
	assert.Equal(t, "COD", repo.LastPayment)
}

func TestPlaceOrder_MissingFields(t *testing.T) {
	repo := &mockOrderRepo{}
	uc := NewOrderUseCase(repo, testLogger())

	_, err := uc.PlaceOrder(context.Background(), "user-1", "   ", "COD")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "shippingAddress and paymentMethod required")

	_, err = uc.PlaceOrder(context.Background(), "user-1", "12 Strand Rd", "")
	assert.Error(t, err)

	// Validation failures never reach the repository.
	assert.Equal(t, 0, repo.PlaceCalls)
}

func TestPlaceOrder_EmptyCart(t *testing.T) {
	repo := &mockOrderRepo{PlaceErr: repository.ErrCartEmpty}
	uc := NewOrderUseCase(repo, testLogger())

	_, err := uc.PlaceOrder(context.Background(), "user-1", "12 Strand Rd", "COD")

	assert.ErrorIs(t, err, repository.ErrCartEmpty)
}

func TestPlaceOrder_SerializationConflict(t *testing.T) {
	// A concurrent checkout of the same cart surfaces as a 40001 from
	// postgres; the caller should be told to retry.
	repo := &mockOrderRepo{PlaceErr: &pq.Error{Code: "40001"}}
	uc := NewOrderUseCase(repo, testLogger())

	_, err := uc.PlaceOrder(context.Background(), "user-1", "12 Strand Rd", "COD")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "please retry")
}

func TestPlaceOrder_RetryAfterLostConflict(t *testing.T) {
	// The loser of a concurrent checkout retries and finds the winner
	// already drained the cart.
	repo := &mockOrderRepo{PlaceErr: &pq.Error{Code: "40001"}}
	uc := NewOrderUseCase(repo, testLogger())

	_, err := uc.PlaceOrder(context.Background(), "user-1", "12 Strand Rd", "COD")
	require.Error(t, err)

	repo.PlaceErr = repository.ErrCartEmpty
	_, err = uc.PlaceOrder(context.Background(), "user-1", "12 Strand Rd", "COD")
	assert.ErrorIs(t, err, repository.ErrCartEmpty)
	assert.Equal(t, 2, repo.PlaceCalls)
}

func TestPlaceOrder_RepositoryError(t *testing.T) {
	repo := &mockOrderRepo{PlaceErr: errors.New("connection reset")}
	uc := NewOrderUseCase(repo, testLogger())

	_, err := uc.PlaceOrder(context.Background(), "user-1", "12 Strand Rd", "COD")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to place order")
}

func TestListOrders(t *testing.T) {
	repo := &mockOrderRepo{Orders: []domain.Order{{ID: "order-1"}, {ID: "order-2"}}}
	uc := NewOrderUseCase(repo, testLogger())

	orders, err := uc.ListOrders(context.Background(), "user-1")

	require.NoError(t, err)
	assert.Len(t, orders, 2)

	_, err = uc.ListOrders(context.Background(), "")
	assert.Error(t, err)
}
