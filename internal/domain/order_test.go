package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCanTransitionOrder(t *testing.T) {
	allowed := []struct{ from, to OrderStatus }{
		{OrderPending, OrderConfirmed},
		{OrderPending, OrderCancelled},
		{OrderConfirmed, OrderShipped},
		{OrderConfirmed, OrderCancelled},
		{OrderShipped, OrderDelivered},
	}
	for _, tc := range allowed {
		assert.True(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s should be allowed", tc.from, tc.to)
	}

	denied := []struct{ from, to OrderStatus }{
		{OrderPending, OrderShipped},
		{OrderPending, OrderDelivered},
		{OrderShipped, OrderCancelled},
		{OrderDelivered, OrderPending},
		{OrderDelivered, OrderCancelled},
		{OrderCancelled, OrderConfirmed},
	}
	for _, tc := range denied {
		assert.False(t, CanTransitionOrder(tc.from, tc.to), "%s -> %s should be rejected", tc.from, tc.to)
	}
}

func TestTerminalOrderStatusesHaveNoExits(t *testing.T) {
	for _, terminal := range []OrderStatus{OrderDelivered, OrderCancelled} {
		for _, to := range []OrderStatus{OrderPending, OrderConfirmed, OrderShipped, OrderDelivered, OrderCancelled} {
			assert.False(t, CanTransitionOrder(terminal, to), "%s is terminal", terminal)
		}
	}
}

func TestIsValidOrderStatus(t *testing.T) {
	assert.True(t, IsValidOrderStatus(OrderPending))
	assert.True(t, IsValidOrderStatus(OrderDelivered))
	assert.False(t, IsValidOrderStatus("pending"))
	assert.False(t, IsValidOrderStatus(""))
	assert.False(t, IsValidOrderStatus("RETURNED"))
}
