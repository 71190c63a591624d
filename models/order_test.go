package models

import (
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotal(t *testing.T) {
	o := &Order{Items: []OrderItem{
		{Quantity: 2, Price: 1999},
		{Quantity: 1, Price: 500},
	}}
	assert.Equal(t, int64(4498), o.ComputeTotal())
}

func TestOrderValidateBuyer(t *testing.T) {
	uid := uuid.New()
	items := []OrderItem{{Quantity: 1, Price: 100}}

	tests := []struct {
		name    string
		order   Order
		wantErr bool
	}{
		{"user only", Order{UserID: &uid, Items: items, TotalAmount: 100}, false},
		{"guest only", Order{GuestEmail: "a@b.co", Items: items, TotalAmount: 100}, false},
		{"both", Order{UserID: &uid, GuestEmail: "a@b.co", Items: items, TotalAmount: 100}, true},
		{"neither", Order{Items: items, TotalAmount: 100}, true},
		{"nil uuid counts as no user", Order{UserID: &uuid.Nil, Items: items, TotalAmount: 100}, true},
		{"no lines", Order{GuestEmail: "a@b.co"}, true},
		{"total mismatch", Order{GuestEmail: "a@b.co", Items: items, TotalAmount: 99}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.order.Validate()
			if tt.wantErr {
				var verr *ValidationError
				assert.ErrorAs(t, err, &verr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestParseOrderStatus(t *testing.T) {
	s, err := ParseOrderStatus("shipped")
	require.NoError(t, err)
	assert.Equal(t, OrderStatusShipped, s)

	_, err = ParseOrderStatus("Lost")
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, CheckTransition(OrderStatusDelivered, OrderStatusPending, false))
	assert.NoError(t, CheckTransition(OrderStatusPending, OrderStatusShipped, true))
	assert.NoError(t, CheckTransition(OrderStatusCancelled, OrderStatusCancelled, true))
	assert.Error(t, CheckTransition(OrderStatusCancelled, OrderStatusProcessing, true))
	assert.Error(t, CheckTransition(OrderStatusDelivered, OrderStatusCancelled, true))
}

func TestNewOrderNumber(t *testing.T) {
	at := time.UnixMilli(1700000000123)
	n := NewOrderNumber(at)
	assert.Regexp(t, regexp.MustCompile(`^BB-1700000000123-[0-9A-F]{9}$`), n)
	assert.NotEqual(t, n, NewOrderNumber(at))
}
