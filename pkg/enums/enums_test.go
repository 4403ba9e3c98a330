package enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseClientStatus(t *testing.T) {
	cases := map[string]ClientStatus{
		"Active":     ClientStatusActive,
		"active":     ClientStatusActive,
		"INACTIVE":   ClientStatusInactive,
		"In Process": ClientStatusInProcess,
		"INPROCESS":  ClientStatusInProcess,
		"in-process": ClientStatusInProcess,
		"pending":    ClientStatusInProcess,
		"eliminated": ClientStatusEliminated,
	}
	for input, want := range cases {
		got, err := ParseClientStatus(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseClientStatus("bogus")
	assert.Error(t, err)
}

func TestParsePaymentMode(t *testing.T) {
	cases := map[string]PaymentMode{
		"Crypto":         PaymentModeCrypto,
		"cryptocurrency": PaymentModeCrypto,
		"Online Banking": PaymentModeOnlineBanking,
		"banking":        PaymentModeOnlineBanking,
		"Ewallet":        PaymentModeEwallet,
		"e-wallet":       PaymentModeEwallet,
		"E_WALLET":       PaymentModeEwallet,
	}
	for input, want := range cases {
		got, err := ParsePaymentMode(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParsePaymentMode("cash")
	assert.Error(t, err)
}

func TestParseOrderStatus(t *testing.T) {
	cases := map[string]OrderStatus{
		"Pending":    OrderStatusPending,
		"Processing": OrderStatusProcessing,
		"inprogress": OrderStatusProcessing,
		"Completed":  OrderStatusCompleted,
		"done":       OrderStatusCompleted,
	}
	for input, want := range cases {
		got, err := ParseOrderStatus(input)
		require.NoError(t, err, "input %q", input)
		assert.Equal(t, want, got, "input %q", input)
	}

	_, err := ParseOrderStatus("shipped")
	assert.Error(t, err)
}

func TestRequestStatusValid(t *testing.T) {
	assert.True(t, RequestStatusPending.IsValid())
	assert.True(t, RequestStatusApproved.IsValid())
	assert.True(t, RequestStatusRejected.IsValid())
	assert.False(t, RequestStatus("held").IsValid())
}
