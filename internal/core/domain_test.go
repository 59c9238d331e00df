package core

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEventType(t *testing.T) {
	tests := []struct {
		in      string
		want    EventType
		wantErr bool
	}{
		{in: "payment", want: EventPayment},
		{in: "PAYMENT", want: EventPayment},
		{in: "payment_received", want: EventReceipt},
		{in: "receipt", want: EventReceipt},
		{in: "transfer", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseEventType(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidEventType)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestValidateEntry(t *testing.T) {
	ten := decimal.NewFromInt(10)
	tests := []struct {
		name    string
		typ     EventType
		entry   string
		account string
		amount  decimal.Decimal
		wantErr error
	}{
		{name: "valid", typ: EventPayment, entry: "rent", account: "checking", amount: ten},
		{name: "bad type", typ: "gift", entry: "rent", account: "checking", amount: ten, wantErr: ErrInvalidEventType},
		{name: "empty name", typ: EventPayment, entry: " ", account: "checking", amount: ten, wantErr: ErrEmptyName},
		{name: "empty account", typ: EventReceipt, entry: "salary", account: "", amount: ten, wantErr: ErrEmptyAccount},
		{name: "negative", typ: EventReceipt, entry: "salary", account: "checking", amount: ten.Neg(), wantErr: ErrNegativeAmount},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateEntry(tt.typ, tt.entry, tt.account, tt.amount)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2023, 2, 10, 12, 0, 1, 0, time.UTC)

	got, err := ParseTimestamp("2023-02-10T12:00:01")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseTimestamp("2023-02-10T12:00:01Z")
	require.NoError(t, err)
	assert.Equal(t, want, got)

	got, err = ParseTimestamp("2023-02-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2023, 2, 10, 12, 0, 0, 0, time.UTC), got)

	_, err = ParseTimestamp("yesterday")
	assert.ErrorIs(t, err, ErrInvalidTimestamp)

	assert.Equal(t, "2023-02-10T12:00:01", FormatTimestamp(want))
}

func TestMarkerString(t *testing.T) {
	assert.Equal(t, "first", MarkerFirst.String())
	assert.Equal(t, "active", MarkerActive.String())
	assert.Equal(t, "last", MarkerLast.String())
	assert.Equal(t, "none", MarkerNone.String())
}
