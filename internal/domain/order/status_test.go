package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	for _, s := range []string{"pending", "processing", "shipped", "delivered", "cancelled"} {
		st, err := ParseStatus(s)
		require.NoError(t, err)
		assert.Equal(t, Status(s), st)
	}

	_, err := ParseStatus("refunded")
	require.ErrorIs(t, err, ErrUnknownStatus)
}

func TestStatusTransition_Legal(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
	}{
		{StatusPending, StatusProcessing},
		{StatusPending, StatusCancelled},
		{StatusProcessing, StatusShipped},
		{StatusProcessing, StatusCancelled},
		{StatusShipped, StatusDelivered},
		{StatusShipped, StatusCancelled},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			assert.NoError(t, tt.from.Transition(tt.to))
		})
	}
}

func TestStatusTransition_SameStatusIsNoOp(t *testing.T) {
	assert.NoError(t, StatusShipped.Transition(StatusShipped))
}

func TestStatusTransition_Illegal(t *testing.T) {
	tests := []struct {
		from Status
		to   Status
	}{
		{StatusDelivered, StatusPending},
		{StatusDelivered, StatusCancelled},
		{StatusCancelled, StatusProcessing},
		{StatusShipped, StatusProcessing},
		{StatusPending, StatusDelivered},
	}
	for _, tt := range tests {
		t.Run(string(tt.from)+"_to_"+string(tt.to), func(t *testing.T) {
			err := tt.from.Transition(tt.to)
			var itErr *InvalidTransitionError
			require.ErrorAs(t, err, &itErr)
			assert.Equal(t, tt.from, itErr.From)
			assert.Equal(t, tt.to, itErr.To)
		})
	}
}

func TestStatusTransition_UnknownTarget(t *testing.T) {
	err := StatusPending.Transition(Status("lost"))
	require.ErrorIs(t, err, ErrUnknownStatus)
}
