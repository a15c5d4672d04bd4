package negotiation_test

import (
	"errors"
	"fmt"
	"testing"

	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatus_Validate(t *testing.T) {
	for _, status := range []negotiation.Status{negotiation.Pending, negotiation.Completed, negotiation.Cancelled} {
		require.NoError(t, status.Validate(), status.String())
	}

	err := negotiation.Unknown.Validate()
	require.Error(t, err)
	assert.IsType(t, &errs.ValueIsInvalidError{}, err)
}

func TestParseStatus(t *testing.T) {
	got, err := negotiation.ParseStatus("completed")
	require.NoError(t, err)
	assert.Equal(t, negotiation.Completed, got)

	got, err = negotiation.ParseStatus("CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, negotiation.Cancelled, got)

	_, err = negotiation.ParseStatus("Approved")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
	assert.Contains(t, err.Error(), "is not a valid negotiation status")
}

func TestStatus_EdgeTo(t *testing.T) {
	tests := []struct {
		from negotiation.Status
		to   negotiation.Status
		want negotiation.Edge
	}{
		{negotiation.Pending, negotiation.Pending, negotiation.EdgeNone},
		{negotiation.Pending, negotiation.Completed, negotiation.EdgeCompleted},
		{negotiation.Pending, negotiation.Cancelled, negotiation.EdgeCancelled},
		{negotiation.Completed, negotiation.Pending, negotiation.EdgeNone},
		{negotiation.Completed, negotiation.Completed, negotiation.EdgeNone},
		{negotiation.Completed, negotiation.Cancelled, negotiation.EdgeCancelled},
		{negotiation.Cancelled, negotiation.Pending, negotiation.EdgeNone},
		{negotiation.Cancelled, negotiation.Completed, negotiation.EdgeCompleted},
		{negotiation.Cancelled, negotiation.Cancelled, negotiation.EdgeNone},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s to %s", tt.from, tt.to), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.EdgeTo(tt.to))
		})
	}
}

func TestEdge_String(t *testing.T) {
	assert.Equal(t, "none", negotiation.EdgeNone.String())
	assert.Equal(t, "completed", negotiation.EdgeCompleted.String())
	assert.Equal(t, "cancelled", negotiation.EdgeCancelled.String())
}
