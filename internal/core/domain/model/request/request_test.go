package request_test

import (
	"errors"
	"testing"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validParties(t *testing.T) kernel.Parties {
	t.Helper()
	p, err := kernel.NewParties(7, "Annual Summit", 42, "Acme Catering", "jdoe")
	require.NoError(t, err)
	return p
}

func TestNewRequest(t *testing.T) {
	id := kernel.NewUUID()
	parties := validParties(t)
	date := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	t.Run("should create pending request", func(t *testing.T) {
		r, err := request.NewRequest(id, parties, date, decimal.NewFromInt(10000))

		require.NoError(t, err)
		require.NoError(t, r.Validate())
		assert.True(t, r.ID().IsEqual(id))
		assert.Equal(t, request.Pending, r.Status())
		assert.Equal(t, int64(42), r.Parties().VendorID())
		assert.Equal(t, date, r.RequestDate())
		assert.True(t, decimal.NewFromInt(10000).Equal(r.AllocatedAmount()))
	})

	t.Run("should reject non positive amount", func(t *testing.T) {
		r, err := request.NewRequest(id, parties, date, decimal.Zero)

		require.Error(t, err)
		assert.Nil(t, r)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.Contains(t, err.Error(), "allocatedAmount")
	})

	t.Run("should join all validation errors", func(t *testing.T) {
		r, err := request.NewRequest(kernel.UUID{}, kernel.Parties{}, time.Time{}, decimal.NewFromInt(-1))

		require.Error(t, err)
		assert.Nil(t, r)
		assert.Contains(t, err.Error(), "UUID must be created")
		assert.Contains(t, err.Error(), "Parties must be created")
		assert.Contains(t, err.Error(), "requestDate")
		assert.Contains(t, err.Error(), "allocatedAmount")
	})
}

func TestRestoreRequest(t *testing.T) {
	r, err := request.RestoreRequest(kernel.NewUUID(), validParties(t), time.Now(), decimal.NewFromInt(5), request.Approved)
	require.NoError(t, err)
	assert.Equal(t, request.Approved, r.Status())

	_, err = request.RestoreRequest(kernel.NewUUID(), validParties(t), time.Now(), decimal.NewFromInt(5), request.Unknown)
	require.Error(t, err)
}

func TestRequest_Validate(t *testing.T) {
	var nilRequest *request.Request
	assert.Equal(t, request.ErrRequestIsNotConstructed, nilRequest.Validate())

	var zero request.Request
	assert.Equal(t, request.ErrRequestIsNotConstructed, zero.Validate())
}

func TestRequest_Revise(t *testing.T) {
	r, err := request.NewRequest(kernel.NewUUID(), validParties(t), time.Now(), decimal.NewFromInt(100))
	require.NoError(t, err)

	t.Run("should keep status when none supplied", func(t *testing.T) {
		other, err := kernel.NewParties(8, "Expo", 43, "Other Vendor", "asmith")
		require.NoError(t, err)

		err = r.Revise(other, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), decimal.NewFromInt(200), nil)

		require.NoError(t, err)
		assert.Equal(t, int64(43), r.Parties().VendorID())
		assert.True(t, decimal.NewFromInt(200).Equal(r.AllocatedAmount()))
		assert.Equal(t, request.Pending, r.Status())
	})

	t.Run("should apply supplied status", func(t *testing.T) {
		status := request.Approved

		require.NoError(t, r.Revise(r.Parties(), r.RequestDate(), r.AllocatedAmount(), &status))
		assert.Equal(t, request.Approved, r.Status())
	})

	t.Run("should leave request untouched on error", func(t *testing.T) {
		before := r.AllocatedAmount()

		err := r.Revise(r.Parties(), r.RequestDate(), decimal.NewFromInt(-5), nil)

		require.Error(t, err)
		assert.True(t, before.Equal(r.AllocatedAmount()))
	})
}

func TestRequest_ApproveReject(t *testing.T) {
	r, err := request.NewRequest(kernel.NewUUID(), validParties(t), time.Now(), decimal.NewFromInt(100))
	require.NoError(t, err)

	require.NoError(t, r.ValidatePromote())

	r.Approve()
	assert.Equal(t, request.Approved, r.Status())
	require.Error(t, r.ValidatePromote())

	r.Reject()
	assert.Equal(t, request.Rejected, r.Status())
}
