package kernel_test

import (
	"errors"
	"strings"
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewParties(t *testing.T) {
	t.Run("should trim names and keep ids", func(t *testing.T) {
		p, err := kernel.NewParties(7, " Annual Summit ", 42, "Acme Catering", " jdoe ")

		require.NoError(t, err)
		require.NoError(t, p.Validate())
		assert.Equal(t, int64(7), p.EventID())
		assert.Equal(t, "Annual Summit", p.EventName())
		assert.Equal(t, int64(42), p.VendorID())
		assert.Equal(t, "Acme Catering", p.VendorName())
		assert.Equal(t, "jdoe", p.SubmitterID())
	})

	t.Run("should join errors for every bad field", func(t *testing.T) {
		_, err := kernel.NewParties(0, "", -1, "", "  ")

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
		assert.Contains(t, err.Error(), "eventId")
		assert.Contains(t, err.Error(), "vendorId")
		assert.Contains(t, err.Error(), "submitterId")
	})

	t.Run("should bound submitter length", func(t *testing.T) {
		_, err := kernel.NewParties(1, "", 1, "", strings.Repeat("x", kernel.MaxSubmitterIDLength+1))

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsOutOfRange))
	})

	t.Run("should reject zero value", func(t *testing.T) {
		var p kernel.Parties
		assert.Equal(t, kernel.ErrPartiesIsNotConstructed, p.Validate())
	})
}
