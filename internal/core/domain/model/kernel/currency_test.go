package kernel_test

import (
	"errors"
	"testing"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestNewConverter(t *testing.T) {
	t.Run("should accept positive rate", func(t *testing.T) {
		c, err := kernel.NewConverter(decimal.NewFromInt(90))

		require.NoError(t, err)
		require.NoError(t, c.Validate())
		assert.Equal(t, "90", c.Rate().String())
	})

	t.Run("should reject non positive rate", func(t *testing.T) {
		_, err := kernel.NewConverter(decimal.Zero)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		assert.Contains(t, err.Error(), "rate")
	})

	t.Run("should reject zero value converter", func(t *testing.T) {
		var c kernel.Converter

		_, err := c.Resolve(dec("1"), nil)

		assert.Equal(t, kernel.ErrConverterIsNotConstructed, err)
	})
}

func TestConverter_Resolve(t *testing.T) {
	c := kernel.DefaultConverter()

	t.Run("should derive secondary from primary", func(t *testing.T) {
		a, err := c.Resolve(dec("9500"), nil)

		require.NoError(t, err)
		assert.Equal(t, "9500", a.Primary().String())
		assert.Equal(t, "114.4578", a.Secondary().String())
		assert.Equal(t, "114.46", a.Secondary().StringFixed(2))
	})

	t.Run("should derive primary from secondary", func(t *testing.T) {
		a, err := c.Resolve(nil, dec("100"))

		require.NoError(t, err)
		assert.Equal(t, "8300", a.Primary().String())
		assert.Equal(t, "100", a.Secondary().String())
	})

	t.Run("should keep both amounts verbatim", func(t *testing.T) {
		a, err := c.Resolve(dec("1000"), dec("1"))

		require.NoError(t, err)
		assert.Equal(t, "1000", a.Primary().String())
		assert.Equal(t, "1", a.Secondary().String())
	})

	t.Run("should require one amount", func(t *testing.T) {
		_, err := c.Resolve(nil, nil)

		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
		assert.Equal(t, errs.KindInvalidInput, errs.KindOf(err))
	})

	t.Run("should reject non positive amount", func(t *testing.T) {
		_, err := c.Resolve(dec("-1"), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amountPrimary")

		_, err = c.Resolve(nil, dec("0"))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "amountSecondary")
	})
}

func TestDualAmount_Validate(t *testing.T) {
	var zero kernel.DualAmount
	assert.Equal(t, kernel.ErrDualAmountIsNotConstructed, zero.Validate())

	a, err := kernel.NewDualAmount(decimal.NewFromInt(83), decimal.NewFromInt(1))
	require.NoError(t, err)
	require.NoError(t, a.Validate())
}
