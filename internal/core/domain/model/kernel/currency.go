package kernel

import (
	"errors"
	"fmt"

	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Currency names one of the two units an order is denominated in.
type Currency string

const (
	// Primary is the unit negotiations and allocations are expressed in.
	Primary Currency = "INR"
	// Secondary is derived from Primary through the converter rate.
	Secondary Currency = "USD"
)

// DefaultRate is the number of primary units per secondary unit.
const DefaultRate = 83

// AmountScale is the number of fractional digits kept for derived amounts.
const AmountScale = 4

var ErrConverterIsNotConstructed = errors.New("Converter must be created via NewConverter constructor")

// Converter translates between Primary and Secondary with a fixed rate.
// It is a value; copies are independent and safe for concurrent use.
type Converter struct {
	rate  decimal.Decimal
	guard guard.ConstructorGuard
}

// NewConverter builds a converter. rate is Primary units per Secondary unit
// and must be positive.
func NewConverter(rate decimal.Decimal) (Converter, error) {
	if err := ValidatePositiveAmount("rate", rate); err != nil {
		return Converter{}, err
	}
	return Converter{rate: rate, guard: guard.NewConstructorGuard()}, nil
}

// DefaultConverter uses DefaultRate.
func DefaultConverter() Converter {
	return Converter{rate: decimal.NewFromInt(DefaultRate), guard: guard.NewConstructorGuard()}
}

func (c Converter) Validate() error {
	return c.guard.Validate(ErrConverterIsNotConstructed)
}

func (c Converter) Rate() decimal.Decimal {
	return c.rate
}

// ToSecondary returns primary / rate rounded to AmountScale digits.
func (c Converter) ToSecondary(primary decimal.Decimal) decimal.Decimal {
	return primary.DivRound(c.rate, AmountScale)
}

// ToPrimary returns secondary * rate rounded to AmountScale digits.
func (c Converter) ToPrimary(secondary decimal.Decimal) decimal.Decimal {
	return secondary.Mul(c.rate).Round(AmountScale)
}

// Resolve turns caller supplied amounts into a DualAmount.
//
// Exactly one amount: the other one is derived.
// Both amounts: both are kept as given, no reconciliation against the rate.
// Neither: ValueIsRequiredError.
func (c Converter) Resolve(primary, secondary *decimal.Decimal) (DualAmount, error) {
	if err := c.Validate(); err != nil {
		return DualAmount{}, err
	}

	switch {
	case primary != nil && secondary != nil:
		return NewDualAmount(*primary, *secondary)
	case primary != nil:
		if err := ValidatePositiveAmount("amountPrimary", *primary); err != nil {
			return DualAmount{}, err
		}
		return NewDualAmount(*primary, c.ToSecondary(*primary))
	case secondary != nil:
		if err := ValidatePositiveAmount("amountSecondary", *secondary); err != nil {
			return DualAmount{}, err
		}
		return NewDualAmount(c.ToPrimary(*secondary), *secondary)
	default:
		return DualAmount{}, errs.NewValueIsRequiredErrorWithCause(
			"amount",
			fmt.Errorf("one of %s or %s amount must be supplied", Primary, Secondary),
		)
	}
}

// DualAmount is an order amount held in both currencies.
type DualAmount struct {
	primary   decimal.Decimal
	secondary decimal.Decimal
	guard     guard.ConstructorGuard
}

var ErrDualAmountIsNotConstructed = errors.New("DualAmount must be created via NewDualAmount or Converter.Resolve")

// NewDualAmount stores both amounts verbatim. Both must be positive.
func NewDualAmount(primary, secondary decimal.Decimal) (DualAmount, error) {
	if err := errors.Join(
		ValidatePositiveAmount("amountPrimary", primary),
		ValidatePositiveAmount("amountSecondary", secondary),
	); err != nil {
		return DualAmount{}, err
	}
	return DualAmount{primary: primary, secondary: secondary, guard: guard.NewConstructorGuard()}, nil
}

func (a DualAmount) Validate() error {
	return a.guard.Validate(ErrDualAmountIsNotConstructed)
}

func (a DualAmount) Primary() decimal.Decimal {
	return a.primary
}

func (a DualAmount) Secondary() decimal.Decimal {
	return a.secondary
}

// ValidatePositiveAmount rejects zero and negative amounts.
func ValidatePositiveAmount(paramName string, amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%s is not greater than 0", amount))
	}
	return nil
}
