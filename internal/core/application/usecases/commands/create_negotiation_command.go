package commands

import (
	"errors"
	"time"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateNegotiationCommandIsNotConstructed = errors.New(
	"CreateNegotiationCommand must be created via NewCreateNegotiationFromRequestCommand or NewCreateNegotiationCommand constructor",
)

// CreateNegotiationCommand opens a negotiation for a Pending request.
//
// NewCreateNegotiationFromRequestCommand takes every value from the request:
// both amounts become its allocated amount and the date is the time of
// handling. NewCreateNegotiationCommand lets the caller supply them.
type CreateNegotiationCommand struct {
	negotiationID kernel.UUID
	requestID     kernel.UUID

	custom          bool
	negotiationDate time.Time
	initialQuote    decimal.Decimal
	finalAmount     decimal.Decimal
	notes           string

	guard guard.ConstructorGuard
}

func NewCreateNegotiationFromRequestCommand(negotiationID, requestID kernel.UUID) (CreateNegotiationCommand, error) {
	if err := validateNegotiationIDs(negotiationID, requestID); err != nil {
		return CreateNegotiationCommand{}, err
	}

	return CreateNegotiationCommand{
		negotiationID: negotiationID,
		requestID:     requestID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func NewCreateNegotiationCommand(
	negotiationID kernel.UUID,
	requestID kernel.UUID,
	negotiationDate time.Time,
	initialQuote decimal.Decimal,
	finalAmount decimal.Decimal,
	notes string,
) (CreateNegotiationCommand, error) {
	if err := errors.Join(
		validateNegotiationIDs(negotiationID, requestID),
		requiredDate("negotiationDate", negotiationDate),
		kernel.ValidatePositiveAmount("initialQuoteAmount", initialQuote),
		kernel.ValidatePositiveAmount("finalAmount", finalAmount),
	); err != nil {
		return CreateNegotiationCommand{}, err
	}

	return CreateNegotiationCommand{
		negotiationID:   negotiationID,
		requestID:       requestID,
		custom:          true,
		negotiationDate: negotiationDate,
		initialQuote:    initialQuote,
		finalAmount:     finalAmount,
		notes:           notes,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func validateNegotiationIDs(negotiationID, requestID kernel.UUID) error {
	var errList []error
	if err := negotiationID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("negotiationId", err))
	}
	if err := requestID.Validate(); err != nil {
		errList = append(errList, errs.NewValueIsRequiredErrorWithCause("requestId", err))
	}
	return errors.Join(errList...)
}

func (c CreateNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrCreateNegotiationCommandIsNotConstructed)
}

func (c CreateNegotiationCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}

func (c CreateNegotiationCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Custom reports whether the caller supplied date, amounts and notes.
func (c CreateNegotiationCommand) Custom() bool {
	return c.custom
}

func (c CreateNegotiationCommand) NegotiationDate() time.Time {
	return c.negotiationDate
}

func (c CreateNegotiationCommand) InitialQuote() decimal.Decimal {
	return c.initialQuote
}

func (c CreateNegotiationCommand) FinalAmount() decimal.Decimal {
	return c.finalAmount
}

func (c CreateNegotiationCommand) Notes() string {
	return c.notes
}
