package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrDeleteNegotiationCommandIsNotConstructed = errors.New(
	"DeleteNegotiationCommand must be created via NewDeleteNegotiationCommand constructor",
)

type DeleteNegotiationCommand struct {
	negotiationID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteNegotiationCommand(negotiationID kernel.UUID) (DeleteNegotiationCommand, error) {
	if err := negotiationID.Validate(); err != nil {
		return DeleteNegotiationCommand{}, errs.NewValueIsRequiredErrorWithCause("negotiationId", err)
	}

	return DeleteNegotiationCommand{
		negotiationID: negotiationID,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteNegotiationCommand) Validate() error {
	return c.guard.Validate(ErrDeleteNegotiationCommandIsNotConstructed)
}

func (c DeleteNegotiationCommand) NegotiationID() kernel.UUID {
	return c.negotiationID
}
