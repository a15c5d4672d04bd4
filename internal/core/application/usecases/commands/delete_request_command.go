package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrDeleteRequestCommandIsNotConstructed = errors.New(
	"DeleteRequestCommand must be created via NewDeleteRequestCommand constructor",
)

type DeleteRequestCommand struct {
	requestID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeleteRequestCommand(requestID kernel.UUID) (DeleteRequestCommand, error) {
	if err := requestID.Validate(); err != nil {
		return DeleteRequestCommand{}, errs.NewValueIsRequiredErrorWithCause("requestId", err)
	}

	return DeleteRequestCommand{
		requestID: requestID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DeleteRequestCommand) Validate() error {
	return c.guard.Validate(ErrDeleteRequestCommandIsNotConstructed)
}

func (c DeleteRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}
