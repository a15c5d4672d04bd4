package commands

import (
	"errors"

	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/errs"
	"procurement/internal/pkg/guard"
)

var ErrDecideRequestCommandIsNotConstructed = errors.New(
	"DecideRequestCommand must be created via NewApproveRequestCommand or NewRejectRequestCommand constructor",
)

// DecideRequestCommand approves or rejects a request explicitly. No cascade
// follows; the decision only changes the request itself.
type DecideRequestCommand struct {
	requestID kernel.UUID
	decision  request.Status

	guard guard.ConstructorGuard
}

func NewApproveRequestCommand(requestID kernel.UUID) (DecideRequestCommand, error) {
	return newDecideRequestCommand(requestID, request.Approved)
}

func NewRejectRequestCommand(requestID kernel.UUID) (DecideRequestCommand, error) {
	return newDecideRequestCommand(requestID, request.Rejected)
}

func newDecideRequestCommand(requestID kernel.UUID, decision request.Status) (DecideRequestCommand, error) {
	if err := requestID.Validate(); err != nil {
		return DecideRequestCommand{}, errs.NewValueIsRequiredErrorWithCause("requestId", err)
	}

	return DecideRequestCommand{
		requestID: requestID,
		decision:  decision,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c DecideRequestCommand) Validate() error {
	return c.guard.Validate(ErrDecideRequestCommandIsNotConstructed)
}

func (c DecideRequestCommand) RequestID() kernel.UUID {
	return c.requestID
}

// Decision is request.Approved or request.Rejected.
func (c DecideRequestCommand) Decision() request.Status {
	return c.decision
}
