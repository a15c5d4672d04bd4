package commands

import (
	"context"
	"time"

	"procurement/internal/core/domain/model/negotiation"

	"go.uber.org/zap"
)

// CreateNegotiationCommandHandler opens a negotiation for a request. The
// request must be Pending and must not have a negotiation yet; its status is
// left as it is.
type CreateNegotiationCommandHandler struct {
	uowFactory UoWFactory
	deps       Deps
}

func NewCreateNegotiationCommandHandler(uowFactory UoWFactory, deps Deps) CreateNegotiationCommandHandler {
	return CreateNegotiationCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h CreateNegotiationCommandHandler) Handle(ctx context.Context, cmd CreateNegotiationCommand) (err error) {
	name := "create_negotiation_from_request"
	if cmd.Custom() {
		name = "create_negotiation"
	}
	defer func(start time.Time) { h.deps.observe(name, start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	requestID := cmd.RequestID()
	negotiationID := cmd.NegotiationID()
	unlock := h.deps.Locks.LockAll(idKeys(&requestID, &negotiationID)...)
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		req, err := uow.RequestRepository().Get(ctx, requestID)
		if err != nil {
			return err
		}

		existing, err := uow.NegotiationRepository().FindByRequest(ctx, requestID)
		if err != nil {
			return err
		}

		var created *negotiation.Negotiation
		if cmd.Custom() {
			created, err = h.deps.Workflow.OpenNegotiation(
				req, existing != nil, negotiationID,
				cmd.NegotiationDate(), cmd.InitialQuote(), cmd.FinalAmount(), cmd.Notes(),
			)
		} else {
			created, err = h.deps.Workflow.PromoteRequest(req, existing != nil, negotiationID, h.deps.Clock())
		}
		if err != nil {
			return err
		}

		if err = uow.NegotiationRepository().Add(ctx, created); err != nil {
			return err
		}

		h.deps.Logger.Info("negotiation created",
			zap.String("negotiationId", created.ID().String()),
			zap.String("requestId", requestID.String()))
		return nil
	})
}
