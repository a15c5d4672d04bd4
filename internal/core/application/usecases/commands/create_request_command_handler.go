package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"procurement/internal/core/domain/model/request"
	"procurement/internal/pkg/errs"

	"go.uber.org/zap"
)

// CreateRequestCommandHandler stores a new request. The event id must not be
// used by another request yet.
type CreateRequestCommandHandler struct {
	uowFactory RequestUoWFactory
	deps       Deps
}

func NewCreateRequestCommandHandler(uowFactory RequestUoWFactory, deps Deps) CreateRequestCommandHandler {
	return CreateRequestCommandHandler{
		uowFactory: uowFactory,
		deps:       deps.withDefaults(),
	}
}

func (h CreateRequestCommandHandler) Handle(ctx context.Context, cmd CreateRequestCommand) (err error) {
	defer func(start time.Time) { h.deps.observe("create_request", start, err) }(time.Now())

	if err = cmd.Validate(); err != nil {
		return err
	}

	eventID := cmd.Parties().EventID()
	unlock := h.deps.Locks.LockAll("event:"+strconv.FormatInt(eventID, 10), cmd.RequestID().String())
	defer unlock()

	uow := h.uowFactory.Create()
	return inTransaction(ctx, uow, func() error {
		repo := uow.RequestRepository()

		exists, err := repo.ExistsByEvent(ctx, eventID)
		if err != nil {
			return err
		}
		if exists {
			return errs.NewInvalidStateError("purchase request", fmt.Sprintf("event id %d already exists", eventID))
		}

		aggregate, err := request.NewRequest(cmd.RequestID(), cmd.Parties(), cmd.RequestDate(), cmd.AllocatedAmount())
		if err != nil {
			return err
		}

		if err = repo.Add(ctx, aggregate); err != nil {
			return err
		}

		h.deps.Logger.Info("purchase request created",
			zap.String("requestId", aggregate.ID().String()),
			zap.Int64("eventId", eventID))
		return nil
	})
}
