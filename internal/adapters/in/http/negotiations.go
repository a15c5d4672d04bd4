package http

import (
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/negotiation"
	"procurement/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// CreateNegotiation handles POST /api/negotiations. A payload carrying only
// requestId behaves like CreateNegotiationFromRequest.
func (s *Server) CreateNegotiation(c echo.Context) error {
	var payload NegotiationCreatePayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}

	requestID, err := kernel.UUIDFromString(payload.RequestID)
	if err != nil {
		return errs.NewValueIsInvalidErrorWithCause("requestId", err)
	}

	if !payload.custom() {
		return s.openNegotiation(c, requestID)
	}

	if payload.NegotiationDate == nil || payload.InitialQuoteAmount == nil || payload.FinalAmount == nil {
		return errs.NewValueIsRequiredError("negotiationDate, initialQuoteAmount and finalAmount")
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateNegotiationCommand(id, requestID, payload.NegotiationDate.Time,
		*payload.InitialQuoteAmount, *payload.FinalAmount, payload.Notes)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateNegotiation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondNegotiation(c, http.StatusCreated, id)
}

// CreateNegotiationFromRequest handles POST /api/negotiations/from-request/:requestId.
func (s *Server) CreateNegotiationFromRequest(c echo.Context) error {
	requestID, err := pathID(c, "requestId")
	if err != nil {
		return err
	}
	return s.openNegotiation(c, requestID)
}

func (s *Server) openNegotiation(c echo.Context, requestID kernel.UUID) error {
	id := kernel.NewUUID()
	cmd, err := commands.NewCreateNegotiationFromRequestCommand(id, requestID)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateNegotiation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondNegotiation(c, http.StatusCreated, id)
}

// UpdateNegotiation handles PUT /api/negotiations/:id. Only the fields of
// NegotiationUpdatePayload are read; completing the negotiation creates the
// purchase order.
func (s *Server) UpdateNegotiation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var payload NegotiationUpdatePayload
	if err = bindAndValidate(c, &payload); err != nil {
		return err
	}

	status, err := negotiation.ParseStatus(payload.Status)
	if err != nil {
		return err
	}

	cmd, err := commands.NewUpdateNegotiationCommand(id, payload.FinalAmount, payload.NegotiationDate.Time,
		status, payload.Notes, kernel.NewUUID())
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateNegotiation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondNegotiation(c, http.StatusOK, id)
}

// DeleteNegotiation handles DELETE /api/negotiations/:id.
func (s *Server) DeleteNegotiation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteNegotiationCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteNegotiation.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetNegotiation handles GET /api/negotiations/:id.
func (s *Server) GetNegotiation(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondNegotiation(c, http.StatusOK, id)
}

// ListNegotiations handles GET /api/negotiations. savings=true keeps only
// negotiations that closed below the initial quote.
func (s *Server) ListNegotiations(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	var savingsOnly bool
	if err = echo.QueryParamsBinder(c).Bool("savings", &savingsOnly).BindError(); err != nil {
		return err
	}

	query, err := queries.NewListNegotiationsQuery(filter, c.QueryParam("status"), savingsOnly)
	if err != nil {
		return err
	}

	found, err := s.handlers.ListNegotiations.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, mapViews(found, negotiationView))
}

func (s *Server) respondNegotiation(c echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetNegotiationQuery(id)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetNegotiation.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(code, negotiationView(found))
}
