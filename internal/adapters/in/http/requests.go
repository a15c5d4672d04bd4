package http

import (
	"net/http"

	"procurement/internal/core/application/usecases/commands"
	"procurement/internal/core/application/usecases/queries"
	"procurement/internal/core/domain/model/kernel"
	"procurement/internal/core/domain/model/request"

	"github.com/labstack/echo/v4"
)

// CreateRequest handles POST /api/purchase-requests.
func (s *Server) CreateRequest(c echo.Context) error {
	var payload RequestPayload
	if err := bindAndValidate(c, &payload); err != nil {
		return err
	}

	parties, err := payload.toDomain()
	if err != nil {
		return err
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateRequestCommand(id, parties, payload.RequestDate.Time, payload.AllocatedAmount)
	if err != nil {
		return err
	}
	if err = s.handlers.CreateRequest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondRequest(c, http.StatusCreated, id)
}

// UpdateRequest handles PUT /api/purchase-requests/:id.
func (s *Server) UpdateRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var payload RequestPayload
	if err = bindAndValidate(c, &payload); err != nil {
		return err
	}

	parties, err := payload.toDomain()
	if err != nil {
		return err
	}

	var status *request.Status
	if payload.Status != "" {
		parsed, err := request.ParseStatus(payload.Status)
		if err != nil {
			return err
		}
		status = &parsed
	}

	cmd, err := commands.NewUpdateRequestCommand(id, parties, payload.RequestDate.Time, payload.AllocatedAmount, status)
	if err != nil {
		return err
	}
	if err = s.handlers.UpdateRequest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondRequest(c, http.StatusOK, id)
}

// ApproveRequest handles POST /api/purchase-requests/:id/approve.
func (s *Server) ApproveRequest(c echo.Context) error {
	return s.decideRequest(c, commands.NewApproveRequestCommand)
}

// RejectRequest handles POST /api/purchase-requests/:id/reject.
func (s *Server) RejectRequest(c echo.Context) error {
	return s.decideRequest(c, commands.NewRejectRequestCommand)
}

func (s *Server) decideRequest(c echo.Context, newCommand func(kernel.UUID) (commands.DecideRequestCommand, error)) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := newCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.DecideRequest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return s.respondRequest(c, http.StatusOK, id)
}

// DeleteRequest handles DELETE /api/purchase-requests/:id.
func (s *Server) DeleteRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	cmd, err := commands.NewDeleteRequestCommand(id)
	if err != nil {
		return err
	}
	if err = s.handlers.DeleteRequest.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

// GetRequest handles GET /api/purchase-requests/:id.
func (s *Server) GetRequest(c echo.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	return s.respondRequest(c, http.StatusOK, id)
}

// ListRequests handles GET /api/purchase-requests.
func (s *Server) ListRequests(c echo.Context) error {
	filter, err := filterFromQuery(c)
	if err != nil {
		return err
	}

	query, err := queries.NewListRequestsQuery(filter, c.QueryParam("status"))
	if err != nil {
		return err
	}

	found, err := s.handlers.ListRequests.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, mapViews(found, requestView))
}

func (s *Server) respondRequest(c echo.Context, code int, id kernel.UUID) error {
	query, err := queries.NewGetRequestQuery(id)
	if err != nil {
		return err
	}

	found, err := s.handlers.GetRequest.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}

	return c.JSON(code, requestView(found))
}
