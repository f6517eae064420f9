package handler

import (
	"net/http"

	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"github.com/gofiber/fiber/v2"
)

// MoveHandler handles HTTP requests for move requests.
type MoveHandler struct {
	service ports.MoveRequestService
}

// NewMoveHandler creates a new MoveHandler.
func NewMoveHandler(service ports.MoveRequestService) *MoveHandler {
	return &MoveHandler{
		service: service,
	}
}

// CreateMoveRequest represents the request body for requesting a trailer
// move.
type CreateMoveRequest struct {
	TrailerID               string              `json:"trailerId"`
	MoveType                domain.MoveType     `json:"moveType"`
	SourceLocationType      domain.LocationType `json:"sourceLocationType"`
	SourceLocationID        string              `json:"sourceLocationId"`
	DestinationLocationType domain.LocationType `json:"destinationLocationType"`
	DestinationLocationID   string              `json:"destinationLocationId"`
	Notes                   string              `json:"notes"`
	RequestedByID           string              `json:"requestedById"`
}

// AssignMoveRequest represents the request body for assigning a spotter.
type AssignMoveRequest struct {
	SpotterID string `json:"spotterId"`
}

// MoveNotesRequest represents the request body for appending notes.
type MoveNotesRequest struct {
	Notes string `json:"notes"`
}

// Create handles POST /moves.
// @Summary Request a trailer move
// @Description Creates a move request for a trailer with an active appointment.
// @Tags Moves
// @Accept json
// @Produce json
// @Param move body CreateMoveRequest true "Move details"
// @Success 201 {object} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves [post]
func (h *MoveHandler) Create(c *fiber.Ctx) error {
	var req CreateMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	move, err := h.service.Create(c.Context(), ports.CreateMoveInput{
		TrailerID:               req.TrailerID,
		MoveType:                req.MoveType,
		SourceLocationType:      req.SourceLocationType,
		SourceLocationID:        req.SourceLocationID,
		DestinationLocationType: req.DestinationLocationType,
		DestinationLocationID:   req.DestinationLocationID,
		Notes:                   req.Notes,
		RequestedByID:           req.RequestedByID,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(move)
}

// Assign handles POST /moves/:id/assign.
// @Summary Assign a spotter to a move
// @Description Assigns a requested move to a spotter with access to the site.
// @Tags Moves
// @Accept json
// @Produce json
// @Param id path string true "Move request ID"
// @Param assignment body AssignMoveRequest true "Spotter assignment"
// @Success 200 {object} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves/{id}/assign [post]
func (h *MoveHandler) Assign(c *fiber.Ctx) error {
	var req AssignMoveRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	move, err := h.service.Assign(c.Context(), c.Params("id"), req.SpotterID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(move)
}

// Start handles POST /moves/:id/start.
// @Summary Start an assigned move
// @Tags Moves
// @Produce json
// @Param id path string true "Move request ID"
// @Success 200 {object} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves/{id}/start [post]
func (h *MoveHandler) Start(c *fiber.Ctx) error {
	move, err := h.service.Start(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(move)
}

// Complete handles POST /moves/:id/complete.
// @Summary Complete a move in progress
// @Description Completes the move and applies the trailer's door automation when the move touches a door.
// @Tags Moves
// @Produce json
// @Param id path string true "Move request ID"
// @Success 200 {object} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves/{id}/complete [post]
func (h *MoveHandler) Complete(c *fiber.Ctx) error {
	move, err := h.service.Complete(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(move)
}

// Cancel handles POST /moves/:id/cancel.
// @Summary Cancel a move request
// @Tags Moves
// @Produce json
// @Param id path string true "Move request ID"
// @Success 200 {object} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves/{id}/cancel [post]
func (h *MoveHandler) Cancel(c *fiber.Ctx) error {
	move, err := h.service.Cancel(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(move)
}

// AddNotes handles POST /moves/:id/notes.
// @Summary Append notes to a move request
// @Tags Moves
// @Accept json
// @Produce json
// @Param id path string true "Move request ID"
// @Param notes body MoveNotesRequest true "Notes to append"
// @Success 200 {object} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves/{id}/notes [post]
func (h *MoveHandler) AddNotes(c *fiber.Ctx) error {
	var req MoveNotesRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	move, err := h.service.AddNotes(c.Context(), c.Params("id"), req.Notes)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(move)
}

// GetByID handles GET /moves/:id.
// @Summary Get a move request
// @Tags Moves
// @Produce json
// @Param id path string true "Move request ID"
// @Success 200 {object} domain.MoveRequest
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves/{id} [get]
func (h *MoveHandler) GetByID(c *fiber.Ctx) error {
	move, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(move)
}

// List handles GET /moves.
// @Summary List move requests
// @Description Lists moves filtered by status, active flag, or request-time window. With no filters, lists pending moves.
// @Tags Moves
// @Produce json
// @Param status query string false "Move status filter"
// @Param active query bool false "Only active moves"
// @Param start query string false "Window start (RFC 3339)"
// @Param end query string false "Window end (RFC 3339)"
// @Success 200 {array} domain.MoveRequest
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /moves [get]
func (h *MoveHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()

	if c.Query("start") != "" || c.Query("end") != "" {
		start, end, err := parseTimeRange(c)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		moves, err := h.service.GetByDateRange(ctx, start, end)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(moves)
	}

	if c.QueryBool("active") {
		moves, err := h.service.GetActive(ctx)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(moves)
	}

	if status := c.Query("status"); status != "" {
		moves, err := h.service.GetByStatus(ctx, domain.MoveStatus(status))
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(moves)
	}

	moves, err := h.service.GetPending(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(moves)
}

// GetBySpotter handles GET /spotters/:id/moves.
// @Summary List moves assigned to a spotter
// @Tags Moves
// @Produce json
// @Param id path string true "Spotter ID"
// @Success 200 {array} domain.MoveRequest
// @Failure 500 {object} map[string]string
// @Router /spotters/{id}/moves [get]
func (h *MoveHandler) GetBySpotter(c *fiber.Ctx) error {
	moves, err := h.service.GetBySpotter(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(moves)
}

// GetBySite handles GET /sites/:siteId/moves.
// @Summary List moves at a site
// @Description Lists a site's moves, optionally narrowed to pending or active ones.
// @Tags Moves
// @Produce json
// @Param siteId path string true "Site ID"
// @Param pending query bool false "Only pending moves"
// @Param active query bool false "Only active moves"
// @Success 200 {array} domain.MoveRequest
// @Failure 500 {object} map[string]string
// @Router /sites/{siteId}/moves [get]
func (h *MoveHandler) GetBySite(c *fiber.Ctx) error {
	ctx := c.Context()
	siteID := c.Params("siteId")

	if c.QueryBool("pending") {
		moves, err := h.service.GetPendingBySite(ctx, siteID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(moves)
	}

	if c.QueryBool("active") {
		moves, err := h.service.GetActiveBySite(ctx, siteID)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(moves)
	}

	moves, err := h.service.GetBySite(ctx, siteID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(moves)
}

// GetByTrailer handles GET /trailers/:id/moves.
// @Summary List a trailer's move requests
// @Tags Moves
// @Produce json
// @Param id path string true "Trailer ID"
// @Success 200 {array} domain.MoveRequest
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/moves [get]
func (h *MoveHandler) GetByTrailer(c *fiber.Ctx) error {
	moves, err := h.service.GetByTrailer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(moves)
}
