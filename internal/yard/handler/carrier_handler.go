package handler

import (
	"net/http"

	"yardflow/internal/yard/ports"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
)

// CarrierHandler handles HTTP requests for carriers and their detention
// policies.
type CarrierHandler struct {
	service ports.CarrierService
}

// NewCarrierHandler creates a new CarrierHandler.
func NewCarrierHandler(service ports.CarrierService) *CarrierHandler {
	return &CarrierHandler{
		service: service,
	}
}

// CarrierRequest represents the request body for creating or updating a
// carrier.
type CarrierRequest struct {
	Name                string          `json:"name"`
	Code                string          `json:"code"`
	OwnsTractors        bool            `json:"ownsTractors"`
	OwnsTrailers        bool            `json:"ownsTrailers"`
	DetentionEnabled    bool            `json:"detentionEnabled"`
	FreeTimeHours       int             `json:"freeTimeHours"`
	ChargeIntervalHours int             `json:"chargeIntervalHours"`
	ChargePerInterval   decimal.Decimal `json:"chargePerInterval"`
	MaxChargeEnabled    bool            `json:"maxChargeEnabled"`
	MaxCharge           decimal.Decimal `json:"maxCharge"`
	EligibleSiteIDs     []string        `json:"eligibleSiteIds"`
}

// SiteEligibilityRequest represents the request body for replacing a
// carrier's eligible sites.
type SiteEligibilityRequest struct {
	SiteIDs []string `json:"siteIds"`
}

func (r CarrierRequest) toInput() ports.CarrierInput {
	return ports.CarrierInput{
		Name:                r.Name,
		Code:                r.Code,
		OwnsTractors:        r.OwnsTractors,
		OwnsTrailers:        r.OwnsTrailers,
		DetentionEnabled:    r.DetentionEnabled,
		FreeTimeHours:       r.FreeTimeHours,
		ChargeIntervalHours: r.ChargeIntervalHours,
		ChargePerInterval:   r.ChargePerInterval,
		MaxChargeEnabled:    r.MaxChargeEnabled,
		MaxCharge:           r.MaxCharge,
		EligibleSiteIDs:     r.EligibleSiteIDs,
	}
}

// Create handles POST /carriers.
// @Summary Create a carrier
// @Description Registers a carrier with its detention policy and site eligibility.
// @Tags Carriers
// @Accept json
// @Produce json
// @Param carrier body CarrierRequest true "Carrier details"
// @Success 201 {object} domain.Carrier
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /carriers [post]
func (h *CarrierHandler) Create(c *fiber.Ctx) error {
	var req CarrierRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	carrier, err := h.service.Create(c.Context(), req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(carrier)
}

// Update handles PUT /carriers/:id.
// @Summary Update a carrier
// @Tags Carriers
// @Accept json
// @Produce json
// @Param id path string true "Carrier ID"
// @Param carrier body CarrierRequest true "Carrier details"
// @Success 200 {object} domain.Carrier
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /carriers/{id} [put]
func (h *CarrierHandler) Update(c *fiber.Ctx) error {
	var req CarrierRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	carrier, err := h.service.Update(c.Context(), c.Params("id"), req.toInput())
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(carrier)
}

// GetByID handles GET /carriers/:id.
// @Summary Get a carrier
// @Tags Carriers
// @Produce json
// @Param id path string true "Carrier ID"
// @Success 200 {object} domain.Carrier
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /carriers/{id} [get]
func (h *CarrierHandler) GetByID(c *fiber.Ctx) error {
	carrier, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(carrier)
}

// List handles GET /carriers.
// @Summary List carriers
// @Description Lists carriers, optionally narrowed by code or to detention-enabled ones.
// @Tags Carriers
// @Produce json
// @Param code query string false "Carrier code"
// @Param detention query bool false "Only detention-enabled carriers"
// @Success 200 {array} domain.Carrier
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /carriers [get]
func (h *CarrierHandler) List(c *fiber.Ctx) error {
	ctx := c.Context()

	if code := c.Query("code"); code != "" {
		carrier, err := h.service.GetByCode(ctx, code)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(carrier)
	}

	if c.QueryBool("detention") {
		carriers, err := h.service.GetWithDetention(ctx)
		if err != nil {
			return respondError(c, err)
		}
		return c.Status(http.StatusOK).JSON(carriers)
	}

	carriers, err := h.service.GetAll(ctx)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(http.StatusOK).JSON(carriers)
}

// UpdateSiteEligibility handles PUT /carriers/:id/sites.
// @Summary Replace a carrier's eligible sites
// @Tags Carriers
// @Accept json
// @Produce json
// @Param id path string true "Carrier ID"
// @Param sites body SiteEligibilityRequest true "Eligible site IDs"
// @Success 200 {object} domain.Carrier
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /carriers/{id}/sites [put]
func (h *CarrierHandler) UpdateSiteEligibility(c *fiber.Ctx) error {
	var req SiteEligibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	carrier, err := h.service.UpdateSiteEligibility(c.Context(), c.Params("id"), req.SiteIDs)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(carrier)
}

// Delete handles DELETE /carriers/:id.
// @Summary Delete a carrier
// @Description Removes a carrier that has no trailers assigned to it.
// @Tags Carriers
// @Produce json
// @Param id path string true "Carrier ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /carriers/{id} [delete]
func (h *CarrierHandler) Delete(c *fiber.Ctx) error {
	if err := h.service.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}

	return c.SendStatus(http.StatusNoContent)
}
