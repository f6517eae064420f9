package handler

import (
	"net/http"
	"time"

	"yardflow/internal/yard/domain"
	"yardflow/internal/yard/ports"

	"github.com/gofiber/fiber/v2"
)

// AppointmentHandler handles HTTP requests for appointments and gate
// transactions.
type AppointmentHandler struct {
	service ports.AppointmentService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(service ports.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// CheckInRequest represents the request body for a gate check-in.
type CheckInRequest struct {
	SiteID              string                     `json:"siteId"`
	GateID              string                     `json:"gateId"`
	TrailerNumber       string                     `json:"trailerNumber"`
	CarrierID           string                     `json:"carrierId"`
	LoadStatus          domain.LoadStatus          `json:"loadStatus"`
	Condition           domain.TrailerCondition    `json:"condition"`
	RefrigerationStatus domain.RefrigerationStatus `json:"refrigerationStatus"`
	AppointmentType     domain.AppointmentType     `json:"appointmentType"`
	ScheduledTime       *time.Time                 `json:"scheduledTime"`
	DriverInfo          string                     `json:"driverInfo"`
	GuardComments       string                     `json:"guardComments"`
}

// CheckOutRequest represents the request body for a gate check-out.
type CheckOutRequest struct {
	SiteID        string                  `json:"siteId"`
	GateID        string                  `json:"gateId"`
	TrailerID     string                  `json:"trailerId"`
	Condition     domain.TrailerCondition `json:"condition"`
	LoadStatus    domain.LoadStatus       `json:"loadStatus"`
	DriverInfo    string                  `json:"driverInfo"`
	GuardComments string                  `json:"guardComments"`
}

// ScheduleRequest represents the request body for scheduling a future
// appointment.
type ScheduleRequest struct {
	SiteID          string                 `json:"siteId"`
	TrailerNumber   string                 `json:"trailerNumber"`
	AppointmentType domain.AppointmentType `json:"appointmentType"`
	ScheduledTime   *time.Time             `json:"scheduledTime"`
	DriverInfo      string                 `json:"driverInfo"`
	GuardComments   string                 `json:"guardComments"`
}

// CancelAppointmentRequest represents the request body for cancelling an
// appointment.
type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

// CheckIn handles POST /appointments/check-in.
// @Summary Check a trailer in at a gate
// @Description Registers an arriving trailer, creating it on first visit, and opens a checked-in appointment.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param checkIn body CheckInRequest true "Check-in details"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments/check-in [post]
func (h *AppointmentHandler) CheckIn(c *fiber.Ctx) error {
	var req CheckInRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	appointment, err := h.service.ProcessCheckIn(c.Context(), ports.CheckInInput{
		SiteID:              req.SiteID,
		GateID:              req.GateID,
		TrailerNumber:       req.TrailerNumber,
		CarrierID:           req.CarrierID,
		LoadStatus:          req.LoadStatus,
		Condition:           req.Condition,
		RefrigerationStatus: req.RefrigerationStatus,
		AppointmentType:     req.AppointmentType,
		ScheduledTime:       req.ScheduledTime,
		DriverInfo:          req.DriverInfo,
		GuardComments:       req.GuardComments,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(appointment)
}

// CheckOut handles POST /appointments/check-out.
// @Summary Check a trailer out at a gate
// @Description Completes the trailer's active appointment and releases its door or yard slot.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param checkOut body CheckOutRequest true "Check-out details"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments/check-out [post]
func (h *AppointmentHandler) CheckOut(c *fiber.Ctx) error {
	var req CheckOutRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	appointment, err := h.service.ProcessCheckOut(c.Context(), ports.CheckOutInput{
		SiteID:        req.SiteID,
		GateID:        req.GateID,
		TrailerID:     req.TrailerID,
		Condition:     req.Condition,
		LoadStatus:    req.LoadStatus,
		DriverInfo:    req.DriverInfo,
		GuardComments: req.GuardComments,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointment)
}

// Schedule handles POST /appointments.
// @Summary Schedule a future appointment
// @Description Creates a scheduled appointment, optionally bound to a known trailer.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param appointment body ScheduleRequest true "Appointment details"
// @Success 201 {object} domain.Appointment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments [post]
func (h *AppointmentHandler) Schedule(c *fiber.Ctx) error {
	var req ScheduleRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	appointment, err := h.service.ScheduleAppointment(c.Context(), ports.ScheduleInput{
		SiteID:          req.SiteID,
		TrailerNumber:   req.TrailerNumber,
		AppointmentType: req.AppointmentType,
		ScheduledTime:   req.ScheduledTime,
		DriverInfo:      req.DriverInfo,
		GuardComments:   req.GuardComments,
	})
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(appointment)
}

// Start handles POST /appointments/:id/start.
// @Summary Start processing an appointment
// @Description Moves a checked-in appointment to in-progress.
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments/{id}/start [post]
func (h *AppointmentHandler) Start(c *fiber.Ctx) error {
	appointment, err := h.service.StartProcessing(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointment)
}

// Cancel handles POST /appointments/:id/cancel.
// @Summary Cancel an appointment
// @Description Cancels an appointment that has not completed, recording the reason in the guard comments.
// @Tags Appointments
// @Accept json
// @Produce json
// @Param id path string true "Appointment ID"
// @Param cancellation body CancelAppointmentRequest true "Cancellation reason"
// @Success 200 {object} domain.Appointment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(c *fiber.Ctx) error {
	var req CancelAppointmentRequest
	if err := c.BodyParser(&req); err != nil {
		return respondBadBody(c)
	}

	appointment, err := h.service.Cancel(c.Context(), c.Params("id"), req.Reason)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointment)
}

// GetByID handles GET /appointments/:id.
// @Summary Get an appointment
// @Tags Appointments
// @Produce json
// @Param id path string true "Appointment ID"
// @Success 200 {object} domain.Appointment
// @Failure 404 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) GetByID(c *fiber.Ctx) error {
	appointment, err := h.service.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointment)
}

// GetByDateRange handles GET /appointments.
// @Summary List scheduled appointments in a window
// @Description Lists scheduled appointments with a scheduled time inside the given range.
// @Tags Appointments
// @Produce json
// @Param start query string true "Window start (RFC 3339)"
// @Param end query string true "Window end (RFC 3339)"
// @Success 200 {array} domain.Appointment
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /appointments [get]
func (h *AppointmentHandler) GetByDateRange(c *fiber.Ctx) error {
	start, end, err := parseTimeRange(c)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	appointments, err := h.service.GetByDateRange(c.Context(), start, end)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointments)
}

// GetBySite handles GET /sites/:siteId/appointments.
// @Summary List appointments at a site
// @Tags Appointments
// @Produce json
// @Param siteId path string true "Site ID"
// @Success 200 {array} domain.Appointment
// @Failure 500 {object} map[string]string
// @Router /sites/{siteId}/appointments [get]
func (h *AppointmentHandler) GetBySite(c *fiber.Ctx) error {
	appointments, err := h.service.GetBySite(c.Context(), c.Params("siteId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointments)
}

// GetActiveBySite handles GET /sites/:siteId/appointments/active.
// @Summary List active appointments at a site
// @Description Lists checked-in and in-progress appointments, served from the cache when warm.
// @Tags Appointments
// @Produce json
// @Param siteId path string true "Site ID"
// @Success 200 {array} domain.Appointment
// @Failure 500 {object} map[string]string
// @Router /sites/{siteId}/appointments/active [get]
func (h *AppointmentHandler) GetActiveBySite(c *fiber.Ctx) error {
	appointments, err := h.service.GetActiveBySite(c.Context(), c.Params("siteId"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointments)
}

// GetByTrailer handles GET /trailers/:id/appointments.
// @Summary List a trailer's appointments
// @Tags Appointments
// @Produce json
// @Param id path string true "Trailer ID"
// @Success 200 {array} domain.Appointment
// @Failure 500 {object} map[string]string
// @Router /trailers/{id}/appointments [get]
func (h *AppointmentHandler) GetByTrailer(c *fiber.Ctx) error {
	appointments, err := h.service.GetByTrailer(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointments)
}

// GetByGate handles GET /gates/:id/appointments.
// @Summary List appointments processed through a gate
// @Tags Appointments
// @Produce json
// @Param id path string true "Gate ID"
// @Success 200 {array} domain.Appointment
// @Failure 500 {object} map[string]string
// @Router /gates/{id}/appointments [get]
func (h *AppointmentHandler) GetByGate(c *fiber.Ctx) error {
	appointments, err := h.service.GetByGate(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusOK).JSON(appointments)
}
