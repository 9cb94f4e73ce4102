package booking

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/domain/calendar"
	"consultancy/internal/pkg/response"
)

const wizardPath = "/appointment"

type Handler struct {
	catalog  *Catalog
	sessions *Sessions
	business Business
	loc      *time.Location
	log      *zap.Logger
}

func NewHandler(catalog *Catalog, sessions *Sessions, business Business, loc *time.Location, log *zap.Logger) *Handler {
	return &Handler{catalog: catalog, sessions: sessions, business: business, loc: loc, log: log}
}

// Catalog godoc
// @Summary List bookable services and time slots
// @Tags Booking
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /services [get]
func (h *Handler) Catalog(c *gin.Context) {
	response.Success(c, http.StatusOK, h.catalog)
}

// Start godoc
// @Summary Start a booking
// @Tags Booking
// @Produce json
// @Success 201 {object} map[string]interface{}
// @Router /booking/sessions [post]
func (h *Handler) Start(c *gin.Context) {
	id, w := h.sessions.Start()
	response.Success(c, http.StatusCreated, SessionResponse{SessionID: id, View: w.View()})
}

// Get godoc
// @Summary Current state of a booking
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /booking/sessions/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	h.with(c, func(*Wizard) error { return nil })
}

// Abandon godoc
// @Summary Discard a booking in progress
// @Tags Booking
// @Param id path string true "Session ID"
// @Success 204
// @Router /booking/sessions/{id} [delete]
func (h *Handler) Abandon(c *gin.Context) {
	h.sessions.Abandon(c.Param("id"))
	c.Status(http.StatusNoContent)
}

// SelectService godoc
// @Summary Choose the service
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SelectServiceRequest true "Service"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409,422 {object} map[string]interface{}
// @Router /booking/sessions/{id}/service [put]
func (h *Handler) SelectService(c *gin.Context) {
	var req SelectServiceRequest
	if !bind(c, &req) {
		return
	}
	h.with(c, func(w *Wizard) error { return w.SelectService(req.ServiceID) })
}

// SelectDate godoc
// @Summary Choose the date (YYYY-MM-DD)
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SelectDateRequest true "Date"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409,422 {object} map[string]interface{}
// @Router /booking/sessions/{id}/date [put]
func (h *Handler) SelectDate(c *gin.Context) {
	var req SelectDateRequest
	if !bind(c, &req) {
		return
	}
	h.with(c, func(w *Wizard) error { return w.SelectDate(req.Date) })
}

// SelectTime godoc
// @Summary Choose the time slot
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body SelectTimeRequest true "Time slot label"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409,422 {object} map[string]interface{}
// @Router /booking/sessions/{id}/time [put]
func (h *Handler) SelectTime(c *gin.Context) {
	var req SelectTimeRequest
	if !bind(c, &req) {
		return
	}
	h.with(c, func(w *Wizard) error { return w.SelectTime(req.Time) })
}

// SetContact godoc
// @Summary Enter contact details
// @Tags Booking
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body Contact true "Contact details"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409 {object} map[string]interface{}
// @Router /booking/sessions/{id}/contact [put]
func (h *Handler) SetContact(c *gin.Context) {
	var req Contact
	if !bind(c, &req) {
		return
	}
	h.with(c, func(w *Wizard) error { return w.SetContact(req) })
}

// Next godoc
// @Summary Advance to the next step
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409,422 {object} map[string]interface{}
// @Router /booking/sessions/{id}/next [post]
func (h *Handler) Next(c *gin.Context) {
	h.with(c, (*Wizard).Next)
}

// Back godoc
// @Summary Return to the previous step
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409 {object} map[string]interface{}
// @Router /booking/sessions/{id}/back [post]
func (h *Handler) Back(c *gin.Context) {
	h.with(c, (*Wizard).Back)
}

// Submit godoc
// @Summary Confirm the booking
// @Description Creates the appointment. Retry after a 503; the entered details are kept.
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 201 {object} map[string]interface{}
// @Failure 404,409,422,503 {object} map[string]interface{}
// @Router /booking/sessions/{id}/submit [post]
func (h *Handler) Submit(c *gin.Context) {
	w, ok := h.wizard(c)
	if !ok {
		return
	}
	if _, err := w.Submit(c.Request.Context()); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, SessionResponse{SessionID: c.Param("id"), View: w.View()})
}

// CalendarFile godoc
// @Summary Download the confirmed appointment as an .ics file
// @Tags Booking
// @Produce text/calendar
// @Param id path string true "Session ID"
// @Success 200 {string} string
// @Failure 404,409 {object} map[string]interface{}
// @Router /booking/sessions/{id}/calendar.ics [get]
func (h *Handler) CalendarFile(c *gin.Context) {
	e, ok := h.event(c)
	if !ok {
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+calendar.Filename(e.Title)+`"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", e.ICS())
}

// CalendarLinks godoc
// @Summary Add-to-calendar links for the confirmed appointment
// @Tags Booking
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,409 {object} map[string]interface{}
// @Router /booking/sessions/{id}/calendar/links [get]
func (h *Handler) CalendarLinks(c *gin.Context) {
	e, ok := h.event(c)
	if !ok {
		return
	}
	response.Success(c, http.StatusOK, calendar.LinksFor(e))
}

func (h *Handler) event(c *gin.Context) (calendar.Event, bool) {
	w, ok := h.wizard(c)
	if !ok {
		return calendar.Event{}, false
	}
	appt, svc, err := w.Confirmed()
	if err != nil {
		h.fail(c, err)
		return calendar.Event{}, false
	}
	e, err := CalendarEvent(appt, svc, h.business, h.loc, time.Now())
	if err != nil {
		h.log.Error("build calendar event", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Could not build calendar entry")
		return calendar.Event{}, false
	}
	return e, true
}

func (h *Handler) with(c *gin.Context, op func(*Wizard) error) {
	w, ok := h.wizard(c)
	if !ok {
		return
	}
	if err := op(w); err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, SessionResponse{SessionID: c.Param("id"), View: w.View()})
}

func (h *Handler) wizard(c *gin.Context) (*Wizard, bool) {
	w, err := h.sessions.Get(c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return nil, false
	}
	return w, true
}

func (h *Handler) fail(c *gin.Context, err error) {
	var fields FieldErrors
	switch {
	case errors.As(err, &fields):
		response.ErrorWithDetails(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", "Please fill in all required fields", fields)
	case errors.Is(err, ErrValidation):
		response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, ErrSessionNotFound):
		response.Redirect(c, http.StatusNotFound, "NOT_FOUND", err.Error(), wizardPath)
	case errors.Is(err, ErrSubmissionInFlight):
		response.Error(c, http.StatusConflict, "SUBMISSION_IN_FLIGHT", err.Error())
	case errors.Is(err, ErrAlreadySubmitted), errors.Is(err, ErrNotConfirmed), errors.Is(err, ErrInvalidTransition):
		response.Error(c, http.StatusConflict, "INVALID_STEP", err.Error())
	case errors.Is(err, ErrSubmitFailed):
		if !backend.IsTransient(err) {
			h.log.Error("booking submit failed", zap.Error(err))
		}
		response.Unavailable(c, ErrSubmitFailed.Error())
	default:
		h.log.Error("booking request failed", zap.Error(err))
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Something went wrong")
	}
}

func bind(c *gin.Context, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return false
	}
	return true
}
