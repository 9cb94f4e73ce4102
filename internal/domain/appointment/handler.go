package appointment

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/pkg/response"
	"consultancy/internal/pkg/validator"
)

// Handler serves the admin dashboard's appointment views.
type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// List godoc
// @Summary List appointments
// @Tags Admin Appointments
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(all, pending, confirmed, cancelled, completed)
// @Param q query string false "Search name, email or service"
// @Success 200 {object} map[string]interface{}
// @Failure 400,503 {object} map[string]interface{}
// @Router /admin/appointments [get]
func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), ListFilter{
		Status: c.Query("status"),
		Query:  c.Query("q"),
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Get godoc
// @Summary Get appointment by ID
// @Tags Admin Appointments
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,503 {object} map[string]interface{}
// @Router /admin/appointments/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	a, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

// UpdateStatus godoc
// @Summary Update appointment status
// @Tags Admin Appointments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Appointment ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,503 {object} map[string]interface{}
// @Router /admin/appointments/{id}/status [patch]
func (h *Handler) UpdateStatus(c *gin.Context) {
	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	a, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), Status(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, a)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Redirect(c, http.StatusNotFound, "NOT_FOUND", "Appointment not found", "/admin")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.log.Error("appointment request failed", zap.Error(err))
		response.Unavailable(c, "Failed to load appointments")
	}
}
