package inquiry

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/pkg/response"
	"consultancy/internal/pkg/validator"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// Submit godoc
// @Summary Send a contact message
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body SubmitRequest true "Contact form"
// @Success 201 {object} map[string]interface{}
// @Failure 400,429,503 {object} map[string]interface{}
// @Router /contact [post]
func (h *Handler) Submit(c *gin.Context) {
	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	if fields := validator.Validate(&req); fields != nil {
		response.ValidationFailed(c, fields)
		return
	}

	i, err := h.service.Submit(c.Request.Context(), &req, c.ClientIP(), c.Request.UserAgent())
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusCreated, gin.H{
		"id":      i.ID,
		"message": "Message sent successfully! We'll get back to you as soon as possible.",
	})
}

// List godoc
// @Summary List contact messages
// @Tags Admin Inquiries
// @Produce json
// @Security BearerAuth
// @Param status query string false "Filter by status" Enums(all, new, contacted, closed)
// @Success 200 {object} map[string]interface{}
// @Failure 400,503 {object} map[string]interface{}
// @Router /admin/inquiries [get]
func (h *Handler) List(c *gin.Context) {
	res, err := h.service.List(c.Request.Context(), c.Query("status"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, res)
}

// Get godoc
// @Summary Get contact message
// @Tags Admin Inquiries
// @Produce json
// @Security BearerAuth
// @Param id path string true "Inquiry ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,503 {object} map[string]interface{}
// @Router /admin/inquiries/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	i, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, i)
}

// UpdateStatus godoc
// @Summary Update contact message status
// @Tags Admin Inquiries
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Inquiry ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,503 {object} map[string]interface{}
// @Router /admin/inquiries/{id}/status [patch]
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

	i, err := h.service.UpdateStatus(c.Request.Context(), c.Param("id"), Status(req.Status))
	if err != nil {
		h.fail(c, err)
		return
	}
	response.Success(c, http.StatusOK, i)
}

func (h *Handler) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		response.Redirect(c, http.StatusNotFound, "NOT_FOUND", "Message not found", "/admin")
	case errors.Is(err, ErrInvalidStatus):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.log.Error("inquiry request failed", zap.Error(err))
		response.Unavailable(c, "Failed to process message, please try again")
	}
}
