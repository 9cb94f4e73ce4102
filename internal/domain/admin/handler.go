package admin

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/pkg/response"
)

const DashboardPath = "/admin"

type Handler struct {
	flow *Flow
	log  *zap.Logger
}

func NewHandler(flow *Flow, log *zap.Logger) *Handler {
	return &Handler{flow: flow, log: log}
}

// Login godoc
// @Summary Admin login
// @Description Signs in and verifies the account holds an admin grant. Non-admin sessions are revoked.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,403,503 {object} map[string]interface{}
// @Router /auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	sess, err := h.flow.Login(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, ErrMissingCredentials):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, backend.ErrInvalidCredentials):
			response.Error(c, http.StatusUnauthorized, "INVALID_CREDENTIALS", "Invalid email or password")
		case errors.Is(err, ErrAccessDenied):
			response.Redirect(c, http.StatusForbidden, "ACCESS_DENIED", "You don't have admin privileges", HomePath)
		case errors.Is(err, ErrVerificationFailed):
			h.log.Warn("login verification failed", zap.Error(err))
			response.Redirect(c, http.StatusServiceUnavailable, "VERIFICATION_FAILED", "Admin verification failed, please try again", LoginPath)
		default:
			h.log.Error("login failed", zap.Error(err))
			response.Unavailable(c, "Sign in failed, please try again")
		}
		return
	}

	response.Success(c, http.StatusOK, SessionResponse{
		Token:     sess.Token,
		ExpiresAt: sess.ExpiresAt,
		User:      sess.Identity,
		Redirect:  DashboardPath,
	})
}

// Session godoc
// @Summary Check the current session
// @Description Reports whether the bearer token belongs to an admin, so the login page can skip straight to the dashboard.
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401,403,503 {object} map[string]interface{}
// @Router /auth/session [get]
func (h *Handler) Session(c *gin.Context) {
	sess, err := h.flow.Verify(c.Request.Context(), BearerToken(c))
	if err != nil {
		abortWith(c, h.log, err)
		return
	}
	response.Success(c, http.StatusOK, SessionResponse{
		ExpiresAt: sess.ExpiresAt,
		User:      sess.Identity,
		Redirect:  DashboardPath,
	})
}

// Logout godoc
// @Summary Sign out
// @Tags Auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	h.flow.Logout(c.Request.Context(), BearerToken(c))
	response.Success(c, http.StatusOK, gin.H{"redirect": LoginPath})
}

// Signup godoc
// @Summary Create an account
// @Description The account has no admin access until an operator grants it.
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Account"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409,503 {object} map[string]interface{}
// @Router /auth/signup [post]
func (h *Handler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	id, err := h.flow.Signup(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ValidationFailed(c, verr.Fields)
		case errors.Is(err, backend.ErrEmailTaken):
			response.Error(c, http.StatusConflict, "EMAIL_TAKEN", "An account with this email already exists")
		case errors.Is(err, backend.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			h.log.Error("signup failed", zap.Error(err))
			response.Unavailable(c, "Sign up failed, please try again")
		}
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"user":    id,
		"message": "Account created. Contact an administrator to grant admin access.",
	})
}

// ForgotPassword godoc
// @Summary Request a password reset link
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ForgotPasswordRequest true "Email"
// @Success 200 {object} map[string]interface{}
// @Failure 400,503 {object} map[string]interface{}
// @Router /auth/forgot-password [post]
func (h *Handler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	if err := h.flow.ForgotPassword(c.Request.Context(), req); err != nil {
		if errors.Is(err, ErrInvalidEmail) {
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
			return
		}
		h.log.Error("password reset request failed", zap.Error(err))
		response.Unavailable(c, "Could not send reset email, please try again")
		return
	}

	response.Success(c, http.StatusOK, gin.H{"message": "If the account exists, a reset link has been sent."})
}

// ResetPassword godoc
// @Summary Complete a password reset
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body ResetPasswordRequest true "Token and new password"
// @Success 200 {object} map[string]interface{}
// @Failure 400,503 {object} map[string]interface{}
// @Router /auth/reset-password [post]
func (h *Handler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	err := h.flow.ResetPassword(c.Request.Context(), req)
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			response.ValidationFailed(c, verr.Fields)
		case errors.Is(err, backend.ErrInvalidResetToken), errors.Is(err, backend.ErrWeakPassword):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		default:
			h.log.Error("password reset failed", zap.Error(err))
			response.Unavailable(c, "Password reset failed, please try again")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"redirect": LoginPath})
}

// Me godoc
// @Summary Current admin
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Router /admin/me [get]
func (h *Handler) Me(c *gin.Context) {
	id, _ := IdentityFrom(c)
	response.Success(c, http.StatusOK, id)
}
