package admin

import "github.com/gin-gonic/gin"

// RegisterAuthRoutes mounts the public auth endpoints. loginLimit throttles login attempts.
func RegisterAuthRoutes(v1 *gin.RouterGroup, h *Handler, loginLimit gin.HandlerFunc) {
	auth := v1.Group("/auth")
	{
		auth.POST("/login", loginLimit, h.Login)
		auth.POST("/signup", loginLimit, h.Signup)
		auth.POST("/forgot-password", loginLimit, h.ForgotPassword)
		auth.POST("/reset-password", h.ResetPassword)
		auth.POST("/logout", h.Logout)
		auth.GET("/session", h.Session)
	}
}

// RegisterAdminRoutes mounts routes under a group already guarded by RequireAdmin.
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	admin.GET("/me", h.Me)
}
