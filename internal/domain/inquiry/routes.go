package inquiry

import "github.com/gin-gonic/gin"

// RegisterPublicRoutes mounts the contact form. submitLimit throttles senders.
func RegisterPublicRoutes(v1 *gin.RouterGroup, h *Handler, submitLimit gin.HandlerFunc) {
	v1.POST("/contact", submitLimit, h.Submit)
}

func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	inquiries := admin.Group("/inquiries")
	{
		inquiries.GET("", h.List)
		inquiries.GET("/:id", h.Get)
		inquiries.PATCH("/:id/status", h.UpdateStatus)
	}
}
