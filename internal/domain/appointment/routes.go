package appointment

import "github.com/gin-gonic/gin"

// RegisterAdminRoutes mounts appointment routes under the guarded admin group.
func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	appointments := admin.Group("/appointments")
	{
		appointments.GET("", h.List)
		appointments.GET("/:id", h.Get)
		appointments.PATCH("/:id/status", h.UpdateStatus)
	}
}
