package upload

import "github.com/gin-gonic/gin"

// RegisterRoutes registers upload routes under the admin group.
func RegisterRoutes(admin *gin.RouterGroup, h *Handler) {
	admin.POST("/blog/images", h.UploadImage)
}
