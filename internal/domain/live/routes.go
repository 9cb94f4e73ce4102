package live

import "github.com/gin-gonic/gin"

func RegisterAdminRoutes(admin *gin.RouterGroup, h *Hub) {
	admin.GET("/live", h.ServeWS)
}
