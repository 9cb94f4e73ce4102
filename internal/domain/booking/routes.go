package booking

import "github.com/gin-gonic/gin"

// RegisterRoutes mounts the public booking wizard. limit throttles opening
// drafts and submitting them, per client.
func RegisterRoutes(v1 *gin.RouterGroup, h *Handler, limit gin.HandlerFunc) {
	v1.GET("/services", h.Catalog)

	sessions := v1.Group("/booking/sessions")
	{
		sessions.POST("", limit, h.Start)
		sessions.GET("/:id", h.Get)
		sessions.DELETE("/:id", h.Abandon)
		sessions.PUT("/:id/service", h.SelectService)
		sessions.PUT("/:id/date", h.SelectDate)
		sessions.PUT("/:id/time", h.SelectTime)
		sessions.PUT("/:id/contact", h.SetContact)
		sessions.POST("/:id/next", h.Next)
		sessions.POST("/:id/back", h.Back)
		sessions.POST("/:id/submit", limit, h.Submit)
		sessions.GET("/:id/calendar.ics", h.CalendarFile)
		sessions.GET("/:id/calendar/links", h.CalendarLinks)
	}
}
