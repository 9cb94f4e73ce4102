package blog

import "github.com/gin-gonic/gin"

func RegisterRoutes(v1 *gin.RouterGroup, h *Handler) {
	b := v1.Group("/blog")
	{
		b.GET("/categories", h.Categories)
		b.GET("/posts", h.ListPublished)
		b.GET("/posts/:slug", h.GetBySlug)
	}
}

func RegisterAdminRoutes(admin *gin.RouterGroup, h *Handler) {
	posts := admin.Group("/blog/posts")
	{
		posts.GET("", h.List)
		posts.POST("", h.Create)
		posts.GET("/:id", h.Get)
		posts.PUT("/:id", h.Update)
		posts.DELETE("/:id", h.Delete)
	}
}
