package blog

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/domain/admin"
	"consultancy/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// ListPublished godoc
// @Summary List published blog posts
// @Tags Blog
// @Produce json
// @Param category query string false "Category filter"
// @Param q query string false "Search title or excerpt"
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /blog/posts [get]
func (h *Handler) ListPublished(c *gin.Context) {
	posts, err := h.service.ListPublished(c.Request.Context(), PublicFilter{
		Category: c.Query("category"),
		Query:    c.Query("q"),
	})
	if err != nil {
		h.fail(c, err, "/blog")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts, "total": len(posts)})
}

// GetBySlug godoc
// @Summary Read a published post
// @Tags Blog
// @Produce json
// @Param slug path string true "Post slug"
// @Success 200 {object} map[string]interface{}
// @Failure 404,503 {object} map[string]interface{}
// @Router /blog/posts/{slug} [get]
func (h *Handler) GetBySlug(c *gin.Context) {
	p, err := h.service.GetPublished(c.Request.Context(), c.Param("slug"))
	if err != nil {
		h.fail(c, err, "/blog")
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Categories godoc
// @Summary List blog categories
// @Tags Blog
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /blog/categories [get]
func (h *Handler) Categories(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{"categories": Categories})
}

// List godoc
// @Summary List all posts
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 503 {object} map[string]interface{}
// @Router /admin/blog/posts [get]
func (h *Handler) List(c *gin.Context) {
	posts, err := h.service.ListAll(c.Request.Context())
	if err != nil {
		h.fail(c, err, "/admin")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"posts": posts, "total": len(posts)})
}

// Get godoc
// @Summary Get post for editing
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,503 {object} map[string]interface{}
// @Router /admin/blog/posts/{id} [get]
func (h *Handler) Get(c *gin.Context) {
	p, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err, "/admin/blog")
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create godoc
// @Summary Create post
// @Tags Admin Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body PostInput true "Post"
// @Success 201 {object} map[string]interface{}
// @Failure 400,409,503 {object} map[string]interface{}
// @Router /admin/blog/posts [post]
func (h *Handler) Create(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}
	author, _ := admin.IdentityFrom(c)

	p, err := h.service.Create(c.Request.Context(), author, in)
	if err != nil {
		h.fail(c, err, "/admin/blog")
		return
	}
	response.Success(c, http.StatusCreated, p)
}

// Update godoc
// @Summary Update post
// @Tags Admin Blog
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Param request body PostInput true "Post"
// @Success 200 {object} map[string]interface{}
// @Failure 400,404,409,503 {object} map[string]interface{}
// @Router /admin/blog/posts/{id} [put]
func (h *Handler) Update(c *gin.Context) {
	var in PostInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "Invalid request body")
		return
	}

	p, err := h.service.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		h.fail(c, err, "/admin/blog")
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Delete godoc
// @Summary Delete post
// @Tags Admin Blog
// @Produce json
// @Security BearerAuth
// @Param id path string true "Post ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404,503 {object} map[string]interface{}
// @Router /admin/blog/posts/{id} [delete]
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		h.fail(c, err, "/admin/blog")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handler) fail(c *gin.Context, err error, back string) {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		response.ValidationFailed(c, verr.Fields)
	case errors.Is(err, ErrNotFound):
		response.Redirect(c, http.StatusNotFound, "NOT_FOUND", "Post not found", back)
	case errors.Is(err, ErrSlugTaken):
		response.Error(c, http.StatusConflict, "SLUG_TAKEN", err.Error())
	case errors.Is(err, ErrInvalidSlug), errors.Is(err, ErrUnknownCategory):
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
	default:
		h.log.Error("blog request failed", zap.Error(err))
		response.Unavailable(c, "Failed to load blog posts")
	}
}
