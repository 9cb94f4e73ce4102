package upload

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"consultancy/internal/backend"
	"consultancy/internal/pkg/response"
)

type Handler struct {
	service *Service
	log     *zap.Logger
}

func NewHandler(service *Service, log *zap.Logger) *Handler {
	return &Handler{service: service, log: log}
}

// UploadImage godoc
// @Summary Upload a blog featured image
// @Description Accepts image/* up to 5 MB and returns its public URL.
// @Tags Admin Blog
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param file formData file true "Image"
// @Success 201 {object} map[string]interface{}
// @Failure 400,413,503 {object} map[string]interface{}
// @Router /admin/blog/images [post]
func (h *Handler) UploadImage(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxImageSize+1<<20)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "no file provided")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", "file could not be read")
		return
	}
	defer file.Close()

	img, err := h.service.UploadImage(c.Request.Context(), fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, ErrFileTooLarge):
			response.Error(c, http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", err.Error())
		case errors.Is(err, ErrNotImage), errors.Is(err, ErrEmptyFile):
			response.Error(c, http.StatusBadRequest, "VALIDATION_ERROR", err.Error())
		case errors.Is(err, backend.ErrObjectExists):
			response.Unavailable(c, "upload collided with an existing file, please retry")
		default:
			h.log.Error("image upload failed", zap.Error(err))
			response.Unavailable(c, "upload failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, img)
}
