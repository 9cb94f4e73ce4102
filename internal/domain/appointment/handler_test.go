package appointment

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func TestHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc, _ := newService(t)
	rows := seed(t, svc)

	r := gin.New()
	RegisterAdminRoutes(r.Group("/admin"), NewHandler(svc, zap.NewNop()))

	do := func(method, target, body string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w
	}

	w := do(http.MethodGet, "/admin/appointments?status=pending&q=ada", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"total":1`)

	w = do(http.MethodPatch, "/admin/appointments/"+rows[1].ID+"/status", `{"status":"completed"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"completed"`)

	w = do(http.MethodPatch, "/admin/appointments/"+rows[1].ID+"/status", `{"status":"lost"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(http.MethodGet, "/admin/appointments/nope", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), `"redirect":"/admin"`)
}
