package blog

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, _ := newService(t)
	h := NewHandler(svc, zap.NewNop())

	r := gin.New()
	RegisterRoutes(r.Group("/api/v1"), h)
	RegisterAdminRoutes(r.Group("/api/v1/admin"), h)
	return r
}

func do(t *testing.T, r http.Handler, method, target, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w.Code, env
}

func TestHandler_PublishAndRead(t *testing.T) {
	r := newRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/admin/blog/posts",
		`{"title":"Hello World","content":"Some **markdown**","status":"published","category":"Tutorials"}`)
	require.Equal(t, http.StatusCreated, code)
	var created Post
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "hello-world", created.Slug)

	code, env = do(t, r, http.MethodGet, "/api/v1/blog/posts/hello-world", "")
	require.Equal(t, http.StatusOK, code)
	var read PublishedPost
	require.NoError(t, json.Unmarshal(env.Data, &read))
	assert.Contains(t, read.HTML, "<strong>markdown</strong>")
	assert.Empty(t, read.Related)

	code, _ = do(t, r, http.MethodPost, "/api/v1/admin/blog/posts",
		`{"title":"Hello World","content":"again"}`)
	assert.Equal(t, http.StatusConflict, code)
}

func TestHandler_NotFoundRedirects(t *testing.T) {
	r := newRouter(t)

	code, env := do(t, r, http.MethodGet, "/api/v1/blog/posts/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "/blog", env.Error.Details["redirect"])

	code, env = do(t, r, http.MethodGet, "/api/v1/admin/blog/posts/missing", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "/admin/blog", env.Error.Details["redirect"])
}

func TestHandler_ValidationAndCategories(t *testing.T) {
	r := newRouter(t)

	code, env := do(t, r, http.MethodPost, "/api/v1/admin/blog/posts", `{"content":"x"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)

	code, env = do(t, r, http.MethodGet, "/api/v1/blog/categories", "")
	require.Equal(t, http.StatusOK, code)
	var body struct {
		Categories []string `json:"categories"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &body))
	assert.Equal(t, Categories, body.Categories)
}
