package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"consultancy/internal/backend/diskstore"
	"consultancy/internal/backend/gormstore"
	"consultancy/internal/backend/localauth"
	"consultancy/internal/config"
	"consultancy/internal/database/dbtest"
	"consultancy/internal/domain/admin"
	"consultancy/internal/domain/booking"
	"consultancy/internal/middleware"
	jwtsvc "consultancy/internal/pkg/jwt"
)

type env struct {
	router http.Handler
	grants admin.GrantRepository
	srv    *Server
}

func setup(t *testing.T) *env {
	t.Helper()
	gin.SetMode(gin.TestMode)

	uploads := t.TempDir()
	t.Setenv("APP_ENV", "test")
	t.Setenv("UPLOADS_DIR", uploads)
	cfg, err := config.FromEnv()
	require.NoError(t, err)

	db := dbtest.Open(t, Models()...)
	tables := gormstore.New(db)
	auth := localauth.NewService(db, jwtsvc.New("test-secret", time.Hour), nil, nil)
	catalog, err := booking.LoadCatalog("")
	require.NoError(t, err)

	now := time.Date(2030, 1, 1, 9, 0, 0, 0, cfg.Location)
	srv := New(cfg, Deps{
		Auth:    auth,
		Tables:  tables,
		Objects: diskstore.New(uploads, cfg.StaticURLBase),
		Limiter: middleware.NewMemoryLimiter(1000, 1000),
		Catalog: catalog,
		Now:     func() time.Time { return now },
	}, nil)

	return &env{router: srv.Router, grants: admin.NewGrantRepository(tables), srv: srv}
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string         `json:"code"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func (e *env) do(t *testing.T, method, path, token, body string) (int, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, r)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)

	var out envelope
	if w.Header().Get("Content-Type") != "" && bytes.HasPrefix(w.Body.Bytes(), []byte("{")) {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func (e *env) login(t *testing.T, email, password string) (int, envelope, string) {
	t.Helper()
	code, out := e.do(t, http.MethodPost, "/api/v1/auth/login", "",
		`{"email":"`+email+`","password":"`+password+`"}`)
	var sess admin.SessionResponse
	if code == http.StatusOK {
		require.NoError(t, json.Unmarshal(out.Data, &sess))
	}
	return code, out, sess.Token
}

func TestAdminLoginGuard(t *testing.T) {
	e := setup(t)
	ctx := context.Background()

	code, _ := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", `{"email":"owner@decodershq.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, code)

	code, out, _ := e.login(t, "owner@decodershq.com", "secret123")
	assert.Equal(t, http.StatusForbidden, code)
	assert.Equal(t, "ACCESS_DENIED", out.Error.Code)
	assert.Equal(t, "/", out.Error.Details["redirect"])

	code, out, _ = e.login(t, "owner@decodershq.com", "wrong-password")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "INVALID_CREDENTIALS", out.Error.Code)

	require.NoError(t, e.grants.Create(ctx, &admin.Grant{Email: "owner@decodershq.com"}))

	code, _, token := e.login(t, "owner@decodershq.com", "secret123")
	require.Equal(t, http.StatusOK, code)
	require.NotEmpty(t, token)

	code, out = e.do(t, http.MethodGet, "/api/v1/admin/me", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(out.Data), "owner@decodershq.com")

	code, _ = e.do(t, http.MethodPost, "/api/v1/auth/logout", token, "")
	assert.Equal(t, http.StatusOK, code)

	code, out = e.do(t, http.MethodGet, "/api/v1/admin/me", token, "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "/auth", out.Error.Details["redirect"])

	code, out = e.do(t, http.MethodGet, "/api/v1/admin/appointments", "", "")
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "AUTH_REQUIRED", out.Error.Code)
}

func adminToken(t *testing.T, e *env) string {
	t.Helper()
	code, _ := e.do(t, http.MethodPost, "/api/v1/auth/signup", "", `{"email":"editor@decodershq.com","password":"secret123"}`)
	require.Equal(t, http.StatusCreated, code)
	require.NoError(t, e.grants.Create(context.Background(), &admin.Grant{Email: "editor@decodershq.com"}))
	code, _, token := e.login(t, "editor@decodershq.com", "secret123")
	require.Equal(t, http.StatusOK, code)
	return token
}

func TestBookingShowsUpOnDashboard(t *testing.T) {
	e := setup(t)
	token := adminToken(t, e)

	code, out := e.do(t, http.MethodPost, "/api/v1/booking/sessions", "", "")
	require.Equal(t, http.StatusCreated, code)
	var sess struct {
		SessionID string `json:"session_id"`
		Step      string `json:"step"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &sess))
	base := "/api/v1/booking/sessions/" + sess.SessionID

	steps := []struct{ method, path, body string }{
		{http.MethodPut, "/service", `{"service_id":"business-consultancy"}`},
		{http.MethodPost, "/next", ""},
		{http.MethodPut, "/date", `{"date":"2030-01-15"}`},
		{http.MethodPut, "/time", `{"time":"10:00 AM"}`},
		{http.MethodPost, "/next", ""},
		{http.MethodPut, "/contact", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`},
	}
	for _, s := range steps {
		code, out := e.do(t, s.method, base+s.path, "", s.body)
		require.Equal(t, http.StatusOK, code, "%s %s: %s", s.method, s.path, out.Error.Code)
	}

	code, _ = e.do(t, http.MethodPost, base+"/submit", "", "")
	require.Equal(t, http.StatusCreated, code)

	code, out = e.do(t, http.MethodGet, "/api/v1/admin/appointments?status=pending", token, "")
	require.Equal(t, http.StatusOK, code)
	var list struct {
		Total        int `json:"total"`
		Appointments []struct {
			ID              string  `json:"id"`
			Email           string  `json:"email"`
			AppointmentDate string  `json:"appointment_date"`
			AppointmentTime *string `json:"appointment_time"`
		} `json:"appointments"`
	}
	require.NoError(t, json.Unmarshal(out.Data, &list))
	require.Equal(t, 1, list.Total)
	assert.Equal(t, "ada@example.com", list.Appointments[0].Email)
	assert.Equal(t, "2030-01-15", list.Appointments[0].AppointmentDate)

	code, _ = e.do(t, http.MethodPatch, "/api/v1/admin/appointments/"+list.Appointments[0].ID+"/status", token, `{"status":"confirmed"}`)
	assert.Equal(t, http.StatusOK, code)
}

func TestBlogPublishingAndImageUpload(t *testing.T) {
	e := setup(t)
	token := adminToken(t, e)

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	part, err := mw.CreateFormFile("file", "cover.png")
	require.NoError(t, err)
	png := append([]byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}, make([]byte, 512)...)
	_, err = part.Write(png)
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/blog/images", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var uploaded envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &uploaded))
	var img struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.Unmarshal(uploaded.Data, &img))
	require.NotEmpty(t, img.URL)

	w = httptest.NewRecorder()
	e.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, img.URL, nil))
	assert.Equal(t, http.StatusOK, w.Code)

	code, _ := e.do(t, http.MethodPost, "/api/v1/admin/blog/posts", token,
		`{"title":"Scaling Your Business","content":"# Growth\n\nPlan it.","status":"published","category":"Business","featured_image_url":"`+img.URL+`"}`)
	require.Equal(t, http.StatusCreated, code)

	code, out := e.do(t, http.MethodGet, "/api/v1/blog/posts/scaling-your-business", "", "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(out.Data), "editor")

	code, _ = e.do(t, http.MethodPost, "/api/v1/admin/blog/posts", "", `{"title":"x","content":"y"}`)
	assert.Equal(t, http.StatusUnauthorized, code)
}

func TestContactFormReachesInbox(t *testing.T) {
	e := setup(t)
	token := adminToken(t, e)

	code, out := e.do(t, http.MethodPost, "/api/v1/contact", "", `{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "VALIDATION_ERROR", out.Error.Code)

	code, _ = e.do(t, http.MethodPost, "/api/v1/contact", "",
		`{"first_name":"Ada","last_name":"Lovelace","email":"ada@example.com","service":"Branding","message":"Hello"}`)
	require.Equal(t, http.StatusCreated, code)

	code, out = e.do(t, http.MethodGet, "/api/v1/admin/inquiries?status=new", token, "")
	require.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(out.Data), `"total":1`)
	assert.NotContains(t, string(out.Data), "ip_address")
}

func TestHealthAndUnknownRoute(t *testing.T) {
	e := setup(t)

	code, _ := e.do(t, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, code)

	code, out := e.do(t, http.MethodGet, "/nowhere", "", "")
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "/", out.Error.Details["redirect"])
}
