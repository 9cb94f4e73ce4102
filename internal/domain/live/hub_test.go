package live

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func newServer(t *testing.T, hub *Hub) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	r := gin.New()
	RegisterAdminRoutes(r.Group("/admin"), hub)
	return httptest.NewServer(r)
}

func dial(t *testing.T, srv *httptest.Server, origin string) (*websocket.Conn, *http.Response, error) {
	t.Helper()
	header := http.Header{}
	if origin != "" {
		header.Set("Origin", origin)
	}
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/admin/live"
	return websocket.DefaultDialer.Dial(url, header)
}

func TestHub_PublishReachesClient(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub([]string{"https://decodershq.com"}, nil)
	srv := newServer(t, hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, "https://decodershq.com")
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	hub.Publish("appointment.created", map[string]string{"id": "a-1"})

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev struct {
		Type    string            `json:"type"`
		Payload map[string]string `json:"payload"`
	}
	require.NoError(t, json.Unmarshal(msg, &ev))
	assert.Equal(t, "appointment.created", ev.Type)
	assert.Equal(t, "a-1", ev.Payload["id"])

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Len() == 0 }, 2*time.Second, 5*time.Millisecond)
}

func TestHub_RejectsForeignOrigin(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub([]string{"https://decodershq.com"}, nil)
	srv := newServer(t, hub)
	defer srv.Close()

	_, resp, err := dial(t, srv, "https://evil.example")
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Zero(t, hub.Len())
}

func TestHub_CloseDisconnectsClients(t *testing.T) {
	defer goleak.VerifyNone(t)

	hub := NewHub(nil, nil)
	srv := newServer(t, hub)
	defer srv.Close()

	conn, _, err := dial(t, srv, "")
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.Len() == 1 }, time.Second, 5*time.Millisecond)

	hub.Close()
	assert.Zero(t, hub.Len())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	var closeErr *websocket.CloseError
	assert.ErrorAs(t, err, &closeErr)

	// refused after close
	late, _, err := dial(t, srv, "")
	require.NoError(t, err)
	defer late.Close()
	require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = late.ReadMessage()
	assert.ErrorAs(t, err, &closeErr)
	assert.Zero(t, hub.Len())
}

func TestHub_PublishWithoutClients(t *testing.T) {
	hub := NewHub(nil, nil)
	assert.NotPanics(t, func() { hub.Publish("noop", nil) })
}
