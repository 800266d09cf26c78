package dispatch

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

	"hvacops/internal/pkg/jwt"
)

func setupDispatchServer(t *testing.T) (*Hub, *jwt.Service, *httptest.Server) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	hub := NewHub()
	tokens := jwt.New("dispatch-secret", time.Hour)
	r := gin.New()
	NewHandler(hub, tokens, "session", nil).RegisterRoutes(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return hub, tokens, srv
}

func wsURL(srv *httptest.Server, token string) string {
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws/dispatch?token=" + token
}

func readEvent(t *testing.T, conn *websocket.Conn) Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, raw, err := conn.ReadMessage()
	require.NoError(t, err)

	var ev Event
	require.NoError(t, json.Unmarshal(raw, &ev))
	return ev
}

func TestDispatch_StaffReceivesEvents(t *testing.T) {
	hub, tokens, srv := setupDispatchServer(t)

	token, err := tokens.GenerateToken(7, "OWNER", "owner@example.com")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	hub.Publish(TopicJobs, EventJobCreated, map[string]string{"jobNumber": "ARC-2026-001"})

	ev := readEvent(t, conn)
	assert.Equal(t, EventJobCreated, ev.Type)
	assert.Equal(t, TopicJobs, ev.Topic)
	assert.Equal(t, "ARC-2026-001", ev.Payload.(map[string]any)["jobNumber"])
}

func TestDispatch_Unsubscribe(t *testing.T) {
	hub, tokens, srv := setupDispatchServer(t)

	token, err := tokens.GenerateToken(8, "TECHNICIAN", "tech@example.com")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	defer conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(clientMessage{Type: "unsubscribe", Topic: TopicLeads}))
	require.Eventually(t, func() bool {
		hub.mu.RLock()
		defer hub.mu.RUnlock()
		for c := range hub.clients {
			return !c.topics[TopicLeads]
		}
		return false
	}, 2*time.Second, 10*time.Millisecond)

	hub.Publish(TopicLeads, EventLeadCreated, map[string]int{"id": 1})
	hub.Publish(TopicServiceRequests, EventServiceRequestSubmitted, map[string]int{"id": 2})

	ev := readEvent(t, conn)
	assert.Equal(t, EventServiceRequestSubmitted, ev.Type)
}

func TestDispatch_RejectsMissingAndBadTokens(t *testing.T) {
	_, _, srv := setupDispatchServer(t)

	resp, err := http.Get(srv.URL + "/ws/dispatch")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp, err = http.Get(srv.URL + "/ws/dispatch?token=garbage")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestDispatch_RejectsCustomers(t *testing.T) {
	_, tokens, srv := setupDispatchServer(t)

	token, err := tokens.GenerateToken(9, "CUSTOMER", "c@example.com")
	require.NoError(t, err)

	resp, err := http.Get(srv.URL + "/ws/dispatch?token=" + token)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestDispatch_DisconnectUnregisters(t *testing.T) {
	hub, tokens, srv := setupDispatchServer(t)

	token, err := tokens.GenerateToken(7, "OWNER", "owner@example.com")
	require.NoError(t, err)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(srv, token), nil)
	require.NoError(t, err)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, 2*time.Second, 10*time.Millisecond)

	conn.Close()
	require.Eventually(t, func() bool { return hub.ClientCount() == 0 }, 2*time.Second, 10*time.Millisecond)

	// publishing with no clients is a no-op
	hub.Publish(TopicJobs, EventJobCreated, nil)
}
