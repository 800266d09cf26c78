package lead

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	svc, _ := setupTestService(t)
	r := gin.New()
	NewHandler(svc).RegisterRoutes(r.Group("/api/v1"), func(c *gin.Context) { c.Next() })
	return r
}

func doJSONRequest(r http.Handler, method, path string, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func TestLeadEndpoints(t *testing.T) {
	r := setupTestRouter(t)

	rr := doJSONRequest(r, http.MethodPost, "/api/v1/leads",
		`{"name":"Dana","phone":"555","serviceNeeded":"Reach-in repair","source":"TIKTOK","urgency":"3"}`)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var created struct {
		Success bool     `json:"success"`
		Data    LeadView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &created))
	assert.True(t, created.Success)
	assert.Equal(t, "WEBSITE", string(created.Data.Source))
	require.NotNil(t, created.Data.Urgency)
	assert.Equal(t, 3, *created.Data.Urgency)

	rr = doJSONRequest(r, http.MethodPost, "/api/v1/leads", `{"name":"Dana","urgency":"abc"}`)
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "missing required fields: phone, serviceNeeded")

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/leads?status=BOGUS", "")
	require.Equal(t, http.StatusOK, rr.Code)
	var list struct {
		Data []LeadView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &list))
	assert.Len(t, list.Data, 1)

	rr = doJSONRequest(r, http.MethodGet, "/api/v1/leads/stats", "")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"NEW":1`)
}
