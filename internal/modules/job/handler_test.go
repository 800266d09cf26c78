package job

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"hvacops/internal/database/dbtest"
	"hvacops/internal/domain"
	"hvacops/internal/repository"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db := dbtest.Open(t)
	timeout := 5 * time.Second
	svc := NewService(
		repository.NewJobRepository(db, timeout),
		repository.NewCustomerRepository(db, timeout),
		repository.NewUserRepository(db, timeout),
		nil,
		"ARC",
	)

	r := gin.New()
	v1 := r.Group("/api/v1")
	NewHandler(svc).RegisterRoutes(v1, func(c *gin.Context) { c.Next() })
	return r, db
}

func doJSONRequest(r http.Handler, method, path string, body any) (*httptest.ResponseRecorder, envelope) {
	var reader *bytes.Reader
	if body == nil {
		reader = bytes.NewReader(nil)
	} else {
		b, _ := json.Marshal(body)
		reader = bytes.NewReader(b)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	var env envelope
	_ = json.Unmarshal(rr.Body.Bytes(), &env)
	return rr, env
}

func TestJobEndpoints_CreateAndList(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := dbtest.Customer(t, db, "Corner Grocery")
	property := dbtest.Property(t, db, customer.ID)
	unit := dbtest.Unit(t, db, property.ID)
	tech := dbtest.Technician(t, db, "Sam Cool", dbtest.Bool(true))

	year := time.Now().Year()

	rr, env := doJSONRequest(r, http.MethodPost, "/api/v1/jobs", gin.H{
		"title":         "Cooler down",
		"description":   "Walk-in at 48F",
		"jobType":       "REPAIR",
		"customerId":    customer.ID,
		"propertyId":    property.ID,
		"unitId":        unit.ID,
		"technicianId":  tech.ID,
		"scheduledDate": "2026-05-01",
		"estimatedCost": 100.005,
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var first JobView
	require.NoError(t, json.Unmarshal(env.Data, &first))
	assert.Equal(t, fmt.Sprintf("ARC-%d-001", year), first.JobNumber)
	assert.Equal(t, domain.JobScheduled, first.Status)
	assert.Equal(t, domain.PriorityNormal, first.Priority)
	require.NotNil(t, first.Customer)
	assert.Equal(t, "Corner Grocery", first.Customer.Name)
	require.NotNil(t, first.Technician)
	require.NotNil(t, first.Unit)
	require.NotNil(t, first.EstimatedCost)
	assert.Equal(t, 100.01, *first.EstimatedCost)
	assert.Equal(t, "2026-05-01", *first.ScheduledDate)

	rr, env = doJSONRequest(r, http.MethodPost, "/api/v1/jobs", gin.H{
		"title":       "Quote new rack",
		"description": "Replace compressor rack",
		"jobType":     "quote",
		"customerId":  customer.ID,
		"propertyId":  property.ID,
		"priority":    "ASAP",
	})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	var second JobView
	require.NoError(t, json.Unmarshal(env.Data, &second))
	assert.Equal(t, fmt.Sprintf("ARC-%d-002", year), second.JobNumber)
	assert.Equal(t, domain.JobPending, second.Status)
	assert.Equal(t, domain.PriorityNormal, second.Priority)

	rr, env = doJSONRequest(r, http.MethodGet, "/api/v1/jobs", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var all []JobView
	require.NoError(t, json.Unmarshal(env.Data, &all))
	require.Len(t, all, 2)
	assert.Equal(t, second.ID, all[0].ID)

	_, bogus := doJSONRequest(r, http.MethodGet, "/api/v1/jobs?status=BOGUS&limit=abc", nil)
	assert.JSONEq(t, string(env.Data), string(bogus.Data))

	_, env = doJSONRequest(r, http.MethodGet, "/api/v1/jobs?status=scheduled", nil)
	var scheduled []JobView
	require.NoError(t, json.Unmarshal(env.Data, &scheduled))
	require.Len(t, scheduled, 1)
	assert.Equal(t, first.ID, scheduled[0].ID)

	_, env = doJSONRequest(r, http.MethodGet, "/api/v1/jobs/unassigned", nil)
	var unassigned []JobView
	require.NoError(t, json.Unmarshal(env.Data, &unassigned))
	require.Len(t, unassigned, 1)
	assert.Equal(t, second.ID, unassigned[0].ID)

	rr, env = doJSONRequest(r, http.MethodGet, fmt.Sprintf("/api/v1/jobs/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, rr.Code)
	var got JobView
	require.NoError(t, json.Unmarshal(env.Data, &got))
	assert.Equal(t, first.JobNumber, got.JobNumber)
}

func TestJobEndpoints_Errors(t *testing.T) {
	r, db := setupTestRouter(t)
	customer := dbtest.Customer(t, db, "Corner Grocery")
	property := dbtest.Property(t, db, customer.ID)

	rr, env := doJSONRequest(r, http.MethodPost, "/api/v1/jobs", gin.H{"title": "only a title"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Message, "description")
	assert.Contains(t, env.Error.Message, "jobType")
	assert.Contains(t, env.Error.Message, "customerId")
	assert.Contains(t, env.Error.Message, "propertyId")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/jobs", bytes.NewBufferString("{not json"))
	req.Header.Set("Content-Type", "application/json")
	raw := httptest.NewRecorder()
	r.ServeHTTP(raw, req)
	assert.Equal(t, http.StatusBadRequest, raw.Code)

	rr, env = doJSONRequest(r, http.MethodPost, "/api/v1/jobs", gin.H{
		"title":       "Ghost",
		"description": "no such customer",
		"jobType":     "REPAIR",
		"customerId":  9999,
		"propertyId":  property.ID,
	})
	assert.Equal(t, http.StatusNotFound, rr.Code)
	assert.Equal(t, "NOT_FOUND", env.Error.Code)

	rr, _ = doJSONRequest(r, http.MethodGet, "/api/v1/jobs/12345", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	rr, _ = doJSONRequest(r, http.MethodGet, "/api/v1/jobs/abc", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)

	var count int64
	require.NoError(t, db.Model(&domain.Job{}).Count(&count).Error)
	assert.Zero(t, count)
}
