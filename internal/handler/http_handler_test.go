package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StephanNaro/id-registry/internal/domain"
	"github.com/StephanNaro/id-registry/internal/generator"
	"github.com/StephanNaro/id-registry/internal/repository"
	"github.com/StephanNaro/id-registry/internal/service"
	"github.com/StephanNaro/id-registry/internal/suspend"
	"github.com/StephanNaro/id-registry/pkg/database"
	"github.com/StephanNaro/id-registry/pkg/response"
)

const testSecret = "test-admin-secret"

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.New(&database.Config{
		Driver:   "sqlite",
		FilePath: filepath.Join(t.TempDir(), "registry.db"),
	})
	require.NoError(t, err)
	require.NoError(t, database.AutoMigrate(db, &domain.IdentifierModel{}, &domain.SettingModel{}))

	ids := repository.NewGormIdentifierRepository(db)
	settings := repository.NewGormSettingsRepository(db)
	require.NoError(t, settings.Write(context.Background(), &domain.Settings{
		IDLength:    12,
		Charset:     domain.DefaultCharset,
		AdminSecret: testSecret,
	}))

	gate := suspend.NewGate(ids)
	svc := service.NewRegistryService(ids, settings, generator.NewCharsetGenerator(), gate, nil, time.Minute, 100)

	r := gin.New()
	NewHandler(svc).RegisterRoutes(r)
	return r
}

func perform(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func generateID(t *testing.T, r *gin.Engine, owner string) string {
	t.Helper()
	w := perform(r, http.MethodPost, "/api/v1/ids", gin.H{"owner": owner})
	require.Equal(t, http.StatusCreated, w.Code)
	resp := decode(t, w)
	data := resp.Data.(map[string]interface{})
	return data["id"].(string)
}

func TestGenerateEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/ids", gin.H{"owner": "person_app", "table": "contacts"})
	require.Equal(t, http.StatusCreated, w.Code)

	resp := decode(t, w)
	require.True(t, resp.Success)
	data := resp.Data.(map[string]interface{})
	assert.Len(t, data["id"].(string), 12)
	assert.Equal(t, "person_app", data["owner"])
	assert.Equal(t, "contacts", data["table_name"])
	assert.Equal(t, false, data["confirmed"])
}

func TestGenerateEndpointInvalidOwner(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPost, "/api/v1/ids", gin.H{"owner": "bad owner!"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "INVALID_OWNER", decode(t, w).Error.Code)

	// Missing owner fails request binding.
	w = perform(r, http.MethodPost, "/api/v1/ids", gin.H{"table": "contacts"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLookupEndpoint(t *testing.T) {
	r := newTestRouter(t)
	id := generateID(t, r, "svc1")

	w := perform(r, http.MethodGet, "/api/v1/ids/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, id, data["id"])

	w = perform(r, http.MethodGet, "/api/v1/ids/noSuchIDhere", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestConfirmEndpoint(t *testing.T) {
	r := newTestRouter(t)
	id := generateID(t, r, "svc1")

	w := perform(r, http.MethodPost, "/api/v1/ids/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// Second confirm is still a success.
	w = perform(r, http.MethodPost, "/api/v1/ids/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/ids/"+id, nil)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, data["confirmed"])

	w = perform(r, http.MethodPost, "/api/v1/ids/noSuchIDhere/confirm", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteEndpointKeepsRecord(t *testing.T) {
	r := newTestRouter(t)
	id := generateID(t, r, "svc1")

	w := perform(r, http.MethodDelete, "/api/v1/ids/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/api/v1/ids/"+id, nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, true, data["deleted"])

	// Confirming a deleted id is rejected.
	w = perform(r, http.MethodPost, "/api/v1/ids/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestPreviewEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodGet, "/api/v1/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	data := decode(t, w).Data.(map[string]interface{})
	candidate := data["preview_id"].(string)
	assert.Len(t, candidate, 12)

	// Nothing was persisted.
	w = perform(r, http.MethodGet, "/api/v1/ids/"+candidate, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuspendResumeFlow(t *testing.T) {
	r := newTestRouter(t)
	id := generateID(t, r, "svc1")

	// Wrong secret is rejected and nothing changes.
	w := perform(r, http.MethodPost, "/admin/suspend", gin.H{"secret": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodGet, "/health", nil)
	data := decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "active", data["status"])

	// Suspend with the right secret.
	w = perform(r, http.MethodPost, "/admin/suspend", gin.H{"secret": testSecret})
	require.Equal(t, http.StatusOK, w.Code)

	// Writes are rejected with the distinct suspended signal.
	w = perform(r, http.MethodPost, "/api/v1/ids", gin.H{"owner": "svc1"})
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Equal(t, "SUSPENDED", decode(t, w).Error.Code)

	w = perform(r, http.MethodPost, "/api/v1/ids/"+id+"/confirm", nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	w = perform(r, http.MethodDelete, "/api/v1/ids/"+id, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	// Reads and health stay available.
	w = perform(r, http.MethodGet, "/api/v1/ids/"+id, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodGet, "/health", nil)
	data = decode(t, w).Data.(map[string]interface{})
	assert.Equal(t, "suspended", data["status"])
	assert.NotEmpty(t, data["suspended_at"])

	// Resume re-admits writes.
	w = perform(r, http.MethodPost, "/admin/resume", gin.H{"secret": testSecret})
	require.Equal(t, http.StatusOK, w.Code)

	w = perform(r, http.MethodPost, "/api/v1/ids", gin.H{"owner": "svc1"})
	assert.Equal(t, http.StatusCreated, w.Code)
}

func TestUpdateSettingsEndpoint(t *testing.T) {
	r := newTestRouter(t)

	w := perform(r, http.MethodPut, "/admin/settings", gin.H{
		"secret": testSecret, "id_length": 8, "charset": "AB01",
	})
	require.Equal(t, http.StatusOK, w.Code)

	id := generateID(t, r, "svc1")
	assert.Len(t, id, 8)

	w = perform(r, http.MethodPut, "/admin/settings", gin.H{
		"secret": "wrong", "id_length": 8, "charset": "AB01",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = perform(r, http.MethodPut, "/admin/settings", gin.H{
		"secret": testSecret, "id_length": 40, "charset": "AB01",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
