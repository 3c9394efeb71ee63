package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"manufacturing-system/internal/database"
	"manufacturing-system/internal/gateway/middleware"
	"manufacturing-system/internal/health"
	"manufacturing-system/internal/logger"
	"manufacturing-system/internal/services/manufacturing/handler"
)

type object = map[string]interface{}

func newTestRouter(t *testing.T, cfg RouterConfig) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := database.NewSQLiteMemory()
	require.NoError(t, err)
	require.NoError(t, database.MigrateManufacturingDB(db))
	t.Cleanup(func() { _ = database.Close(db) })

	log := logger.NewNop()
	r, err := NewRouter(cfg, handler.NewManufacturingHandler(db, nil, log), health.NewChecker(db, nil), log)
	require.NoError(t, err)
	return r, db
}

func call(t *testing.T, r http.Handler, method, path string, body interface{}) (int, object) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var out object
	if w.Body.Len() > 0 && w.Body.Bytes()[0] == '{' {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	}
	return w.Code, out
}

func callList(t *testing.T, r http.Handler, path string) []object {
	t.Helper()
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	require.Equal(t, http.StatusOK, w.Code)

	var out []object
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

func mustCreate(t *testing.T, r http.Handler, path string, body object) int64 {
	t.Helper()
	code, out := call(t, r, http.MethodPost, path, body)
	require.Equal(t, http.StatusCreated, code, out)
	return int64(out["id"].(float64))
}

func TestPlantProductScenario(t *testing.T) {
	r, _ := newTestRouter(t, RouterConfig{})

	code, plant := call(t, r, http.MethodPost, "/plants/", object{"name": "Test Plant", "location": "Test Location", "capacity": 100})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), plant["id"])
	assert.Equal(t, "Test Plant", plant["name"])
	assert.Equal(t, "Test Location", plant["location"])
	assert.Equal(t, float64(100), plant["capacity"])

	code, product := call(t, r, http.MethodPost, "/products/", object{
		"name": "Test Product", "description": "Test Description", "category": "Test Category", "price": 99.99,
	})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, float64(1), product["id"])
	assert.Equal(t, 99.99, product["price"])

	code, _ = call(t, r, http.MethodPost, "/plant_products/", object{"plant_id": 1, "product_id": 1, "quantity": 50})
	require.Equal(t, http.StatusCreated, code)

	code, _ = call(t, r, http.MethodDelete, "/plants/1", nil)
	assert.Equal(t, http.StatusNoContent, code)

	// the link cascades away with its plant
	assert.Empty(t, callList(t, r, "/plant_products/"))
	code, _ = call(t, r, http.MethodGet, "/products/1", nil)
	assert.Equal(t, http.StatusOK, code)
}

func TestEndToEndOrderFlow(t *testing.T) {
	r, _ := newTestRouter(t, RouterConfig{})

	material := mustCreate(t, r, "/materials/", object{"name": "Steel", "unit": "kg", "cost": 2.35})
	product := mustCreate(t, r, "/products/", object{"name": "Bracket", "price": 12})
	plant := mustCreate(t, r, "/plants/", object{"name": "Plant A", "capacity": 500})

	mustCreate(t, r, "/product_materials/", object{"product_id": product, "material_id": material, "quantity": 2})
	mustCreate(t, r, "/plant_products/", object{"plant_id": plant, "product_id": product, "quantity": 20})
	storageMaterial := mustCreate(t, r, "/storage_materials/", object{"material_id": material, "quantity": 1000})
	storageProduct := mustCreate(t, r, "/storage_products/", object{"product_id": product, "quantity": 50})

	order := mustCreate(t, r, "/orders/", object{"order_date": "2024-03-01T08:00:00Z", "status": "New", "customer_name": "ACME"})
	mustCreate(t, r, "/order_products/", object{"order_id": order, "product_id": product, "quantity": 10})

	code, updated := call(t, r, http.MethodPut, fmt.Sprintf("/orders/%d", order), object{
		"order_date": "2024-03-01T08:00:00Z", "status": "Completed", "customer_name": "ACME",
	})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Completed", updated["status"])

	code, fetched := call(t, r, http.MethodGet, fmt.Sprintf("/orders/%d", order), nil)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "Completed", fetched["status"])
	assert.Equal(t, "2024-03-01T08:00:00Z", fetched["order_date"])

	assert.Len(t, callList(t, r, "/product_materials/"), 1)
	assert.Len(t, callList(t, r, "/plant_products/"), 1)
	assert.Len(t, callList(t, r, fmt.Sprintf("/order_products/?order_id=%d", order)), 1)

	// storage is an independent counter; completing the order leaves it alone
	_, sm := call(t, r, http.MethodGet, fmt.Sprintf("/storage_materials/%d", storageMaterial), nil)
	assert.Equal(t, float64(1000), sm["quantity"])
	_, sp := call(t, r, http.MethodGet, fmt.Sprintf("/storage_products/%d", storageProduct), nil)
	assert.Equal(t, float64(50), sp["quantity"])
}

func TestHealthEndpoints(t *testing.T) {
	r, db := newTestRouter(t, RouterConfig{})

	code, body := call(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, health.StatusHealthy, body["status"])

	code, body = call(t, r, http.MethodGet, "/health/detailed", nil)
	assert.Equal(t, http.StatusOK, code)
	services := body["services"].(map[string]interface{})
	assert.Equal(t, health.StatusDisabled, services["cache"].(map[string]interface{})["status"])

	require.NoError(t, database.Close(db))
	code, body = call(t, r, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusServiceUnavailable, code)
	assert.Equal(t, []interface{}{"database"}, body["unavailable_services"])
}

func TestRateLimit(t *testing.T) {
	r, _ := newTestRouter(t, RouterConfig{RateLimit: "2-M"})

	for i := 0; i < 2; i++ {
		code, _ := call(t, r, http.MethodGet, "/plants/", nil)
		require.Equal(t, http.StatusOK, code)
	}
	code, _ := call(t, r, http.MethodGet, "/plants/", nil)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestHealthIsNotRateLimited(t *testing.T) {
	r, _ := newTestRouter(t, RouterConfig{RateLimit: "1-M"})

	for i := 0; i < 3; i++ {
		code, _ := call(t, r, http.MethodGet, "/health", nil)
		require.Equal(t, http.StatusOK, code)
		code, _ = call(t, r, http.MethodGet, "/health/detailed", nil)
		require.Equal(t, http.StatusOK, code)
	}

	code, _ := call(t, r, http.MethodGet, "/plants/", nil)
	assert.Equal(t, http.StatusOK, code)
	code, _ = call(t, r, http.MethodGet, "/plants/", nil)
	assert.Equal(t, http.StatusTooManyRequests, code)
}

func TestInvalidRateLimit(t *testing.T) {
	log := logger.NewNop()
	_, err := NewRouter(RouterConfig{RateLimit: "lots"}, nil, nil, log)
	assert.Error(t, err)
}

func TestRequestIDAndCORSHeaders(t *testing.T) {
	r, _ := newTestRouter(t, RouterConfig{AllowedOrigins: []string{"http://ui.test"}})

	req := httptest.NewRequest(http.MethodGet, "/plants/", nil)
	req.Header.Set(middleware.RequestIDHeader, "abc-123")
	req.Header.Set("Origin", "http://ui.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, "abc-123", w.Header().Get(middleware.RequestIDHeader))
	assert.Equal(t, "http://ui.test", w.Header().Get("Access-Control-Allow-Origin"))

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/plants/", nil))
	assert.NotEmpty(t, w.Header().Get(middleware.RequestIDHeader))
}
