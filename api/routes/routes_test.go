package routes

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"grandprix/internal/booking"
	"grandprix/internal/shared/config"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

// setupTestServer wires the full route tree against a fresh store with
// the seeded catalog, the way server/main.go does.
func setupTestServer(t *testing.T) (*gin.Engine, *booking.Store) {
	t.Helper()
	store, err := booking.Open(booking.Config{DataDir: t.TempDir(), SeedCatalog: true})
	require.NoError(t, err)

	engine := gin.New()
	NewRouter(config.Load(), store).SetupRoutes(engine)
	return engine, store
}

func do(t *testing.T, engine *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func payload(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	data, ok := env["data"].(map[string]interface{})
	require.True(t, ok, "expected a data object in %s", w.Body.String())
	return data
}

func payloadList(t *testing.T, w *httptest.ResponseRecorder) []interface{} {
	t.Helper()
	var env map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	data, ok := env["data"].([]interface{})
	require.True(t, ok, "expected a data array in %s", w.Body.String())
	return data
}

func login(t *testing.T, engine *gin.Engine, username, password string) string {
	t.Helper()
	w := do(t, engine, http.MethodPost, "/api/v1/auth/login", gin.H{
		"username": username,
		"password": password,
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	return payload(t, w)["access_token"].(string)
}

func register(t *testing.T, engine *gin.Engine, username string) string {
	t.Helper()
	w := do(t, engine, http.MethodPost, "/api/v1/auth/register", gin.H{
		"username": username,
		"password": "secret123",
		"email":    username + "@example.com",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return payload(t, w)["access_token"].(string)
}

func TestHealthEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := do(t, engine, http.MethodGet, "/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"healthy"`)

	w = do(t, engine, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "pong")

	w = do(t, engine, http.MethodGet, "/status", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "BookingSystem: Grand Prix Experience")
}

func TestPublicCatalog(t *testing.T) {
	engine, _ := setupTestServer(t)

	w := do(t, engine, http.MethodGet, "/api/v1/races", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payloadList(t, w), 5, "the seeded lineup is browsable without a token")

	w = do(t, engine, http.MethodGet, "/api/v1/races/R001", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Monaco Grand Prix", payload(t, w)["name"])

	w = do(t, engine, http.MethodGet, "/api/v1/races/R999", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = do(t, engine, http.MethodGet, "/api/v1/seasons", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payloadList(t, w), 1)
}

func TestManualOrderFlow(t *testing.T) {
	engine, _ := setupTestServer(t)
	aliceToken := register(t, engine, "alice")
	adminToken := login(t, engine, "admin", "admin123")

	// Admin mints a ticket into the registry.
	w := do(t, engine, http.MethodPost, "/api/v1/admin/tickets", gin.H{
		"kind":          "SingleRace",
		"base_price":    200,
		"event_date":    "2027-06-15T00:00:00Z",
		"venue_section": "Main Grandstand",
		"race_name":     "Monaco Grand Prix",
		"category":      "Premium",
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	ticketID := payload(t, w)["id"].(string)

	// The customer walks the order through its states.
	w = do(t, engine, http.MethodPost, "/api/v1/orders", nil, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	orderID := payload(t, w)["id"].(string)
	assert.Equal(t, "Pending", payload(t, w)["status"])

	w = do(t, engine, http.MethodPost, "/api/v1/orders/"+orderID+"/tickets", gin.H{
		"ticket_id": ticketID,
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.InDelta(t, 240.0, payload(t, w)["total"].(float64), 1e-9)

	w = do(t, engine, http.MethodPost, "/api/v1/orders/"+orderID+"/confirm", nil, aliceToken)
	assert.Equal(t, http.StatusConflict, w.Code, "no payment method yet")

	w = do(t, engine, http.MethodPut, "/api/v1/orders/"+orderID+"/payment", gin.H{
		"payment_method": "Credit Card",
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, engine, http.MethodPost, "/api/v1/orders/"+orderID+"/confirm", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Confirmed", payload(t, w)["status"])

	w = do(t, engine, http.MethodGet, "/api/v1/orders", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payloadList(t, w), 1)
}

func TestOrderOwnership(t *testing.T) {
	engine, _ := setupTestServer(t)
	aliceToken := register(t, engine, "alice")
	bobToken := register(t, engine, "bob")
	adminToken := login(t, engine, "admin", "admin123")

	w := do(t, engine, http.MethodPost, "/api/v1/orders", nil, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code)
	orderID := payload(t, w)["id"].(string)

	w = do(t, engine, http.MethodGet, "/api/v1/orders/"+orderID, nil, bobToken)
	assert.Equal(t, http.StatusForbidden, w.Code, "orders are private to their owner")

	w = do(t, engine, http.MethodGet, "/api/v1/orders/"+orderID, nil, adminToken)
	assert.Equal(t, http.StatusOK, w.Code, "admins can read any order")

	w = do(t, engine, http.MethodGet, "/api/v1/admin/orders", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, payloadList(t, w), 1)
}

func TestPurchaseEndpoint(t *testing.T) {
	engine, store := setupTestServer(t)
	aliceToken := register(t, engine, "alice")

	w := do(t, engine, http.MethodPost, "/api/v1/orders/purchase", gin.H{
		"item_type":      "race",
		"item_id":        "R001",
		"quantity":       2,
		"payment_method": "Credit Card",
	}, aliceToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	data := payload(t, w)
	assert.Equal(t, "Confirmed", data["status"])
	assert.InDelta(t, 720.0, data["total"].(float64), 1e-9)
	assert.Len(t, data["tickets"].([]interface{}), 2)

	history := store.GetUser("alice").Orders()
	require.Len(t, history, 1)

	w = do(t, engine, http.MethodPost, "/api/v1/orders/purchase", gin.H{
		"item_type":      "race",
		"item_id":        "R999",
		"quantity":       1,
		"payment_method": "Credit Card",
	}, aliceToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProfileEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)
	aliceToken := register(t, engine, "alice")

	w := do(t, engine, http.MethodGet, "/api/v1/users/me", nil, aliceToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "alice", payload(t, w)["username"])

	w = do(t, engine, http.MethodPut, "/api/v1/users/me", gin.H{
		"phone": "555-0202",
	}, aliceToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "555-0202", payload(t, w)["phone"])
}

func TestAdminGates(t *testing.T) {
	engine, _ := setupTestServer(t)
	aliceToken := register(t, engine, "alice")

	adminOnly := []string{
		"/api/v1/admin/tickets",
		"/api/v1/admin/orders",
		"/api/v1/admin/users",
		"/api/v1/admin/reports/summary",
	}
	for _, path := range adminOnly {
		w := do(t, engine, http.MethodGet, path, nil, aliceToken)
		assert.Equal(t, http.StatusForbidden, w.Code, "customer reached %s", path)

		w = do(t, engine, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, "anonymous reached %s", path)
	}
}

func TestReportEndpoints(t *testing.T) {
	engine, _ := setupTestServer(t)
	register(t, engine, "alice")
	adminToken := login(t, engine, "admin", "admin123")

	w := do(t, engine, http.MethodGet, "/api/v1/admin/reports/summary", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Grand Prix Experience", payload(t, w)["name"])

	w = do(t, engine, http.MethodGet, "/api/v1/admin/reports/sales", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = do(t, engine, http.MethodGet, "/api/v1/admin/reports/export/users", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="All_Users_Data.txt"`, w.Header().Get("Content-Disposition"))
	assert.Contains(t, w.Body.String(), "ALL USERS DATA")
	assert.Contains(t, w.Body.String(), "Username: alice")

	w = do(t, engine, http.MethodGet, "/api/v1/admin/reports/export/users/alice", nil, adminToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, `attachment; filename="User_alice_Data.txt"`, w.Header().Get("Content-Disposition"))

	w = do(t, engine, http.MethodGet, "/api/v1/admin/reports/export/orders/ORD-404", nil, adminToken)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
