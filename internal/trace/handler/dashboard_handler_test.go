package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
	"github.com/muuduuu/ayurtrace/internal/trace/testutil"
)

func setupDashboardTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, zap.NewNop(), testutil.JWTSecret, "ayurtrace", 24*time.Hour)
	h := NewHandlers(services)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/dashboard/stats", h.Dashboard.GetStats)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestDashboardStatsEndpoint(t *testing.T) {
	env := setupDashboardTest(t)
	token := testutil.DefaultTestToken()

	testutil.SeedTestBatch(t, env.DB, "prod-001", "farm-001", entity.BatchStatusHarvested)
	testutil.SeedTestBatch(t, env.DB, "prod-001", "farm-001", entity.BatchStatusShipped)
	env.DB.Create(&entity.SensorData{
		ID: "sd-1", FacilityID: "A-12", SensorType: "temperature",
		Value: 24, Unit: "°C", Timestamp: time.Now().Add(-5 * time.Minute),
	})

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/stats", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["active_batches"].(float64) != 1 {
		t.Errorf("Expected 1 active batch, got %v", data["active_batches"])
	}
	if data["connected_sensors"].(float64) != 1 {
		t.Errorf("Expected 1 connected sensor, got %v", data["connected_sensors"])
	}
	if data["qr_scans_today"].(float64) != 0 {
		t.Errorf("Expected 0 scans today, got %v", data["qr_scans_today"])
	}

	// Requires authentication
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/dashboard/stats", nil, "")
	if w2.Code != http.StatusUnauthorized {
		t.Errorf("Expected 401 without token, got %d", w2.Code)
	}
}
