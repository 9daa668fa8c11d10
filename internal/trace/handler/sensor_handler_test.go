package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
	"github.com/muuduuu/ayurtrace/internal/trace/testutil"
)

func setupSensorTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, zap.NewNop(), testutil.JWTSecret, "ayurtrace", 24*time.Hour)
	h := NewHandlers(services)

	api := testutil.AuthGroup(router, "/api/v1")
	api.POST("/sensor-data", h.Sensor.IngestSensorData)
	api.GET("/sensor-data/latest", h.Sensor.LatestSensorData)
	api.POST("/simulate/sensor-data", h.Sensor.SimulateSensorData)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestSensorIngestAndLatest(t *testing.T) {
	env := setupSensorTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/sensor-data", map[string]interface{}{
		"facility_id": "A-12",
		"sensor_type": "temperature",
		"value":       24.5,
		"unit":        "°C",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["status"] != "normal" {
		t.Errorf("Expected default normal status, got %v", data["status"])
	}

	// Unknown sensor type is rejected
	w2 := testutil.DoRequest(env.Router, "POST", "/api/v1/sensor-data", map[string]interface{}{
		"sensor_type": "pressure",
		"value":       1.0,
		"unit":        "bar",
	}, token)
	if w2.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown sensor type, got %d", w2.Code)
	}

	w3 := testutil.DoRequest(env.Router, "GET", "/api/v1/sensor-data/latest?facility_id=A-12", nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w3.Code)
	}
	items := testutil.ParseResponse(w3)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 1 {
		t.Errorf("Expected 1 reading, got %d", len(items))
	}
}

func TestSensorSimulateEndpoint(t *testing.T) {
	env := setupSensorTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/simulate/sensor-data", nil, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["sensor_type"] != "temperature" && data["sensor_type"] != "humidity" {
		t.Errorf("Unexpected simulated sensor type %v", data["sensor_type"])
	}
	if data["facility_id"] == "" {
		t.Error("Expected simulated reading bound to a facility")
	}
}
