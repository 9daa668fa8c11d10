package handler

import (
	"net/http"
	"testing"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/muuduuu/ayurtrace/internal/middleware"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
	"github.com/muuduuu/ayurtrace/internal/trace/testutil"
)

func setupProvenanceTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, zap.NewNop(), testutil.JWTSecret, "ayurtrace", 24*time.Hour)
	h := NewHandlers(services)

	// QR endpoints are public: optional auth only, no rate limiter in tests
	qr := router.Group("/api/v1/qr", middleware.OptionalAuth(testutil.JWTSecret))
	qr.GET("/:code/provenance", h.Provenance.GetProvenance)
	qr.GET("/:code/timeline", h.Provenance.GetTimeline)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/batches/:id/qr-scans", h.Provenance.ListScanLogs)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func seedScannableBatch(t *testing.T, db *gorm.DB) *entity.Batch {
	t.Helper()
	farmer := testutil.SeedTestUser(t, db, "farmer@test.com", entity.RoleFarmer)
	product := testutil.SeedTestProduct(t, db, "Ashwagandha")
	farm := testutil.SeedTestFarm(t, db, farmer.ID, "Green Valley")
	return testutil.SeedTestBatch(t, db, product.ID, farm.ID, entity.BatchStatusProcessing)
}

func TestProvenanceUnknownCode(t *testing.T) {
	env := setupProvenanceTest(t)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/qr/AYU-DEADBEEF/provenance", nil, "")
	if w.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d: %s", w.Code, w.Body.String())
	}
}

func TestProvenanceAnonymousScan(t *testing.T) {
	env := setupProvenanceTest(t)
	batch := seedScannableBatch(t, env.DB)

	// No token needed for consumer-facing lookups
	w := testutil.DoRequest(env.Router, "GET", "/api/v1/qr/"+*batch.QRCode+"/provenance", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	resp := testutil.ParseResponse(w)
	data := resp["data"].(map[string]interface{})
	if data["product"].(map[string]interface{})["name"] != "Ashwagandha" {
		t.Errorf("Expected product in provenance view")
	}
	if data["farm"].(map[string]interface{})["name"] != "Green Valley" {
		t.Errorf("Expected farm in provenance view")
	}

	// The scan is recorded even for anonymous callers
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/batches/"+batch.ID+"/qr-scans", nil, testutil.DefaultTestToken())
	if w2.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", w2.Code)
	}
	logs := testutil.ParseResponse(w2)["data"].(map[string]interface{})["items"].([]interface{})
	if len(logs) != 1 {
		t.Fatalf("Expected 1 scan log, got %d", len(logs))
	}
	if logs[0].(map[string]interface{})["scanned_by"] != "" {
		t.Errorf("Expected anonymous scan, got %v", logs[0].(map[string]interface{})["scanned_by"])
	}
}

func TestProvenanceAuthenticatedScanIdentity(t *testing.T) {
	env := setupProvenanceTest(t)
	batch := seedScannableBatch(t, env.DB)
	token := testutil.GenerateTestToken("consumer-007", "c@test.com", entity.RoleConsumer)

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/qr/"+*batch.QRCode+"/provenance?location=Mumbai", nil, token)
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/batches/"+batch.ID+"/qr-scans", nil, testutil.DefaultTestToken())
	data := testutil.ParseResponse(w2)["data"].(map[string]interface{})
	logs := data["items"].([]interface{})
	if len(logs) != 1 {
		t.Fatalf("Expected 1 scan log, got %d", len(logs))
	}
	if total := data["total"].(float64); total != 1 {
		t.Errorf("Expected scan total 1, got %v", total)
	}
	entry := logs[0].(map[string]interface{})
	if entry["scanned_by"] != "consumer-007" {
		t.Errorf("Expected scanner identity from token, got %v", entry["scanned_by"])
	}
	if entry["scan_location"] != "Mumbai" {
		t.Errorf("Expected scan location recorded, got %v", entry["scan_location"])
	}
}

func TestTimelineEndpoint(t *testing.T) {
	env := setupProvenanceTest(t)
	batch := seedScannableBatch(t, env.DB)

	early := time.Now().Add(-48 * time.Hour)
	env.DB.Create(&entity.CollectionEvent{
		ID: "ce-001", BatchID: batch.ID, CollectionDate: &early,
	})

	w := testutil.DoRequest(env.Router, "GET", "/api/v1/qr/"+*batch.QRCode+"/timeline", nil, "")
	if w.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w.Code, w.Body.String())
	}

	items := testutil.ParseResponse(w)["data"].(map[string]interface{})["items"].([]interface{})
	// Collection event plus the status marker
	if len(items) != 2 {
		t.Fatalf("Expected 2 timeline items, got %d", len(items))
	}
	first := items[0].(map[string]interface{})
	if first["kind"] != "collected" {
		t.Errorf("Expected collection first in timeline, got %v", first["kind"])
	}

	// A timeline request counts as a scan of its own
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/batches/"+batch.ID+"/qr-scans", nil, testutil.DefaultTestToken())
	logs := testutil.ParseResponse(w2)["data"].(map[string]interface{})["items"].([]interface{})
	if len(logs) != 1 {
		t.Errorf("Expected timeline lookup to be recorded as a scan, got %d logs", len(logs))
	}
}
