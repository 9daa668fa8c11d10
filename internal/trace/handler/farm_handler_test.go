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

func setupFarmTest(t *testing.T) *testutil.TestEnv {
	t.Helper()
	db := testutil.SetupTestDB(t)
	router := testutil.SetupRouter()

	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, zap.NewNop(), testutil.JWTSecret, "ayurtrace", 24*time.Hour)
	h := NewHandlers(services)

	api := testutil.AuthGroup(router, "/api/v1")
	api.GET("/farms", h.Farm.ListFarms)
	api.POST("/farms", h.Farm.CreateFarm)
	api.GET("/farms/:id", h.Farm.GetFarm)
	api.DELETE("/farms/:id", h.Farm.DeleteFarm)
	api.GET("/products", h.Product.ListProducts)
	api.POST("/products", h.Product.CreateProduct)
	api.DELETE("/products/:id", h.Product.DeleteProduct)

	return &testutil.TestEnv{DB: db, Router: router, T: t}
}

func TestFarmCRUD(t *testing.T) {
	env := setupFarmTest(t)
	token := testutil.GenerateTestToken("farmer-001", "farmer@test.com", entity.RoleFarmer)

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/farms", map[string]interface{}{
		"name":     "Green Valley",
		"location": "Kerala, India",
		"latitude": 10.85,
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	data := testutil.ParseResponse(w)["data"].(map[string]interface{})
	if data["farmer_id"] != "farmer-001" {
		t.Errorf("Expected owner from token, got %v", data["farmer_id"])
	}
	farmID := data["id"].(string)

	// Listing is scoped to the caller
	otherToken := testutil.GenerateTestToken("farmer-002", "other@test.com", entity.RoleFarmer)
	w2 := testutil.DoRequest(env.Router, "GET", "/api/v1/farms", nil, otherToken)
	items := testutil.ParseResponse(w2)["data"].(map[string]interface{})["items"].([]interface{})
	if len(items) != 0 {
		t.Errorf("Expected no farms for other farmer, got %d", len(items))
	}

	w3 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/farms/"+farmID, nil, token)
	if w3.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", w3.Code, w3.Body.String())
	}
	w4 := testutil.DoRequest(env.Router, "GET", "/api/v1/farms/"+farmID, nil, token)
	if w4.Code != http.StatusNotFound {
		t.Errorf("Expected 404 after delete, got %d", w4.Code)
	}
}

func TestDeleteReferencedRecordsConflict(t *testing.T) {
	env := setupFarmTest(t)
	token := testutil.DefaultTestToken()

	w := testutil.DoRequest(env.Router, "POST", "/api/v1/products", map[string]interface{}{
		"name":            "Ashwagandha",
		"scientific_name": "Withania somnifera",
	}, token)
	if w.Code != http.StatusCreated {
		t.Fatalf("Expected 201, got %d: %s", w.Code, w.Body.String())
	}
	productID := testutil.ParseResponse(w)["data"].(map[string]interface{})["id"].(string)

	testutil.SeedTestBatch(t, env.DB, productID, "farm-001", entity.BatchStatusHarvested)

	w2 := testutil.DoRequest(env.Router, "DELETE", "/api/v1/products/"+productID, nil, token)
	if w2.Code != http.StatusConflict {
		t.Errorf("Expected 409 while referenced by a batch, got %d: %s", w2.Code, w2.Body.String())
	}
}
