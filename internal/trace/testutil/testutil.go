package testutil

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muuduuu/ayurtrace/internal/middleware"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
)

const JWTSecret = "ayurtrace-test-jwt-secret"

// TestEnv holds test environment resources
type TestEnv struct {
	DB     *gorm.DB
	Router *gin.Engine
	T      *testing.T
}

// SetupTestDB creates an isolated in-memory database per test.
// A single connection keeps all queries on the same in-memory instance.
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("Failed to get database instance: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Farm{},
		&entity.Batch{},
		&entity.CollectionEvent{},
		&entity.ProcessingEvent{},
		&entity.SensorData{},
		&entity.QrScanLog{},
	)
	if err != nil {
		t.Fatalf("Failed to migrate test tables: %v", err)
	}

	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db
}

// SetupRouter creates a gin test router
func SetupRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(gin.Recovery())
	return r
}

// AuthGroup creates an API group with JWT auth middleware for testing
func AuthGroup(r *gin.Engine, path string) *gin.RouterGroup {
	return r.Group(path, middleware.JWTAuth(JWTSecret))
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID, email, role string) string {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":   userID,
		"uid":   userID,
		"email": email,
		"role":  role,
		"iss":   "ayurtrace",
		"iat":   now.Unix(),
		"exp":   now.Add(24 * time.Hour).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, _ := token.SignedString([]byte(JWTSecret))
	return tokenString
}

// DefaultTestToken returns a token for a default admin test user
func DefaultTestToken() string {
	return GenerateTestToken("test-user-001", "admin@test.com", "admin")
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses the JSON response body into a handler.Response-like map
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// SeedTestUser creates a test user in the database
func SeedTestUser(t *testing.T, db *gorm.DB, email, role string) *entity.User {
	t.Helper()
	user := &entity.User{
		ID:        uuid.New().String(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      role,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("Failed to seed test user: %v", err)
	}
	return user
}

// SeedTestProduct creates a test herb product in the database
func SeedTestProduct(t *testing.T, db *gorm.DB, name string) *entity.Product {
	t.Helper()
	product := &entity.Product{
		ID:             uuid.New().String(),
		Name:           name,
		ScientificName: "Withania somnifera",
		CreatedAt:      time.Now(),
	}
	if err := db.Create(product).Error; err != nil {
		t.Fatalf("Failed to seed test product: %v", err)
	}
	return product
}

// SeedTestFarm creates a test farm in the database
func SeedTestFarm(t *testing.T, db *gorm.DB, farmerID, name string) *entity.Farm {
	t.Helper()
	farm := &entity.Farm{
		ID:        uuid.New().String(),
		Name:      name,
		Location:  "Kerala, India",
		FarmerID:  farmerID,
		CreatedAt: time.Now(),
	}
	if err := db.Create(farm).Error; err != nil {
		t.Fatalf("Failed to seed test farm: %v", err)
	}
	return farm
}

// SeedTestBatch creates a test batch with a QR code assigned
func SeedTestBatch(t *testing.T, db *gorm.DB, productID, farmID, status string) *entity.Batch {
	t.Helper()
	id := uuid.New().String()
	qr := "AYU-" + fmt.Sprintf("%08X", time.Now().UnixNano()%0xFFFFFFFF)
	batch := &entity.Batch{
		ID:          id,
		BatchNumber: "BN-" + id[:8],
		ProductID:   productID,
		FarmID:      farmID,
		Quantity:    100,
		Unit:        "kg",
		Status:      status,
		QRCode:      &qr,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}
	if err := db.Create(batch).Error; err != nil {
		t.Fatalf("Failed to seed test batch: %v", err)
	}
	return batch
}
