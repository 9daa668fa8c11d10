package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"go.uber.org/zap"
)

var (
	// ErrInvalidStatus 批次状态不在枚举集合内
	ErrInvalidStatus = errors.New("invalid batch status")
	// ErrBatchNumberTaken 批次号已被占用
	ErrBatchNumberTaken = errors.New("batch number already used")
	// ErrEmailTaken 邮箱已被注册
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials 邮箱或密码错误
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// ValidationError 字段校验错误，携带出错字段
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Reason)
}

func required(field, value string) error {
	if value == "" {
		return &ValidationError{Field: field, Reason: "required"}
	}
	return nil
}

// Services 溯源服务集合
type Services struct {
	Auth       *AuthService
	Farm       *FarmService
	Product    *ProductService
	Batch      *BatchService
	Provenance *ProvenanceService
	Dashboard  *DashboardService
	Sensor     *SensorService
}

// NewServices 创建溯源服务集合
func NewServices(repos *repository.Repositories, logger *zap.Logger, jwtSecret, jwtIssuer string, jwtExpire time.Duration) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, jwtSecret, jwtIssuer, jwtExpire),
		Farm:       NewFarmService(repos.Farm),
		Product:    NewProductService(repos.Product),
		Batch:      NewBatchService(repos.Batch, repos.Event),
		Provenance: NewProvenanceService(repos, logger),
		Dashboard:  NewDashboardService(repos.Batch, repos.Sensor, repos.ScanLog),
		Sensor:     NewSensorService(repos.Sensor),
	}
}
