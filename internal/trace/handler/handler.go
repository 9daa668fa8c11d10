package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

// Handlers 溯源处理器集合
type Handlers struct {
	Auth       *AuthHandler
	Farm       *FarmHandler
	Product    *ProductHandler
	Batch      *BatchHandler
	Provenance *ProvenanceHandler
	Dashboard  *DashboardHandler
	Sensor     *SensorHandler
}

// NewHandlers 创建溯源处理器集合
func NewHandlers(svc *service.Services) *Handlers {
	return &Handlers{
		Auth:       NewAuthHandler(svc.Auth),
		Farm:       NewFarmHandler(svc.Farm),
		Product:    NewProductHandler(svc.Product),
		Batch:      NewBatchHandler(svc.Batch),
		Provenance: NewProvenanceHandler(svc.Provenance),
		Dashboard:  NewDashboardHandler(svc.Dashboard),
		Sensor:     NewSensorHandler(svc.Sensor),
	}
}

// === 响应辅助函数 ===

type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(200, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Created(c *gin.Context, data interface{}) {
	c.JSON(201, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func Error(c *gin.Context, code int, message string) {
	statusCode := code / 100
	if statusCode < 100 || statusCode > 599 {
		statusCode = 500
	}
	c.JSON(statusCode, Response{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, message string) {
	Error(c, 40000, message)
}

func NotFound(c *gin.Context, message string) {
	Error(c, 40400, message)
}

func Conflict(c *gin.Context, message string) {
	Error(c, 40900, message)
}

func InternalError(c *gin.Context, message string) {
	Error(c, 50000, message)
}

// Fail 把服务层错误映射为HTTP响应。
// 内部错误对外只给出通用文案，细节留在服务端日志里。
func Fail(c *gin.Context, err error, internalMessage string) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		BadRequest(c, vErr.Error())
	case errors.Is(err, service.ErrInvalidStatus):
		BadRequest(c, "invalid batch status")
	case errors.Is(err, repository.ErrNotFound):
		NotFound(c, "not found")
	case errors.Is(err, repository.ErrConflict):
		Conflict(c, "record is still referenced")
	case errors.Is(err, service.ErrBatchNumberTaken):
		Conflict(c, "batch number already used")
	case errors.Is(err, service.ErrEmailTaken):
		Conflict(c, "email already registered")
	case errors.Is(err, service.ErrInvalidCredentials):
		Error(c, 40100, "invalid email or password")
	default:
		InternalError(c, internalMessage)
	}
}

// GetUserID 从认证中间件取当前用户ID
func GetUserID(c *gin.Context) string {
	userID, _ := c.Get("user_id")
	if id, ok := userID.(string); ok {
		return id
	}
	return ""
}
