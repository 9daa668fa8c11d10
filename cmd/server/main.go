package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/muuduuu/ayurtrace/internal/config"
	"github.com/muuduuu/ayurtrace/internal/middleware"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/handler"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"github.com/muuduuu/ayurtrace/internal/trace/service"
)

var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	// 加载 .env 文件
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 初始化日志
	zapLogger, err := initLogger(cfg.Log)
	if err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting ayurtrace service",
		zap.String("version", Version),
		zap.String("build_time", BuildTime),
	)

	// 初始化数据库
	db, err := initDatabase(cfg.Database)
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Product{},
		&entity.Farm{},
		&entity.Batch{},
		&entity.CollectionEvent{},
		&entity.ProcessingEvent{},
		&entity.SensorData{},
		&entity.QrScanLog{},
	); err != nil {
		zapLogger.Fatal("AutoMigrate failed", zap.Error(err))
	}
	zapLogger.Info("Database migration completed")

	// 初始化Redis（仅用于扫码限流，不可用时服务照常启动）
	rdb := initRedis(cfg.Redis, zapLogger)

	// 初始化依赖
	repos := repository.NewRepositories(db)
	services := service.NewServices(repos, zapLogger, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTokenExpire)
	handlers := handler.NewHandlers(services)

	// 设置Gin模式
	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// 创建路由
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger(zapLogger))
	router.Use(middleware.CORS())
	router.Use(middleware.RequestID())
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// 注册路由
	registerRoutes(router, handlers, cfg, rdb)

	// 创建HTTP服务器
	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// 启动服务器
	go func() {
		zapLogger.Info("Server starting", zap.Int("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLogger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zapLogger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	zapLogger.Info("Server exited")
}

func initLogger(cfg config.LogConfig) (*zap.Logger, error) {
	var zapCfg zap.Config

	if cfg.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
	}

	switch cfg.Level {
	case "debug":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	case "info":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	case "warn":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	case "error":
		zapCfg.Level = zap.NewAtomicLevelAt(zap.ErrorLevel)
	}

	return zapCfg.Build()
}

func initDatabase(cfg config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode,
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}

	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	sqlDB.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)

	return db, nil
}

func initRedis(cfg config.RedisConfig, zapLogger *zap.Logger) *redis.Client {
	if cfg.Host == "" {
		zapLogger.Info("Redis not configured, scan rate limiting disabled")
		return nil
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})
}

func registerRoutes(r *gin.Engine, h *handler.Handlers, cfg *config.Config, rdb *redis.Client) {
	// 健康检查
	r.GET("/health/live", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/health/ready", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 版本信息
	r.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"version":    Version,
			"build_time": BuildTime,
		})
	})

	// API v1
	v1 := r.Group("/api/v1")
	{
		// 认证 (无需登录)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", h.Auth.Register)
			auth.POST("/login", h.Auth.Login)
		}

		// 公开溯源接口：消费者扫码访问，无需登录。
		// 带token则记录扫码人，按IP限流防刷。
		qr := v1.Group("/qr")
		qr.Use(middleware.OptionalAuth(cfg.JWT.Secret))
		qr.Use(middleware.ScanRateLimit(rdb, cfg.Scan.RateLimit, cfg.Scan.RateWindow))
		{
			qr.GET("/:code/provenance", h.Provenance.GetProvenance)
			qr.GET("/:code/timeline", h.Provenance.GetTimeline)
		}

		// 需要认证的接口
		authorized := v1.Group("")
		authorized.Use(middleware.JWTAuth(cfg.JWT.Secret))
		{
			// 当前用户
			authorized.GET("/auth/me", h.Auth.GetCurrentUser)
			authorized.PATCH("/auth/me", h.Auth.UpdateCurrentUser)

			// 看板
			authorized.GET("/dashboard/stats", h.Dashboard.GetStats)

			// 品类目录
			products := authorized.Group("/products")
			{
				products.GET("", h.Product.ListProducts)
				products.POST("", h.Product.CreateProduct)
				products.DELETE("/:id", h.Product.DeleteProduct)
			}

			// 农场
			farms := authorized.Group("/farms")
			{
				farms.GET("", h.Farm.ListFarms)
				farms.POST("", h.Farm.CreateFarm)
				farms.GET("/:id", h.Farm.GetFarm)
				farms.DELETE("/:id", h.Farm.DeleteFarm)
			}

			// 批次
			batches := authorized.Group("/batches")
			{
				batches.GET("", h.Batch.ListBatches)
				batches.POST("", h.Batch.CreateBatch)
				batches.GET("/:id", h.Batch.GetBatch)
				batches.PATCH("/:id/status", h.Batch.UpdateBatchStatus)
				batches.GET("/:id/collection-events", h.Batch.ListCollectionEvents)
				batches.GET("/:id/processing-events", h.Batch.ListProcessingEvents)
				batches.GET("/:id/sensor-data", h.Sensor.ListBatchSensorData)
				batches.GET("/:id/qr-scans", h.Provenance.ListScanLogs)
			}

			// 采收/加工事件
			authorized.POST("/collection-events", h.Batch.CreateCollectionEvent)
			authorized.POST("/processing-events", h.Batch.CreateProcessingEvent)

			// 传感器
			authorized.POST("/sensor-data", h.Sensor.IngestSensorData)
			authorized.GET("/sensor-data/latest", h.Sensor.LatestSensorData)
			authorized.POST("/simulate/sensor-data", h.Sensor.SimulateSensorData)
		}
	}
}
