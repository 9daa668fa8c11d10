package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/muuduuu/ayurtrace/internal/trace/entity"
	"github.com/muuduuu/ayurtrace/internal/trace/repository"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ProvenanceService 溯源聚合服务
type ProvenanceService struct {
	batches  *repository.BatchRepository
	products *repository.ProductRepository
	farms    *repository.FarmRepository
	events   *repository.EventRepository
	sensors  *repository.SensorRepository
	scanLogs *repository.ScanLogRepository
	logger   *zap.Logger
	now      func() time.Time
}

func NewProvenanceService(repos *repository.Repositories, logger *zap.Logger) *ProvenanceService {
	return &ProvenanceService{
		batches:  repos.Batch,
		products: repos.Product,
		farms:    repos.Farm,
		events:   repos.Event,
		sensors:  repos.Sensor,
		scanLogs: repos.ScanLog,
		logger:   logger,
		now:      time.Now,
	}
}

// ProvenanceView 溯源视图：批次 + 品类 + 农场 + 全量事件/读数历史
type ProvenanceView struct {
	Batch            *entity.Batch            `json:"batch"`
	Product          *entity.Product          `json:"product"`
	Farm             *entity.Farm             `json:"farm"`
	CollectionEvents []entity.CollectionEvent `json:"collection_events"`
	ProcessingEvents []entity.ProcessingEvent `json:"processing_events"`
	SensorData       []entity.SensorData      `json:"sensor_data"`
}

// ScanMeta 扫码方元数据，对服务端是不透明的自由文本
type ScanMeta struct {
	ScannedBy    string
	ScanLocation string
	UserAgent    string
	IPAddress    string
}

// GetProvenance 按溯源码聚合溯源视图。
// 批次、品类、农场任一缺失都按未找到处理（引用完整性口径）；
// 查询成功后追加一条扫码日志，日志写失败不影响本次查询。
func (s *ProvenanceService) GetProvenance(ctx context.Context, qrCode string, meta ScanMeta) (*ProvenanceView, error) {
	batch, err := s.batches.FindByQRCode(ctx, qrCode)
	if err != nil {
		return nil, err
	}

	view := &ProvenanceView{Batch: batch}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		product, err := s.products.FindByID(gctx, batch.ProductID)
		if err != nil {
			return err
		}
		view.Product = product
		return nil
	})
	g.Go(func() error {
		farm, err := s.farms.FindByID(gctx, batch.FarmID)
		if err != nil {
			return err
		}
		view.Farm = farm
		return nil
	})
	g.Go(func() error {
		events, err := s.events.FindCollectionsByBatch(gctx, batch.ID)
		if err != nil {
			return err
		}
		view.CollectionEvents = events
		return nil
	})
	g.Go(func() error {
		events, err := s.events.FindProcessingByBatch(gctx, batch.ID)
		if err != nil {
			return err
		}
		view.ProcessingEvents = events
		return nil
	})
	g.Go(func() error {
		data, err := s.sensors.FindByBatch(gctx, batch.ID)
		if err != nil {
			return err
		}
		view.SensorData = data
		return nil
	})
	if err := g.Wait(); err != nil {
		// 品类或农场缺失 ⇒ 批次引用不完整，按未找到处理；其余错误原样上抛
		if errors.Is(err, repository.ErrNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}

	s.logScan(ctx, qrCode, batch.ID, meta)
	return view, nil
}

// logScan 追加扫码日志。溯源数据是本次请求的主交付物，日志只尽力而为。
func (s *ProvenanceService) logScan(ctx context.Context, qrCode, batchID string, meta ScanMeta) {
	log := &entity.QrScanLog{
		ID:           uuid.New().String(),
		QRCode:       qrCode,
		BatchID:      batchID,
		ScannedBy:    meta.ScannedBy,
		ScanLocation: meta.ScanLocation,
		UserAgent:    meta.UserAgent,
		IPAddress:    meta.IPAddress,
		Timestamp:    s.now(),
	}
	if err := s.scanLogs.Create(ctx, log); err != nil {
		s.logger.Warn("scan log write failed",
			zap.String("qr_code", qrCode),
			zap.String("batch_id", batchID),
			zap.Error(err),
		)
	}
}

// ListScanLogs 批次扫码历史
func (s *ProvenanceService) ListScanLogs(ctx context.Context, batchID string) ([]entity.QrScanLog, error) {
	return s.scanLogs.FindByBatch(ctx, batchID)
}

// CountScans 批次累计扫码次数
func (s *ProvenanceService) CountScans(ctx context.Context, batchID string) (int64, error) {
	return s.scanLogs.CountByBatch(ctx, batchID)
}
