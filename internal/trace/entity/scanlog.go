package entity

import (
	"time"
)

// QrScanLog 扫码日志（追加写入，每次成功溯源查询一条）
type QrScanLog struct {
	ID           string    `json:"id" gorm:"primaryKey;size:36"`
	QRCode       string    `json:"qr_code" gorm:"size:32;not null;index"`
	BatchID      string    `json:"batch_id" gorm:"size:36;index;not null"`
	ScannedBy    string    `json:"scanned_by" gorm:"size:36"`
	ScanLocation string    `json:"scan_location" gorm:"size:256"`
	UserAgent    string    `json:"user_agent" gorm:"type:text"`
	IPAddress    string    `json:"ip_address" gorm:"size:64"`
	Timestamp    time.Time `json:"timestamp" gorm:"index"`
}

func (QrScanLog) TableName() string {
	return "qr_scan_logs"
}
