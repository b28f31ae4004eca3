// Package sink 序列化最终事件流
package sink

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"retail-sentinel/internal/models"
)

// JSONLWriter 按行写出 events.jsonl
type JSONLWriter struct {
	path   string
	logger *zap.Logger
}

// NewJSONLWriter 创建输出写入器
func NewJSONLWriter(path string, logger *zap.Logger) *JSONLWriter {
	return &JSONLWriter{path: path, logger: logger}
}

// eventLine 输出信封：{timestamp, event_id, event_data}
type eventLine struct {
	Timestamp string `json:"timestamp"`
	EventID   string `json:"event_id"`
	EventData any    `json:"event_data"`
}

// Write 将有序事件列表写入输出文件，父目录不存在时创建
func (w *JSONLWriter) Write(events []models.DetectedEvent) error {
	if dir := filepath.Dir(w.path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(w.path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer f.Close()

	enc := json.NewEncoder(f)
	for _, ev := range events {
		data, err := eventData(ev.Data)
		if err != nil {
			return err
		}
		line := eventLine{
			Timestamp: ev.RawTime,
			EventID:   ev.EventID,
			EventData: data,
		}
		if err := enc.Encode(line); err != nil {
			return fmt.Errorf("failed to write event %s: %w", ev.EventID, err)
		}
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("failed to flush output file: %w", err)
	}

	w.logger.Info("Events written",
		zap.String("path", w.path),
		zap.Int("count", len(events)),
	)

	return nil
}

// 每种事件一个固定的输出结构，字段名按下游消费的原有字面量保留
// （包括 Inventory Discrepancy 的大写字段和 Staff_type）。

type scannerAvoidanceJSON struct {
	EventName  string  `json:"event_name"`
	StationID  string  `json:"station_id"`
	ProductSKU string  `json:"product_sku"`
	Confidence float64 `json:"confidence"`
}

type barcodeSwitchingJSON struct {
	EventName  string `json:"event_name"`
	StationID  string `json:"station_id"`
	CustomerID string `json:"customer_id"`
	ActualSKU  string `json:"actual_sku"`
	ScannedSKU string `json:"scanned_sku"`
}

type weightDiscrepancyJSON struct {
	EventName      string `json:"event_name"`
	StationID      string `json:"station_id"`
	CustomerID     string `json:"customer_id"`
	ProductSKU     string `json:"product_sku"`
	ExpectedWeight int    `json:"expected_weight"`
	ActualWeight   int    `json:"actual_weight"`
}

type longQueueLengthJSON struct {
	EventName      string `json:"event_name"`
	StationID      string `json:"station_id"`
	NumOfCustomers int    `json:"num_of_customers"`
}

type longWaitTimeJSON struct {
	EventName       string `json:"event_name"`
	StationID       string `json:"station_id"`
	WaitTimeSeconds int    `json:"wait_time_seconds"`
}

type inventoryDiscrepancyJSON struct {
	EventName         string `json:"event_name"`
	SKU               string `json:"SKU"`
	ExpectedInventory int    `json:"Expected_Inventory"`
	ActualInventory   int    `json:"Actual_Inventory"`
}

type systemCrashJSON struct {
	EventName       string `json:"event_name"`
	StationID       string `json:"station_id"`
	DurationSeconds int    `json:"duration_seconds"`
}

type staffingNeedsJSON struct {
	EventName string `json:"event_name"`
	StationID string `json:"station_id"`
	StaffType string `json:"Staff_type"`
}

// eventData 显式枚举 8 种事件，逐一映射到输出结构
func eventData(data models.EventData) (any, error) {
	switch d := data.(type) {
	case models.ScannerAvoidance:
		return scannerAvoidanceJSON{
			EventName:  d.EventName(),
			StationID:  d.StationID,
			ProductSKU: d.ProductSKU,
			Confidence: d.Confidence,
		}, nil
	case models.BarcodeSwitching:
		return barcodeSwitchingJSON{
			EventName:  d.EventName(),
			StationID:  d.StationID,
			CustomerID: d.CustomerID,
			ActualSKU:  d.ActualSKU,
			ScannedSKU: d.ScannedSKU,
		}, nil
	case models.WeightDiscrepancy:
		return weightDiscrepancyJSON{
			EventName:      d.EventName(),
			StationID:      d.StationID,
			CustomerID:     d.CustomerID,
			ProductSKU:     d.ProductSKU,
			ExpectedWeight: d.ExpectedWeight,
			ActualWeight:   d.ActualWeight,
		}, nil
	case models.LongQueueLength:
		return longQueueLengthJSON{
			EventName:      d.EventName(),
			StationID:      d.StationID,
			NumOfCustomers: d.NumOfCustomers,
		}, nil
	case models.LongWaitTime:
		return longWaitTimeJSON{
			EventName:       d.EventName(),
			StationID:       d.StationID,
			WaitTimeSeconds: d.WaitTimeSeconds,
		}, nil
	case models.InventoryDiscrepancy:
		return inventoryDiscrepancyJSON{
			EventName:         d.EventName(),
			SKU:               d.SKU,
			ExpectedInventory: d.ExpectedInventory,
			ActualInventory:   d.ActualInventory,
		}, nil
	case models.SystemCrash:
		return systemCrashJSON{
			EventName:       d.EventName(),
			StationID:       d.StationID,
			DurationSeconds: d.DurationSeconds,
		}, nil
	case models.StaffingNeeds:
		return staffingNeedsJSON{
			EventName: d.EventName(),
			StationID: d.StationID,
			StaffType: d.StaffType,
		}, nil
	default:
		return nil, fmt.Errorf("unknown event data type %T", data)
	}
}
