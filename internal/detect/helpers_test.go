package detect

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"retail-sentinel/internal/config"
	"retail-sentinel/internal/models"
)

// 测试统一使用默认阈值：置信度 0.7、队列 5 人、等待 300 秒、
// 重量容差 10%、站点静默 180 秒。

func testEngine(catalog map[string]models.ProductCatalogEntry) *Engine {
	return NewEngine(catalog, config.DefaultDetection(), zap.NewNop())
}

func at(t *testing.T, s string) time.Time {
	t.Helper()
	tm, err := time.Parse("2006-01-02T15:04:05.999999999", s)
	require.NoError(t, err)
	return tm
}

func posRecord(t *testing.T, ts, station, sku string, weight float64, customer string) models.POSTransaction {
	t.Helper()
	return models.POSTransaction{
		Timestamp:  at(t, ts),
		RawTime:    ts,
		StationID:  station,
		SKU:        sku,
		WeightG:    weight,
		CustomerID: customer,
	}
}

func recRecord(t *testing.T, ts, station, sku string, accuracy float64) models.Recognition {
	t.Helper()
	return models.Recognition{
		Timestamp:    at(t, ts),
		RawTime:      ts,
		StationID:    station,
		PredictedSKU: sku,
		Accuracy:     accuracy,
	}
}

func queueRecord(t *testing.T, ts, station string, count int, dwell float64) models.QueueSample {
	t.Helper()
	return models.QueueSample{
		Timestamp:        at(t, ts),
		RawTime:          ts,
		StationID:        station,
		CustomerCount:    count,
		AverageDwellTime: dwell,
	}
}

func snapshot(t *testing.T, ts string, counts map[string]int, order []string) models.InventorySnapshot {
	t.Helper()
	return models.InventorySnapshot{
		Timestamp: at(t, ts),
		RawTime:   ts,
		Counts:    counts,
		SKUOrder:  order,
	}
}
