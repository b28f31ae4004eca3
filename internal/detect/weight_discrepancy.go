package detect

import (
	"math"

	"retail-sentinel/internal/models"
)

// detectWeightDiscrepancies 重量偏差检测
// 容差为期望重量的百分比；实测与期望之差严格大于容差才算偏差，
// 恰好等于容差不触发。目录中不存在的 SKU 没有基准重量，直接跳过。
func (e *Engine) detectWeightDiscrepancies(s *models.Streams) []models.DetectedEvent {
	var events []models.DetectedEvent
	for _, p := range s.POS {
		entry, ok := e.catalog[p.SKU]
		if !ok {
			continue
		}

		tolerance := entry.Weight * (e.cfg.WeightTolerancePercent / 100)
		if math.Abs(p.WeightG-entry.Weight) <= tolerance {
			continue
		}

		customerID := p.CustomerID
		if customerID == "" {
			customerID = "Unknown"
		}

		events = append(events, newEvent(p.Timestamp, p.RawTime,
			provisionalID("WD", len(events)),
			models.WeightDiscrepancy{
				StationID:      p.StationID,
				CustomerID:     customerID,
				ProductSKU:     p.SKU,
				ExpectedWeight: int(entry.Weight),
				ActualWeight:   int(p.WeightG),
			}))
	}

	return events
}
