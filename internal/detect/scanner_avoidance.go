package detect

import (
	"time"

	"retail-sentinel/internal/models"
)

// 扫码匹配窗口：识别时刻前 5 秒、后 10 秒，两端都含。
// 顾客通常在扫码前一点被识别到拿着商品，而扫码可能明显滞后，
// 所以向后的窗口更宽。
const (
	scanMatchBackward = 5 * time.Second
	scanMatchForward  = 10 * time.Second
)

// detectScannerAvoidance 扫描规避检测
// 对每条达到置信度阈值的识别记录，在同站点的匹配窗口内找同 SKU 的 POS
// 交易；任何一条匹配即可排除规避，找不到则产生事件。
// 低置信度识别直接忽略，避免误报。
func (e *Engine) detectScannerAvoidance(s *models.Streams) []models.DetectedEvent {
	pos := indexPOS(s.POS)

	var events []models.DetectedEvent
	for _, rec := range s.Recognition {
		if rec.Accuracy < e.cfg.RecognitionConfidenceMin {
			continue
		}

		from := rec.Timestamp.Add(-scanMatchBackward)
		to := rec.Timestamp.Add(scanMatchForward)

		matched := false
		for _, p := range pos.window(rec.StationID, from, to) {
			if p.SKU == rec.PredictedSKU {
				matched = true
				break
			}
		}
		if matched {
			continue
		}

		events = append(events, newEvent(rec.Timestamp, rec.RawTime,
			provisionalID("SA", len(events)),
			models.ScannerAvoidance{
				StationID:  rec.StationID,
				ProductSKU: rec.PredictedSKU,
				Confidence: rec.Accuracy,
			}))
	}

	return events
}
