package detect

import (
	"time"

	"retail-sentinel/internal/models"
)

// barcodeMatchWindow 条码对照窗口（对称 ±10 秒）
const barcodeMatchWindow = 10 * time.Second

// detectBarcodeSwitching 换码检测
// 对每条 POS 交易，在同站点 ±10 秒内找视觉识别记录；识别 SKU 与扫码 SKU
// 不同且置信度达标时产生事件。只取窗口内第一条满足条件的识别记录，
// 之后的不再考虑。
func (e *Engine) detectBarcodeSwitching(s *models.Streams) []models.DetectedEvent {
	recognitions := indexRecognition(s.Recognition)

	var events []models.DetectedEvent
	for _, p := range s.POS {
		from := p.Timestamp.Add(-barcodeMatchWindow)
		to := p.Timestamp.Add(barcodeMatchWindow)

		for _, rec := range recognitions.window(p.StationID, from, to) {
			if rec.PredictedSKU == p.SKU || rec.Accuracy < e.cfg.RecognitionConfidenceMin {
				continue
			}

			customerID := p.CustomerID
			if customerID == "" {
				customerID = "Unknown"
			}

			events = append(events, newEvent(p.Timestamp, p.RawTime,
				provisionalID("BS", len(events)),
				models.BarcodeSwitching{
					StationID:  p.StationID,
					CustomerID: customerID,
					ActualSKU:  rec.PredictedSKU,
					ScannedSKU: p.SKU,
				}))
			break
		}
	}

	return events
}
