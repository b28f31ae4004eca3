package detect

import (
	"fmt"
	"time"

	"retail-sentinel/internal/models"
)

// provisionalID 检测器本地的临时事件编号（如 "E_SA_0"）
// 聚合器排序后会统一重写为最终的顺序编号。
func provisionalID(prefix string, n int) string {
	return fmt.Sprintf("E_%s_%d", prefix, n)
}

// newEvent 构建候选事件，RawTime 保留输入的原始时间戳字符串
func newEvent(ts time.Time, raw, id string, data models.EventData) models.DetectedEvent {
	return models.DetectedEvent{
		Timestamp: ts,
		RawTime:   raw,
		EventID:   id,
		Data:      data,
	}
}
