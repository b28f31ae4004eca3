// Package aggregate 把各检测器的候选事件合并为最终的有序事件流
package aggregate

import (
	"fmt"
	"sort"

	"retail-sentinel/internal/models"
)

// Order 对候选事件做稳定排序并重写事件编号
// 输入必须已经按固定的检测器顺序拼接完毕：稳定排序保证同一时间戳的事件
// 维持拼接顺序（检测器顺序、检测器内产生顺序）。排序后事件编号统一
// 重写为零填充的顺序编号 E000、E001……，编号单调对应最终位置。
func Order(events []models.DetectedEvent) []models.DetectedEvent {
	out := make([]models.DetectedEvent, len(events))
	copy(out, events)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	for i := range out {
		out[i].EventID = fmt.Sprintf("E%03d", i)
	}

	return out
}
