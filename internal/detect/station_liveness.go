package detect

import (
	"sort"
	"time"

	"retail-sentinel/internal/models"
)

// activityPoint 站点的一次活动（POS 交易或队列遥测）
type activityPoint struct {
	ts  time.Time
	raw string
}

// detectSystemCrashes 站点存活监测
// 把每个站点的 POS 和队列活动合并后按时间排序，相邻两次活动的间隔达到
// 阈值即判定站点宕机，事件挂在后一条记录的时间戳上，携带间隔秒数。
// 这是活动缺口启发式，不是直接的健康检查。
func (e *Engine) detectSystemCrashes(s *models.Streams) []models.DetectedEvent {
	activities := make(map[string][]activityPoint)
	var stationOrder []string

	add := func(station string, p activityPoint) {
		if _, seen := activities[station]; !seen {
			stationOrder = append(stationOrder, station)
		}
		activities[station] = append(activities[station], p)
	}

	for _, p := range s.POS {
		add(p.StationID, activityPoint{ts: p.Timestamp, raw: p.RawTime})
	}
	for _, q := range s.Queue {
		add(q.StationID, activityPoint{ts: q.Timestamp, raw: q.RawTime})
	}

	var events []models.DetectedEvent
	for _, station := range stationOrder {
		points := activities[station]
		sort.SliceStable(points, func(i, j int) bool {
			return points[i].ts.Before(points[j].ts)
		})

		for i := 0; i < len(points)-1; i++ {
			gap := points[i+1].ts.Sub(points[i].ts).Seconds()
			if gap < e.cfg.StationInactiveThreshold {
				continue
			}

			events = append(events, newEvent(points[i+1].ts, points[i+1].raw,
				provisionalID("SC", len(events)),
				models.SystemCrash{
					StationID:       station,
					DurationSeconds: int(gap),
				}))
		}
	}

	return events
}
