package detect

import (
	"retail-sentinel/internal/models"
)

// detectStaffingNeeds 人力建议
// 队列长度或等待时间任一达到阈值就建议增派收银员。与队列拥堵检测不同，
// 两个条件同时满足也只产生一个事件。
func (e *Engine) detectStaffingNeeds(s *models.Streams) []models.DetectedEvent {
	var events []models.DetectedEvent
	for _, q := range s.Queue {
		if q.CustomerCount < e.cfg.QueueLengthThreshold &&
			q.AverageDwellTime < e.cfg.WaitTimeThreshold {
			continue
		}

		events = append(events, newEvent(q.Timestamp, q.RawTime,
			provisionalID("SN", len(events)),
			models.StaffingNeeds{
				StationID: q.StationID,
				StaffType: "Cashier",
			}))
	}

	return events
}
