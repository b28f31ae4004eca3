package detect

import (
	"retail-sentinel/internal/models"
)

// detectQueueIssues 队列拥堵检测
// 人数和等待时间是两个独立的阈值检查，同一条记录可以同时产生两个事件。
func (e *Engine) detectQueueIssues(s *models.Streams) []models.DetectedEvent {
	var events []models.DetectedEvent
	for _, q := range s.Queue {
		if q.CustomerCount >= e.cfg.QueueLengthThreshold {
			events = append(events, newEvent(q.Timestamp, q.RawTime,
				provisionalID("QL", len(events)),
				models.LongQueueLength{
					StationID:      q.StationID,
					NumOfCustomers: q.CustomerCount,
				}))
		}

		if q.AverageDwellTime >= e.cfg.WaitTimeThreshold {
			events = append(events, newEvent(q.Timestamp, q.RawTime,
				provisionalID("WT", len(events)),
				models.LongWaitTime{
					StationID:       q.StationID,
					WaitTimeSeconds: int(q.AverageDwellTime),
				}))
		}
	}

	return events
}
