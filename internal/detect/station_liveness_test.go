package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-sentinel/internal/models"
)

func TestSystemCrashes_GapAtThreshold(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		POS: []models.POSTransaction{
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:03:00", "SCC1", "P002", 100, ""),
		},
	}

	events := e.detectSystemCrashes(streams)
	require.Len(t, events, 1)

	data, ok := events[0].Data.(models.SystemCrash)
	require.True(t, ok)
	assert.Equal(t, "SCC1", data.StationID)
	assert.Equal(t, 180, data.DurationSeconds)
	// 事件挂在缺口后第一条记录的时间戳上
	assert.Equal(t, "2025-08-13T10:03:00", events[0].RawTime)
}

func TestSystemCrashes_GapJustBelowThreshold(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		POS: []models.POSTransaction{
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:02:59", "SCC1", "P002", 100, ""),
		},
	}

	assert.Empty(t, e.detectSystemCrashes(streams))
}

func TestSystemCrashes_QueueActivityFillsGap(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		POS: []models.POSTransaction{
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:04:00", "SCC1", "P002", 100, ""),
		},
		Queue: []models.QueueSample{
			// 队列遥测证明站点 10:02 仍存活
			queueRecord(t, "2025-08-13T10:02:00", "SCC1", 2, 50),
		},
	}

	assert.Empty(t, e.detectSystemCrashes(streams))
}

func TestSystemCrashes_StationsIndependent(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		POS: []models.POSTransaction{
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:05:00", "SCC1", "P002", 100, ""),
			posRecord(t, "2025-08-13T10:00:00", "SCC2", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:01:00", "SCC2", "P002", 100, ""),
		},
	}

	events := e.detectSystemCrashes(streams)
	require.Len(t, events, 1)
	assert.Equal(t, "SCC1", events[0].Data.(models.SystemCrash).StationID)
	assert.Equal(t, 300, events[0].Data.(models.SystemCrash).DurationSeconds)
}

func TestSystemCrashes_FractionalGapTruncated(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		POS: []models.POSTransaction{
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:03:10.750", "SCC1", "P002", 100, ""),
		},
	}

	events := e.detectSystemCrashes(streams)
	require.Len(t, events, 1)
	assert.Equal(t, 190, events[0].Data.(models.SystemCrash).DurationSeconds)
}

func TestSystemCrashes_MultipleGapsSameStation(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		POS: []models.POSTransaction{
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:04:00", "SCC1", "P002", 100, ""),
			posRecord(t, "2025-08-13T10:10:00", "SCC1", "P003", 100, ""),
		},
	}

	events := e.detectSystemCrashes(streams)
	require.Len(t, events, 2)
	assert.Equal(t, 240, events[0].Data.(models.SystemCrash).DurationSeconds)
	assert.Equal(t, 360, events[1].Data.(models.SystemCrash).DurationSeconds)
}
