package aggregate

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-sentinel/internal/models"
)

func event(t *testing.T, ts, id string, data models.EventData) models.DetectedEvent {
	t.Helper()
	tm, err := time.Parse("2006-01-02T15:04:05", ts)
	require.NoError(t, err)
	return models.DetectedEvent{
		Timestamp: tm,
		RawTime:   ts,
		EventID:   id,
		Data:      data,
	}
}

func TestOrder_SortsByTimestampAndRewritesIDs(t *testing.T) {
	in := []models.DetectedEvent{
		event(t, "2025-08-13T10:05:00", "E_QL_0", models.LongQueueLength{StationID: "SCC1"}),
		event(t, "2025-08-13T10:01:00", "E_SA_0", models.ScannerAvoidance{StationID: "SCC1"}),
		event(t, "2025-08-13T10:03:00", "E_SC_0", models.SystemCrash{StationID: "SCC2"}),
	}

	out := Order(in)
	require.Len(t, out, 3)

	assert.Equal(t, "2025-08-13T10:01:00", out[0].RawTime)
	assert.Equal(t, "2025-08-13T10:03:00", out[1].RawTime)
	assert.Equal(t, "2025-08-13T10:05:00", out[2].RawTime)

	// 排序后编号统一重写为零填充顺序编号
	assert.Equal(t, "E000", out[0].EventID)
	assert.Equal(t, "E001", out[1].EventID)
	assert.Equal(t, "E002", out[2].EventID)
}

func TestOrder_TiedTimestampsKeepInputOrder(t *testing.T) {
	// 同一时间戳的事件：输入顺序就是检测器拼接顺序，必须原样保持
	in := []models.DetectedEvent{
		event(t, "2025-08-13T10:00:00", "E_SA_0", models.ScannerAvoidance{StationID: "SCC1"}),
		event(t, "2025-08-13T10:00:00", "E_QL_0", models.LongQueueLength{StationID: "SCC1"}),
		event(t, "2025-08-13T10:00:00", "E_SN_0", models.StaffingNeeds{StationID: "SCC1"}),
	}

	out := Order(in)
	require.Len(t, out, 3)

	_, ok := out[0].Data.(models.ScannerAvoidance)
	assert.True(t, ok)
	_, ok = out[1].Data.(models.LongQueueLength)
	assert.True(t, ok)
	_, ok = out[2].Data.(models.StaffingNeeds)
	assert.True(t, ok)
}

func TestOrder_DoesNotMutateInput(t *testing.T) {
	in := []models.DetectedEvent{
		event(t, "2025-08-13T10:05:00", "E_QL_0", models.LongQueueLength{StationID: "SCC1"}),
		event(t, "2025-08-13T10:01:00", "E_SA_0", models.ScannerAvoidance{StationID: "SCC1"}),
	}

	_ = Order(in)

	assert.Equal(t, "E_QL_0", in[0].EventID)
	assert.Equal(t, "2025-08-13T10:05:00", in[0].RawTime)
}

func TestOrder_Empty(t *testing.T) {
	assert.Empty(t, Order(nil))
}
