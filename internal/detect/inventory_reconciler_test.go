package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"retail-sentinel/internal/models"
)

func TestInventoryDiscrepancy_NoSalesNoDrift(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 100}, []string{"P001"}),
			snapshot(t, "2025-08-13T10:10:00", map[string]int{"P001": 100}, []string{"P001"}),
		},
	}

	assert.Empty(t, e.detectInventoryDiscrepancies(streams))
}

func TestInventoryDiscrepancy_UnexplainedShrinkage(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 100}, []string{"P001"}),
			snapshot(t, "2025-08-13T10:10:00", map[string]int{"P001": 90}, []string{"P001"}),
		},
		POS: []models.POSTransaction{
			// 区间内售出 5 件，期望 95，实际 90，偏差 5 > 2
			posRecord(t, "2025-08-13T10:02:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:03:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:04:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:05:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:06:00", "SCC1", "P001", 100, ""),
		},
	}

	events := e.detectInventoryDiscrepancies(streams)
	require.Len(t, events, 1)

	data, ok := events[0].Data.(models.InventoryDiscrepancy)
	require.True(t, ok)
	assert.Equal(t, "P001", data.SKU)
	assert.Equal(t, 95, data.ExpectedInventory)
	assert.Equal(t, 90, data.ActualInventory)
	// 事件挂在后一个快照的时间戳上
	assert.Equal(t, "2025-08-13T10:10:00", events[0].RawTime)
}

func TestInventoryDiscrepancy_ToleranceBoundary(t *testing.T) {
	e := testEngine(nil)

	// 偏差正好 2 件：不上报
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 100}, []string{"P001"}),
			snapshot(t, "2025-08-13T10:10:00", map[string]int{"P001": 98}, []string{"P001"}),
		},
	}
	assert.Empty(t, e.detectInventoryDiscrepancies(streams))

	// 偏差 3 件：上报
	streams.Inventory[1] = snapshot(t, "2025-08-13T10:10:00", map[string]int{"P001": 97}, []string{"P001"})
	assert.Len(t, e.detectInventoryDiscrepancies(streams), 1)
}

func TestInventoryDiscrepancy_HalfOpenSalesWindow(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 100}, []string{"P001"}),
			snapshot(t, "2025-08-13T10:10:00", map[string]int{"P001": 96}, []string{"P001"}),
		},
		POS: []models.POSTransaction{
			// 区间起点含：计入销量
			posRecord(t, "2025-08-13T10:00:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:01:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:02:00", "SCC1", "P001", 100, ""),
			posRecord(t, "2025-08-13T10:03:00", "SCC1", "P001", 100, ""),
			// 区间终点不含：不计入
			posRecord(t, "2025-08-13T10:10:00", "SCC1", "P001", 100, ""),
		},
	}

	// 销量 4，期望 96 == 实际 96
	assert.Empty(t, e.detectInventoryDiscrepancies(streams))
}

func TestInventoryDiscrepancy_FewerThanTwoSnapshots(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 100}, []string{"P001"}),
		},
	}

	assert.Empty(t, e.detectInventoryDiscrepancies(streams))
	assert.Empty(t, e.detectInventoryDiscrepancies(&models.Streams{}))
}

func TestInventoryDiscrepancy_NewSKUInCurrentNotChecked(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 100}, []string{"P001"}),
			// P002 只在后一快照出现，没有前值，不做核对
			snapshot(t, "2025-08-13T10:10:00", map[string]int{"P001": 100, "P002": 50}, []string{"P001", "P002"}),
		},
	}

	assert.Empty(t, e.detectInventoryDiscrepancies(streams))
}

func TestInventoryDiscrepancy_SKUMissingFromCurrentCountsAsZero(t *testing.T) {
	e := testEngine(nil)
	streams := &models.Streams{
		Inventory: []models.InventorySnapshot{
			snapshot(t, "2025-08-13T10:00:00", map[string]int{"P001": 5}, []string{"P001"}),
			snapshot(t, "2025-08-13T10:10:00", map[string]int{}, []string{}),
		},
	}

	events := e.detectInventoryDiscrepancies(streams)
	require.Len(t, events, 1)
	data := events[0].Data.(models.InventoryDiscrepancy)
	assert.Equal(t, 5, data.ExpectedInventory)
	assert.Equal(t, 0, data.ActualInventory)
}
