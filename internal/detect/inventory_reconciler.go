package detect

import (
	"retail-sentinel/internal/models"
)

// inventoryDiscrepancyUnits 超过该件数的出入才上报
const inventoryDiscrepancyUnits = 2

// detectInventoryDiscrepancies 库存核对
// 对相邻的快照对 (prev, curr)：统计 [prev, curr) 半开区间内每个 SKU 的
// POS 销量，期望库存 = prev 数量 − 销量，与 curr 实际数量比较，
// 偏差超过 2 件上报，事件挂在 curr 的时间戳上。
//
// 只核对 prev 中出现过的 SKU：仅在 curr 中新出现的 SKU 没有前值，
// 不做检查。这是既有核对策略的已知不对称，保持原样。
func (e *Engine) detectInventoryDiscrepancies(s *models.Streams) []models.DetectedEvent {
	if len(s.Inventory) < 2 {
		return nil
	}

	pos := sortedPOSByTime(s.POS)

	var events []models.DetectedEvent
	for i := 0; i < len(s.Inventory)-1; i++ {
		prev := s.Inventory[i]
		curr := s.Inventory[i+1]

		itemsSold := make(map[string]int)
		for _, p := range posRange(pos, prev.Timestamp, curr.Timestamp) {
			itemsSold[p.SKU]++
		}

		for _, sku := range prev.SKUOrder {
			expected := prev.Counts[sku] - itemsSold[sku]
			actual := curr.Counts[sku] // SKU 不在 curr 中按 0 计

			discrepancy := expected - actual
			if discrepancy < 0 {
				discrepancy = -discrepancy
			}
			if discrepancy <= inventoryDiscrepancyUnits {
				continue
			}

			events = append(events, newEvent(curr.Timestamp, curr.RawTime,
				provisionalID("ID", len(events)),
				models.InventoryDiscrepancy{
					SKU:               sku,
					ExpectedInventory: expected,
					ActualInventory:   actual,
				}))
		}
	}

	return events
}
