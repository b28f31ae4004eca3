package models

import "time"

// 事件名称（输出 event_name 的固定字面量，不可改动）
// "Unexpected Systems Crash" 与其他名称风格不一致，但下游按字节匹配，保留原样。
const (
	EventNameScannerAvoidance     = "Scanner Avoidance"
	EventNameBarcodeSwitching     = "Barcode Switching"
	EventNameWeightDiscrepancy    = "Weight Discrepancies"
	EventNameLongQueueLength      = "Long Queue Length"
	EventNameLongWaitTime         = "Long Wait Time"
	EventNameInventoryDiscrepancy = "Inventory Discrepancy"
	EventNameSystemCrash          = "Unexpected Systems Crash"
	EventNameStaffingNeeds        = "Staffing Needs"
)

// EventData 事件负载（8 种事件各一个变体）
type EventData interface {
	EventName() string
}

// ScannerAvoidance 识别到商品但未发生对应扫码
type ScannerAvoidance struct {
	StationID  string
	ProductSKU string
	Confidence float64
}

func (ScannerAvoidance) EventName() string { return EventNameScannerAvoidance }

// BarcodeSwitching 扫码 SKU 与视觉识别 SKU 不一致
type BarcodeSwitching struct {
	StationID  string
	CustomerID string
	ActualSKU  string // what the vision system saw
	ScannedSKU string // what was rung up
}

func (BarcodeSwitching) EventName() string { return EventNameBarcodeSwitching }

// WeightDiscrepancy 实测重量超出容差范围
// Weights are integer-truncated grams, matching the output contract.
type WeightDiscrepancy struct {
	StationID      string
	CustomerID     string
	ProductSKU     string
	ExpectedWeight int
	ActualWeight   int
}

func (WeightDiscrepancy) EventName() string { return EventNameWeightDiscrepancy }

// LongQueueLength 排队人数达到阈值
type LongQueueLength struct {
	StationID      string
	NumOfCustomers int
}

func (LongQueueLength) EventName() string { return EventNameLongQueueLength }

// LongWaitTime 平均等待时间达到阈值
type LongWaitTime struct {
	StationID       string
	WaitTimeSeconds int
}

func (LongWaitTime) EventName() string { return EventNameLongWaitTime }

// InventoryDiscrepancy 库存快照与按销量推算的期望库存不一致
type InventoryDiscrepancy struct {
	SKU               string
	ExpectedInventory int
	ActualInventory   int
}

func (InventoryDiscrepancy) EventName() string { return EventNameInventoryDiscrepancy }

// SystemCrash 站点活动间隔超过阈值（活动缺口启发式，并非直接健康检查）
type SystemCrash struct {
	StationID       string
	DurationSeconds int
}

func (SystemCrash) EventName() string { return EventNameSystemCrash }

// StaffingNeeds 建议增派收银员
type StaffingNeeds struct {
	StationID string
	StaffType string
}

func (StaffingNeeds) EventName() string { return EventNameStaffingNeeds }

// DetectedEvent 检测到的事件
// EventID is detector-local ("E_SA_0") until the aggregator rewrites it to
// the final zero-padded sequential form ("E000").
type DetectedEvent struct {
	Timestamp time.Time
	RawTime   string
	EventID   string
	Data      EventData
}
