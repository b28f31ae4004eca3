package models

import "time"

// StreamKind identifies which sensor feed a record came from.
type StreamKind string

const (
	StreamPOS               StreamKind = "POS"
	StreamRecognition       StreamKind = "RECOGNITION"
	StreamQueue             StreamKind = "QUEUE"
	StreamRFID              StreamKind = "RFID"
	StreamInventorySnapshot StreamKind = "INVENTORY_SNAPSHOT"
)

// POSTransaction 一条收银交易记录
// RawTime keeps the timestamp string exactly as it appeared in the input so
// the output stays byte-compatible with downstream consumers.
type POSTransaction struct {
	Timestamp  time.Time
	RawTime    string
	StationID  string
	SKU        string
	WeightG    float64
	CustomerID string // empty when the record carried no customer_id
}

// Recognition is a vision-system product prediction for a station.
type Recognition struct {
	Timestamp    time.Time
	RawTime      string
	StationID    string
	PredictedSKU string
	Accuracy     float64 // 0–1 confidence
}

// QueueSample is one queue telemetry reading for a station.
type QueueSample struct {
	Timestamp        time.Time
	RawTime          string
	StationID        string
	CustomerCount    int
	AverageDwellTime float64 // seconds
}

// RFIDReading is a single tag read. No detector consumes RFID today; the
// stream is still loaded and counted so the input contract stays complete.
type RFIDReading struct {
	Timestamp time.Time
	RawTime   string
	StationID string
	EPC       string
	SKU       string
	Location  string
}

// InventorySnapshot is a point-in-time count of on-hand quantity per SKU.
// SKUOrder preserves the key order of the source JSON object so snapshot
// iteration stays deterministic and matches the feed.
type InventorySnapshot struct {
	Timestamp time.Time
	RawTime   string
	Counts    map[string]int
	SKUOrder  []string
}

// Streams holds all materialized sensor streams for one run. Detectors treat
// it as read-only.
type Streams struct {
	POS         []POSTransaction
	Recognition []Recognition
	Queue       []QueueSample
	RFID        []RFIDReading
	Inventory   []InventorySnapshot
}

// ProductCatalogEntry 商品目录条目（只读参考数据）
type ProductCatalogEntry struct {
	SKU      string
	Name     string
	Barcode  string
	Weight   float64 // expected weight, grams
	Price    float64
	Quantity int
	EPCRange string
}

// Customer is a catalog row from customer_data.csv.
type Customer struct {
	ID    string
	Name  string
	Email string
	Phone string
}

// Dataset is everything ingestion hands to the detection core.
type Dataset struct {
	Streams   Streams
	Catalog   map[string]ProductCatalogEntry
	Customers map[string]Customer
}
