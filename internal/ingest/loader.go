package ingest

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"retail-sentinel/internal/models"
)

// 输入目录内的固定文件名
const (
	FilePOSTransactions    = "pos_transactions.jsonl"
	FileProductRecognition = "product_recognition.jsonl"
	FileQueueMonitoring    = "queue_monitoring.jsonl"
	FileRFIDReadings       = "rfid_readings.jsonl"
	FileInventorySnapshots = "inventory_snapshots.jsonl"
	FileProductsCSV        = "products_list.csv"
	FileProductsXLSX       = "products_list.xlsx"
	FileCustomersCSV       = "customer_data.csv"
)

// Loader 输入数据加载器
// 只有输入目录缺失是致命错误；单行损坏、单文件缺失都记告警后继续，
// 检测核心永远只接收解析成功的记录。
type Loader struct {
	dir    string
	logger *zap.Logger
}

// NewLoader 创建加载器，输入目录不存在时返回错误
func NewLoader(dir string, logger *zap.Logger) (*Loader, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("input directory not found: %s: %w", dir, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("input path is not a directory: %s", dir)
	}
	return &Loader{dir: dir, logger: logger}, nil
}

// envelope 每行 JSON 的公共信封
type envelope struct {
	Timestamp string          `json:"timestamp"`
	StationID string          `json:"station_id"`
	Status    string          `json:"status"`
	Data      json.RawMessage `json:"data"`
}

// LoadAll 加载全部输入数据
func (l *Loader) LoadAll() (*models.Dataset, error) {
	ds := &models.Dataset{}

	ds.Streams.POS = l.loadPOS()
	ds.Streams.Recognition = l.loadRecognition()
	ds.Streams.Queue = l.loadQueue()
	ds.Streams.RFID = l.loadRFID()
	ds.Streams.Inventory = l.loadInventory()

	catalog, err := l.loadCatalog()
	if err != nil {
		return nil, err
	}
	ds.Catalog = catalog
	ds.Customers = l.loadCustomers()

	l.logger.Info("Data loading complete",
		zap.Int("pos_transactions", len(ds.Streams.POS)),
		zap.Int("product_recognition", len(ds.Streams.Recognition)),
		zap.Int("queue_monitoring", len(ds.Streams.Queue)),
		zap.Int("rfid_readings", len(ds.Streams.RFID)),
		zap.Int("inventory_snapshots", len(ds.Streams.Inventory)),
		zap.Int("products_catalog", len(ds.Catalog)),
		zap.Int("customers", len(ds.Customers)),
	)

	return ds, nil
}

// loadJSONL 逐行读取一个 JSONL 文件，文件缺失时按空流处理
func (l *Loader) loadJSONL(filename string) []envelope {
	path := filepath.Join(l.dir, filename)

	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("Stream file not found, treating as empty",
			zap.String("file", path),
		)
		return nil
	}
	defer f.Close()

	var records []envelope
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		var env envelope
		if err := json.Unmarshal(line, &env); err != nil {
			l.logger.Warn("Skipping malformed line",
				zap.String("file", filename),
				zap.Int("line", lineNum),
				zap.Error(err),
			)
			continue
		}
		records = append(records, env)
	}
	if err := scanner.Err(); err != nil {
		l.logger.Warn("Stopped reading stream file",
			zap.String("file", filename),
			zap.Error(err),
		)
	}

	return records
}

func (l *Loader) loadPOS() []models.POSTransaction {
	var out []models.POSTransaction
	for _, env := range l.loadJSONL(FilePOSTransactions) {
		ts, err := ParseTimestamp(env.Timestamp)
		if err != nil {
			l.warnRecord(FilePOSTransactions, err)
			continue
		}
		var data struct {
			SKU        string  `json:"sku"`
			WeightG    float64 `json:"weight_g"`
			CustomerID string  `json:"customer_id"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			l.warnRecord(FilePOSTransactions, err)
			continue
		}
		out = append(out, models.POSTransaction{
			Timestamp:  ts,
			RawTime:    env.Timestamp,
			StationID:  env.StationID,
			SKU:        data.SKU,
			WeightG:    data.WeightG,
			CustomerID: data.CustomerID,
		})
	}
	return out
}

func (l *Loader) loadRecognition() []models.Recognition {
	var out []models.Recognition
	for _, env := range l.loadJSONL(FileProductRecognition) {
		ts, err := ParseTimestamp(env.Timestamp)
		if err != nil {
			l.warnRecord(FileProductRecognition, err)
			continue
		}
		var data struct {
			PredictedProduct string  `json:"predicted_product"`
			Accuracy         float64 `json:"accuracy"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			l.warnRecord(FileProductRecognition, err)
			continue
		}
		out = append(out, models.Recognition{
			Timestamp:    ts,
			RawTime:      env.Timestamp,
			StationID:    env.StationID,
			PredictedSKU: data.PredictedProduct,
			Accuracy:     data.Accuracy,
		})
	}
	return out
}

func (l *Loader) loadQueue() []models.QueueSample {
	var out []models.QueueSample
	for _, env := range l.loadJSONL(FileQueueMonitoring) {
		ts, err := ParseTimestamp(env.Timestamp)
		if err != nil {
			l.warnRecord(FileQueueMonitoring, err)
			continue
		}
		var data struct {
			CustomerCount    int     `json:"customer_count"`
			AverageDwellTime float64 `json:"average_dwell_time"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			l.warnRecord(FileQueueMonitoring, err)
			continue
		}
		out = append(out, models.QueueSample{
			Timestamp:        ts,
			RawTime:          env.Timestamp,
			StationID:        env.StationID,
			CustomerCount:    data.CustomerCount,
			AverageDwellTime: data.AverageDwellTime,
		})
	}
	return out
}

func (l *Loader) loadRFID() []models.RFIDReading {
	var out []models.RFIDReading
	for _, env := range l.loadJSONL(FileRFIDReadings) {
		ts, err := ParseTimestamp(env.Timestamp)
		if err != nil {
			l.warnRecord(FileRFIDReadings, err)
			continue
		}
		var data struct {
			EPC      string `json:"epc"`
			SKU      string `json:"sku"`
			Location string `json:"location"`
		}
		if err := json.Unmarshal(env.Data, &data); err != nil {
			l.warnRecord(FileRFIDReadings, err)
			continue
		}
		out = append(out, models.RFIDReading{
			Timestamp: ts,
			RawTime:   env.Timestamp,
			StationID: env.StationID,
			EPC:       data.EPC,
			SKU:       data.SKU,
			Location:  data.Location,
		})
	}
	return out
}

func (l *Loader) loadInventory() []models.InventorySnapshot {
	var out []models.InventorySnapshot
	for _, env := range l.loadJSONL(FileInventorySnapshots) {
		ts, err := ParseTimestamp(env.Timestamp)
		if err != nil {
			l.warnRecord(FileInventorySnapshots, err)
			continue
		}
		counts, order, err := decodeCounts(env.Data)
		if err != nil {
			l.warnRecord(FileInventorySnapshots, err)
			continue
		}
		out = append(out, models.InventorySnapshot{
			Timestamp: ts,
			RawTime:   env.Timestamp,
			Counts:    counts,
			SKUOrder:  order,
		})
	}

	// 快照序列必须严格按时间排列，输入乱序时在此纠正
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.Before(out[j].Timestamp)
	})

	return out
}

// decodeCounts 解析 SKU→数量映射，同时保留 JSON 键顺序，
// 保证库存核对的遍历顺序与数据源一致（输出可复现）。
func decodeCounts(raw json.RawMessage) (map[string]int, []string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return nil, nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, fmt.Errorf("inventory data is not an object")
	}

	counts := make(map[string]int)
	var order []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("unexpected token %v in inventory data", keyTok)
		}

		valTok, err := dec.Token()
		if err != nil {
			return nil, nil, err
		}
		num, ok := valTok.(json.Number)
		if !ok {
			return nil, nil, fmt.Errorf("non-numeric quantity for SKU %s", key)
		}
		qty, err := num.Int64()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid quantity for SKU %s: %w", key, err)
		}

		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key] = int(qty)
	}

	return counts, order, nil
}

func (l *Loader) warnRecord(filename string, err error) {
	l.logger.Warn("Skipping unparseable record",
		zap.String("file", filename),
		zap.Error(err),
	)
}
