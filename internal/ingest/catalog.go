package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"retail-sentinel/internal/models"
)

// loadCatalog 加载商品目录
// 优先 products_list.csv；不存在时尝试 products_list.xlsx（零售目录常以
// 电子表格下发）。两者都缺失按空目录处理并告警。
func (l *Loader) loadCatalog() (map[string]models.ProductCatalogEntry, error) {
	csvPath := filepath.Join(l.dir, FileProductsCSV)
	if _, err := os.Stat(csvPath); err == nil {
		return l.loadCatalogCSV(csvPath)
	}

	xlsxPath := filepath.Join(l.dir, FileProductsXLSX)
	if _, err := os.Stat(xlsxPath); err == nil {
		return l.loadCatalogXLSX(xlsxPath)
	}

	l.logger.Warn("Product catalog not found, continuing with empty catalog",
		zap.String("csv", csvPath),
		zap.String("xlsx", xlsxPath),
	)
	return map[string]models.ProductCatalogEntry{}, nil
}

func (l *Loader) loadCatalogCSV(path string) (map[string]models.ProductCatalogEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product catalog: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		l.logger.Warn("Product catalog is empty", zap.String("file", path))
		return map[string]models.ProductCatalogEntry{}, nil
	}

	cols := headerIndex(header)
	catalog := make(map[string]models.ProductCatalogEntry)

	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			l.logger.Warn("Skipping unparseable catalog row",
				zap.String("file", FileProductsCSV),
				zap.Int("row", rowNum),
				zap.Error(err),
			)
			continue
		}

		entry, ok := l.catalogEntryFromRow(row, cols, rowNum)
		if !ok {
			continue
		}
		catalog[entry.SKU] = entry
	}

	return catalog, nil
}

// catalogEntryFromRow 将一行表格数据转换为目录条目，SKU 为空的行跳过
func (l *Loader) catalogEntryFromRow(row []string, cols map[string]int, rowNum int) (models.ProductCatalogEntry, bool) {
	get := func(name string) string {
		idx, ok := cols[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	sku := get("SKU")
	if sku == "" {
		return models.ProductCatalogEntry{}, false
	}

	weight, err := parseFloatField(get("weight"))
	if err != nil {
		l.logger.Warn("Skipping catalog row with invalid weight",
			zap.Int("row", rowNum),
			zap.String("sku", sku),
			zap.Error(err),
		)
		return models.ProductCatalogEntry{}, false
	}
	price, err := parseFloatField(get("price"))
	if err != nil {
		l.logger.Warn("Skipping catalog row with invalid price",
			zap.Int("row", rowNum),
			zap.String("sku", sku),
			zap.Error(err),
		)
		return models.ProductCatalogEntry{}, false
	}
	quantity, err := parseIntField(get("quantity"))
	if err != nil {
		l.logger.Warn("Skipping catalog row with invalid quantity",
			zap.Int("row", rowNum),
			zap.String("sku", sku),
			zap.Error(err),
		)
		return models.ProductCatalogEntry{}, false
	}

	return models.ProductCatalogEntry{
		SKU:      sku,
		Name:     get("product_name"),
		Barcode:  get("barcode"),
		Weight:   weight,
		Price:    price,
		Quantity: quantity,
		EPCRange: get("EPC_range"),
	}, true
}

// loadCustomers 加载客户数据（检测算法不使用，随数据集一并提供）
func (l *Loader) loadCustomers() map[string]models.Customer {
	path := filepath.Join(l.dir, FileCustomersCSV)

	f, err := os.Open(path)
	if err != nil {
		l.logger.Warn("Customer data not found, continuing without it",
			zap.String("file", path),
		)
		return map[string]models.Customer{}
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		return map[string]models.Customer{}
	}
	cols := headerIndex(header)

	customers := make(map[string]models.Customer)
	rowNum := 1
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		rowNum++
		if err != nil {
			l.logger.Warn("Skipping unparseable customer row",
				zap.String("file", FileCustomersCSV),
				zap.Int("row", rowNum),
				zap.Error(err),
			)
			continue
		}

		get := func(name string) string {
			idx, ok := cols[name]
			if !ok || idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		id := get("Customer_ID")
		if id == "" {
			continue
		}
		customers[id] = models.Customer{
			ID:    id,
			Name:  get("Customer_Name"),
			Email: get("Email"),
			Phone: get("Phone_Number"),
		}
	}

	return customers
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, name := range header {
		cols[strings.TrimSpace(name)] = i
	}
	return cols
}

func parseFloatField(s string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.ParseFloat(s, 64)
}

func parseIntField(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	return strconv.Atoi(s)
}
