package ingest

import (
	"fmt"

	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"

	"retail-sentinel/internal/models"
)

// loadCatalogXLSX 从 Excel 文件加载商品目录
// 表头与 CSV 相同：SKU, product_name, barcode, weight, price, quantity, EPC_range。
// 读第一个工作表。
func (l *Loader) loadCatalogXLSX(path string) (map[string]models.ProductCatalogEntry, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open product catalog workbook: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		l.logger.Warn("Product catalog workbook has no sheets", zap.String("file", path))
		return map[string]models.ProductCatalogEntry{}, nil
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read product catalog sheet: %w", err)
	}
	if len(rows) == 0 {
		l.logger.Warn("Product catalog workbook is empty", zap.String("file", path))
		return map[string]models.ProductCatalogEntry{}, nil
	}

	cols := headerIndex(rows[0])
	catalog := make(map[string]models.ProductCatalogEntry)

	for i, row := range rows[1:] {
		entry, ok := l.catalogEntryFromRow(row, cols, i+2)
		if !ok {
			continue
		}
		catalog[entry.SKU] = entry
	}

	return catalog, nil
}
