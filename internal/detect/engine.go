// Package detect 实现核心关联/检测引擎
//
// 每个检测器都是 (streams, catalog, config) 的纯函数：只读共享输入，
// 各自返回候选事件列表，相互之间没有依赖，可以并发执行。
// 并列时间戳事件的最终先后由固定的检测器注册顺序决定，
// 因此拼接必须按注册顺序进行，而不是按完成顺序。
package detect

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"retail-sentinel/internal/config"
	"retail-sentinel/internal/models"
)

// Engine 检测引擎
type Engine struct {
	catalog map[string]models.ProductCatalogEntry
	cfg     config.DetectionConfig
	logger  *zap.Logger
}

// NewEngine 创建检测引擎
func NewEngine(catalog map[string]models.ProductCatalogEntry, cfg config.DetectionConfig, logger *zap.Logger) *Engine {
	return &Engine{
		catalog: catalog,
		cfg:     cfg,
		logger:  logger,
	}
}

// detector 一个具名检测器
type detector struct {
	name string
	run  func(*models.Streams) []models.DetectedEvent
}

// detectors 返回固定顺序的检测器列表。顺序参与输出排序的并列裁决，改动会
// 破坏输出的可复现性。
func (e *Engine) detectors() []detector {
	return []detector{
		{name: "scanner_avoidance", run: e.detectScannerAvoidance},
		{name: "barcode_switching", run: e.detectBarcodeSwitching},
		{name: "weight_discrepancies", run: e.detectWeightDiscrepancies},
		{name: "queue_issues", run: e.detectQueueIssues},
		{name: "inventory_discrepancies", run: e.detectInventoryDiscrepancies},
		{name: "system_crashes", run: e.detectSystemCrashes},
		{name: "staffing_needs", run: e.detectStaffingNeeds},
	}
}

// Detect 并发运行全部检测器，返回按注册顺序拼接的候选事件
// 每个检测器写入自己的固定槽位，Wait 之后按槽位顺序拼接，完成顺序不影响结果。
func (e *Engine) Detect(ctx context.Context, streams *models.Streams) []models.DetectedEvent {
	ds := e.detectors()
	slots := make([][]models.DetectedEvent, len(ds))

	g, _ := errgroup.WithContext(ctx)
	for i, d := range ds {
		i, d := i, d
		g.Go(func() error {
			slots[i] = d.run(streams)
			return nil
		})
	}
	// 检测器不返回错误，Wait 只做同步点
	_ = g.Wait()

	var all []models.DetectedEvent
	for i, d := range ds {
		e.logger.Debug("Detector finished",
			zap.String("detector", d.name),
			zap.Int("candidates", len(slots[i])),
		)
		all = append(all, slots[i]...)
	}

	return all
}
