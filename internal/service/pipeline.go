// Package service 负责把一次批处理运行的各阶段串起来：
// 加载 → 检测 → 聚合 → 输出
package service

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"retail-sentinel/internal/aggregate"
	"retail-sentinel/internal/config"
	"retail-sentinel/internal/detect"
	"retail-sentinel/internal/ingest"
	"retail-sentinel/internal/models"
	"retail-sentinel/internal/sink"
)

// Pipeline 一次完整的检测运行
type Pipeline struct {
	cfg    *config.Config
	logger *zap.Logger
	runID  string
}

// NewPipeline 创建检测流水线，每次运行携带独立的 run_id 便于日志归并
func NewPipeline(cfg *config.Config, logger *zap.Logger) *Pipeline {
	runID := uuid.New().String()
	return &Pipeline{
		cfg:    cfg,
		logger: logger.With(zap.String("run_id", runID)),
		runID:  runID,
	}
}

// Run 执行一次批处理运行
// 输入目录缺失是唯一的前置致命错误；单条记录、单个文件的问题在加载层
// 记告警并吸收，检测核心只接收完整解析的记录。
func (p *Pipeline) Run(ctx context.Context, inputDir, outputPath string) error {
	loader, err := ingest.NewLoader(inputDir, p.logger)
	if err != nil {
		return err
	}

	ds, err := loader.LoadAll()
	if err != nil {
		return err
	}

	engine := detect.NewEngine(ds.Catalog, p.cfg.Detection, p.logger)
	candidates := engine.Detect(ctx, &ds.Streams)

	events := aggregate.Order(candidates)

	writer := sink.NewJSONLWriter(outputPath, p.logger)
	if err := writer.Write(events); err != nil {
		return err
	}

	p.logSummary(events)
	return nil
}

// logSummary 输出运行汇总：总数和按事件名的数量分布
func (p *Pipeline) logSummary(events []models.DetectedEvent) {
	counts := make(map[string]int)
	for _, ev := range events {
		counts[ev.Data.EventName()]++
	}

	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := []zap.Field{zap.Int("total_events", len(events))}
	for _, name := range names {
		fields = append(fields, zap.Int(name, counts[name]))
	}
	p.logger.Info("Detection complete", fields...)
}
