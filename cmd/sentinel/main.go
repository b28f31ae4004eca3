package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"retail-sentinel/internal/config"
	"retail-sentinel/internal/logging"
	"retail-sentinel/internal/service"
)

func main() {
	// 1. 解析命令行参数（带环境变量回退）
	inputDir := flag.String("input",
		getEnv("SENTINEL_INPUT_DIR", "data/input"),
		"Path to input data directory (env: SENTINEL_INPUT_DIR)")
	outputPath := flag.String("output",
		getEnv("SENTINEL_OUTPUT_FILE", "output/events.jsonl"),
		"Path to output events file (env: SENTINEL_OUTPUT_FILE)")
	configPath := flag.String("config",
		getEnv("SENTINEL_CONFIG", ""),
		"Optional threshold override file, JSON or YAML (env: SENTINEL_CONFIG)")
	logLevel := flag.String("log-level", "",
		"Log level: debug, info, warn, error (default from LOG_LEVEL)")
	logFormat := flag.String("log-format", "",
		"Log format: json, console (default from LOG_FORMAT)")
	flag.Parse()

	// 2. 加载配置
	cfg, err := config.Load(*configPath)
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}
	if *logLevel != "" {
		cfg.Log.Level = *logLevel
	}
	if *logFormat != "" {
		cfg.Log.Format = *logFormat
	}

	// 3. 初始化日志
	logger, err := logging.NewLogger(cfg.Log.Level, cfg.Log.Format, "retail-sentinel")
	if err != nil {
		panic(fmt.Sprintf("Failed to init logger: %v", err))
	}
	defer logger.Sync()

	// 4. 运行流水线（支持中断信号）
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pipeline := service.NewPipeline(cfg, logger)
	if err := pipeline.Run(ctx, *inputDir, *outputPath); err != nil {
		logger.Fatal("Pipeline failed",
			zap.String("input", *inputDir),
			zap.Error(err),
		)
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
