package config

import (
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// DetectionConfig 检测阈值配置（一次运行内不可变）
// Every field has a documented default; an optional override file may replace
// any subset of them.
type DetectionConfig struct {
	// WeightTolerancePercent allows this much variance around the expected
	// product weight before a discrepancy is flagged.
	WeightTolerancePercent float64 `mapstructure:"weight_tolerance_percent"`
	// QueueLengthThreshold 排队人数告警阈值
	QueueLengthThreshold int `mapstructure:"queue_length_threshold"`
	// WaitTimeThreshold 平均等待时间告警阈值（秒）
	WaitTimeThreshold float64 `mapstructure:"wait_time_threshold"`
	// RecognitionConfidenceMin 视觉识别参与匹配的最低置信度
	RecognitionConfidenceMin float64 `mapstructure:"recognition_confidence_min"`
	// InventoryCheckInterval 库存核对间隔（秒）。当前核对按相邻快照进行，
	// 该值随原始配置保留。
	InventoryCheckInterval int `mapstructure:"inventory_check_interval"`
	// StationInactiveThreshold 站点无活动判定为宕机的间隔（秒）
	StationInactiveThreshold float64 `mapstructure:"station_inactive_threshold"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string
	Format string
}

// Config 服务配置
type Config struct {
	Detection DetectionConfig
	Log       LogConfig
}

// DefaultDetection 返回默认检测阈值
func DefaultDetection() DetectionConfig {
	return DetectionConfig{
		WeightTolerancePercent:   10,
		QueueLengthThreshold:     5,
		WaitTimeThreshold:        300,
		RecognitionConfidenceMin: 0.7,
		InventoryCheckInterval:   600,
		StationInactiveThreshold: 180,
	}
}

// Load 加载配置
// overridePath 为可选的阈值覆盖文件（JSON 或 YAML），未指定的键保持默认值。
// 环境变量（SENTINEL_ 前缀）优先于文件值。
func Load(overridePath string) (*Config, error) {
	cfg := &Config{
		Detection: DefaultDetection(),
	}

	v := viper.New()
	v.SetDefault("weight_tolerance_percent", cfg.Detection.WeightTolerancePercent)
	v.SetDefault("queue_length_threshold", cfg.Detection.QueueLengthThreshold)
	v.SetDefault("wait_time_threshold", cfg.Detection.WaitTimeThreshold)
	v.SetDefault("recognition_confidence_min", cfg.Detection.RecognitionConfidenceMin)
	v.SetDefault("inventory_check_interval", cfg.Detection.InventoryCheckInterval)
	v.SetDefault("station_inactive_threshold", cfg.Detection.StationInactiveThreshold)

	v.SetEnvPrefix("SENTINEL")
	v.AutomaticEnv()

	if overridePath != "" {
		v.SetConfigFile(overridePath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", overridePath, err)
		}
	}

	if err := v.Unmarshal(&cfg.Detection); err != nil {
		return nil, fmt.Errorf("failed to unmarshal detection config: %w", err)
	}

	if err := validateDetection(cfg.Detection); err != nil {
		return nil, err
	}

	cfg.Log.Level = getEnv("LOG_LEVEL", "info")
	cfg.Log.Format = getEnv("LOG_FORMAT", "json")

	return cfg, nil
}

func validateDetection(d DetectionConfig) error {
	if d.WeightTolerancePercent < 0 {
		return fmt.Errorf("invalid weight_tolerance_percent: %v", d.WeightTolerancePercent)
	}
	if d.QueueLengthThreshold < 0 {
		return fmt.Errorf("invalid queue_length_threshold: %d", d.QueueLengthThreshold)
	}
	if d.WaitTimeThreshold < 0 {
		return fmt.Errorf("invalid wait_time_threshold: %v", d.WaitTimeThreshold)
	}
	if d.RecognitionConfidenceMin < 0 || d.RecognitionConfidenceMin > 1 {
		return fmt.Errorf("invalid recognition_confidence_min: %v", d.RecognitionConfidenceMin)
	}
	if d.StationInactiveThreshold < 0 {
		return fmt.Errorf("invalid station_inactive_threshold: %v", d.StationInactiveThreshold)
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
