package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/zhouzirui/z-ledger/backend/internal/logger"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server  ServerConfig
	Log     logger.Options
	Metrics MetricsConfig
	Events  EventsConfig
	// SeedDemo 为真时启动时写入示例记录。
	SeedDemo bool
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	metrics, err := loadMetricsConfig()
	if err != nil {
		return nil, err
	}

	events, err := loadEventsConfig()
	if err != nil {
		return nil, err
	}

	seed, err := parseBoolEnv("SEED_DEMO", false)
	if err != nil {
		return nil, err
	}

	return &Config{
		Server:   server,
		Log:      loadLogConfig(),
		Metrics:  metrics,
		Events:   events,
		SeedDemo: seed,
	}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr string
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port}, nil
}

func loadLogConfig() logger.Options {
	return logger.Options{
		Level:  getEnvOrDefault("LOG_LEVEL", "info"),
		Output: getEnvOrDefault("LOG_OUTPUT", "stdout"),
		Format: getEnvOrDefault("LOG_FORMAT", "text"),
	}
}

// MetricsConfig 描述 /metrics 端点配置。
type MetricsConfig struct {
	Enabled bool
}

func loadMetricsConfig() (MetricsConfig, error) {
	enabled, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return MetricsConfig{}, err
	}
	return MetricsConfig{Enabled: enabled}, nil
}

// EventsConfig 描述实时事件推送（WebSocket / SSE）配置。
type EventsConfig struct {
	Enabled bool
	// Buffer 为每个订阅者的事件缓冲长度，写满后丢弃新事件。
	Buffer int
}

func loadEventsConfig() (EventsConfig, error) {
	enabled, err := parseBoolEnv("EVENTS_ENABLED", true)
	if err != nil {
		return EventsConfig{}, err
	}

	buffer := 16
	if override, err := parseOptionalIntEnv("EVENTS_BUFFER"); err != nil {
		return EventsConfig{}, err
	} else if override != nil {
		if *override < 1 {
			return EventsConfig{}, fmt.Errorf("invalid EVENTS_BUFFER value %d: must be positive", *override)
		}
		buffer = *override
	}

	return EventsConfig{Enabled: enabled, Buffer: buffer}, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseOptionalIntEnv(key string) (*int, error) {
	raw, ok := os.LookupEnv(key)
	if !ok {
		return nil, nil
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	val, err := strconv.Atoi(value)
	if err != nil {
		return nil, fmt.Errorf("invalid %s value %q: %w", key, value, err)
	}
	return &val, nil
}
