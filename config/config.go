package config

import (
	"bytes"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Backend   BackendConfig   `mapstructure:"backend"`
	Editor    EditorConfig    `mapstructure:"editor"`
	Dashboard DashboardConfig `mapstructure:"dashboard"`
	Tracker   TrackerConfig   `mapstructure:"tracker"`
	Notify    NotifyConfig    `mapstructure:"notify"`
	Log       LogConfig       `mapstructure:"log"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    string `mapstructure:"port"`
	Mode    string `mapstructure:"mode"`
	BaseURL string `mapstructure:"base_url"`
}

// BackendConfig 餐厅后端 REST 服务配置
type BackendConfig struct {
	BaseURL        string            `mapstructure:"base_url"`
	TimeoutSeconds int               `mapstructure:"timeout_seconds"`
	Timeout        time.Duration     `mapstructure:"-"`
	ServiceToken   string            `mapstructure:"service_token"`
	LoginURL       string            `mapstructure:"login_url"`
	Collections    CollectionsConfig `mapstructure:"collections"`
}

// CollectionsConfig 后端资源集合名
type CollectionsConfig struct {
	Menu     string `mapstructure:"menu"`
	Category string `mapstructure:"category"`
	Child    string `mapstructure:"child"`
}

// EditorConfig 关联编辑器配置
type EditorConfig struct {
	SessionTTLMinutes int           `mapstructure:"session_ttl_minutes"`
	SessionTTL        time.Duration `mapstructure:"-"`
	ApplyRateLimit    int           `mapstructure:"apply_rate_limit"`
}

// DashboardConfig 仪表盘配置
type DashboardConfig struct {
	DefaultPreset string `mapstructure:"default_preset"`
}

// TrackerConfig 订单跟踪轮询配置
type TrackerConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	IntervalSeconds int           `mapstructure:"interval_seconds"`
	Interval        time.Duration `mapstructure:"-"`
}

// NotifyConfig 呼叫请求通知配置
type NotifyConfig struct {
	Telegram TelegramConfig `mapstructure:"telegram"`
}

// TelegramConfig Telegram 机器人配置
type TelegramConfig struct {
	Enabled     bool   `mapstructure:"enabled"`
	Token       string `mapstructure:"token"`
	ChatID      int64  `mapstructure:"chat_id"`
	APIEndpoint string `mapstructure:"api_endpoint"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var (
	// GlobalConfig 全局配置实例
	GlobalConfig *Config
)

// LoadConfig 加载配置
// 优先级: 环境变量 > 外部配置文件 > 嵌入的默认配置
// configPath: 可选的外部配置文件路径
func LoadConfig(configPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	// 1. 首先加载嵌入的默认配置
	if err := v.ReadConfig(bytes.NewReader(DefaultConfigYAML)); err != nil {
		return nil, fmt.Errorf("读取内置配置失败: %w", err)
	}

	// 2. 尝试加载外部配置文件（可选，用于覆盖默认配置）
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.MergeInConfig(); err != nil {
			log.Printf("警告: 无法读取指定配置文件 %s: %v", configPath, err)
		} else {
			log.Printf("已合并外部配置文件: %s", configPath)
		}
	} else {
		externalViper := viper.New()
		externalViper.SetConfigName("config")
		externalViper.SetConfigType("yaml")
		externalViper.AddConfigPath(".")
		externalViper.AddConfigPath("./config")
		externalViper.AddConfigPath("/etc/restoadmin")
		externalViper.AddConfigPath("$HOME/.restoadmin")

		if err := externalViper.ReadInConfig(); err == nil {
			if err := v.MergeConfigMap(externalViper.AllSettings()); err != nil {
				log.Printf("警告: 合并外部配置失败: %v", err)
			} else {
				log.Printf("已合并外部配置文件: %s", externalViper.ConfigFileUsed())
			}
		}
	}

	// 3. .env 文件中的变量并入进程环境（已存在的环境变量不会被覆盖）
	_ = godotenv.Load()

	// 4. 环境变量覆盖，如 RESTOADMIN_BACKEND_BASE_URL
	v.SetEnvPrefix("RESTOADMIN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(&cfg)

	GlobalConfig = &cfg

	return &cfg, nil
}

// applyDefaults 补齐缺省值并换算时间字段
func applyDefaults(cfg *Config) {
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = "http://localhost" + cfg.Server.Port
	}
	cfg.Server.BaseURL = strings.TrimRight(cfg.Server.BaseURL, "/")
	if cfg.Backend.TimeoutSeconds <= 0 {
		cfg.Backend.TimeoutSeconds = 10
	}
	cfg.Backend.Timeout = time.Duration(cfg.Backend.TimeoutSeconds) * time.Second
	cfg.Backend.BaseURL = strings.TrimRight(cfg.Backend.BaseURL, "/")
	if cfg.Backend.LoginURL == "" {
		cfg.Backend.LoginURL = "/login"
	}
	if cfg.Backend.Collections.Menu == "" {
		cfg.Backend.Collections.Menu = "menus"
	}
	if cfg.Backend.Collections.Category == "" {
		cfg.Backend.Collections.Category = "categories"
	}
	if cfg.Backend.Collections.Child == "" {
		cfg.Backend.Collections.Child = "fooditems"
	}

	if cfg.Editor.SessionTTLMinutes <= 0 {
		cfg.Editor.SessionTTLMinutes = 30
	}
	cfg.Editor.SessionTTL = time.Duration(cfg.Editor.SessionTTLMinutes) * time.Minute
	if cfg.Editor.ApplyRateLimit <= 0 {
		cfg.Editor.ApplyRateLimit = 20
	}

	if cfg.Dashboard.DefaultPreset == "" {
		cfg.Dashboard.DefaultPreset = "last7days"
	}

	if cfg.Tracker.IntervalSeconds <= 0 {
		cfg.Tracker.IntervalSeconds = 10
	}
	cfg.Tracker.Interval = time.Duration(cfg.Tracker.IntervalSeconds) * time.Second

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
}

// GetConfig 获取全局配置
func GetConfig() *Config {
	if GlobalConfig == nil {
		panic("配置未初始化，请先调用 LoadConfig")
	}
	return GlobalConfig
}

// PrintConfig 打印当前配置（隐藏敏感信息）
func PrintConfig() {
	if GlobalConfig == nil {
		return
	}
	log.Printf("当前配置:")
	log.Printf("  服务器: %s (模式: %s)", GlobalConfig.Server.Port, GlobalConfig.Server.Mode)
	log.Printf("  后端服务: %s (超时: %s)", GlobalConfig.Backend.BaseURL, GlobalConfig.Backend.Timeout)
	log.Printf("  服务令牌: %v", GlobalConfig.Backend.ServiceToken != "")
	log.Printf("  编辑会话有效期: %s", GlobalConfig.Editor.SessionTTL)
	log.Printf("  订单轮询: %v (间隔: %s)", GlobalConfig.Tracker.Enabled, GlobalConfig.Tracker.Interval)
	log.Printf("  呼叫通知(Telegram): %v", GlobalConfig.Notify.Telegram.Enabled)
}

// SafeErrorMessage 生产环境下不向客户端暴露内部错误详情，避免信息泄露
func SafeErrorMessage(err error, fallback string) string {
	if err == nil {
		return fallback
	}
	if GlobalConfig != nil && GlobalConfig.Server.Mode == "release" {
		return fallback
	}
	return err.Error()
}
