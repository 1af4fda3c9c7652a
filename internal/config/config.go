package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/vegvendor-client/internal/logger"

	"github.com/spf13/viper"
)

// Config 应用配置结构
type Config struct {
	API      APIConfig      `mapstructure:"api"`
	Socket   SocketConfig   `mapstructure:"socket"`
	Cart     CartConfig     `mapstructure:"cart"`
	Shipping ShippingConfig `mapstructure:"shipping"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
	Mode     string         `mapstructure:"mode"`
}

// APIConfig 后端 API 配置
type APIConfig struct {
	BaseURL        string `mapstructure:"base_url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// Timeout 请求超时时间
func (c APIConfig) Timeout() time.Duration {
	if c.TimeoutSeconds <= 0 {
		return 15 * time.Second
	}
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// SocketConfig 实时事件通道配置
type SocketConfig struct {
	URL              string `mapstructure:"url"`
	ReconnectSeconds int    `mapstructure:"reconnect_seconds"`
}

// ReconnectInterval 重连间隔
func (c SocketConfig) ReconnectInterval() time.Duration {
	if c.ReconnectSeconds <= 0 {
		return 3 * time.Second
	}
	return time.Duration(c.ReconnectSeconds) * time.Second
}

// CartConfig 购物车同步配置
type CartConfig struct {
	DebounceMillis int `mapstructure:"debounce_millis"`
}

// Debounce 数量编辑的防抖窗口
func (c CartConfig) Debounce() time.Duration {
	if c.DebounceMillis <= 0 {
		return 500 * time.Millisecond
	}
	return time.Duration(c.DebounceMillis) * time.Millisecond
}

// ShippingConfig 配送费配置
type ShippingConfig struct {
	Fee           string `mapstructure:"fee"`
	FreeThreshold string `mapstructure:"free_threshold"`
}

// SessionConfig 本地会话存储配置
type SessionConfig struct {
	Dir string `mapstructure:"dir"`
}

// LogConfig 日志配置
type LogConfig struct {
	Dir        string `mapstructure:"dir"`
	Filename   string `mapstructure:"filename"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// ToLoggerOptions 转换为日志初始化选项
func (c LogConfig) ToLoggerOptions() logger.Options {
	return logger.Options{
		Dir:        c.Dir,
		Filename:   c.Filename,
		MaxSizeMB:  c.MaxSizeMB,
		MaxBackups: c.MaxBackups,
		MaxAgeDays: c.MaxAgeDays,
		Compress:   c.Compress,
	}
}

// Load 从 config.yaml 加载配置
func Load() *Config {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")     // 从当前目录查找
	viper.AddConfigPath("../")   // 如果从 cmd/shop 运行
	viper.AddConfigPath("./etc") // etc 文件夹

	viper.SetDefault("mode", "debug")
	viper.SetDefault("api.base_url", "http://localhost:5000/api")
	viper.SetDefault("api.timeout_seconds", 15)
	viper.SetDefault("socket.url", "ws://localhost:5000/events")
	viper.SetDefault("socket.reconnect_seconds", 3)
	viper.SetDefault("cart.debounce_millis", 500)
	viper.SetDefault("shipping.fee", "5.99")
	viper.SetDefault("shipping.free_threshold", "50")
	viper.SetDefault("session.dir", "./session")
	viper.SetDefault("log.dir", "")
	viper.SetDefault("log.filename", "shop.log")
	viper.SetDefault("log.max_size_mb", 100)
	viper.SetDefault("log.max_backups", 7)
	viper.SetDefault("log.max_age_days", 30)
	viper.SetDefault("log.compress", true)

	viper.SetEnvPrefix("VV")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			fmt.Printf("读取配置文件失败: %v，使用默认配置\n", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		fmt.Printf("解析配置失败: %v，使用默认配置\n", err)
		return defaultConfig()
	}
	return &cfg
}

func defaultConfig() *Config {
	return &Config{
		Mode: "debug",
		API: APIConfig{
			BaseURL:        "http://localhost:5000/api",
			TimeoutSeconds: 15,
		},
		Socket: SocketConfig{
			URL:              "ws://localhost:5000/events",
			ReconnectSeconds: 3,
		},
		Cart:     CartConfig{DebounceMillis: 500},
		Shipping: ShippingConfig{Fee: "5.99", FreeThreshold: "50"},
		Session:  SessionConfig{Dir: "./session"},
		Log: LogConfig{
			Filename:   "shop.log",
			MaxSizeMB:  100,
			MaxBackups: 7,
			MaxAgeDays: 30,
			Compress:   true,
		},
	}
}
