package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config 全局配置结构
// 设计说明：使用Viper管理配置，支持YAML文件、环境变量覆盖
type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Backend BackendConfig `mapstructure:"backend"`
	Cache   CacheConfig   `mapstructure:"cache"`
	Redis   RedisConfig   `mapstructure:"redis"`
	Log     LogConfig     `mapstructure:"log"`
	Metrics MetricsConfig `mapstructure:"metrics"`
}

type ServerConfig struct {
	Port         int           `mapstructure:"port"`
	Mode         string        `mapstructure:"mode"` // debug | release | test
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	CORSOrigins  []string      `mapstructure:"cors_origins"`
}

// BackendConfig 远端借阅后端配置
// 控制台不直连数据库，所有数据通过该后端的JSON/HTTP接口读写
type BackendConfig struct {
	BaseURL string `mapstructure:"base_url"`
	// RequestTimeout 单次请求超时，后端接口约定为10秒
	RequestTimeout time.Duration `mapstructure:"request_timeout"`
	// Breaker 熔断器配置
	Breaker BreakerConfig `mapstructure:"breaker"`
}

type BreakerConfig struct {
	Enabled          bool          `mapstructure:"enabled"`
	MaxRequests      uint32        `mapstructure:"max_requests"`
	Interval         time.Duration `mapstructure:"interval"`
	Timeout          time.Duration `mapstructure:"timeout"`
	FailureThreshold uint32        `mapstructure:"failure_threshold"`
}

// CacheConfig 列表缓存配置
type CacheConfig struct {
	// Store 缓存实现：memory | redis
	Store string `mapstructure:"store"`
	// FreshTTL 新鲜期，超过后条目仍可读但会触发后台刷新
	FreshTTL time.Duration `mapstructure:"fresh_ttl"`
	// KeyPrefix Redis存储时的键前缀
	KeyPrefix string `mapstructure:"key_prefix"`
}

type RedisConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	Password     string        `mapstructure:"password"`
	DB           int           `mapstructure:"db"`
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// Addr 返回Redis地址
func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%d", r.Host, r.Port)
}

type LogConfig struct {
	Level        string `mapstructure:"level"`  // debug | info | warn | error
	Format       string `mapstructure:"format"` // console | json
	Output       string `mapstructure:"output"` // stdout | stderr | /path/to/file
	EnableCaller bool   `mapstructure:"enable_caller"`
}

type MetricsConfig struct {
	Enabled   bool   `mapstructure:"enabled"`
	Namespace string `mapstructure:"namespace"`
}

// Load 加载配置文件
// 支持：
// 1. 默认加载config/config.yaml
// 2. 通过环境变量CONSOLE_ENV指定环境（如config.prod.yaml）
// 3. 环境变量覆盖（如CONSOLE_BACKEND_BASE_URL）
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./config")
	v.AddConfigPath(".")

	// 环境特定配置（如config.prod.yaml）
	if env := viper.GetString("env"); env != "" {
		v.SetConfigName("config." + env)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("读取配置文件失败: %w", err)
	}

	// 环境变量绑定（自动转换，如CONSOLE_BACKEND_BASE_URL → backend.base_url）
	v.SetEnvPrefix("CONSOLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("解析配置失败: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// applyDefaults 填充缺省值
func applyDefaults(cfg *Config) {
	if cfg.Backend.RequestTimeout <= 0 {
		cfg.Backend.RequestTimeout = 10 * time.Second
	}
	if cfg.Cache.FreshTTL <= 0 {
		cfg.Cache.FreshTTL = 5 * time.Minute
	}
	if cfg.Cache.Store == "" {
		cfg.Cache.Store = "memory"
	}
	if cfg.Cache.KeyPrefix == "" {
		cfg.Cache.KeyPrefix = "console:list:"
	}
	if cfg.Metrics.Namespace == "" {
		cfg.Metrics.Namespace = "library_console"
	}
}

// validate 配置校验
func validate(cfg *Config) error {
	if cfg.Server.Port <= 0 || cfg.Server.Port > 65535 {
		return fmt.Errorf("无效的服务端口: %d", cfg.Server.Port)
	}

	if cfg.Backend.BaseURL == "" {
		return fmt.Errorf("必须配置后端地址 backend.base_url")
	}

	if cfg.Cache.Store != "memory" && cfg.Cache.Store != "redis" {
		return fmt.Errorf("无效的缓存实现: %s（支持 memory | redis）", cfg.Cache.Store)
	}

	return nil
}
