package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/spf13/viper"
)

// envPrefix 环境变量前缀，例如 FACILITY_PORT；未带前缀的同名变量（PORT）同样生效
const envPrefix = "FACILITY"

var (
	cfg  *Config
	once sync.Once
	// File 配置文件路径，为空时在 . 与 ./config 下查找 config.yaml
	File string
)

// Init 读取配置：.env -> config.yaml -> 环境变量，后者覆盖前者
func Init() {
	once.Do(func() {
		c, err := Load(File)
		if err != nil {
			panic(err)
		}
		cfg = c
	})
}

// Get 获取全局配置，未初始化时先初始化
func Get() *Config {
	if cfg == nil {
		Init()
	}
	return cfg
}

// Set 替换全局配置，供测试与命令行使用
func Set(c *Config) {
	once.Do(func() {})
	cfg = c
}

// Load 按 .env、配置文件、环境变量的顺序构造配置
func Load(file string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return nil, fmt.Errorf("读取配置文件失败: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("解析配置文件失败: %w", err)
	}
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, fmt.Errorf("解析环境变量失败: %w", err)
	}
	if err := c.normalize(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("port", "8080")
	v.SetDefault("prefix", "api")
	v.SetDefault("mode", string(ModeDebug))
	v.SetDefault("location", "Local")
	v.SetDefault("database.driver", string(DriverMysql))
	v.SetDefault("database.port", "3306")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.auto_migrate", true)
	v.SetDefault("redis.port", "6379")
	v.SetDefault("jwt.access_expire", 3600)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.max_size", 100)
	v.SetDefault("log.max_backups", 7)
	v.SetDefault("log.max_age", 30)
	v.SetDefault("otel.service_name", "facility-work-tracker")
	v.SetDefault("s3.local_dir", "./data/exports")
	v.SetDefault("webhook.timeout", 10)
	v.SetDefault("stats.employee_count", string(EmployeeCountActual))
	v.SetDefault("stats.cache_ttl", 60)
	v.SetDefault("stats.trend_months", 6)
}

func (c *Config) normalize() error {
	c.Mode = Mode(strings.ToLower(string(c.Mode)))
	switch c.Mode {
	case ModeDebug, ModeRelease:
	default:
		return fmt.Errorf("未知运行模式: %s", c.Mode)
	}
	c.Database.Driver = Driver(strings.ToLower(string(c.Database.Driver)))
	switch c.Database.Driver {
	case DriverMysql, DriverPostgres:
	default:
		return fmt.Errorf("不支持的数据库驱动: %s", c.Database.Driver)
	}
	c.Stats.EmployeeCount = EmployeeCountPolicy(strings.ToLower(string(c.Stats.EmployeeCount)))
	switch c.Stats.EmployeeCount {
	case EmployeeCountActual, EmployeeCountEstimate:
	default:
		return fmt.Errorf("未知员工计数策略: %s", c.Stats.EmployeeCount)
	}
	if c.Stats.TrendMonths <= 0 {
		c.Stats.TrendMonths = 6
	}
	if _, err := time.LoadLocation(c.Location); err != nil {
		return fmt.Errorf("无效时区 %s: %w", c.Location, err)
	}
	return nil
}

// TimeLocation 统计使用的时区
func (c *Config) TimeLocation() *time.Location {
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return time.Local
	}
	return loc
}
