package config

type Mode string

const (
	ModeDebug   Mode = "debug"
	ModeRelease Mode = "release"
)

type Config struct {
	Host      string    `envconfig:"HOST" mapstructure:"host"`
	Port      string    `envconfig:"PORT" mapstructure:"port"`
	Domain    string    `envconfig:"DOMAIN" mapstructure:"domain"`
	Prefix    string    `envconfig:"PREFIX" mapstructure:"prefix"`
	Mode      Mode      `envconfig:"MODE" mapstructure:"mode"`
	Location  string    `envconfig:"LOCATION" mapstructure:"location"` // 统计口径使用的时区，如 Asia/Kolkata
	Database  Database  `mapstructure:"database"`
	Redis     Redis     `mapstructure:"redis"`
	JWT       JWT       `mapstructure:"jwt"`
	Log       Log       `mapstructure:"log"`
	Sentry    Sentry    `mapstructure:"sentry"`
	OTel      OTel      `mapstructure:"otel"`
	S3        S3        `mapstructure:"s3"`
	Webhook   Webhook   `mapstructure:"webhook"`
	Stats     Stats     `mapstructure:"stats"`
	WorkEntry WorkEntry `mapstructure:"work_entry"`
}

type Driver string

const (
	DriverMysql    Driver = "mysql"
	DriverPostgres Driver = "postgres"
)

type Database struct {
	Driver      Driver `envconfig:"DB_DRIVER" mapstructure:"driver"`
	Host        string `envconfig:"DB_HOST" mapstructure:"host"`
	Port        string `envconfig:"DB_PORT" mapstructure:"port"`
	Username    string `envconfig:"DB_USERNAME" mapstructure:"username"`
	Password    string `envconfig:"DB_PASSWORD" mapstructure:"password"`
	DBName      string `envconfig:"DB_NAME" mapstructure:"db_name"`
	SSLMode     string `envconfig:"DB_SSLMODE" mapstructure:"sslmode"` // 仅 postgres 使用
	AutoMigrate bool   `envconfig:"DB_AUTO_MIGRATE" mapstructure:"auto_migrate"`
}

type Redis struct {
	Host     string `envconfig:"REDIS_HOST" mapstructure:"host"`
	Port     string `envconfig:"REDIS_PORT" mapstructure:"port"`
	Password string `envconfig:"REDIS_PASSWORD" mapstructure:"password"`
	DB       int    `envconfig:"REDIS_DB" mapstructure:"db"`
}

// Enabled 未配置 host 时不启用缓存
func (r Redis) Enabled() bool {
	return r.Host != ""
}

type JWT struct {
	AccessSecret string `envconfig:"ACCESS_SECRET" mapstructure:"access_secret"`
	AccessExpire int64  `envconfig:"ACCESS_EXPIRE" mapstructure:"access_expire"` // 秒
}

type Log struct {
	FilePath   string `envconfig:"LOG_FILE_PATH" mapstructure:"file_path"`     // 日志文件路径
	Level      string `envconfig:"LOG_LEVEL" mapstructure:"level"`             // 日志级别：debug, info, warn, error
	MaxSize    int    `envconfig:"LOG_MAX_SIZE" mapstructure:"max_size"`       // 日志文件最大大小（MB）
	MaxBackups int    `envconfig:"LOG_MAX_BACKUPS" mapstructure:"max_backups"` // 保留的旧日志文件数
	MaxAge     int    `envconfig:"LOG_MAX_AGE" mapstructure:"max_age"`         // 日志文件保留天数
	Compress   bool   `envconfig:"LOG_COMPRESS" mapstructure:"compress"`       // 是否压缩旧日志文件
}

type Sentry struct {
	Dsn         string        `envconfig:"SENTRY_DSN" mapstructure:"dsn"`
	Environment string        `envconfig:"SENTRY_ENVIRONMENT" mapstructure:"environment"`
	SampleRate  float64       `envconfig:"SENTRY_SAMPLE_RATE" mapstructure:"sample_rate"`
	Tracing     SentryTracing `mapstructure:"tracing"`
}

type SentryTracing struct {
	DBSlowThresholdMs    int  `envconfig:"SENTRY_DB_SLOW_MS" mapstructure:"db_slow_threshold_ms"`
	RedisSlowThresholdMs int  `envconfig:"SENTRY_REDIS_SLOW_MS" mapstructure:"redis_slow_threshold_ms"`
	TraceHTTPCalls       bool `envconfig:"SENTRY_TRACE_HTTP" mapstructure:"trace_http_calls"`
}

type OTel struct {
	Enable      bool   `envconfig:"OTEL_ENABLE" mapstructure:"enable"`
	ServiceName string `envconfig:"OTEL_SERVICE_NAME" mapstructure:"service_name"`
	AgentHost   string `envconfig:"OTEL_AGENT_HOST" mapstructure:"agent_host"`
	AgentPort   string `envconfig:"OTEL_AGENT_PORT" mapstructure:"agent_port"`
}

type S3 struct {
	Endpoint        string `envconfig:"S3_ENDPOINT" mapstructure:"endpoint"`
	BaseURL         string `envconfig:"S3_BASE_URL" mapstructure:"base_url"`
	Bucket          string `envconfig:"S3_BUCKET" mapstructure:"bucket"`
	Region          string `envconfig:"S3_REGION" mapstructure:"region"`
	AccessKey       string `envconfig:"S3_ACCESS_KEY" mapstructure:"access_key"`
	SecretAccessKey string `envconfig:"S3_SECRET_KEY" mapstructure:"secret_key"`
	Prefix          string `envconfig:"S3_PREFIX" mapstructure:"prefix"`
	UsePathStyle    bool   `envconfig:"S3_PATH_STYLE" mapstructure:"path_style"`
	LocalDir        string `envconfig:"EXPORT_DIR" mapstructure:"local_dir"` // 未配置 bucket 时导出文件落盘目录
}

type Webhook struct {
	URL     string `envconfig:"WEBHOOK_URL" mapstructure:"url"`
	Timeout int    `envconfig:"WEBHOOK_TIMEOUT" mapstructure:"timeout"` // 秒
}

type EmployeeCountPolicy string

const (
	// EmployeeCountActual 使用员工表真实人数
	EmployeeCountActual EmployeeCountPolicy = "actual"
	// EmployeeCountEstimate 按 max(floor(任务数/5), 1) 估算
	EmployeeCountEstimate EmployeeCountPolicy = "estimate"
)

type Stats struct {
	EmployeeCount EmployeeCountPolicy `envconfig:"STATS_EMPLOYEE_COUNT" mapstructure:"employee_count"`
	CacheTTL      int                 `envconfig:"STATS_CACHE_TTL" mapstructure:"cache_ttl"` // 秒，0 表示不缓存
	TrendMonths   int                 `envconfig:"STATS_TREND_MONTHS" mapstructure:"trend_months"`
}

type WorkEntry struct {
	// Rates 覆盖默认单价表，键为小写工种
	Rates        map[string]float64 `mapstructure:"rates"`
	StrictStatus bool               `envconfig:"WORK_ENTRY_STRICT_STATUS" mapstructure:"strict_status"`
}
