package database

import (
	"fmt"

	"facility-work-tracker/config"
	"facility-work-tracker/internal/global/sentry/tracing"
	"facility-work-tracker/internal/model"
	"facility-work-tracker/tools"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var DB *gorm.DB

// Models 参与自动迁移的模型
var Models = []any{
	&model.User{},
	&model.College{},
	&model.WorkEntry{},
	&model.Employee{},
	&model.AttendanceRecord{},
	&model.CleanupRun{},
}

func Init() {
	db, err := Open(config.Get())
	tools.PanicOnErr(err)
	DB = db

	if config.Get().Database.AutoMigrate {
		tools.PanicOnErr(Migrate(DB))
	}
}

// Dialector 按配置的驱动构造 DSN
func Dialector(c config.Database, location string) gorm.Dialector {
	switch c.Driver {
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=%s",
			c.Host, c.Port, c.Username, c.Password, c.DBName, c.SSLMode, location)
		return postgres.Open(dsn)
	default:
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			c.Username, c.Password, c.Host, c.Port, c.DBName)
		return mysql.Open(dsn)
	}
}

func Open(cfg *config.Config) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		NamingStrategy: schema.NamingStrategy{SingularTable: true},
		// 学院被删除后工单仍保留，由数据清理发现孤立记录
		DisableForeignKeyConstraintWhenMigrating: true,
	}
	switch cfg.Mode {
	case config.ModeDebug:
		gormConfig.Logger = logger.Default.LogMode(logger.Info)
	case config.ModeRelease:
		gormConfig.Logger = logger.Default.LogMode(logger.Silent)
	}

	location := cfg.Location
	if location == "" || location == "Local" {
		location = "UTC"
	}
	db, err := gorm.Open(Dialector(cfg.Database, location), gormConfig)
	if err != nil {
		return nil, fmt.Errorf("连接数据库失败: %w", err)
	}
	if cfg.Sentry.Dsn != "" {
		if err := db.Use(tracing.NewGormPlugin(cfg)); err != nil {
			return nil, fmt.Errorf("注册 sentry 插件失败: %w", err)
		}
	}
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models...)
}
