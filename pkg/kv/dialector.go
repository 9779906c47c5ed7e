package kv

import (
	"fmt"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/driver/sqlserver"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/shashiranjanraj/freshko/config"
)

// Connect opens the configured database and tunes the connection pool.
// Returns the handle plus the schema version the engine should enforce.
func Connect() (*gorm.DB, int, error) {
	driver := config.DatabaseDriver()
	dsn := config.DatabaseDSN()

	dialector, err := buildDialector(driver, dsn)
	if err != nil {
		return nil, 0, fmt.Errorf("kv: build dialector: %w", err)
	}

	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent), // pkg/logger owns log output
	}

	db, err := gorm.Open(dialector, gormCfg)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: open: %v", ErrEngineUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, 0, fmt.Errorf("%w: get sql.DB: %v", ErrEngineUnavailable, err)
	}
	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)
	sqlDB.SetConnMaxIdleTime(2 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, 0, fmt.Errorf("%w: ping: %v", ErrEngineUnavailable, err)
	}

	return db, config.DatabaseVersion(), nil
}

func buildDialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "sqlite":
		return sqlite.Open(dsn), nil
	case "postgres":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlserver":
		return sqlserver.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (supported: sqlite, postgres, mysql, sqlserver)", driver)
	}
}
