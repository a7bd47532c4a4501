package data

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DSNEnv names the environment variable holding the MySQL DSN.
const DSNEnv = "MYSQL_DSN"

var errNoDSN = errors.New("data: " + DSNEnv + " is not set")

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 30 * time.Minute
)

// DSNFromEnv reads the MySQL DSN from DSNEnv.
func DSNFromEnv() (string, error) {
	dsn := strings.TrimSpace(os.Getenv(DSNEnv))
	if dsn == "" {
		return "", errNoDSN
	}
	return dsn, nil
}

// ConnectMySQL opens a gorm DB with sane defaults. gorm warnings and slow
// queries are routed through log.
func ConnectMySQL(dsn string, log *zap.Logger) (*gorm.DB, error) {
	dsn = ensureParam(dsn, "parseTime", "true")
	if !strings.Contains(dsn, "charset=") {
		dsn = ensureParam(dsn, "charset", "utf8mb4")
		dsn = ensureParam(dsn, "collation", "utf8mb4_unicode_ci")
	}

	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{Logger: NewGormLogger(log)})
	if err != nil {
		return nil, fmt.Errorf("data: open mysql: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("data: sql handle: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	return db, nil
}

// NewGormLogger adapts a zap logger to gorm's logger interface.
func NewGormLogger(log *zap.Logger) logger.Interface {
	if log == nil {
		log = zap.NewNop()
	}
	return logger.New(
		zap.NewStdLog(log.Named("gorm")),
		logger.Config{SlowThreshold: time.Second, LogLevel: logger.Warn, IgnoreRecordNotFoundError: true, Colorful: false},
	)
}

func ensureParam(dsn, key, val string) string {
	if strings.Contains(dsn, key+"=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + key + "=" + val
}
