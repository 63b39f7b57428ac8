package database

import (
	"context"
	"fmt"
	"time"

	"clinic-scheduling-api/config"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	maxIdleConns    = 10
	maxOpenConns    = 100
	connMaxLifetime = 30 * time.Minute
	slowQuery       = 200 * time.Millisecond
)

// DSN builds the libpq connection string. The session time zone is the
// clinic's zone so appointment dates round-trip as wall-clock times.
func DSN(cfg config.DBConfig) string {
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		cfg.Host, cfg.User, cfg.Password, cfg.Name, cfg.Port, cfg.Location().String(),
	)
}

// NewPostgresConnection opens the pool and pings it within ctx. SQL logging
// goes through the application logger; statements are traced at debug level.
func NewPostgresConnection(ctx context.Context, cfg config.DBConfig, log *logrus.Logger) (*gorm.DB, error) {
	logLevel := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		logLevel = logger.Info
	}
	gormLogger := logger.New(log, logger.Config{
		SlowThreshold:             slowQuery,
		LogLevel:                  logLevel,
		IgnoreRecordNotFoundError: true,
	})

	db, err := gorm.Open(postgres.Open(DSN(cfg)), &gorm.Config{
		Logger:  gormLogger,
		NowFunc: func() time.Time { return time.Now().In(cfg.Location()) },
	})
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	if err := sqlDB.PingContext(ctx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}

	log.WithFields(logrus.Fields{
		"host":     cfg.Host,
		"database": cfg.Name,
		"timezone": cfg.Location().String(),
	}).Info("Connected to PostgreSQL")
	return db, nil
}
