package database

import (
	"context"
	"fmt"

	"hotel_manager/config"
	"hotel_manager/model"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func ConnectDB(settings config.Settings, l logrus.FieldLogger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(settings.DSN()), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	l.WithField("host", settings.DBHost).Info("Connection Opened to Database")

	if err := db.AutoMigrate(
		&model.Hotel{},
		&model.Room{},
		&model.Booking{},
		&model.Order{},
		&model.Promotion{},
	); err != nil {
		return nil, fmt.Errorf("migrate database: %w", err)
	}
	l.Info("Database Migrated")
	return db, nil
}

// ConnectRedis returns nil when no address is configured.
func ConnectRedis(ctx context.Context, settings config.Settings, l logrus.FieldLogger) (*redis.Client, error) {
	if settings.RedisAddr == "" {
		return nil, nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: settings.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("connect redis %s: %w", settings.RedisAddr, err)
	}
	l.WithField("addr", settings.RedisAddr).Info("Connection Opened to Redis")
	return rdb, nil
}
