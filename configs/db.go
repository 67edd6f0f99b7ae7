package configs

import (
	"fmt"
	"time"

	"github.com/Himanshu790310/biryaniclub7/entity"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the database named by cfg.
func ConnectionDB(cfg *Config, now func() time.Time, log *logrus.Logger) (*gorm.DB, error) {
	return Open(cfg.DBDriver, cfg.DBSource, now, log)
}

// Open returns a gorm handle whose timestamps come from now.
// Unique violations are reported as gorm.ErrDuplicatedKey.
func Open(driver, source string, now func() time.Time, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch driver {
	case "sqlite", "":
		dialector = sqlite.Open(source)
	case "postgres":
		dialector = postgres.Open(source)
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", driver)
	}

	gcfg := &gorm.Config{
		TranslateError: true,
		NowFunc:        now,
		Logger:         logger.Default.LogMode(logger.Silent),
	}
	if log != nil {
		gcfg.Logger = logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel(log.GetLevel()),
			IgnoreRecordNotFoundError: true,
		})
	}

	database, err := gorm.Open(dialector, gcfg)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return database, nil
}

func gormLevel(l logrus.Level) logger.LogLevel {
	switch {
	case l >= logrus.DebugLevel:
		return logger.Info
	case l >= logrus.WarnLevel:
		return logger.Warn
	default:
		return logger.Error
	}
}

func SetupDatabase(db *gorm.DB) error {
	// Migrate the schema
	return db.AutoMigrate(
		&entity.User{},
		&entity.MenuItem{},
		&entity.CartItem{},
		&entity.Order{}, &entity.OrderItem{},
		&entity.Promotion{},
		&entity.StoreSetting{},
		&entity.LoyaltyTransaction{},
	)
}
