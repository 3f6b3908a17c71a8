package configs

import (
	"fmt"
	"strings"
	"time"

	"tapr/entity"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ConnectionDB opens the pool for cfg.DBDriver. The returned handle is
// shared by every request; nothing else keeps a package-level copy.
func ConnectionDB(cfg *Config, log *logrus.Logger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DBSource)
	default:
		dialector = sqlite.Open(SQLiteDSN(cfg.DBSource))
	}
	return Open(dialector, log)
}

// Open is ConnectionDB for an already built dialector (tests use it with
// in-memory sqlite and sqlmock).
func Open(dialector gorm.Dialector, log *logrus.Logger) (*gorm.DB, error) {
	gormLog := logger.Discard
	if log != nil {
		gormLog = logger.New(log, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		})
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLog,
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}
	return db, nil
}

// SQLiteDSN turns on foreign keys so venue deletes cascade.
func SQLiteDSN(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}

func SetupDatabase(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.Venue{},
		&entity.MenuItem{},
		&entity.MenuCategory{},
		&entity.Staff{},
		&entity.Tip{},
		&entity.Visit{},
		&entity.DailyStat{},
	)
}
