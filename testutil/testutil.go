// Package testutil builds throwaway databases and fixtures for tests.
package testutil

import (
	"fmt"
	"io"
	"testing"
	"time"

	"tapr/configs"
	"tapr/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config returns a development config with a cheap bcrypt cost.
func Config() *configs.Config {
	return &configs.Config{
		Env:           "test",
		Port:          "0",
		DBDriver:      "sqlite",
		LogLevel:      "error",
		JWTSecret:     "test-secret-test-secret-test-secret",
		JWTTTL:        7 * 24 * time.Hour,
		BcryptCost:    bcrypt.MinCost,
		CookieName:    "tapr_token",
		CORSOrigins:   []string{"http://localhost:3000"},
		TipCurrency:   "USD",
		AuthRateLimit: 1000,
		AuthRateBurst: 1000,
	}
}

func Logger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// NewDB opens a private in-memory sqlite database with the schema applied.
func NewDB(t testing.TB) *gorm.DB {
	t.Helper()
	dsn := configs.SQLiteDSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	db, err := configs.Open(sqlite.Open(dsn), nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// SeedDemo loads the demo venue "copper-head-beer-workshop" (id v1) with
// staff s1..s3 and eight available menu items.
func SeedDemo(t testing.TB, db *gorm.DB) {
	t.Helper()
	require.NoError(t, configs.SeedDemo(db, Config(), Logger()))
}

func CreateUser(t testing.TB, db *gorm.DB, email, password, role string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{Email: email, Name: "Test User", Password: string(hash), Role: role}
	require.NoError(t, db.Create(u).Error)
	return u
}

func CreateVenue(t testing.TB, db *gorm.DB, v entity.Venue) *entity.Venue {
	t.Helper()
	if v.Name == "" {
		v.Name = v.Slug
	}
	require.NoError(t, db.Create(&v).Error)
	return &v
}

func CreateMenuItem(t testing.TB, db *gorm.DB, item entity.MenuItem) *entity.MenuItem {
	t.Helper()
	require.NoError(t, db.Create(&item).Error)
	return &item
}

func CreateStaff(t testing.TB, db *gorm.DB, s entity.Staff) *entity.Staff {
	t.Helper()
	require.NoError(t, db.Create(&s).Error)
	return &s
}
