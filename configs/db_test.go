package configs

import (
	"fmt"
	"io"
	"testing"

	"tapr/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestSQLiteDSN(t *testing.T) {
	assert.Equal(t, "tapr.db?_foreign_keys=on", SQLiteDSN("tapr.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", SQLiteDSN("file:x?mode=memory"))
	assert.Equal(t, "tapr.db?_foreign_keys=off", SQLiteDSN("tapr.db?_foreign_keys=off"))
}

func memoryDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := SQLiteDSN(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
	db, err := Open(sqlite.Open(dsn), nil)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, SetupDatabase(db))
	return db
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

func TestSeedAdmin(t *testing.T) {
	db := memoryDB(t)
	cfg := validConfig()
	cfg.BcryptCost = bcrypt.MinCost

	// skipped without credentials
	require.NoError(t, SeedAdmin(db, cfg, quietLogger()))
	var n int64
	require.NoError(t, db.Model(&entity.User{}).Count(&n).Error)
	assert.Zero(t, n)

	cfg.AdminEmail = "admin@tapr.app"
	cfg.AdminPassword = "s3cret-admin"
	require.NoError(t, SeedAdmin(db, cfg, quietLogger()))
	require.NoError(t, SeedAdmin(db, cfg, quietLogger()))

	var admins []entity.User
	require.NoError(t, db.Find(&admins).Error)
	require.Len(t, admins, 1)
	assert.Equal(t, entity.RoleAdmin, admins[0].Role)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(admins[0].Password), []byte("s3cret-admin")))
}

func TestSeedDemo_Idempotent(t *testing.T) {
	db := memoryDB(t)
	cfg := validConfig()
	cfg.BcryptCost = bcrypt.MinCost

	require.NoError(t, SeedDemo(db, cfg, quietLogger()))
	require.NoError(t, SeedDemo(db, cfg, quietLogger()))

	var venues, items, categories, staff int64
	require.NoError(t, db.Model(&entity.Venue{}).Count(&venues).Error)
	require.NoError(t, db.Model(&entity.MenuItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&entity.MenuCategory{}).Count(&categories).Error)
	require.NoError(t, db.Model(&entity.Staff{}).Count(&staff).Error)
	assert.Equal(t, int64(1), venues)
	assert.Equal(t, int64(8), items)
	assert.Equal(t, int64(5), categories)
	assert.Equal(t, int64(3), staff)

	var v entity.Venue
	require.NoError(t, db.First(&v, "id = ?", "v1").Error)
	assert.Equal(t, []string{"Bar", "Brewery", "Gastropub"}, v.Categories)
}

func TestVenueDeleteCascades(t *testing.T) {
	db := memoryDB(t)
	cfg := validConfig()
	cfg.BcryptCost = bcrypt.MinCost
	require.NoError(t, SeedDemo(db, cfg, quietLogger()))

	require.NoError(t, db.Delete(&entity.Venue{}, "id = ?", "v1").Error)

	var items, categories, staff int64
	require.NoError(t, db.Model(&entity.MenuItem{}).Count(&items).Error)
	require.NoError(t, db.Model(&entity.MenuCategory{}).Count(&categories).Error)
	require.NoError(t, db.Model(&entity.Staff{}).Count(&staff).Error)
	assert.Zero(t, items)
	assert.Zero(t, categories)
	assert.Zero(t, staff)
}
