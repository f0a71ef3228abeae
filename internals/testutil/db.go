// Package testutil menyiapkan database sqlite in-memory untuk test service & controller.
package testutil

import (
	"fmt"
	"os"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenDB membuka database sqlite in-memory (shared cache, satu koneksi) lalu AutoMigrate model.
// Satu koneksi membuat transaksi konkuren antre; row lock (FOR UPDATE) tidak teruji di sini, pakai OpenPostgres.
func OpenDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	name := strings.ReplaceAll(t.Name(), "/", "_")
	dsn := fmt.Sprintf("file:%s_%s?mode=memory&cache=shared&_foreign_keys=on", name, uuid.NewString()[:8])

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(models...))
	return db
}

// OpenPostgres dipakai test konkurensi bila PKBM_TEST_PG_DSN diset; selain itu test di-skip.
func OpenPostgres(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	dsn := os.Getenv("PKBM_TEST_PG_DSN")
	if dsn == "" {
		t.Skip("PKBM_TEST_PG_DSN tidak diset")
	}
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	require.NoError(t, db.Migrator().DropTable(models...))
	require.NoError(t, db.AutoMigrate(models...))
	t.Cleanup(func() {
		_ = db.Migrator().DropTable(models...)
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}
