// Package testdb opens migrated in-memory sqlite databases for tests.
package testdb

import (
	"fmt"
	"testing"
	"time"

	"github.com/Himanshu790310/biryaniclub7/configs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// New returns a private, migrated database that lives until the test ends.
// A single connection serialises transactions the way row locks would in production.
func New(t testing.TB, now func() time.Time) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", uuid.NewString())
	db, err := configs.Open("sqlite", dsn, now, nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, configs.SetupDatabase(db))
	return db
}

// FixedClock always returns at.
func FixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}
