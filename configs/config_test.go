package configs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " https://a.test, ,https://b.test ")
	t.Setenv("JWT_TTL", "12")
	t.Setenv("TRACING_ENABLED", "yes-please")
	t.Setenv("TIMEZONE", "Nowhere/Special")

	cfg := LoadConfig()
	assert.Equal(t, []string{"https://a.test", "https://b.test"}, cfg.CORSOrigins)
	assert.Equal(t, 12*time.Hour, cfg.JWTTTL)
	assert.False(t, cfg.TracingEnabled)
	assert.Equal(t, time.UTC, cfg.Location())
}

func TestGetListFallsBackWhenBlank(t *testing.T) {
	t.Setenv("CORS_ORIGINS", " , ")
	assert.Equal(t, []string{"*"}, getList("CORS_ORIGINS", []string{"*"}))
}

func TestConnectionDB(t *testing.T) {
	at := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	db, err := ConnectionDB(&Config{DBDriver: "sqlite", DBSource: ":memory:"}, func() time.Time { return at }, nil)
	require.NoError(t, err)
	assert.Equal(t, at, db.NowFunc())
	require.NoError(t, SetupDatabase(db))

	_, err = ConnectionDB(&Config{DBDriver: "mysql"}, time.Now, nil)
	assert.ErrorContains(t, err, `unsupported DB_DRIVER "mysql"`)
}
