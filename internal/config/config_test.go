package config

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"invoice-bookkeeping-backend/internal/storage"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "ALLOWED_ORIGINS", "STORAGE_DRIVER", "STORAGE_KEY", "DATABASE_URL", "SQLITE_PATH", "LOG_LEVEL"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "invoices", cfg.StorageKey)
	assert.Equal(t, ":8080", cfg.Addr())
}

func TestLoad_FromEnv(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ALLOWED_ORIGINS", "http://a.test,http://b.test")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("STORAGE_KEY", "my-invoices")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.AllowedOrigins)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "my-invoices", cfg.StorageKey)
}

func TestLoad_PostgresNeedsURL(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")

	_, err := Load()
	assert.ErrorContains(t, err, "DATABASE_URL")
}

func TestLoad_UnknownDriver(t *testing.T) {
	t.Setenv("STORAGE_DRIVER", "localstorage")

	_, err := Load()
	assert.Error(t, err)
}

func TestInitStorage_SQLite(t *testing.T) {
	cfg := &Config{StorageDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "test.db")}

	kv, err := InitStorage(cfg, zerolog.Nop())
	require.NoError(t, err)
	defer kv.Close()

	ctx := context.Background()
	require.NoError(t, kv.Set(ctx, "invoices", []byte("[]")))
	got, err := kv.Get(ctx, "invoices")
	require.NoError(t, err)
	assert.Equal(t, "[]", string(got))
}

func TestInitStorage_Memory(t *testing.T) {
	kv, err := InitStorage(&Config{StorageDriver: DriverMemory}, zerolog.Nop())
	require.NoError(t, err)
	assert.IsType(t, &storage.MemoryStore{}, kv)
}

func TestInitDB_RejectsNonSQLDriver(t *testing.T) {
	_, err := InitDB(&Config{StorageDriver: DriverRedis}, zerolog.Nop())
	assert.Error(t, err)
}

func TestInitDB_LogsThroughZerolog(t *testing.T) {
	var buf bytes.Buffer
	cfg := &Config{StorageDriver: DriverSQLite, SQLitePath: filepath.Join(t.TempDir(), "log.db")}

	db, err := InitDB(cfg, zerolog.New(&buf))
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Error(t, db.Exec("SELECT * FROM no_such_table").Error)
	assert.Contains(t, buf.String(), `"component":"gorm"`)
	assert.Contains(t, buf.String(), "no_such_table")
}
