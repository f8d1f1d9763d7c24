// File: internal/config/config_test.go
package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"ENV", "SERVER_PORT", "DB_BACKEND", "SQLITE_PATH", "DISPLAY_TIMEZONE"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg := Load()
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, BackendSQLite, cfg.DBBackend)
	assert.Equal(t, "data/chatvault.sqlite", cfg.SQLitePath)
	assert.Equal(t, "Europe/Kyiv", cfg.DisplayTimezone)
}

func TestLoad_BackendIsLowercased(t *testing.T) {
	t.Setenv("DB_BACKEND", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://localhost/archive")

	cfg := Load()
	assert.Equal(t, BackendPostgres, cfg.DBBackend)
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"sqlite with path", Config{DBBackend: BackendSQLite, SQLitePath: "x.sqlite"}, true},
		{"sqlite without path", Config{DBBackend: BackendSQLite}, false},
		{"postgres with url", Config{DBBackend: BackendPostgres, DatabaseURL: "postgres://x"}, true},
		{"postgres without url", Config{DBBackend: BackendPostgres}, false},
		{"unknown backend", Config{DBBackend: "oracle"}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				require.NoError(t, err)
			} else {
				require.Error(t, err)
			}
		})
	}
}
