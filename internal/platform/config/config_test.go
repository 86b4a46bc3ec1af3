// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/catalogo-jogos/internal/platform/config"
)

// missingDotenv points at a file that never exists so tests only see t.Setenv values.
func missingDotenv(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

/*
TestLoad_Defaults verifies defaults when only the bare minimum is set.
*/
func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.LoadFile(missingDotenv(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, config.DriverMemory, cfg.StoreDriver)
	assert.Equal(t, "./data/migrations", cfg.MigrationPath)
	assert.Equal(t, "jogos", cfg.RedisKeyPrefix)
	assert.True(t, cfg.MetricsEnabled)
	assert.True(t, cfg.IsDevelopment())
}

/*
TestLoad_DriverRequirements checks driver-dependent required settings.
*/
func TestLoad_DriverRequirements(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr bool
	}{
		{"postgres_without_url", map[string]string{"STORE_DRIVER": "postgres", "DATABASE_URL": ""}, true},
		{"postgres_with_url", map[string]string{"STORE_DRIVER": "Postgres", "DATABASE_URL": "postgres://u:p@localhost/db"}, false},
		{"redis_without_url", map[string]string{"STORE_DRIVER": "redis", "REDIS_URL": ""}, true},
		{"redis_with_url", map[string]string{"STORE_DRIVER": "redis", "REDIS_URL": "redis://localhost:6379/0"}, false},
		{"unknown_driver", map[string]string{"STORE_DRIVER": "mongo"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for key, value := range tt.env {
				t.Setenv(key, value)
			}

			_, err := config.LoadFile(missingDotenv(t))
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

/*
TestLoad_CORSOrigins verifies comma-separated list parsing.
*/
func TestLoad_CORSOrigins(t *testing.T) {
	t.Setenv("CORS_ORIGINS", "https://a.example,https://b.example")

	cfg, err := config.LoadFile(missingDotenv(t))
	require.NoError(t, err)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

/*
TestLoadFile_Dotenv verifies that values from a .env file are applied.
*/
func TestLoadFile_Dotenv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_KEY_PREFIX=from-dotenv\n"), 0o600))

	// godotenv writes into the process environment; undo it afterwards.
	t.Cleanup(func() { os.Unsetenv("REDIS_KEY_PREFIX") })

	cfg, err := config.LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.RedisKeyPrefix)
}
