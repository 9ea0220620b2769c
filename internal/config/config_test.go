package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, loaded, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.False(t, loaded)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "mongo", cfg.StorageDriver)
	assert.Equal(t, 720*time.Hour, cfg.JWTExpire)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORSOrigins)
	assert.False(t, cfg.IsProduction())
	assert.Empty(t, cfg.AdminEmail)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_ENV", "production")
	t.Setenv("API_PORT", "9000")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("JWT_EXPIRE", "2h")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("BCRYPT_COST", "4")

	cfg, _, err := Load("testdata/does-not-exist.env")
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "memory", cfg.StorageDriver)
	assert.Equal(t, 2*time.Hour, cfg.JWTExpire)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORSOrigins)
	assert.Equal(t, 4, cfg.BcryptCost)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"missing secret", map[string]string{"JWT_SECRET": ""}},
		{"bad expiry", map[string]string{"JWT_SECRET": "x", "JWT_EXPIRE": "soon"}},
		{"negative expiry", map[string]string{"JWT_SECRET": "x", "JWT_EXPIRE": "-1h"}},
		{"unknown driver", map[string]string{"JWT_SECRET": "x", "STORAGE_DRIVER": "postgres"}},
		{"no origins", map[string]string{"JWT_SECRET": "x", "CORS_ORIGINS": " , "}},
		{"bcrypt cost", map[string]string{"JWT_SECRET": "x", "BCRYPT_COST": "99"}},
		{"admin without password", map[string]string{"JWT_SECRET": "x", "ADMIN_EMAIL": "admin@clinic.test"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, _, err := Load("testdata/does-not-exist.env")
			assert.Error(t, err)
		})
	}
}
