package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExpiry(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{"7d", 7 * 24 * time.Hour, false},
		{"1d", 24 * time.Hour, false},
		{"90m", 90 * time.Minute, false},
		{"0d", 0, true},
		{"-1h", 0, true},
		{"week", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseExpiry(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNewConfig_RequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := NewConfig()
	assert.Error(t, err)
}

func TestNewConfig_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_PASSWORD", "pw")

	cfg, err := NewConfig()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.GetPort())
	assert.Equal(t, "http://localhost:3001", cfg.GetFrontendURL())
	assert.Equal(t, 7*24*time.Hour, cfg.GetJWTExpiry())
	assert.Equal(t, 12, cfg.BcryptCost)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, "postgres://admin:pw@postgres:5432/education_platform?sslmode=disable", cfg.DatabaseDSN())
}

func TestNewConfig_Production(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("NODE_ENV", "production")
	t.Setenv("JWT_EXPIRES_IN", "12h")

	cfg, err := NewConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
	assert.Equal(t, 12*time.Hour, cfg.GetJWTExpiry())
}
