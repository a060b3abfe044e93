package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("loads default values when env vars not set", func(t *testing.T) {
		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "recent-api", cfg.App.Name)
		assert.Equal(t, "development", cfg.App.Env)
		assert.Equal(t, "8080", cfg.App.Port)
		assert.Equal(t, "localhost", cfg.Database.Host)
		assert.Equal(t, 5432, cfg.Database.Port)
		assert.Equal(t, "shop", cfg.Database.DBName)
		assert.Equal(t, 25, cfg.Database.MaxOpenConns)
		assert.Equal(t, 5, cfg.Database.MaxIdleConns)
		assert.Equal(t, "refuse", cfg.Catalog.DeletePolicy)
		assert.Equal(t, 0, cfg.Catalog.MaxDepth)
		assert.Equal(t, 200, cfg.Catalog.SubtreeBatchSize)
		assert.Equal(t, 10*time.Minute, cfg.Catalog.TreeCacheTTL)
		assert.Equal(t, int64(5<<20), cfg.Storage.MaxUploadSize)
		assert.False(t, cfg.Redis.Enabled)
		assert.False(t, cfg.Telemetry.Enabled)
		assert.Equal(t, "recent-api", cfg.Telemetry.ServiceName)
		assert.Equal(t, 1.0, cfg.Telemetry.SamplingRatio)
		assert.False(t, cfg.HTTP.SwaggerEnabled)
	})

	t.Run("loads values from environment variables with SHOP prefix", func(t *testing.T) {
		t.Setenv("SHOP_APP_NAME", "test-app")
		t.Setenv("SHOP_APP_PORT", "9000")
		t.Setenv("SHOP_DATABASE_HOST", "testdb.local")
		t.Setenv("SHOP_DATABASE_PORT", "5433")
		t.Setenv("SHOP_DATABASE_MAX_OPEN_CONNS", "50")
		t.Setenv("SHOP_DATABASE_MAX_IDLE_CONNS", "10")
		t.Setenv("SHOP_CATALOG_DELETE_POLICY", "cascade")
		t.Setenv("SHOP_CATALOG_MAX_DEPTH", "6")
		t.Setenv("SHOP_REDIS_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.Equal(t, "test-app", cfg.App.Name)
		assert.Equal(t, "9000", cfg.App.Port)
		assert.Equal(t, "testdb.local", cfg.Database.Host)
		assert.Equal(t, 5433, cfg.Database.Port)
		assert.Equal(t, 50, cfg.Database.MaxOpenConns)
		assert.Equal(t, 10, cfg.Database.MaxIdleConns)
		assert.Equal(t, "cascade", cfg.Catalog.DeletePolicy)
		assert.Equal(t, 6, cfg.Catalog.MaxDepth)
		assert.True(t, cfg.Redis.Enabled)
	})

	t.Run("validates MaxIdleConns cannot exceed MaxOpenConns", func(t *testing.T) {
		t.Setenv("SHOP_DATABASE_MAX_OPEN_CONNS", "10")
		t.Setenv("SHOP_DATABASE_MAX_IDLE_CONNS", "20")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot exceed")
	})

	t.Run("rejects unknown delete policy", func(t *testing.T) {
		t.Setenv("SHOP_CATALOG_DELETE_POLICY", "orphan")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "catalog.delete_policy")
	})

	t.Run("rejects negative max depth", func(t *testing.T) {
		t.Setenv("SHOP_CATALOG_MAX_DEPTH", "-1")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "max_depth")
	})

	t.Run("loads telemetry settings", func(t *testing.T) {
		t.Setenv("SHOP_TELEMETRY_ENABLED", "true")
		t.Setenv("SHOP_TELEMETRY_COLLECTOR_ENDPOINT", "otel-collector:4317")
		t.Setenv("SHOP_TELEMETRY_SAMPLING_RATIO", "0.25")
		t.Setenv("SHOP_TELEMETRY_DB_TRACING", "true")
		t.Setenv("SHOP_HTTP_SWAGGER_ENABLED", "true")

		cfg, err := Load()
		require.NoError(t, err)

		assert.True(t, cfg.Telemetry.Enabled)
		assert.Equal(t, "otel-collector:4317", cfg.Telemetry.CollectorEndpoint)
		assert.Equal(t, 0.25, cfg.Telemetry.SamplingRatio)
		assert.True(t, cfg.Telemetry.DBTracing)
		assert.True(t, cfg.HTTP.SwaggerEnabled)
	})

	t.Run("rejects sampling ratio above one", func(t *testing.T) {
		t.Setenv("SHOP_TELEMETRY_SAMPLING_RATIO", "1.5")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "telemetry.sampling_ratio")
	})

	t.Run("storage requires credentials when enabled", func(t *testing.T) {
		t.Setenv("SHOP_STORAGE_ENABLED", "true")

		_, err := Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "storage.access_key")
	})
}

func TestLoad_ProductionValidation(t *testing.T) {
	base := func(v *viper.Viper) {
		v.Set("app.env", "production")
		v.Set("jwt.secret", "this-is-a-very-secure-jwt-secret-key-32chars")
		v.Set("database.password", "secure-password")
		v.Set("database.sslmode", "require")
	}

	t.Run("valid production config", func(t *testing.T) {
		v := viper.New()
		base(v)
		cfg, err := fromViper(v)
		require.NoError(t, err)
		assert.True(t, cfg.IsProduction())
	})

	tests := []struct {
		name    string
		mutate  func(v *viper.Viper)
		wantErr string
	}{
		{"requires jwt.secret", func(v *viper.Viper) { v.Set("jwt.secret", "") }, "jwt.secret is required"},
		{"requires long jwt.secret", func(v *viper.Viper) { v.Set("jwt.secret", "short") }, "at least 32 characters"},
		{"requires database.password", func(v *viper.Viper) { v.Set("database.password", "") }, "database.password is required"},
		{"rejects sslmode disable", func(v *viper.Viper) { v.Set("database.sslmode", "disable") }, "sslmode"},
		{"rejects wildcard CORS", func(v *viper.Viper) { v.Set("http.cors_allow_origins", []string{"*"}) }, "cors_allow_origins"},
		{"rejects swagger", func(v *viper.Viper) { v.Set("http.swagger_enabled", true) }, "swagger_enabled"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			base(v)
			tt.mutate(v)
			_, err := fromViper(v)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "db",
		Port:     5432,
		User:     "shop",
		Password: "p@ss word",
		DBName:   "shop",
		SSLMode:  "disable",
	}
	assert.Equal(t, "postgres://shop:p%40ss%20word@db:5432/shop?sslmode=disable", d.DSN())
}

func TestRedisConfig_Addr(t *testing.T) {
	assert.Equal(t, "cache:6380", RedisConfig{Host: "cache", Port: 6380}.Addr())
}
