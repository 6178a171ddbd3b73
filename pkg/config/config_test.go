package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "vodomont_site", cfg.Database.Database)
	assert.Equal(t, "disable", cfg.Database.SSLMode)
	assert.Equal(t, "gallery/", cfg.Storage.GalleryPrefix)
	assert.False(t, cfg.OTEL.Enabled)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("REDIS_DB", "3")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	assert.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 3, cfg.Redis.DB)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestDatabaseDSN(t *testing.T) {
	cfg := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "secret",
		Database: "vodomont_site",
		SSLMode:  "disable",
	}

	dsn := cfg.DatabaseDSN()
	assert.Equal(t, "host=localhost port=5432 user=postgres password=secret dbname=vodomont_site sslmode=disable", dsn)
}

func TestStoragePublicURL(t *testing.T) {
	cfg := StorageConfig{
		Region: "eu-central-1",
		Bucket: "vodomont-gallery",
	}
	assert.Equal(t,
		"https://vodomont-gallery.s3.eu-central-1.amazonaws.com/gallery/123.jpg",
		cfg.PublicURL("gallery/123.jpg"),
	)

	cfg.PublicBaseURL = "https://cdn.vodomont.rs"
	assert.Equal(t, "https://cdn.vodomont.rs/gallery/123.jpg", cfg.PublicURL("gallery/123.jpg"))
}
