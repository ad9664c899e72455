package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsWhenFileMissing(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.Store.Driver != "badger" || c.App.HTTP.Port != 8080 || c.App.Admin.Port != 8081 {
		t.Fatalf("unexpected defaults: %+v", c)
	}
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`
app:
  name: listings
  http:
    port: 9000
store:
  driver: redis
  prefix: "estate:"
redis:
  addr: redis:6379
  db: 2
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("APP_LOG_LEVEL", "debug")

	c, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if c.App.Name != "listings" || c.App.HTTP.Port != 9000 {
		t.Errorf("app section not read: %+v", c.App)
	}
	if c.Store.Driver != "redis" || c.Store.Prefix != "estate:" {
		t.Errorf("store section not read: %+v", c.Store)
	}
	if c.Redis.Addr != "redis:6379" || c.Redis.DB != 2 {
		t.Errorf("redis section not read: %+v", c.Redis)
	}
	if c.Log.Level != "debug" {
		t.Errorf("env override ignored, level=%q", c.Log.Level)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("app: [unterminated"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected an error for malformed yaml")
	}
}
