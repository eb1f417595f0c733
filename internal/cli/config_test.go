package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigDefaultsWhenFileMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, "file")
	}
	if cfg.Serve.Addr != ":8470" {
		t.Errorf("Addr = %q, want %q", cfg.Serve.Addr, ":8470")
	}
}

func TestLoadConfigExplicitMissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("LoadConfig() with explicit missing path should fail")
	}
}

func TestLoadConfigParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `
[store]
backend = "redis"

[store.redis]
addr = "localhost:6400"
db = 3
prefix = "drag:"

[serve]
addr = ":9000"
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Store.Backend != "redis" {
		t.Errorf("Backend = %q, want %q", cfg.Store.Backend, "redis")
	}
	if cfg.Store.Redis.Addr != "localhost:6400" {
		t.Errorf("Redis.Addr = %q, want %q", cfg.Store.Redis.Addr, "localhost:6400")
	}
	if cfg.Store.Redis.DB != 3 {
		t.Errorf("Redis.DB = %d, want 3", cfg.Store.Redis.DB)
	}
	if cfg.Serve.Addr != ":9000" {
		t.Errorf("Serve.Addr = %q, want %q", cfg.Serve.Addr, ":9000")
	}
}

func TestLoadConfigPartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[store]\ndir = \"/tmp/offsets\"\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig() error = %v", err)
	}
	if cfg.Store.Backend != "file" {
		t.Errorf("Backend = %q, want default %q", cfg.Store.Backend, "file")
	}
	if cfg.Store.Dir != "/tmp/offsets" {
		t.Errorf("Dir = %q, want %q", cfg.Store.Dir, "/tmp/offsets")
	}
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	t.Run("Memory", func(t *testing.T) {
		st, err := openStore(ctx, StoreConfig{Backend: "memory"})
		if err != nil {
			t.Fatalf("openStore() error = %v", err)
		}
		st.Close()
	})

	t.Run("File", func(t *testing.T) {
		st, err := openStore(ctx, StoreConfig{Backend: "file", Dir: t.TempDir()})
		if err != nil {
			t.Fatalf("openStore() error = %v", err)
		}
		st.Close()
	})

	t.Run("Unknown", func(t *testing.T) {
		if _, err := openStore(ctx, StoreConfig{Backend: "etcd"}); err == nil {
			t.Fatal("openStore() with unknown backend should fail")
		}
	})
}
