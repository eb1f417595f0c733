package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/neophoriac/SimpleDraggable/pkg/store"
)

// Config is the on-disk TOML configuration for the CLI.
// All fields are optional; missing values fall back to defaults.
type Config struct {
	Store StoreConfig `toml:"store"`
	Serve ServeConfig `toml:"serve"`
}

// StoreConfig selects and configures the offset store backend.
type StoreConfig struct {
	// Backend is one of "memory", "file", "redis", or "mongo".
	Backend string `toml:"backend"`

	// Dir is the directory for the file backend. Empty uses the
	// default under the user config directory.
	Dir string `toml:"dir"`

	Redis RedisConfig `toml:"redis"`
	Mongo MongoConfig `toml:"mongo"`
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix"`
}

// MongoConfig configures the mongo backend.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// ServeConfig configures the serve command.
type ServeConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the configuration used when no file is present.
func DefaultConfig() Config {
	return Config{
		Store: StoreConfig{Backend: "file"},
		Serve: ServeConfig{Addr: ":8470"},
	}
}

// defaultConfigPath returns the standard config file location
// (~/.config/simpledraggable/config.toml on most systems).
func defaultConfigPath() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("get user config dir: %w", err)
	}
	return filepath.Join(base, "simpledraggable", "config.toml"), nil
}

// LoadConfig reads the TOML configuration at path. An empty path uses the
// default location; a missing file at the default location is not an error
// and yields DefaultConfig.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	explicit := path != ""
	if !explicit {
		p, err := defaultConfigPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		if os.IsNotExist(err) && !explicit {
			return cfg, nil
		}
		return cfg, fmt.Errorf("load config %s: %w", path, err)
	}
	if cfg.Store.Backend == "" {
		cfg.Store.Backend = "file"
	}
	if cfg.Serve.Addr == "" {
		cfg.Serve.Addr = ":8470"
	}
	return cfg, nil
}

// openStore constructs the store backend selected by cfg.
// The caller owns the returned store and must Close it.
func openStore(ctx context.Context, cfg StoreConfig) (store.Store, error) {
	switch cfg.Backend {
	case "memory":
		return store.NewMemory(), nil
	case "file", "":
		return store.NewFile(cfg.Dir)
	case "redis":
		return store.NewRedis(ctx, store.RedisConfig{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			Prefix:   cfg.Redis.Prefix,
		})
	case "mongo":
		return store.NewMongo(ctx, store.MongoConfig{
			URI:        cfg.Mongo.URI,
			Database:   cfg.Mongo.Database,
			Collection: cfg.Mongo.Collection,
		})
	default:
		return nil, fmt.Errorf("unknown store backend %q (want memory, file, redis, or mongo)", cfg.Backend)
	}
}

// storeFlags holds the store-related flags shared by commands that open a
// backend. Flag values override the loaded config file.
type storeFlags struct {
	configPath string
	backend    string
}

// register attaches the shared --config and --store flags to cmd.
func (f *storeFlags) register(cmd *cobra.Command) {
	cmd.PersistentFlags().StringVar(&f.configPath, "config", "", "path to config file (default ~/.config/simpledraggable/config.toml)")
	cmd.PersistentFlags().StringVar(&f.backend, "store", "", "store backend override (memory, file, redis, mongo)")
}

// open loads the configuration and opens the selected store backend.
func (f *storeFlags) open(ctx context.Context) (Config, store.Store, error) {
	cfg, err := LoadConfig(f.configPath)
	if err != nil {
		return cfg, nil, err
	}
	if f.backend != "" {
		cfg.Store.Backend = f.backend
	}
	st, err := openStore(ctx, cfg.Store)
	if err != nil {
		return cfg, nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}
	return cfg, st, nil
}
