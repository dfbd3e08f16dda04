package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds CLI defaults read from the inkdoc.toml config file.
// Command-line flags override file values.
type Config struct {
	// Store selects the persistence backend for serve: "memory",
	// "file", "redis" or "mongo".
	Store string `toml:"store"`

	// StoreDir is the document directory for the file backend.
	StoreDir string `toml:"store_dir"`

	// RedisAddr is the host:port for the redis backend.
	RedisAddr string `toml:"redis_addr"`

	// MongoURI is the connection string for the mongo backend.
	MongoURI string `toml:"mongo_uri"`

	// Listen is the default serve address.
	Listen string `toml:"listen"`

	// CanvasWidth and CanvasHeight are the default dimensions for new
	// documents.
	CanvasWidth  int `toml:"canvas_width"`
	CanvasHeight int `toml:"canvas_height"`
}

// DefaultConfig returns the built-in defaults used when no config file
// exists.
func DefaultConfig() Config {
	return Config{
		Store:        "file",
		StoreDir:     defaultStoreDir(),
		RedisAddr:    "localhost:6379",
		MongoURI:     "mongodb://localhost:27017",
		Listen:       ":8484",
		CanvasWidth:  1920,
		CanvasHeight: 1080,
	}
}

// LoadConfig reads the TOML config at path, or the default location
// when path is empty. A missing file is not an error; defaults apply.
// Unset fields fall back to their defaults.
func LoadConfig(path string) (Config, error) {
	explicit := path != ""
	if path == "" {
		path = defaultConfigPath()
	}

	cfg := DefaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		if explicit {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Config{}, fmt.Errorf("config %s: unknown key %q", path, undecoded[0].String())
	}
	return cfg, nil
}

// defaultConfigPath is ~/.config/inkdoc/inkdoc.toml.
func defaultConfigPath() string {
	base, err := os.UserConfigDir()
	if err != nil {
		return appName + ".toml"
	}
	return filepath.Join(base, appName, appName+".toml")
}

// defaultStoreDir is ~/.local/share/inkdoc/documents (or the platform
// equivalent).
func defaultStoreDir() string {
	base, err := os.UserHomeDir()
	if err != nil {
		return "documents"
	}
	return filepath.Join(base, "."+appName, "documents")
}
