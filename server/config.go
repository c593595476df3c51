package server

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the server settings.
type Config struct {
	Addr            string        `mapstructure:"addr"`
	PublicDir       string        `mapstructure:"public_dir"`
	ImportMap       string        `mapstructure:"import_map"`
	WatchImportMap  bool          `mapstructure:"watch_import_map"`
	WasmPath        string        `mapstructure:"wasm_path"`
	WasmExecPath    string        `mapstructure:"wasm_exec_path"`
	Lang            string        `mapstructure:"lang"`
	Metrics         bool          `mapstructure:"metrics"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	Logging         LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds the logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DefaultConfig returns the default settings.
func DefaultConfig() Config {
	return Config{
		Addr:            ":8000",
		PublicDir:       "public",
		ImportMap:       "importmap.json",
		WatchImportMap:  false,
		WasmPath:        "/app.wasm",
		WasmExecPath:    "/wasm_exec.js",
		Lang:            "en",
		Metrics:         true,
		ShutdownTimeout: 10 * time.Second,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// NewViper creates a viper instance with the defaults, reading NOJS_
// environment variables (NOJS_ADDR, NOJS_PUBLIC_DIR, NOJS_LOGGING_LEVEL...).
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetConfigName("nojs")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("NOJS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	d := DefaultConfig()
	v.SetDefault("addr", d.Addr)
	v.SetDefault("public_dir", d.PublicDir)
	v.SetDefault("import_map", d.ImportMap)
	v.SetDefault("watch_import_map", d.WatchImportMap)
	v.SetDefault("wasm_path", d.WasmPath)
	v.SetDefault("wasm_exec_path", d.WasmExecPath)
	v.SetDefault("lang", d.Lang)
	v.SetDefault("metrics", d.Metrics)
	v.SetDefault("shutdown_timeout", d.ShutdownTimeout)
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	return v
}

// LoadConfig reads file, or nojs.toml in the working directory when file is
// empty, and overlays the environment. A missing nojs.toml is fine; a missing
// explicit file is not.
func LoadConfig(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the settings.
func (c Config) Validate() error {
	switch {
	case c.Addr == "":
		return errors.New("config: addr is required")
	case c.PublicDir == "":
		return errors.New("config: public_dir is required")
	case c.ImportMap == "":
		return errors.New("config: import_map is required")
	case !strings.HasPrefix(c.WasmPath, "/") || !strings.HasPrefix(c.WasmExecPath, "/"):
		return errors.New("config: wasm_path and wasm_exec_path must be absolute URL paths")
	case c.ShutdownTimeout <= 0:
		return errors.New("config: shutdown_timeout must be positive")
	}
	return nil
}
