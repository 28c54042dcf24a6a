package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"credvault/internal/keyauthority"
)

// ConfigFilename is the optional configuration file inside Home.
const ConfigFilename = "config.yaml"

// EnvPrefix prefixes every environment variable read into Config.
const EnvPrefix = "CREDVAULT"

// Config holds runtime wiring options for building the app.
type Config struct {
	Home        string `mapstructure:"home" validate:"required"`                       // credential directory, e.g. $HOME/.credvault
	LogLevel    string `mapstructure:"log_level" validate:"oneof=debug info warn error"` // slog level name
	WorkFactor  int    `mapstructure:"work_factor" validate:"gte=10,lte=22"`            // scrypt log2(N) for newly sealed keys
	MetricsFile string `mapstructure:"metrics_file"`                                    // optional Prometheus textfile written on exit
}

// DefaultHome returns ~/.credvault.
func DefaultHome() (string, error) {
	dir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(dir, ".credvault"), nil
}

// NewViper returns a viper instance with Config defaults and CREDVAULT_*
// environment bindings. Callers bind flags on top.
func NewViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	v.SetDefault("home", "")
	v.SetDefault("log_level", "warn")
	v.SetDefault("work_factor", keyauthority.DefaultWorkFactor)
	v.SetDefault("metrics_file", "")
	return v
}

// LoadConfig resolves Config from v. Home comes from flags or environment
// (falling back to DefaultHome); the remaining keys may also be set in
// Home/config.yaml. Flags and environment win over the file.
func LoadConfig(v *viper.Viper) (Config, error) {
	home := v.GetString("home")
	if home == "" {
		var err error
		if home, err = DefaultHome(); err != nil {
			return Config{}, err
		}
		v.Set("home", home)
	}

	v.SetConfigFile(filepath.Join(home, ConfigFilename))
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return Config{}, fmt.Errorf("reading config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decoding config: %w", err)
	}
	cfg.LogLevel = strings.ToLower(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
