package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/kyazgan/restkit/logger"
	"github.com/kyazgan/restkit/restclient"
	"github.com/kyazgan/restkit/validation"
)

// File is the on-disk configuration shape for an application using one
// REST client. Multi-client applications can embed restclient.Config
// per target in their own structs and call Load directly.
type File struct {
	Client  restclient.Config `yaml:"client" mapstructure:"client"`
	Logging logger.Config     `yaml:"logging" mapstructure:"logging"`
}

// LoaderConfig controls where configuration is read from.
type LoaderConfig struct {
	// ConfigFile is the path to a YAML config file. Empty means search
	// standard locations.
	ConfigFile string
	// EnvFile is the path to a .env file loaded before reading the
	// environment. Empty means search standard locations.
	EnvFile string
	// EnvPrefix namespaces environment variable overrides,
	// e.g. RESTKIT_CLIENT_BASE_URL. Defaults to "RESTKIT".
	EnvPrefix string
}

// Load reads configuration into out from a YAML file and the
// environment. Environment variables override file values. The result
// is validated with struct tags before being returned.
func Load(opts LoaderConfig, out any) error {
	if opts.EnvPrefix == "" {
		opts.EnvPrefix = "RESTKIT"
	}

	loadEnvFile(opts.EnvFile)

	v := viper.New()
	v.SetEnvPrefix(opts.EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	file := opts.ConfigFile
	if file == "" {
		file = findConfigFile()
	}
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("config: read %s: %w", file, err)
		}
	}

	if err := v.Unmarshal(out); err != nil {
		return fmt.Errorf("config: unmarshal: %w", err)
	}

	if err := validation.Validate(out); err != nil {
		return err
	}
	return nil
}

// LoadFile loads the standard single-client File shape.
func LoadFile(opts LoaderConfig) (*File, error) {
	var f File
	if err := Load(opts, &f); err != nil {
		return nil, err
	}
	f.Client.ApplyDefaults()
	f.Logging.ApplyDefaults()
	if err := f.Client.Validate(); err != nil {
		return nil, err
	}
	if err := f.Logging.Validate(); err != nil {
		return nil, err
	}
	return &f, nil
}

// loadEnvFile loads a .env file if one exists. Missing files are not an
// error; the environment simply stands alone.
func loadEnvFile(path string) {
	if path != "" {
		_ = godotenv.Load(path)
		return
	}
	for _, candidate := range []string{".env", "../.env"} {
		if _, err := os.Stat(candidate); err == nil {
			_ = godotenv.Load(candidate)
			return
		}
	}
}

// findConfigFile searches standard locations for a config file.
func findConfigFile() string {
	for _, candidate := range []string{
		"./config.yml",
		"./config/config.yml",
		"../config/config.yml",
	} {
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
	}
	return ""
}
