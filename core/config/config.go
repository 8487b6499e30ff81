package config

import (
	"reflect"
	"strings"

	"file-integrity/core/database"
	"file-integrity/core/logger"
	"file-integrity/core/server"
	"file-integrity/core/storage"
	"file-integrity/feature/integrity"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
type Config struct {
	// Server holds configuration for the HTTP server.
	Server server.Config `mapstructure:"server"`
	// Storage holds configuration for the object storage used as a byte source and baseline store.
	Storage storage.Config `mapstructure:"storage"`
	// Log holds configuration for the logger.
	Log logger.Config `mapstructure:"log"`
	// Database holds configuration for the optional database byte source.
	Database database.Config `mapstructure:"database"`
	// Integrity holds configuration for fingerprinting and comparison.
	Integrity integrity.Config `mapstructure:"integrity"`
}

// LoadConfig loads configuration from environment variables and the .env file in path.
func LoadConfig(path string) (*Config, error) {
	envPath := ".env"
	if path != "" && path != "." {
		envPath = strings.TrimSuffix(path, "/") + "/.env"
	}

	// A missing .env is fine, the environment alone may configure everything
	_ = godotenv.Overload(envPath)

	v := viper.New()
	bindValues(v, Config{}, "")

	// INTEGRITY_WORKERS -> integrity.workers
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	return &config, nil
}

// bindValues walks the struct and registers every mapstructure key in Viper
// with the value of its 'default' tag.
func bindValues(v *viper.Viper, iface any, prefix string) {
	t := reflect.TypeOf(iface)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}

		key := tag
		if prefix != "" {
			key = prefix + "." + tag
		}

		if field.Type.Kind() == reflect.Struct {
			bindValues(v, reflect.New(field.Type).Elem().Interface(), key)
			continue
		}

		// Registering even empty defaults is what makes AutomaticEnv see the key
		v.SetDefault(key, field.Tag.Get("default"))
	}
}
