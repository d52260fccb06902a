package config

import (
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port          string
	DatabaseURL   string
	DefaultLocale string
}

// Load reads config.json from the working directory when present and lets
// environment variables override it (PORT, DATABASE_URL, DEFAULT_LOCALE).
func Load() Config {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")
	v.AddConfigPath(".")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	_ = v.ReadInConfig()

	return Config{
		Port:          v.GetString("port"),
		DatabaseURL:   v.GetString("database_url"),
		DefaultLocale: v.GetString("default_locale"),
	}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("port", "8080")
	v.SetDefault("default_locale", "en")
}
