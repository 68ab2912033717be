package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Addr          string
	DatabasePath  string
	MigrationsDir string
	SecretKey     string
	TokenTTL      time.Duration
	CORSOrigins   string
	AdminEmail    string
	AdminPassword string
	AdminName     string
	Debug         bool
}

// Load reads configuration from the environment with CLASSPULSE_-prefixed
// variables, loading a local .env file first when present.
func Load() (*Config, error) {
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			return nil, err
		}
	}

	v := viper.New()
	v.SetEnvPrefix("CLASSPULSE")
	v.AutomaticEnv()

	v.SetDefault("addr", ":8080")
	v.SetDefault("database_path", "classpulse.db")
	v.SetDefault("migrations_dir", "")
	v.SetDefault("secret_key", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("cors_origins", "*")
	v.SetDefault("admin_email", "")
	v.SetDefault("admin_password", "")
	v.SetDefault("admin_name", "Administrator")
	v.SetDefault("debug", false)

	return &Config{
		Addr:          v.GetString("addr"),
		DatabasePath:  v.GetString("database_path"),
		MigrationsDir: v.GetString("migrations_dir"),
		SecretKey:     v.GetString("secret_key"),
		TokenTTL:      v.GetDuration("token_ttl"),
		CORSOrigins:   v.GetString("cors_origins"),
		AdminEmail:    v.GetString("admin_email"),
		AdminPassword: v.GetString("admin_password"),
		AdminName:     v.GetString("admin_name"),
		Debug:         v.GetBool("debug"),
	}, nil
}
