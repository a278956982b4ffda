package deckhub

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/pelletier/go-toml/v2"
)

func LoadConfig(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err = toml.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type Config struct {
	Log     LogConfig     `toml:"log"`
	DB      DBConfig      `toml:"db"`
	Web     WebConfig     `toml:"web"`
	Spaces  SpacesConfig  `toml:"spaces"`
	Session SessionConfig `toml:"session"`
}

type LogConfig struct {
	Level     slog.Level `toml:"level"`
	Format    string     `toml:"format"`
	AddSource bool       `toml:"add_source"`
}

type DBConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	Database string `toml:"database"`
	PoolSize int    `toml:"pool_size"`
}

type WebConfig struct {
	Host           string   `toml:"host"`
	Port           int      `toml:"port"`
	AllowedOrigins []string `toml:"allowed_origins"`
	Debug          bool     `toml:"debug"`
}

type SpacesConfig struct {
	Key      string `toml:"key"`
	Secret   string `toml:"secret"`
	Region   string `toml:"region"`
	Bucket   string `toml:"bucket"`
	CardRoot string `toml:"cardroot"`
}

type SessionConfig struct {
	Secret     string `toml:"secret"`
	CookieName string `toml:"cookie_name"`
	TTLHours   int    `toml:"ttl_hours"`
}
