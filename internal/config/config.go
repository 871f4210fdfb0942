package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const EnvPrefix = "SWEEPER"

type TokenConfig struct {
	Secret   string        `mapstructure:"secret"`
	Lifetime time.Duration `mapstructure:"lifetime"`
}

type CorsConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type Config struct {
	Mode    string      `mapstructure:"mode"`
	Addr    string      `mapstructure:"addr"`
	LogFile string      `mapstructure:"log_file"`
	Token   TokenConfig `mapstructure:"token"`
	Cors    CorsConfig  `mapstructure:"cors"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("mode", "development")
	v.SetDefault("addr", "localhost:8000")
	v.SetDefault("log_file", "")
	v.SetDefault("token.secret", "")
	v.SetDefault("token.lifetime", "24h")
	v.SetDefault("cors.allowed_origins", []string{"*"})
}

// Load reads the config file at path, if any, then applies SWEEPER_*
// environment overrides, e.g. SWEEPER_TOKEN_SECRET.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("unable to read config %s: %w", path, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unable to parse config: %w", err)
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

func (c Config) validate() error {
	switch c.Mode {
	case "development", "production":
	default:
		return fmt.Errorf("unknown mode %q", c.Mode)
	}
	if c.Token.Lifetime <= 0 {
		return fmt.Errorf("token lifetime must be positive, got %s", c.Token.Lifetime)
	}
	return nil
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":                 c.Mode,
		"addr":                 c.Addr,
		"log_file":             c.LogFile,
		"token_lifetime":       c.Token.Lifetime.String(),
		"token_secret_set":     c.Token.Secret != "",
		"cors_allowed_origins": c.Cors.AllowedOrigins,
	}
}
