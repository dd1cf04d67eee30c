package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// recommendedSecretLen is the key size securecookie expects for HMAC-SHA256.
const recommendedSecretLen = 32

type Config struct {
	LogLevel string  `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string  `yaml:"http-port" env:"HTTP_PORT" env-default:"8080"`
	Session  Session `yaml:"session"`
	Redis    Redis   `yaml:"redis"`
}

type Session struct {
	Secret string `yaml:"secret" env:"SESSION_SECRET"`
	Store  string `yaml:"store" env:"SESSION_STORE" env-default:"redis"`
	Name   string `yaml:"name" env:"SESSION_NAME" env-default:"session"`
	MaxAge int    `yaml:"max-age" env:"SESSION_MAX_AGE" env-default:"2678400"`
	Secure bool   `yaml:"secure" env:"SESSION_SECURE" env-default:"false"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

// Load reads the config file at path when it exists and applies environment overrides.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case err == nil:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("unable to load config file: %w", err)
		}
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to load config from environment: %w", err)
		}
	default:
		return nil, fmt.Errorf("unable to stat config file: %w", err)
	}

	return config, nil
}

// MustLoad - load all configurations in config.yml file and the environment.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// HasSecret reports whether a signing secret was configured.
func (that *Session) HasSecret() bool {
	return that.Secret != ""
}

// IsWeakSecret reports a configured secret shorter than an HMAC-SHA256 key.
func (that *Session) IsWeakSecret() bool {
	return that.HasSecret() && len(that.Secret) < recommendedSecretLen
}
