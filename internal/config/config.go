package config

import (
	"fmt"
	"os"

	"github.com/go-yaml/yaml"
)

type Config struct {
	Server   Server   `yaml:"server"`
	Platform Platform `yaml:"platform"`
	Auth     Auth     `yaml:"auth"`
}

type Server struct {
	Listen        string `yaml:"listen"`
	PostgresDsn   string `yaml:"postgresDsn"`
	RedisAddr     string `yaml:"redisAddr"`
	RedisDB       int    `yaml:"redisDB"`
	MemcachedAddr string `yaml:"memcachedAddr"`
	EnableTrace   bool   `yaml:"enableTrace"`
	TraceEndpoint string `yaml:"traceEndpoint"`
}

// Platform is the upstream fleet data platform that owns the vessel catalog
// and AIS feeds.
type Platform struct {
	Endpoint string `yaml:"endpoint"`
	APIKey   string `yaml:"apiKey"`
}

type Auth struct {
	Secret string `yaml:"secret"`
}

func Load(path string) (Config, error) {

	file, err := os.Open(path)
	if err != nil {
		return Config{}, err
	}
	defer file.Close()

	var config Config
	err = yaml.NewDecoder(file).Decode(&config)
	if err != nil {
		return Config{}, err
	}

	if config.Server.Listen == "" {
		config.Server.Listen = ":8000"
	}

	if config.Server.PostgresDsn == "" {
		return Config{}, fmt.Errorf("server.postgresDsn is required")
	}
	if config.Platform.Endpoint == "" {
		return Config{}, fmt.Errorf("platform.endpoint is required")
	}
	if config.Auth.Secret == "" {
		return Config{}, fmt.Errorf("auth.secret is required")
	}

	return config, nil
}
