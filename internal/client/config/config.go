package config

import (
	"os"
	"time"
)

type Config struct {
	GatewayAddr    string
	DatabasePath   string
	LogFile        string
	LogLevel       string
	PushListenAddr string
	SweepSchedule  string
	RequestTimeout time.Duration
	PushToken      string
}

func (c *Config) LoadDefaults() {
	c.GatewayAddr = "127.0.0.1:50051"
	c.DatabasePath = "wghub.db"
	c.LogFile = "wghub.log"
	c.LogLevel = "info"
	c.PushListenAddr = "127.0.0.1:8085"
	c.SweepSchedule = "@every 15m"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from defaults, the environment, an optional
// JSON file and finally the flags in args (without the program name).
func LoadConfig(args []string) (*Config, error) {
	return load(args, os.LookupEnv)
}

func load(args []string, lookup lookupFunc) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseEnv(cfg, args, lookup); err != nil {
		return nil, err
	}
	if err := parseJson(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
