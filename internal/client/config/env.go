package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/wghub/internal/flagx"
	"github.com/joho/godotenv"
)

const envPrefix = "WGHUB_"

type lookupFunc func(key string) (string, bool)

// parseEnv applies WGHUB_* variables. The dotenv file is read without
// touching the process environment.
func parseEnv(cfg *Config, args []string, lookup lookupFunc) error {
	file := map[string]string{}
	if path := flagx.EnvFileFlags(args); path != "" {
		vars, err := godotenv.Read(path)
		if err != nil {
			return fmt.Errorf("read env file %s: %w", path, err)
		}
		file = vars
	}

	get := func(name string) (string, bool) {
		key := envPrefix + name
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := file[key]
		return v, ok
	}

	strs := map[string]*string{
		"GATEWAY_ADDR":     &cfg.GatewayAddr,
		"DATABASE_PATH":    &cfg.DatabasePath,
		"LOG_FILE":         &cfg.LogFile,
		"LOG_LEVEL":        &cfg.LogLevel,
		"PUSH_LISTEN_ADDR": &cfg.PushListenAddr,
		"SWEEP_SCHEDULE":   &cfg.SweepSchedule,
		"PUSH_TOKEN":       &cfg.PushToken,
	}
	for name, dst := range strs {
		if v, ok := get(name); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := get("REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err)
		}
		cfg.RequestTimeout = d
	}
	return nil
}
