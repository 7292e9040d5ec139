package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/wghub/internal/flagx"
	"github.com/dmitrijs2005/wghub/internal/timex"
)

type JsonConfig struct {
	GatewayAddr    string          `json:"gateway_addr"`
	DatabasePath   string          `json:"database_path"`
	LogFile        string          `json:"log_file"`
	LogLevel       string          `json:"log_level"`
	PushListenAddr string          `json:"push_listen_addr"`
	SweepSchedule  string          `json:"sweep_schedule"`
	RequestTimeout *timex.Duration `json:"request_timeout"`
	PushToken      string          `json:"push_token"`
}

// parseJson overlays the non-empty fields of the file selected by -c/-config.
func parseJson(cfg *Config, args []string) error {
	path := flagx.ConfigFileFlags(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	overlay(&cfg.GatewayAddr, jc.GatewayAddr)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.LogFile, jc.LogFile)
	overlay(&cfg.LogLevel, jc.LogLevel)
	overlay(&cfg.PushListenAddr, jc.PushListenAddr)
	overlay(&cfg.SweepSchedule, jc.SweepSchedule)
	overlay(&cfg.PushToken, jc.PushToken)
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	return nil
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
