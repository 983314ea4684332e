package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/gophwallet/internal/flagx"
)

// jsonConfig is the file DTO; pointer fields tell absent keys from zero.
type jsonConfig struct {
	DBPath        *string `json:"db_path"`
	LogLevel      *string `json:"log_level"`
	BarcodeWidth  *int    `json:"barcode_width"`
	BarcodeHeight *int    `json:"barcode_height"`
}

// parseJSON overlays cfg with the file named by -c/-config, if any.
func parseJSON(cfg *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}
	var jc jsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if jc.DBPath != nil {
		cfg.DBPath = *jc.DBPath
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
	if jc.BarcodeWidth != nil {
		cfg.BarcodeWidth = *jc.BarcodeWidth
	}
	if jc.BarcodeHeight != nil {
		cfg.BarcodeHeight = *jc.BarcodeHeight
	}
	return nil
}
