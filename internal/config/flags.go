package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/gophwallet/internal/flagx"
)

// parseFlags overlays cfg with -d, -l, -w and -h. Other flags in args are
// left to their own parsers.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-d", "-l", "-w", "-h"})

	fs := flag.NewFlagSet("wallet", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&cfg.DBPath, "d", cfg.DBPath, "path of the wallet database")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")
	fs.IntVar(&cfg.BarcodeWidth, "w", cfg.BarcodeWidth, "barcode width in pixels")
	fs.IntVar(&cfg.BarcodeHeight, "h", cfg.BarcodeHeight, "barcode height in pixels")

	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
