package config

// Config holds runtime settings of the wallet CLI.
type Config struct {
	DBPath        string
	LogLevel      string
	BarcodeWidth  int
	BarcodeHeight int
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DBPath = "wallet.db"
	c.LogLevel = "info"
	c.BarcodeWidth = 300
	c.BarcodeHeight = 300
}

// LoadConfig builds a Config from defaults, then the JSON file, then flags
// found in args (usually os.Args[1:]).
func LoadConfig(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if err := parseJSON(cfg, args); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
