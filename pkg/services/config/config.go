package config

import (
	"fmt"

	"github.com/spf13/viper"
)

// PriceRange bounds the unit price drawn for a product.
type PriceRange struct {
	Min float64 `mapstructure:"min"`
	Max float64 `mapstructure:"max"`
}

// Config is the run profile for the pipeline: generator vocabularies and
// output defaults. Every field has a default so a profile file is optional.
type Config struct {
	Records    int    `mapstructure:"records"`
	DaysBack   int    `mapstructure:"days_back"`
	OutputDir  string `mapstructure:"output_dir"`
	DataFile   string `mapstructure:"data_file"`
	ReportFile string `mapstructure:"report_file"`
	Seed       int64  `mapstructure:"seed"`

	Products    []string              `mapstructure:"products"`
	Regions     []string              `mapstructure:"regions"`
	Channels    []string              `mapstructure:"channels"`
	PriceRanges map[string]PriceRange `mapstructure:"price_ranges"`
}

// Default returns the built-in profile matching the stock product catalog.
func Default() Config {
	return Config{
		Records:    150,
		DaysBack:   90,
		OutputDir:  "output",
		DataFile:   "sales_data.xlsx",
		ReportFile: "sales_summary.xlsx",
		Products:   []string{"Laptop", "Desktop", "Monitor", "Keyboard", "Mouse", "Headphones", "Printer"},
		Regions:    []string{"North", "South", "East", "West", "Central"},
		Channels:   []string{"Online", "Retail", "Distributor"},
		PriceRanges: map[string]PriceRange{
			"Laptop":     {Min: 800, Max: 2000},
			"Desktop":    {Min: 600, Max: 1800},
			"Monitor":    {Min: 150, Max: 500},
			"Keyboard":   {Min: 20, Max: 150},
			"Mouse":      {Min: 10, Max: 80},
			"Headphones": {Min: 30, Max: 300},
			"Printer":    {Min: 100, Max: 400},
		},
	}
}

// Load resolves the run profile: defaults, then SALES_ATLAS_* environment
// variables, then the profile file when one is given. The path may be empty.
func Load(profilePath string) (Config, error) {
	cfg := Default()

	v := viper.New()
	v.SetEnvPrefix("SALES_ATLAS")
	v.AutomaticEnv()

	// Register scalar keys so AutomaticEnv can resolve them during Unmarshal.
	v.SetDefault("records", cfg.Records)
	v.SetDefault("days_back", cfg.DaysBack)
	v.SetDefault("output_dir", cfg.OutputDir)
	v.SetDefault("data_file", cfg.DataFile)
	v.SetDefault("report_file", cfg.ReportFile)
	v.SetDefault("seed", cfg.Seed)

	if profilePath != "" {
		v.SetConfigFile(profilePath)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read profile %s: %w", profilePath, err)
		}
	}

	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse profile %s: %w", profilePath, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate rejects profiles the generator cannot work with.
func (c Config) Validate() error {
	if c.Records <= 0 {
		return fmt.Errorf("records must be positive, got %d", c.Records)
	}
	if c.DaysBack <= 0 {
		return fmt.Errorf("days_back must be positive, got %d", c.DaysBack)
	}
	if len(c.Products) == 0 || len(c.Regions) == 0 || len(c.Channels) == 0 {
		return fmt.Errorf("products, regions and channels must not be empty")
	}
	for _, p := range c.Products {
		pr, ok := c.PriceRanges[p]
		if !ok {
			return fmt.Errorf("product %q has no price range", p)
		}
		if pr.Min < 0 || pr.Max < pr.Min {
			return fmt.Errorf("product %q has invalid price range [%v, %v]", p, pr.Min, pr.Max)
		}
	}
	return nil
}
