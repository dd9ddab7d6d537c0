// =============================================================================
// Sales Import - Configuration Module
// =============================================================================
//
// This module loads the application configuration from a single YAML file.
// The configuration names the two input workbooks, describes the sheet
// conventions used inside them, and carries the knobs for order synthesis.
//
// All settings have defaults matching the historical workbooks (a February
// 2022 sales month), so a bare config file naming only the workbook paths is
// enough to run an export.
//
// =============================================================================

package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// =============================================================================
// CONFIGURATION STRUCTURES
// =============================================================================

// Config holds the full application configuration.
type Config struct {
	// SummaryWorkbook is the path to the grand-totals workbook
	// (one aggregate row per month).
	SummaryWorkbook string `yaml:"summary_workbook"`

	// SalesWorkbook is the path to the month-of-sales workbook
	// (one summary sheet plus per-day transaction sheets).
	SalesWorkbook string `yaml:"sales_workbook"`

	// OutputDir is the directory where dataset files and provenance
	// artifacts are written.
	// Default: "./data"
	OutputDir string `yaml:"output_dir"`

	// LogLevel controls logging verbosity.
	// Valid values: "debug", "info", "warn", "error"
	// Default: "info"
	LogLevel string `yaml:"log_level"`

	// Sheets describes the sheet-name conventions of the sales workbook.
	Sheets SheetSettings `yaml:"sheets"`

	// Synthesis carries the knobs for order and line-item synthesis.
	Synthesis SynthesisSettings `yaml:"synthesis"`

	// CountColumns lists normalized column keys that hold counts rather
	// than currency in the grand-totals sheet.
	// Default: ["no_of_days_closed", "no_of_days_month"]
	CountColumns []string `yaml:"count_columns"`
}

// SheetSettings describes how sheets inside the sales workbook are named and
// which month they cover. Transaction sheets follow a
// "<month-digit>-<day-digit>" naming convention; the summary sheet is named
// after the month itself.
type SheetSettings struct {
	// MonthSummarySheet is the name of the per-day summary sheet inside
	// the sales workbook.
	// Default: "FEB 2022"
	MonthSummarySheet string `yaml:"month_summary_sheet"`

	// TransactionSheetPrefix selects the per-day transaction sheets.
	// Default: "2-"
	TransactionSheetPrefix string `yaml:"transaction_sheet_prefix"`

	// Year is the calendar year used when a transaction sheet carries no
	// explicit date cell and the date must come from the sheet token.
	// A value of 0 is treated as unset and replaced by the default.
	// Default: 2022
	Year int `yaml:"year"`
}

// SynthesisSettings bounds the synthesized line items and fixes the
// placeholder fields of reconstructed orders.
type SynthesisSettings struct {
	// PricePerItem is the assumed average item price used to derive the
	// item count from an order subtotal.
	// Default: 20
	PricePerItem float64 `yaml:"price_per_item"`

	// MaxItems caps the number of items synthesized per order.
	// Default: 4
	MaxItems int `yaml:"max_items"`

	// ItemPool is the number of placeholder menu-item IDs cycled through.
	// Default: 10
	ItemPool int `yaml:"item_pool"`

	// TableMin and TableMax bound the dine-in table numbers assigned
	// round-robin per run. TableMax is inclusive. A value of 0 is treated
	// as unset and replaced by the default, so the range cannot start at
	// table 0.
	// Defaults: 1 and 19
	TableMin int `yaml:"table_min"`
	TableMax int `yaml:"table_max"`

	// ServerID is the placeholder server assigned to historical orders.
	// Default: "srv_001"
	ServerID string `yaml:"server_id"`

	// Status is the order status assigned to historical orders.
	// Default: "completed"
	Status string `yaml:"status"`
}

// =============================================================================
// LOADING
// =============================================================================

// Load reads, defaults and validates the configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	applyDefaults(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// applyDefaults sets default values for any unset configuration options.
func applyDefaults(cfg *Config) {
	if cfg.SummaryWorkbook == "" {
		cfg.SummaryWorkbook = "docs/reference/Grand_Totals_Sales_Summary.xlsx"
	}
	if cfg.SalesWorkbook == "" {
		cfg.SalesWorkbook = "docs/reference/Month_Year_SALES.xlsx"
	}
	if cfg.OutputDir == "" {
		cfg.OutputDir = "./data"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.Sheets.MonthSummarySheet == "" {
		cfg.Sheets.MonthSummarySheet = "FEB 2022"
	}
	if cfg.Sheets.TransactionSheetPrefix == "" {
		cfg.Sheets.TransactionSheetPrefix = "2-"
	}
	if cfg.Sheets.Year == 0 {
		cfg.Sheets.Year = 2022
	}
	if cfg.Synthesis.PricePerItem == 0 {
		cfg.Synthesis.PricePerItem = 20
	}
	if cfg.Synthesis.MaxItems == 0 {
		cfg.Synthesis.MaxItems = 4
	}
	if cfg.Synthesis.ItemPool == 0 {
		cfg.Synthesis.ItemPool = 10
	}
	if cfg.Synthesis.TableMin == 0 {
		cfg.Synthesis.TableMin = 1
	}
	if cfg.Synthesis.TableMax == 0 {
		cfg.Synthesis.TableMax = 19
	}
	if cfg.Synthesis.ServerID == "" {
		cfg.Synthesis.ServerID = "srv_001"
	}
	if cfg.Synthesis.Status == "" {
		cfg.Synthesis.Status = "completed"
	}
	if cfg.CountColumns == nil {
		cfg.CountColumns = []string{"no_of_days_closed", "no_of_days_month"}
	}
}

// validate checks the configuration for contradictions and makes sure the
// output directory exists.
func validate(cfg *Config) error {
	if cfg.Synthesis.PricePerItem <= 0 {
		return fmt.Errorf("price_per_item must be positive, got %v", cfg.Synthesis.PricePerItem)
	}
	if cfg.Synthesis.MaxItems < 1 {
		return fmt.Errorf("max_items must be at least 1, got %d", cfg.Synthesis.MaxItems)
	}
	if cfg.Synthesis.TableMin > cfg.Synthesis.TableMax {
		return fmt.Errorf("table_min %d exceeds table_max %d",
			cfg.Synthesis.TableMin, cfg.Synthesis.TableMax)
	}

	if _, err := os.Stat(cfg.OutputDir); os.IsNotExist(err) {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", cfg.OutputDir, err)
		}
	}

	return nil
}

// CountColumnSet returns the count columns as a lookup set.
func (c *Config) CountColumnSet() map[string]bool {
	set := make(map[string]bool, len(c.CountColumns))
	for _, col := range c.CountColumns {
		set[col] = true
	}
	return set
}
