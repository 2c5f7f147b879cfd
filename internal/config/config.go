// =================================
// File: internal/config/config.go
// =================================
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	InputPath    string      `mapstructure:"input_path"`
	Thresholds   []float64   `mapstructure:"thresholds"`
	Workers      int         `mapstructure:"workers"`
	DebugLogging bool        `mapstructure:"debug_logging"`
	LogFile      string      `mapstructure:"log_file"`
	OutputDir    string      `mapstructure:"output_dir"`
	Columns      ColumnNames `mapstructure:"columns"`
}

// ColumnNames maps the four required trade fields to CSV header names.
type ColumnNames struct {
	MAE    string `mapstructure:"mae"`
	Shares string `mapstructure:"shares"`
	Price  string `mapstructure:"price"`
	Profit string `mapstructure:"profit"`
}

const (
	DefaultInputPath = "data/trades.csv"
	DefaultOutputDir = "exports"
	DefaultLogFile   = "logs/optimizer.log"
	DefaultWorkers   = 0 // sequential
)

// DefaultThresholds returns the percentiles tested when none are configured:
// 1%, 3%, 5%, then every 5% from 10% to 95%.
func DefaultThresholds() []float64 {
	thresholds := []float64{1, 3, 5}
	for p := 10.0; p <= 95; p += 5 {
		thresholds = append(thresholds, p)
	}
	return thresholds
}

func DefaultColumns() ColumnNames {
	return ColumnNames{MAE: "MAE", Shares: "Shares", Price: "Price", Profit: "Profit"}
}

// LoadConfig reads a JSON config file and applies environment overrides.
// A missing file is not an error when required is false: the defaults above
// are a complete configuration on their own.
func LoadConfig(path string, required bool) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := map[string]interface{}{
		"input_path":     DefaultInputPath,
		"thresholds":     DefaultThresholds(),
		"workers":        DefaultWorkers,
		"debug_logging":  false,
		"log_file":       DefaultLogFile,
		"output_dir":     DefaultOutputDir,
		"columns.mae":    DefaultColumns().MAE,
		"columns.shares": DefaultColumns().Shares,
		"columns.price":  DefaultColumns().Price,
		"columns.profit": DefaultColumns().Profit,
	}
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if err := v.ReadInConfig(); err != nil {
		if required || !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if err := loadEnvironmentVariables(v, &cfg); err != nil {
		return nil, err
	}

	return &cfg, validateConfig(&cfg)
}

func validateConfig(cfg *Config) error {
	if cfg.InputPath == "" {
		return errors.New("missing input_path in configuration")
	}
	if len(cfg.Thresholds) == 0 {
		return errors.New("thresholds list is empty")
	}
	for _, p := range cfg.Thresholds {
		if p <= 0 || p > 100 {
			return fmt.Errorf("threshold percentile %.2f outside (0, 100]", p)
		}
	}
	if err := validateNumericParams(cfg); err != nil {
		return err
	}
	if cfg.Columns.MAE == "" || cfg.Columns.Shares == "" ||
		cfg.Columns.Price == "" || cfg.Columns.Profit == "" {
		return errors.New("column names must not be empty")
	}
	return nil
}

func validateNumericParams(cfg *Config) error {
	if cfg.Workers < 0 {
		return errors.New("invalid workers count")
	}
	return nil
}

func loadEnvironmentVariables(v *viper.Viper, cfg *Config) error {
	v.AutomaticEnv()
	v.SetEnvPrefix("STOPLOSS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	envInput := v.GetString("INPUT_PATH")
	if envInput != "" {
		cfg.InputPath = envInput
	}

	envThresholds := v.GetString("THRESHOLDS")
	if envThresholds != "" {
		parsed, err := ParseThresholds(envThresholds)
		if err != nil {
			return fmt.Errorf("STOPLOSS_THRESHOLDS: %w", err)
		}
		cfg.Thresholds = parsed
	}

	envWorkers := v.GetString("WORKERS")
	if envWorkers != "" {
		workers, err := strconv.Atoi(envWorkers)
		if err != nil {
			return fmt.Errorf("STOPLOSS_WORKERS: %w", err)
		}
		cfg.Workers = workers
	}
	return nil
}

// ParseThresholds parses a comma-separated percentile list such as "5,10,25.5".
func ParseThresholds(raw string) ([]float64, error) {
	var thresholds []float64
	for _, part := range strings.Split(raw, ",") {
		clean := strings.TrimSpace(part)
		if clean == "" {
			continue
		}
		p, err := strconv.ParseFloat(clean, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid threshold %q", clean)
		}
		thresholds = append(thresholds, p)
	}
	if len(thresholds) == 0 {
		return nil, errors.New("empty threshold list")
	}
	return thresholds, nil
}
