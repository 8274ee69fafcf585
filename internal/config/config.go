package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Zolinad/dsportfolio/internal/utils"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// DefaultOlistURL is the public raw CSV of the Olist orders dataset.
const DefaultOlistURL = "https://raw.githubusercontent.com/olist/work-at-olist-data/master/datasets/olist_orders_dataset.csv"

// Global configuration structure.
type Global struct {
	ListenAddr string `mapstructure:"listen_addr" yaml:"listen_addr"`
	DocsDir    string `mapstructure:"docs_dir" yaml:"docs_dir"`
	LogLevel   string `mapstructure:"log_level" yaml:"log_level"`

	// Remote dataset (logistics page)
	OlistURL       string `mapstructure:"olist_url" yaml:"olist_url"`
	HTTPTimeoutSec int    `mapstructure:"http_timeout_sec" yaml:"http_timeout_sec"`
	CacheTTLMin    int    `mapstructure:"cache_ttl_min" yaml:"cache_ttl_min"`

	// Synthetic data and model knobs
	Seed       int64 `mapstructure:"seed" yaml:"seed"`
	ChurnTrees int   `mapstructure:"churn_trees" yaml:"churn_trees"`
	AuditTrees int   `mapstructure:"audit_trees" yaml:"audit_trees"`
}

// HTTPTimeout returns the configured client timeout as a duration.
func (c *Global) HTTPTimeout() time.Duration {
	if c.HTTPTimeoutSec <= 0 {
		return 60 * time.Second
	}
	return time.Duration(c.HTTPTimeoutSec) * time.Second
}

// CacheTTL returns how long a successful remote load is reused.
func (c *Global) CacheTTL() time.Duration {
	if c.CacheTTLMin <= 0 {
		return 12 * time.Hour
	}
	return time.Duration(c.CacheTTLMin) * time.Minute
}

// Save writes the given configuration to the cfgFile path. If cfgFile is empty,
// it writes to ~/.dsportfolio/config.yaml, creating the directory if necessary.
func Save(c *Global, cfgFile string) error {
	var path string
	if cfgFile != "" {
		path = cfgFile
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("resolve home dir: %w", err)
		}
		dir := filepath.Join(home, ".dsportfolio")
		if err := utils.EnsureDir(dir); err != nil {
			return fmt.Errorf("mkdir config dir: %w", err)
		}
		path = filepath.Join(dir, "config.yaml")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal yaml: %w", err)
	}
	if err := utils.SafeWriteFile(path, b); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// Load loads configuration from file, env, and defaults.
// Precedence: flags (cfgFile) > env > config file > defaults.
func Load(cfgFile string) (*Global, error) {
	v := viper.New()
	v.SetEnvPrefix("DSPORTFOLIO")
	v.AutomaticEnv()

	v.SetDefault("listen_addr", ":8501")
	v.SetDefault("docs_dir", "docs")
	v.SetDefault("log_level", "info")
	v.SetDefault("olist_url", DefaultOlistURL)
	v.SetDefault("http_timeout_sec", 60)
	v.SetDefault("cache_ttl_min", 720)
	v.SetDefault("seed", 42)
	v.SetDefault("churn_trees", 50)
	v.SetDefault("audit_trees", 100)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve home dir: %w", err)
		}
		v.AddConfigPath(filepath.Join(home, ".dsportfolio"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}
	// optional read
	_ = v.ReadInConfig()

	var c Global
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &c, nil
}
