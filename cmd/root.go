package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	cfgpkg "github.com/Zolinad/dsportfolio/internal/config"
	"github.com/Zolinad/dsportfolio/internal/logging"
)

var (
	// Global flags
	cfgFile string
	debug   bool
	// HTTP flags (override config if set)
	flagHTTPTimeoutSec int
	flagLogLevel       string

	// Loaded configuration
	cfg *cfgpkg.Global
	log *zap.SugaredLogger
)

var rootCmd = &cobra.Command{
	Use:   "dsportfolio",
	Short: "Data science portfolio: five interactive demos served as a web app",
	Long: `dsportfolio serves a personal data science portfolio with five demos
(churn prediction, geomarketing, audit anomaly detection, KPI dashboard and
logistics analysis of the public Olist dataset). Pages can also be rendered
to Markdown from the command line.`,
	SilenceUsage: true,
}

// Execute is the entry point called by main.main()
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "✗ Error:", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(loadConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ~/.dsportfolio/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&flagHTTPTimeoutSec, "http-timeout", 0, "HTTP client timeout in seconds for remote datasets (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "log level: debug, info, warn, error (overrides config)")
}

func loadConfig() {
	c, err := cfgpkg.Load(cfgFile)
	if err != nil {
		// Non-fatal: commands fall back to built-in defaults
		fmt.Fprintf(os.Stderr, "⚠ Warning: failed to load config: %v\n", err)
		c = &cfgpkg.Global{DocsDir: "docs", OlistURL: cfgpkg.DefaultOlistURL, Seed: 42}
	}
	cfg = c

	f := rootCmd.PersistentFlags()
	if f.Changed("http-timeout") && flagHTTPTimeoutSec > 0 {
		cfg.HTTPTimeoutSec = flagHTTPTimeoutSec
	}
	if f.Changed("log-level") && flagLogLevel != "" {
		cfg.LogLevel = flagLogLevel
	}
	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	l, err := logging.New(level)
	if err != nil {
		fmt.Fprintf(os.Stderr, "⚠ Warning: %v; using info\n", err)
		l, _ = logging.New("info")
	}
	log = l
}
