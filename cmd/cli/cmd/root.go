package cmd

import (
	"os"

	"github.com/spf13/cobra"

	cliapi "rastreio/internal/cli"
	"rastreio/internal/config"
)

var (
	serverURL  string
	format     string
	quiet      bool
	noColor    bool
	configFile string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "rastreio",
	Short: "CLI client for the carrier detection API",
	Long: `Rastreio CLI identifies the carrier behind a shipment tracking code,
validates codes before they are persisted, and suggests corrected variants
for codes that fail validation.`,
	Version: "1.0.0",
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&serverURL, "server", "s", "", "API server address")
	rootCmd.PersistentFlags().StringVarP(&format, "format", "f", "", "Output format (table, json)")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Quiet mode (minimal output)")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable color output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path")
}

// initializeClient sets up configuration, formatter, and API client
func initializeClient() (*cliapi.OutputFormatter, *cliapi.Client, error) {
	var cfg *cliapi.Config
	var err error

	if configFile != "" {
		cfg, err = config.LoadCLIConfigWithFile(configFile)
	} else {
		cfg, err = config.LoadCLIConfig()
	}
	if err != nil {
		return nil, nil, err
	}

	// Flags override configuration
	if serverURL != "" {
		cfg.ServerURL = serverURL
	}
	if format != "" {
		cfg.Format = format
	}
	if quiet {
		cfg.Quiet = true
	}
	if noColor {
		cfg.NoColor = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	formatter := cliapi.NewOutputFormatter(cfg.Format, cfg.Quiet, cfg.NoColor)
	client := cliapi.NewClientWithTimeout(cfg.ServerURL, cfg.RequestTimeout)

	return formatter, client, nil
}
