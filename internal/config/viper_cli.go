package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"

	"rastreio/internal/cli"
)

// LoadCLIConfig loads CLI configuration using a fresh Viper instance.
func LoadCLIConfig() (*cli.Config, error) {
	return LoadCLIConfigWithViper(viper.New())
}

// LoadCLIConfigWithFile loads CLI configuration from a specific file.
func LoadCLIConfigWithFile(configFile string) (*cli.Config, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	return LoadCLIConfigWithViper(v)
}

// LoadCLIConfigWithViper loads CLI configuration using Viper, merging
// defaults, an optional config file, and RASTREIO_* environment variables.
func LoadCLIConfigWithViper(v *viper.Viper) (*cli.Config, error) {
	setCLIDefaults(v)
	setupCLIEnvBinding(v)

	if err := loadCLIConfigFile(v); err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	config := &cli.Config{
		ServerURL: v.GetString("server_url"),
		Format:    v.GetString("format"),
		Quiet:     v.GetBool("quiet"),
		NoColor:   v.GetBool("no_color"),
	}

	timeout := v.GetString("request_timeout")
	duration, err := time.ParseDuration(timeout)
	if err != nil {
		return nil, fmt.Errorf("invalid request timeout %q: %w", timeout, err)
	}
	config.RequestTimeout = duration

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return config, nil
}

// setCLIDefaults sets default values for CLI configuration
func setCLIDefaults(v *viper.Viper) {
	v.SetDefault("server_url", "http://localhost:8080")
	v.SetDefault("format", "table")
	v.SetDefault("quiet", false)
	v.SetDefault("no_color", false)
	v.SetDefault("request_timeout", "30s")
}

// setupCLIEnvBinding sets up environment variable binding for CLI configuration
func setupCLIEnvBinding(v *viper.Viper) {
	v.SetEnvPrefix("RASTREIO")
	v.AutomaticEnv()

	envBindings := map[string]string{
		"server_url":      "RASTREIO_SERVER",
		"format":          "RASTREIO_FORMAT",
		"quiet":           "RASTREIO_QUIET",
		"no_color":        "RASTREIO_NO_COLOR",
		"request_timeout": "RASTREIO_TIMEOUT",
	}
	for configKey, envVar := range envBindings {
		v.BindEnv(configKey, envVar)
	}

	// Honor the conventional NO_COLOR variable as well
	v.BindEnv("no_color", "NO_COLOR")
}

// loadCLIConfigFile loads the configuration file if one exists
func loadCLIConfigFile(v *viper.Viper) error {
	if v.ConfigFileUsed() == "" {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME")
		v.SetConfigName("rastreio")
	}

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return err
		}
	}

	return nil
}
