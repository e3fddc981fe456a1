// Package config loads the service configuration from the environment.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"apichain/internal/logging"
)

// Config holds the configuration for the application.
type Config struct {
	HTTP struct {
		Port int
	}
	Log logging.Config
	Email struct {
		From     string
		To       string
		Server   string
		Port     int
		User     string
		Password string
	}
	Slack struct {
		WebhookURL string
	}
	Sheet struct {
		CredentialsFile string
		SpreadsheetID   string
	}
	Workflow struct {
		SeedURL        string
		MaxDepth       int
		IntervalSecs   int
		AlertThreshold float64
		BandLow        float64
		BandHigh       float64
		EndpointLow    string
		EndpointMid    string
		EndpointHigh   string
	}
	Metrics struct {
		OTLPEndpoint string
	}
}

// Load reads configuration from the environment, optionally seeding it from a
// dotenv file first. Every option has a default so a bare environment still
// yields a runnable (if useless) configuration.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if _, err := os.Stat(".env"); err == nil {
		// Best effort, mirrors the conventional local-dev setup.
		_ = godotenv.Load()
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("http_port", 8080)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "json")

	v.SetDefault("email_from", "workflow@domain.com")
	v.SetDefault("email_to", "client@domain.com")
	v.SetDefault("smtp_server", "smtp.domain.com")
	v.SetDefault("smtp_port", 587)
	v.SetDefault("smtp_user", "user")
	v.SetDefault("smtp_password", "password")

	v.SetDefault("slack_webhook", "https://hooks.slack.com/services/XXXXX/YYYYY/ZZZZZ")
	v.SetDefault("google_sheet_json", "credentials.json")
	v.SetDefault("sheet_name", "Sheet1")

	v.SetDefault("seed_url", "https://api.publicapis.org/random")
	v.SetDefault("max_depth", 5)
	v.SetDefault("interval", 60)
	v.SetDefault("alert_threshold", 1000)
	v.SetDefault("band_low", 50)
	v.SetDefault("band_high", 100)
	v.SetDefault("endpoint_low", "https://api.publicapis.org/entries")
	v.SetDefault("endpoint_mid", "https://api.coingecko.com/api/v3/simple/price?ids=bitcoin&vs_currencies=usd")
	v.SetDefault("endpoint_high", "https://api.exchangerate.host/latest")

	v.SetDefault("otlp_endpoint", "")

	var cfg Config
	cfg.HTTP.Port = v.GetInt("http_port")
	cfg.Log.Level = v.GetString("log_level")
	cfg.Log.Format = v.GetString("log_format")

	cfg.Email.From = v.GetString("email_from")
	cfg.Email.To = v.GetString("email_to")
	cfg.Email.Server = v.GetString("smtp_server")
	cfg.Email.Port = v.GetInt("smtp_port")
	cfg.Email.User = v.GetString("smtp_user")
	cfg.Email.Password = v.GetString("smtp_password")

	cfg.Slack.WebhookURL = v.GetString("slack_webhook")
	cfg.Sheet.CredentialsFile = v.GetString("google_sheet_json")
	cfg.Sheet.SpreadsheetID = v.GetString("sheet_name")

	cfg.Workflow.SeedURL = v.GetString("seed_url")
	cfg.Workflow.MaxDepth = v.GetInt("max_depth")
	cfg.Workflow.IntervalSecs = v.GetInt("interval")
	cfg.Workflow.AlertThreshold = v.GetFloat64("alert_threshold")
	cfg.Workflow.BandLow = v.GetFloat64("band_low")
	cfg.Workflow.BandHigh = v.GetFloat64("band_high")
	cfg.Workflow.EndpointLow = v.GetString("endpoint_low")
	cfg.Workflow.EndpointMid = v.GetString("endpoint_mid")
	cfg.Workflow.EndpointHigh = v.GetString("endpoint_high")

	cfg.Metrics.OTLPEndpoint = v.GetString("otlp_endpoint")

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Workflow.MaxDepth < 1 {
		return fmt.Errorf("MAX_DEPTH must be at least 1 (got %d)", c.Workflow.MaxDepth)
	}
	if c.Workflow.IntervalSecs < 1 {
		return fmt.Errorf("INTERVAL must be at least 1 second (got %d)", c.Workflow.IntervalSecs)
	}
	if c.Workflow.BandLow >= c.Workflow.BandHigh {
		return fmt.Errorf("BAND_LOW (%v) must be below BAND_HIGH (%v)", c.Workflow.BandLow, c.Workflow.BandHigh)
	}
	if c.HTTP.Port < 1 || c.HTTP.Port > 65535 {
		return fmt.Errorf("HTTP_PORT out of range: %d", c.HTTP.Port)
	}
	return nil
}
