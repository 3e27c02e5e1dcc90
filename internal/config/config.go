package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Telegram TelegramConfig `yaml:"telegram"`
	YouTube  YouTubeConfig  `yaml:"youtube"`
	Download DownloadConfig `yaml:"download"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host        string        `yaml:"host" envconfig:"SERVER_HOST" default:"0.0.0.0"`
	Port        int           `yaml:"port" envconfig:"SERVER_PORT" default:"8000"`
	ReadTimeout time.Duration `yaml:"read_timeout" envconfig:"SERVER_READ_TIMEOUT" default:"30s"`
	// WriteTimeout is unlimited by default: the url-upload route blocks for the
	// full fetch and chunked upload, which carry no deadline of their own.
	WriteTimeout time.Duration `yaml:"write_timeout" envconfig:"SERVER_WRITE_TIMEOUT" default:"0"`
}

// TelegramConfig holds bot credentials and webhook settings.
type TelegramConfig struct {
	BotToken      string `yaml:"bot_token" envconfig:"TELEGRAM_BOT_TOKEN"`
	WebhookSecret string `yaml:"webhook_secret" envconfig:"WEBHOOK_SECRET_TOKEN"`
	PublicBaseURL string `yaml:"public_base_url" envconfig:"PUBLIC_BASE_URL"`
	// RenderExternalURL is injected by the Render platform and used as a
	// fallback when PUBLIC_BASE_URL is not set explicitly.
	RenderExternalURL string `yaml:"-" envconfig:"RENDER_EXTERNAL_URL"`
}

// YouTubeConfig holds the long-lived upload credentials. They are optional at
// startup; the upload endpoints validate them before doing any work.
type YouTubeConfig struct {
	ClientID     string `yaml:"client_id" envconfig:"YT_CLIENT_ID"`
	ClientSecret string `yaml:"client_secret" envconfig:"YT_CLIENT_SECRET"`
	RefreshToken string `yaml:"refresh_token" envconfig:"YT_REFRESH_TOKEN"`
}

// DownloadConfig holds media download configuration.
type DownloadConfig struct {
	YtDlpPath  string `yaml:"yt_dlp_path" envconfig:"YT_DLP_PATH" default:"yt-dlp"`
	TempPrefix string `yaml:"temp_prefix" envconfig:"DOWNLOAD_TEMP_PREFIX" default:"content-snatcher-"`
}

// Load reads configuration from an optional YAML file and the environment.
// Environment variables override file values.
func Load(configPath string) (*Config, error) {
	cfg := &Config{}

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config file: %w", err)
		}
	}

	if err := envconfig.Process("", cfg); err != nil {
		return nil, fmt.Errorf("process environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}

	return cfg, nil
}

// Validate checks that required configuration values are set.
func (c *Config) Validate() error {
	if c.Telegram.BotToken == "" {
		return fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}
	if c.Telegram.WebhookSecret == "" {
		return fmt.Errorf("WEBHOOK_SECRET_TOKEN is required")
	}
	return nil
}

// Address returns the server address in host:port format.
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// ResolvedPublicURL returns the externally reachable base URL, preferring the
// explicit PUBLIC_BASE_URL over the platform-provided fallback. Empty when
// neither is set, in which case webhook registration is skipped.
func (c *TelegramConfig) ResolvedPublicURL() string {
	url := c.PublicBaseURL
	if url == "" {
		url = c.RenderExternalURL
	}
	return strings.TrimRight(url, "/")
}

// Missing returns the names of unset credential variables, empty when the
// publisher is fully configured.
func (c *YouTubeConfig) Missing() []string {
	var missing []string
	if c.ClientID == "" {
		missing = append(missing, "YT_CLIENT_ID")
	}
	if c.ClientSecret == "" {
		missing = append(missing, "YT_CLIENT_SECRET")
	}
	if c.RefreshToken == "" {
		missing = append(missing, "YT_REFRESH_TOKEN")
	}
	return missing
}
