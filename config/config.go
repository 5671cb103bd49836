package config

import (
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/robfig/cron/v3"

	"chat-cloud/renderers"
)

// Config enthält alle Konfigurationsparameter aus Umgebungsvariablen.
type Config struct {
	HTTPPort string `envconfig:"HTTP_PORT" default:"4242"`

	// Obergrenze für eine hochgeladene Datei in MB
	MaxUploadMB int64 `envconfig:"MAX_UPLOAD_MB" default:"32"`

	DefaultRenderer   string `envconfig:"DEFAULT_RENDERER" default:"cloud"`
	BubbleLabels      bool   `envconfig:"BUBBLE_LABELS" default:"false"`
	CloudHoverTooltip bool   `envconfig:"CLOUD_HOVER_TOOLTIP" default:"false"`

	// Facebook-Exporte kodieren UTF-8 doppelt
	RepairMojibake bool `envconfig:"REPAIR_MOJIBAKE" default:"true"`

	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"2h"`
	// Cron-Ausdruck für das Abräumen abgelaufener Sitzungen
	SessionSweepSchedule string `envconfig:"SESSION_SWEEP_SCHEDULE" default:"@every 5m"`

	// Schützt /api, leer = ohne Schutz
	APISecretKey string `envconfig:"API_SECRET_KEY"`
}

// Load lädt die Konfiguration aus den Umgebungsvariablen.
func Load() (*Config, error) {
	_ = godotenv.Load()
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return nil, err
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate prüft Werte, die envconfig nicht abdecken kann.
func (c *Config) Validate() error {
	if _, err := renderers.ParseKind(c.DefaultRenderer); err != nil {
		return fmt.Errorf("DEFAULT_RENDERER: %w", err)
	}
	if c.MaxUploadMB <= 0 {
		return fmt.Errorf("MAX_UPLOAD_MB must be positive, got %d", c.MaxUploadMB)
	}
	if _, err := cron.ParseStandard(c.SessionSweepSchedule); err != nil {
		return fmt.Errorf("SESSION_SWEEP_SCHEDULE: %w", err)
	}
	if c.HTTPPort == "" {
		return fmt.Errorf("HTTP_PORT must not be empty")
	}
	return nil
}

// DefaultKind liefert die Startdarstellung neuer Sitzungen.
func (c *Config) DefaultKind() renderers.Kind {
	kind, err := renderers.ParseKind(c.DefaultRenderer)
	if err != nil {
		return renderers.KindCloud
	}
	return kind
}

// MaxUploadBytes liefert die Upload-Grenze in Bytes.
func (c *Config) MaxUploadBytes() int64 {
	return c.MaxUploadMB << 20
}
