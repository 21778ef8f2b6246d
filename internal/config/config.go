package config

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config gathers the process configuration, loaded from the environment.
type Config struct {
	// HTTPAddr is the listen address of the HTTP facade.
	HTTPAddr string `env:"HTTP_ADDR" envDefault:":8080"`

	// LogLevel is the logrus level name.
	LogLevel string `env:"LOG_LEVEL" envDefault:"debug"`

	// PubSubProjectID is the pubsub project hosting the notification topic.
	PubSubProjectID string `env:"PUBSUB_PROJECT_ID" envDefault:"eventia"`

	// NotificationTopicID is the outbound notification-event topic.
	NotificationTopicID string `env:"PUBSUB_NOTIFICATION_TOPIC" envDefault:"shared.eventia.NotificationEvents"`

	// NotificationSubscriptionID is the worker subscription on the topic.
	NotificationSubscriptionID string `env:"PUBSUB_NOTIFICATION_SUBSCRIPTION" envDefault:"worker.eventia.notifications.sub"`

	// EmailDeliveryEnabled toggles publishing of email-flagged notifications.
	EmailDeliveryEnabled bool `env:"EMAIL_DELIVERY_ENABLED" envDefault:"false"`
}

// Load reads an optional .env file and parses the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug("no .env file found, using environment variables")
	}

	cfg, err := env.ParseAs[Config]()
	if err != nil {
		return nil, fmt.Errorf("error parsing environment: %w", err)
	}
	return &cfg, nil
}

// ParseLevel translates the configured log level, falling back to debug.
func (c *Config) ParseLevel() log.Level {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.DebugLevel
	}
	return level
}
