package config

import (
	"errors"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/librix/invoicing/internal/types"
	"github.com/spf13/viper"
)

type Configuration struct {
	Logging LoggingConfig `validate:"required"`
	Storage StorageConfig `validate:"required"`
	Event   EventConfig   `validate:"required"`
	Kafka   KafkaConfig
}

type LoggingConfig struct {
	Level types.LogLevel `validate:"required"`
}

// StorageConfig points at the remote storage service holding invoices,
// invoice lines and line number sequences.
type StorageConfig struct {
	BaseURL string        `mapstructure:"base_url" validate:"required"`
	Timeout time.Duration `validate:"required"`
}

type EventConfig struct {
	// Topic carries the invoice totals recalculation events
	Topic       string                 `validate:"required"`
	Destination types.EventDestination `validate:"required"`

	// Retry settings for the consumer side router
	MaxRetries      int           `mapstructure:"max_retries"`
	InitialInterval time.Duration `mapstructure:"initial_interval"`
	MaxInterval     time.Duration `mapstructure:"max_interval"`
	Multiplier      float64
	MaxElapsedTime  time.Duration `mapstructure:"max_elapsed_time"`
}

type KafkaConfig struct {
	Brokers       []string
	ConsumerGroup string   `mapstructure:"consumer_group"`
	ClientID      string   `mapstructure:"client_id"`
	TLS           bool
	UseSASL       bool     `mapstructure:"use_sasl"`
	SASLMechanism string   `mapstructure:"sasl_mechanism"`
	SASLUser      string   `mapstructure:"sasl_user"`
	SASLPassword  string   `mapstructure:"sasl_password"`
}

func NewConfig() (*Configuration, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/invoicing")

	v.SetEnvPrefix("INVOICING")
	v.SetEnvKeyReplacer(strings.NewReplacer(
		".", "_",
		"-", "_",
	))
	v.AutomaticEnv()

	v.SetDefault("logging.level", string(types.LogLevelInfo))
	v.SetDefault("storage.timeout", 30*time.Second)
	v.SetDefault("event.topic", "invoice.totals")
	v.SetDefault("event.destination", string(types.EventDestinationMemory))
	v.SetDefault("event.max_retries", 3)
	v.SetDefault("event.initial_interval", time.Second)
	v.SetDefault("event.max_interval", 30*time.Second)
	v.SetDefault("event.multiplier", 2.0)
	v.SetDefault("event.max_elapsed_time", 2*time.Minute)

	if err := v.ReadInConfig(); err != nil {
		if !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, err
		}
	}

	var config Configuration
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return &config, nil
}

func (c Configuration) Validate() error {
	validate := validator.New()
	if err := validate.Struct(c); err != nil {
		return err
	}
	if err := c.Logging.Level.Validate(); err != nil {
		return err
	}
	if err := c.Event.Destination.Validate(); err != nil {
		return err
	}
	if c.Event.Destination == types.EventDestinationKafka && len(c.Kafka.Brokers) == 0 {
		return errors.New("kafka brokers are required when the event destination is kafka")
	}
	return nil
}

// GetDefaultConfig returns a default configuration for tests and
// non-server entry points.
func GetDefaultConfig() *Configuration {
	return &Configuration{
		Logging: LoggingConfig{Level: types.LogLevelInfo},
		Storage: StorageConfig{
			BaseURL: "http://localhost:9130",
			Timeout: 30 * time.Second,
		},
		Event: EventConfig{
			Topic:           "invoice.totals",
			Destination:     types.EventDestinationMemory,
			MaxRetries:      3,
			InitialInterval: time.Second,
			MaxInterval:     30 * time.Second,
			Multiplier:      2.0,
			MaxElapsedTime:  2 * time.Minute,
		},
	}
}
