// Package kafka_config holds the broker settings shared by the hotel API's
// reservation producer and the notifier's consumer.
package kafka_config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"fullmoon/pkg/logger"

	"github.com/go-playground/validator/v10"
)

type Config struct {
	Brokers []string `validate:"required,min=1,dive,hostname_port"`

	ProducerMaxAttempts  int           `validate:"gt=0"`
	ProducerBatchTimeout time.Duration `validate:"gt=0"`
	ProducerRequireAcks  int           `validate:"oneof=-1 0 1"`
	ProducerCompression  string        `validate:"oneof=none gzip snappy lz4 zstd"`

	// -1 newest, -2 oldest
	ConsumerStartOffset       int64         `validate:"oneof=-1 -2"`
	ConsumerMinBytes          int           `validate:"gt=0"`
	ConsumerMaxBytes          int           `validate:"gtefield=ConsumerMinBytes"`
	ConsumerMaxWait           time.Duration `validate:"gt=0"`
	ConsumerCommitInterval    time.Duration `validate:"gt=0"`
	ConsumerHeartbeatInterval time.Duration `validate:"gt=0"`
	ConsumerSessionTimeout    time.Duration `validate:"gtfield=ConsumerHeartbeatInterval"`
	ConsumerRebalanceTimeout  time.Duration `validate:"gt=0"`
	ConsumerMaxRetries        int           `validate:"gte=0"`
	ConsumerRetryDelay        time.Duration `validate:"gte=0"`

	EnableMiddleware bool
}

func Load() (*Config, error) {
	cfg := &Config{
		Brokers: splitBrokers(getEnvStr(EnvKafkaBrokers, DefaultKafkaBrokers)),

		ProducerMaxAttempts:  getEnvInt(EnvProducerMaxAttempts, DefaultProducerMaxAttempts),
		ProducerBatchTimeout: getEnvDuration(EnvProducerBatchTimeout, DefaultProducerBatchTimeout),
		ProducerRequireAcks:  getEnvInt(EnvProducerRequireAcks, DefaultProducerRequireAcks),
		ProducerCompression:  strings.ToLower(getEnvStr(EnvProducerCompression, DefaultProducerCompression)),

		ConsumerStartOffset:       int64(getEnvInt(EnvConsumerStartOffset, DefaultConsumerStartOffset)),
		ConsumerMinBytes:          getEnvInt(EnvConsumerMinBytes, DefaultConsumerMinBytes),
		ConsumerMaxBytes:          getEnvInt(EnvConsumerMaxBytes, DefaultConsumerMaxBytes),
		ConsumerMaxWait:           getEnvDuration(EnvConsumerMaxWait, DefaultConsumerMaxWait),
		ConsumerCommitInterval:    getEnvDuration(EnvConsumerCommitInterval, DefaultConsumerCommitInterval),
		ConsumerHeartbeatInterval: getEnvDuration(EnvConsumerHeartbeatInterval, DefaultConsumerHeartbeatInterval),
		ConsumerSessionTimeout:    getEnvDuration(EnvConsumerSessionTimeout, DefaultConsumerSessionTimeout),
		ConsumerRebalanceTimeout:  getEnvDuration(EnvConsumerRebalanceTimeout, DefaultConsumerRebalanceTimeout),
		ConsumerMaxRetries:        getEnvInt(EnvConsumerMaxRetries, DefaultConsumerMaxRetries),
		ConsumerRetryDelay:        getEnvDuration(EnvConsumerRetryDelay, DefaultConsumerRetryDelay),

		EnableMiddleware: getEnvBool(EnvEnableMiddleware, DefaultEnableMiddleware),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate reports every invalid setting at once, numbered.
func (cfg *Config) Validate() error {
	err := validator.New().Struct(cfg)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	var b strings.Builder
	b.WriteString("Kafka configuration validation failed:\n")
	for i, fe := range fieldErrs {
		fmt.Fprintf(&b, "  %d. %s failed %q (got: %v)\n", i+1, fe.Namespace(), describeTag(fe), fe.Value())
	}
	return errors.New(b.String())
}

func describeTag(fe validator.FieldError) string {
	if fe.Param() == "" {
		return fe.Tag()
	}
	return fe.Tag() + "=" + fe.Param()
}

func (cfg *Config) LogConfiguration(log *logger.Logger) {
	log.Info("Kafka configuration loaded successfully",
		"brokers", cfg.Brokers,
		"producer_max_attempts", cfg.ProducerMaxAttempts,
		"producer_require_acks", cfg.ProducerRequireAcks,
		"producer_compression", cfg.ProducerCompression,
		"consumer_start_offset", cfg.ConsumerStartOffset,
		"consumer_session_timeout", cfg.ConsumerSessionTimeout,
		"consumer_max_retries", cfg.ConsumerMaxRetries,
		"consumer_retry_delay", cfg.ConsumerRetryDelay,
		"enable_middleware", cfg.EnableMiddleware,
	)
}

func splitBrokers(raw string) []string {
	var brokers []string
	for _, broker := range strings.Split(raw, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return value
	}
	return fallback
}
