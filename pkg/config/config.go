package config

import (
	"fmt"
	"net/mail"
	"os"
	"regexp"
	"strconv"
	"strings"
	"time"

	"fullmoon/pkg/client"
	"fullmoon/pkg/locale"
	"fullmoon/pkg/logger"

	"github.com/joho/godotenv"
)

type Config struct {
	MongoURI          string
	MongoDatabaseName string
	MongoConnTimeout  time.Duration

	Port string

	RateLimitRequests int
	RateLimitWindow   time.Duration

	RequestTimeout time.Duration
	IdempotencyTTL time.Duration
	MaxRequestSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration

	RedisURL string

	JWTSecret         string
	TokenTTL          time.Duration
	AdminEmail        string
	AdminName         string
	AdminPasswordHash string

	HotelTimezone string
	PhoneRegion   string
	Currency      string

	BookingLockEnabled bool
	BookingLockTTL     time.Duration

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string
	ContactInbox string

	KafkaEnabled            bool
	ReservationTopic        string
	ReservationDLQTopic     string
	NotifierConsumerGroupID string

	Log    *logger.Logger
	Client *client.Client

	location *time.Location
}

func Load(serviceName string) *Config {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := &Config{
		MongoURI:          getEnvStr(EnvMongoURI, DefaultMongoURI),
		MongoDatabaseName: getEnvStr(EnvMongoDatabaseName, DefaultMongoDatabaseName),
		MongoConnTimeout:  getEnvDuration(EnvMongoConnTimeout, DefaultMongoConnTimeout),

		Port: getEnvStr(EnvPort, DefaultPort),

		RateLimitRequests: getEnvNum(EnvRateLimitRequests, DefaultRateLimitRequests),
		RateLimitWindow:   getEnvDuration(EnvRateLimitWindow, DefaultRateLimitWindow),

		RequestTimeout: getEnvDuration(EnvRequestTimeout, DefaultRequestTimeout),
		IdempotencyTTL: getEnvDuration(EnvIdempotencyTTL, DefaultIdempotencyTTL),
		MaxRequestSize: getEnvNum(EnvMaxRequestSize, DefaultMaxRequestSize),

		ReadTimeout:     getEnvDuration(EnvReadTimeout, DefaultReadTimeout),
		WriteTimeout:    getEnvDuration(EnvWriteTimeout, DefaultWriteTimeout),
		IdleTimeout:     getEnvDuration(EnvIdleTimeout, DefaultIdleTimeout),
		ShutdownTimeout: getEnvDuration(EnvShutdownTimeout, DefaultShutdownTimeout),

		RedisURL: getEnvStr(EnvRedisURL, ""),

		JWTSecret:         getEnvStr(EnvJWTSecret, ""),
		TokenTTL:          getEnvDuration(EnvTokenTTL, DefaultTokenTTL),
		AdminEmail:        getEnvStr(EnvAdminEmail, DefaultAdminEmail),
		AdminName:         getEnvStr(EnvAdminName, DefaultAdminName),
		AdminPasswordHash: getEnvStr(EnvAdminPasswordHash, ""),

		HotelTimezone: getEnvStr(EnvHotelTimezone, DefaultHotelTimezone),
		PhoneRegion:   getEnvStr(EnvPhoneRegion, ""),

		BookingLockEnabled: getEnvBool(EnvBookingLockEnabled, DefaultBookingLockEnabled),
		BookingLockTTL:     getEnvDuration(EnvBookingLockTTL, DefaultBookingLockTTL),

		SMTPHost:     getEnvStr(EnvSMTPHost, ""),
		SMTPPort:     getEnvNum(EnvSMTPPort, DefaultSMTPPort),
		SMTPUsername: getEnvStr(EnvSMTPUsername, ""),
		SMTPPassword: getEnvStr(EnvSMTPPassword, ""),
		MailFrom:     getEnvStr(EnvMailFrom, DefaultContactInbox),
		ContactInbox: getEnvStr(EnvContactInbox, DefaultContactInbox),

		KafkaEnabled:            getEnvBool(EnvKafkaEnabled, DefaultKafkaEnabled),
		ReservationTopic:        getEnvStr(EnvReservationTopic, DefaultReservationTopic),
		ReservationDLQTopic:     getEnvStr(EnvReservationDLQTopic, DefaultReservationDLQTopic),
		NotifierConsumerGroupID: getEnvStr(EnvNotifierConsumerGroupID, DefaultNotifierConsumerGroupID),

		Log: logger.New(logger.Config{
			Level:      getEnvStr(EnvLogLevel, DefaultLogLevel),
			Format:     logger.JSON,
			AddSource:  true,
			Service:    serviceName,
			File:       getEnvStr(EnvLogFile, ""),
			MaxSizeMB:  getEnvNum(EnvLogMaxSizeMB, DefaultLogMaxSizeMB),
			MaxBackups: getEnvNum(EnvLogMaxBackups, DefaultLogMaxBackups),
			MaxAgeDays: getEnvNum(EnvLogMaxAgeDays, DefaultLogMaxAgeDays),
		}),
		Client: client.NewClient(),
	}

	if cfg.PhoneRegion == "" {
		cfg.PhoneRegion = locale.DetectRegion(cfg.HotelTimezone)
	}
	cfg.Currency = locale.CurrencyFor(cfg.PhoneRegion)

	if err := cfg.Validate(); err != nil {
		cfg.Log.Fatal(err.Error())
	}
	cfg.LogConfiguration()
	return cfg
}

func (cfg *Config) SetMongo() {
	cfg.Client.SetMongo(cfg.Log, cfg.MongoURI, cfg.MongoConnTimeout)
}

// SetRedis connects only when REDIS_URL is configured.
func (cfg *Config) SetRedis() {
	if cfg.RedisURL == "" {
		return
	}
	cfg.Client.SetRedis(cfg.Log, cfg.RedisURL, cfg.MongoConnTimeout)
}

func (cfg *Config) Validate() error {
	var errors []string

	if port, err := strconv.Atoi(cfg.Port); err != nil || port < 1 || port > 65535 {
		errors = append(errors, fmt.Sprintf("Port must be between 1 and 65535, got: %s", cfg.Port))
	}

	if cfg.MongoURI == "" {
		errors = append(errors, "MongoURI cannot be empty")
	} else if len(cfg.MongoURI) < 10 || !regexp.MustCompile(`^mongodb(\+srv)?://`).MatchString(cfg.MongoURI) {
		errors = append(errors, fmt.Sprintf("MongoURI must start with 'mongodb://' or 'mongodb+srv://', got: %s", redactMongoURI(cfg.MongoURI)))
	}

	if cfg.MongoDatabaseName == "" {
		errors = append(errors, "MongoDatabaseName cannot be empty")
	}

	if cfg.MongoConnTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("MongoConnTimeout must be positive, got: %s", cfg.MongoConnTimeout))
	}
	if cfg.RateLimitWindow <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitWindow must be positive, got: %s", cfg.RateLimitWindow))
	}
	if cfg.RequestTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("RequestTimeout must be positive, got: %s", cfg.RequestTimeout))
	}
	if cfg.IdempotencyTTL <= 0 {
		errors = append(errors, fmt.Sprintf("IdempotencyTTL must be positive, got: %s", cfg.IdempotencyTTL))
	}
	if cfg.ReadTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ReadTimeout must be positive, got: %s", cfg.ReadTimeout))
	}
	if cfg.WriteTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("WriteTimeout must be positive, got: %s", cfg.WriteTimeout))
	}
	if cfg.IdleTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("IdleTimeout must be positive, got: %s", cfg.IdleTimeout))
	}
	if cfg.ShutdownTimeout <= 0 {
		errors = append(errors, fmt.Sprintf("ShutdownTimeout must be positive, got: %s", cfg.ShutdownTimeout))
	}

	if cfg.RateLimitRequests <= 0 {
		errors = append(errors, fmt.Sprintf("RateLimitRequests must be positive, got: %d", cfg.RateLimitRequests))
	}
	if cfg.MaxRequestSize <= 0 {
		errors = append(errors, fmt.Sprintf("MaxRequestSize must be positive, got: %d", cfg.MaxRequestSize))
	}

	if cfg.RedisURL != "" && !regexp.MustCompile(`^rediss?://`).MatchString(cfg.RedisURL) {
		errors = append(errors, "RedisURL must start with 'redis://' or 'rediss://'")
	}

	if cfg.TokenTTL <= 0 {
		errors = append(errors, fmt.Sprintf("TokenTTL must be positive, got: %s", cfg.TokenTTL))
	}
	if cfg.JWTSecret != "" && len(cfg.JWTSecret) < 32 {
		errors = append(errors, "JWTSecret must be at least 32 characters long")
	}
	if _, err := mail.ParseAddress(cfg.AdminEmail); err != nil {
		errors = append(errors, fmt.Sprintf("AdminEmail must be a valid email address, got: %s", cfg.AdminEmail))
	}

	loc, err := time.LoadLocation(cfg.HotelTimezone)
	if err != nil {
		errors = append(errors, fmt.Sprintf("HotelTimezone must be a valid IANA timezone, got: %s", cfg.HotelTimezone))
	} else {
		cfg.location = loc
	}
	if !regexp.MustCompile(`^[A-Z]{2}$`).MatchString(cfg.PhoneRegion) {
		errors = append(errors, fmt.Sprintf("PhoneRegion must be an ISO 3166-1 alpha-2 code, got: %s", cfg.PhoneRegion))
	}

	if cfg.BookingLockTTL <= 0 {
		errors = append(errors, fmt.Sprintf("BookingLockTTL must be positive, got: %s", cfg.BookingLockTTL))
	}

	if cfg.SMTPHost != "" && (cfg.SMTPPort < 1 || cfg.SMTPPort > 65535) {
		errors = append(errors, fmt.Sprintf("SMTPPort must be between 1 and 65535, got: %d", cfg.SMTPPort))
	}

	if cfg.KafkaEnabled && cfg.ReservationTopic == "" {
		errors = append(errors, "ReservationTopic cannot be empty when Kafka is enabled")
	}

	if len(errors) > 0 {
		errMsg := "Configuration validation failed:\n"
		for i, err := range errors {
			errMsg += fmt.Sprintf("  %d. %s\n", i+1, err)
		}
		return fmt.Errorf("%s", errMsg)
	}

	return nil
}

func (cfg *Config) LogConfiguration() {
	cfg.Log.Info("Configuration loaded successfully",
		"mongo_uri", redactMongoURI(cfg.MongoURI),
		"mongo_database", cfg.MongoDatabaseName,
		"mongo_conn_timeout", cfg.MongoConnTimeout,
		"port", cfg.Port,
		"rate_limit_requests", cfg.RateLimitRequests,
		"rate_limit_window", cfg.RateLimitWindow,
		"request_timeout", cfg.RequestTimeout,
		"idempotency_ttl", cfg.IdempotencyTTL,
		"max_request_size", cfg.MaxRequestSize,
		"read_timeout", cfg.ReadTimeout,
		"write_timeout", cfg.WriteTimeout,
		"idle_timeout", cfg.IdleTimeout,
		"shutdown_timeout", cfg.ShutdownTimeout,
		"redis_enabled", cfg.RedisURL != "",
		"jwt_secret_set", cfg.JWTSecret != "",
		"token_ttl", cfg.TokenTTL,
		"admin_email", cfg.AdminEmail,
		"admin_password_set", cfg.AdminPasswordHash != "",
		"hotel_timezone", cfg.HotelTimezone,
		"phone_region", cfg.PhoneRegion,
		"currency", cfg.Currency,
		"booking_lock_enabled", cfg.BookingLockEnabled,
		"booking_lock_ttl", cfg.BookingLockTTL,
		"smtp_host", cfg.SMTPHost,
		"smtp_port", cfg.SMTPPort,
		"mail_from", cfg.MailFrom,
		"kafka_enabled", cfg.KafkaEnabled,
		"reservation_topic", cfg.ReservationTopic,
	)
}

// Location is the hotel's timezone; "today" for booking checks is computed in it.
func (cfg *Config) Location() *time.Location {
	if cfg.location != nil {
		return cfg.location
	}
	if loc, err := time.LoadLocation(cfg.HotelTimezone); err == nil && cfg.HotelTimezone != "" {
		cfg.location = loc
		return loc
	}
	return time.UTC
}

func (cfg *Config) MailEnabled() bool {
	return cfg.SMTPHost != ""
}

func redactMongoURI(uri string) string {
	credentialRegex := regexp.MustCompile(`(mongodb(\+srv)?://)[^:]+:[^@]+@`)
	return credentialRegex.ReplaceAllString(uri, "${1}***:***@")
}

func getEnvStr(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvNum(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(strings.TrimSpace(value)); err == nil {
			return b
		}
	}
	return fallback
}

func (cfg *Config) GracefulShutdown() {
	cfg.Client.GracefulShutdown(cfg.Log)
	cfg.Log.Close()
}

func NormalizePaginationLimit(limit int) int {
	if limit <= 0 {
		limit = 10
	} else if limit > DefaultPaginationLimit {
		limit = DefaultPaginationLimit
	}
	return limit
}

func NormalizeOffset(offset int64) int64 {
	return max(0, offset)
}
