package config

const (
	EnvMongoURI          = "MONGO_URI"
	EnvMongoDatabaseName = "MONGO_DATABASE_NAME"
	EnvMongoConnTimeout  = "MONGO_CONN_TIMEOUT"

	EnvPort     = "PORT"
	EnvLogLevel = "LOG_LEVEL"

	EnvLogFile       = "LOG_FILE"
	EnvLogMaxSizeMB  = "LOG_MAX_SIZE_MB"
	EnvLogMaxBackups = "LOG_MAX_BACKUPS"
	EnvLogMaxAgeDays = "LOG_MAX_AGE_DAYS"

	EnvRateLimitRequests = "RATE_LIMIT_REQUESTS"
	EnvRateLimitWindow   = "RATE_LIMIT_WINDOW"

	EnvRequestTimeout = "REQUEST_TIMEOUT"
	EnvIdempotencyTTL = "IDEMPOTENCY_TTL"
	EnvMaxRequestSize = "MAX_REQUEST_SIZE"

	EnvReadTimeout     = "READ_TIMEOUT"
	EnvWriteTimeout    = "WRITE_TIMEOUT"
	EnvIdleTimeout     = "IDLE_TIMEOUT"
	EnvShutdownTimeout = "SHUTDOWN_TIMEOUT"

	EnvRedisURL = "REDIS_URL"

	EnvJWTSecret         = "JWT_SECRET"
	EnvTokenTTL          = "TOKEN_TTL"
	EnvAdminEmail        = "ADMIN_EMAIL"
	EnvAdminName         = "ADMIN_NAME"
	EnvAdminPasswordHash = "ADMIN_PASSWORD_HASH"

	EnvHotelTimezone = "HOTEL_TIMEZONE"
	EnvPhoneRegion   = "PHONE_REGION"

	EnvBookingLockEnabled = "BOOKING_LOCK_ENABLED"
	EnvBookingLockTTL     = "BOOKING_LOCK_TTL"

	EnvSMTPHost     = "SMTP_HOST"
	EnvSMTPPort     = "SMTP_PORT"
	EnvSMTPUsername = "SMTP_USERNAME"
	EnvSMTPPassword = "SMTP_PASSWORD"
	EnvMailFrom     = "FROM_EMAIL"
	EnvContactInbox = "CONTACT_EMAIL"

	EnvKafkaEnabled            = "KAFKA_ENABLED"
	EnvReservationTopic        = "KAFKA_RESERVATION_TOPIC"
	EnvReservationDLQTopic     = "KAFKA_RESERVATION_DLQ_TOPIC"
	EnvNotifierConsumerGroupID = "KAFKA_NOTIFIER_GROUP_ID"
)
