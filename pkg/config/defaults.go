package config

import "time"

const (
	DefaultMongoURI          = "mongodb://localhost:27017"
	DefaultMongoDatabaseName = "fullmoonhotel"
	DefaultMongoConnTimeout  = 10 * time.Second

	DefaultPort     = "8080"
	DefaultLogLevel = "info"

	DefaultLogMaxSizeMB  = 100
	DefaultLogMaxBackups = 5
	DefaultLogMaxAgeDays = 28

	DefaultRateLimitRequests = 10
	DefaultRateLimitWindow   = 1 * time.Minute

	DefaultRequestTimeout = 30 * time.Second
	DefaultIdempotencyTTL = 24 * time.Hour
	DefaultMaxRequestSize = 1 * 1024 * 1024 // 1MB

	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultIdleTimeout     = 60 * time.Second
	DefaultShutdownTimeout = 30 * time.Second

	DefaultPaginationLimit = 100

	DefaultTokenTTL   = 12 * time.Hour
	DefaultAdminEmail = "admin@fullmoon.com"
	DefaultAdminName  = "Administrator"

	DefaultHotelTimezone = "Africa/Lagos"

	DefaultBookingLockEnabled = true
	DefaultBookingLockTTL     = 10 * time.Second

	DefaultSMTPPort     = 587
	DefaultContactInbox = "info@fullmoon-hotels.com"

	DefaultKafkaEnabled            = false
	DefaultReservationTopic        = "hotel.reservations"
	DefaultReservationDLQTopic     = "hotel.reservations.dlq"
	DefaultNotifierConsumerGroupID = "hotel-notifier"
)
