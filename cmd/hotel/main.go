package main

import (
	authhandler "fullmoon/internal/auth/handler"
	authservice "fullmoon/internal/auth/service"
	bloghandler "fullmoon/internal/blog/handler"
	blogrepository "fullmoon/internal/blog/repository"
	blogservice "fullmoon/internal/blog/service"
	blogvalidator "fullmoon/internal/blog/validator"
	bookingshandler "fullmoon/internal/bookings/handler"
	bookingsrepository "fullmoon/internal/bookings/repository"
	bookingsservice "fullmoon/internal/bookings/service"
	bookingsvalidator "fullmoon/internal/bookings/validator"
	contacthandler "fullmoon/internal/contact/handler"
	contactservice "fullmoon/internal/contact/service"
	dashboardhandler "fullmoon/internal/dashboard/handler"
	dashboardservice "fullmoon/internal/dashboard/service"
	facilitieshandler "fullmoon/internal/facilities/handler"
	facilitiesrepository "fullmoon/internal/facilities/repository"
	facilitiesservice "fullmoon/internal/facilities/service"
	facilitiesvalidator "fullmoon/internal/facilities/validator"
	"fullmoon/internal/notifier"
	roomshandler "fullmoon/internal/rooms/handler"
	roomsrepository "fullmoon/internal/rooms/repository"
	roomsservice "fullmoon/internal/rooms/service"
	roomsvalidator "fullmoon/internal/rooms/validator"
	"fullmoon/pkg/app"
	"fullmoon/pkg/auth"
	"fullmoon/pkg/config"
	"fullmoon/pkg/contracts"
	"fullmoon/pkg/kafka"
	kafka_config "fullmoon/pkg/kafka/config"
	kafkamiddleware "fullmoon/pkg/kafka/middleware"
	"fullmoon/pkg/mail"
)

const ServiceName = "hotel"

func main() {
	cfg := config.Load(ServiceName)
	cfg.SetMongo()
	cfg.SetRedis()
	defer cfg.GracefulShutdown()

	cfg.Log.Info("Starting Full Moon hotel service")

	var tokens *auth.TokenIssuer
	if cfg.JWTSecret != "" {
		tokens = auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL)
	} else {
		cfg.Log.Warn("JWT_SECRET not set, admin endpoints will reject every request")
	}

	serverApp := app.NewApplication(cfg, tokens)
	mailer := app.NewMailer(cfg)
	events := initEventSink(cfg, serverApp, mailer)

	serverApp.SetApp(initHandlers(cfg, tokens, mailer, events)...)
	serverApp.Run()
}

// initEventSink publishes reservation events to Kafka when enabled and
// otherwise mails the guest in-process.
func initEventSink(cfg *config.Config, serverApp *app.Application, mailer mail.Mailer) bookingsservice.EventSink {
	if !cfg.KafkaEnabled {
		cfg.Log.Info("Kafka disabled, reservation emails are sent in-process")
		return notifier.NewMailSink(mailer, cfg.Currency, cfg.Log)
	}

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	producer, err := kafka.NewProducer(kafkaCfg, cfg.ReservationTopic, cfg.ReservationDLQTopic, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create reservation producer", "error", err)
	}
	if kafkaCfg.EnableMiddleware {
		metrics := kafkamiddleware.NewMetrics()
		producer.Use(kafkamiddleware.LoggingProducerMiddleware(cfg.Log))
		producer.Use(metrics.ProducerMiddleware())
		serverApp.OnShutdown(metricsReporter{metrics: metrics, cfg: cfg})
	}
	serverApp.OnShutdown(producer)

	cfg.Log.Info("Reservation events published to Kafka", "topic", producer.Topic())
	return notifier.NewKafkaSink(producer, ServiceName, cfg.Log)
}

func initHandlers(cfg *config.Config, tokens *auth.TokenIssuer, mailer mail.Mailer, events bookingsservice.EventSink) []contracts.Handler {
	roomRepo := roomsrepository.NewMongoRoomRepository(cfg)
	reservationRepo := bookingsrepository.NewMongoReservationRepository(cfg)
	postRepo := blogrepository.NewMongoPostRepository(cfg)
	facilityRepo := facilitiesrepository.NewMongoFacilityRepository(cfg)
	facilityValidator := facilitiesvalidator.NewFacilityValidator(cfg.Log)

	roomService := roomsservice.NewRoomService(roomRepo, roomsvalidator.NewRoomValidator(cfg.Log), cfg)
	bookingService := bookingsservice.NewBookingService(
		reservationRepo,
		bookingsrepository.NewBookingLockRepository(cfg),
		roomRepo,
		bookingsvalidator.NewBookingValidator(cfg.Log),
		events,
		cfg,
	)
	postService := blogservice.NewPostService(postRepo, blogvalidator.NewPostValidator(cfg.Log), cfg)
	facilityService := facilitiesservice.NewFacilityService(facilityRepo, facilityValidator, cfg)
	facilityBookingService := facilitiesservice.NewBookingService(
		facilitiesrepository.NewMongoBookingRepository(cfg),
		facilityRepo,
		facilityValidator,
		cfg,
	)
	dashboardService := dashboardservice.NewDashboardService(roomRepo, reservationRepo, postRepo, cfg)

	handlers := []contracts.Handler{
		roomshandler.NewRoomHandler(roomService, cfg.Log),
		bookingshandler.NewBookingHandler(bookingService, cfg.Log),
		bloghandler.NewPostHandler(postService, cfg.Log),
		facilitieshandler.NewFacilityHandler(facilityService, cfg.Log),
		facilitieshandler.NewBookingHandler(facilityBookingService, cfg.Log),
		contacthandler.NewContactHandler(contactservice.NewContactService(mailer, cfg), cfg.Log),
		dashboardhandler.NewDashboardHandler(dashboardService, cfg.Log),
	}
	if tokens != nil {
		handlers = append(handlers, authhandler.NewLoginHandler(authservice.NewLoginService(tokens, cfg), cfg.Log))
	}

	cfg.Log.Info("Hotel services initialized", "database", cfg.MongoDatabaseName)
	return handlers
}

type metricsReporter struct {
	metrics *kafkamiddleware.Metrics
	cfg     *config.Config
}

func (r metricsReporter) Close() error {
	r.metrics.Log(r.cfg.Log)
	return nil
}
