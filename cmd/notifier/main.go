package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"fullmoon/internal/notifier"
	"fullmoon/pkg/app"
	"fullmoon/pkg/config"
	"fullmoon/pkg/kafka"
	kafka_config "fullmoon/pkg/kafka/config"
	kafkamiddleware "fullmoon/pkg/kafka/middleware"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)
	defer cfg.GracefulShutdown()

	kafkaCfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kafkaCfg.LogConfiguration(cfg.Log)

	sink := notifier.NewMailSink(app.NewMailer(cfg), cfg.Currency, cfg.Log)
	consumer, err := kafka.NewConsumer(
		kafkaCfg,
		cfg.ReservationTopic,
		cfg.NotifierConsumerGroupID,
		cfg.ReservationDLQTopic,
		notifier.NewEventHandler(sink, cfg.Log),
		cfg.Log,
	)
	if err != nil {
		cfg.Log.Fatal("Failed to create reservation consumer", "error", err)
	}

	metrics := kafkamiddleware.NewMetrics()
	if kafkaCfg.EnableMiddleware {
		consumer.Use(kafkamiddleware.LoggingConsumerMiddleware(cfg.Log))
		consumer.Use(metrics.ConsumerMiddleware())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg.Log.Info("Notifier consuming reservation events",
		"topic", cfg.ReservationTopic,
		"group_id", cfg.NotifierConsumerGroupID,
	)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped unexpectedly", "error", err)
	}

	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close consumer", "error", err)
	}
	metrics.Log(cfg.Log)
	cfg.Log.Info("Notifier stopped")
}
