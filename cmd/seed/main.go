package main

import (
	"context"
	"time"

	"fullmoon/internal/rooms/repository"
	"fullmoon/internal/rooms/seed"
	"fullmoon/pkg/config"
)

const JobName = "seed-rooms"

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	cfg := config.Load(JobName)
	cfg.SetMongo()
	defer cfg.GracefulShutdown()

	n, err := seed.Run(ctx, repository.NewMongoRoomRepository(cfg), cfg.Log)
	if err != nil {
		cfg.Log.Error("Seeding failed", "error", err)
		return
	}
	cfg.Log.Info("Seeding completed", "rooms", n, "database", cfg.MongoDatabaseName)
}
