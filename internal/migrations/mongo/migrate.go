package mongo

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"fullmoon/internal/migrations/mongo/validators"
	"fullmoon/pkg/logger"
)

var (
	RoomsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "room_number", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_room_number"),
		},
		{Keys: bson.D{{Key: "available", Value: 1}, {Key: "type", Value: 1}}},
	}

	ReservationsIndexes = []mongo.IndexModel{
		{Keys: bson.D{
			{Key: "room_id", Value: 1},
			{Key: "check_in", Value: 1},
			{Key: "check_out", Value: 1},
			{Key: "status", Value: 1},
		}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "created_at", Value: -1}}},
	}

	BookingLocksIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "expires_at", Value: 1}},
			Options: options.Index().SetExpireAfterSeconds(0).SetName("ttl_expires_at"),
		},
		{Keys: bson.D{{Key: "owner", Value: 1}}},
	}

	BlogPostsIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "slug", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_slug"),
		},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "views", Value: -1}}},
		{Keys: bson.D{{Key: "category", Value: 1}, {Key: "published", Value: 1}}},
		{Keys: bson.D{{Key: "tags", Value: 1}}},
	}

	FacilitiesIndexes = []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_facility_name"),
		},
		{Keys: bson.D{{Key: "available", Value: 1}, {Key: "type", Value: 1}}},
	}

	FacilityBookingsIndexes = []mongo.IndexModel{
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "booking_date", Value: -1}}},
		{Keys: bson.D{{Key: "facility_id", Value: 1}, {Key: "booking_date", Value: 1}}},
	}
)

type CollectionDef struct {
	Name      string
	Indexes   []mongo.IndexModel
	Validator bson.M
}

// Collections lists every collection the hotel stores, in creation order.
func Collections() []CollectionDef {
	return []CollectionDef{
		{Name: "Rooms", Indexes: RoomsIndexes, Validator: validators.RoomValidator},
		{Name: "Reservations", Indexes: ReservationsIndexes, Validator: validators.ReservationValidator},
		{Name: "Booking_locks", Indexes: BookingLocksIndexes, Validator: validators.BookingLockValidator},
		{Name: "Blog_posts", Indexes: BlogPostsIndexes, Validator: validators.BlogPostValidator},
		{Name: "Facilities", Indexes: FacilitiesIndexes, Validator: validators.FacilityValidator},
		{Name: "Facility_bookings", Indexes: FacilityBookingsIndexes, Validator: validators.FacilityBookingValidator},
	}
}

func RunMigration(ctx context.Context, client *mongo.Client, dbName string, log *logger.Logger) error {
	db := client.Database(dbName)
	log.Info("Running Mongo migrations", "database", dbName)

	for _, def := range Collections() {
		if err := ensureCollection(ctx, db, def.Name, def.Validator, log); err != nil {
			return fmt.Errorf("failed to ensure collection %s: %w", def.Name, err)
		}
		if err := ensureIndexes(ctx, db, def.Name, def.Indexes, log); err != nil {
			return fmt.Errorf("failed to ensure indexes for %s: %w", def.Name, err)
		}
	}

	log.Info("All migrations applied successfully", "collections", len(Collections()))
	return nil
}

func ensureCollection(ctx context.Context, db *mongo.Database, name string, validator bson.M, log *logger.Logger) error {
	existing, err := db.ListCollectionNames(ctx, bson.D{{Key: "name", Value: name}})
	if err != nil {
		return err
	}

	if len(existing) == 0 {
		log.Info("Creating collection", "collection", name)
		opts := options.CreateCollection().SetValidator(validator)
		if err := db.CreateCollection(ctx, name, opts); err != nil {
			return fmt.Errorf("failed creating %s: %w", name, err)
		}
		return nil
	}

	log.Info("Collection already exists, updating validator", "collection", name)
	command := bson.D{
		{Key: "collMod", Value: name},
		{Key: "validator", Value: validator},
	}
	if err := db.RunCommand(ctx, command).Err(); err != nil {
		log.Warn("Failed updating validator", "collection", name, "error", err)
	}

	return nil
}

func ensureIndexes(ctx context.Context, db *mongo.Database, name string, models []mongo.IndexModel, log *logger.Logger) error {
	coll := db.Collection(name)
	if _, err := coll.Indexes().CreateMany(ctx, models); err != nil {
		return err
	}
	log.Info("Ensured indexes", "collection", name, "count", len(models))
	return nil
}
