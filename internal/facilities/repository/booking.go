package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	facilitieserrors "fullmoon/internal/facilities/errors"
	"fullmoon/pkg/config"
	mongotx "fullmoon/pkg/db/mongo"
	"fullmoon/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	BookingCollectionName = "Facility_bookings"
)

type BookingRepository interface {
	Create(ctx context.Context, booking *model.FacilityBooking) error
	FindByID(ctx context.Context, id string) (*model.FacilityBooking, error)
	FindByUser(ctx context.Context, userID string) ([]*model.FacilityBooking, error)
	UpdateStatus(ctx context.Context, id string, from, to model.FacilityBookingStatus) error
}

type mongoBookingRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoBookingRepository(cfg *config.Config) BookingRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingRepository{
		cfg:        cfg,
		collection: db.Collection(BookingCollectionName),
	}
}

func (r *mongoBookingRepository) Create(ctx context.Context, booking *model.FacilityBooking) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	booking.CreatedAt = now
	booking.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, booking)
	if err != nil {
		return fmt.Errorf("failed to create facility booking: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		booking.ID = oid.Hex()
	}
	return nil
}

func (r *mongoBookingRepository) FindByID(ctx context.Context, id string) (*model.FacilityBooking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	var booking model.FacilityBooking
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&booking); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, facilitieserrors.ErrBookingNotFound
		}
		return nil, fmt.Errorf("failed to find facility booking: %w", err)
	}
	return &booking, nil
}

// FindByUser returns the user's bookings, most recent booking date first.
func (r *mongoBookingRepository) FindByUser(ctx context.Context, userID string) ([]*model.FacilityBooking, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "booking_date", Value: -1}, {Key: "booking_time", Value: -1}})
	cursor, err := r.collection.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find facility bookings: %w", err)
	}
	defer cursor.Close(ctx)

	bookings := []*model.FacilityBooking{}
	if err = cursor.All(ctx, &bookings); err != nil {
		return nil, fmt.Errorf("failed to decode facility bookings: %w", err)
	}
	return bookings, nil
}

// UpdateStatus moves a booking from one status to another and reports
// ErrStatusChanged when the stored status is no longer from.
func (r *mongoBookingRepository) UpdateStatus(ctx context.Context, id string, from, to model.FacilityBookingStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": from}
	update := bson.M{"$set": bson.M{
		"status":     to,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update facility booking status: %w", err)
	}
	if result.MatchedCount == 0 {
		return facilitieserrors.ErrStatusChanged
	}
	return nil
}
