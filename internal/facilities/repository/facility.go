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
	CollectionName = "Facilities"
)

var byName = bson.D{{Key: "name", Value: 1}}

type FacilityRepository interface {
	Create(ctx context.Context, facility *model.Facility) error
	FindByID(ctx context.Context, id string) (*model.Facility, error)
	FindAvailable(ctx context.Context) ([]*model.Facility, error)
	FindAvailableByType(ctx context.Context, facilityType model.FacilityType) ([]*model.Facility, error)
	FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error)
	Update(ctx context.Context, id string, facility *model.Facility) error
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) (int64, error)
}

type mongoFacilityRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewMongoFacilityRepository(cfg *config.Config) FacilityRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoFacilityRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoFacilityRepository) Create(ctx context.Context, facility *model.Facility) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	facility.CreatedAt = now
	facility.UpdatedAt = now

	result, err := r.collection.InsertOne(ctx, facility)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", facilitieserrors.ErrDuplicateName, facility.Name)
		}
		return fmt.Errorf("failed to create facility: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		facility.ID = oid.Hex()
	}
	return nil
}

func (r *mongoFacilityRepository) FindByID(ctx context.Context, id string) (*model.Facility, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	var facility model.Facility
	if err := r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&facility); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, facilitieserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find facility: %w", err)
	}
	return &facility, nil
}

func (r *mongoFacilityRepository) FindAvailable(ctx context.Context) ([]*model.Facility, error) {
	return r.find(ctx, bson.M{"available": true}, options.Find().SetSort(byName))
}

func (r *mongoFacilityRepository) FindAvailableByType(ctx context.Context, facilityType model.FacilityType) ([]*model.Facility, error) {
	filter := bson.M{
		"available": true,
		"type":      facilityType,
	}
	return r.find(ctx, filter, options.Find().SetSort(byName))
}

func (r *mongoFacilityRepository) FindAll(ctx context.Context, limit int, offset int64) ([]*model.Facility, error) {
	opts := options.Find().SetSort(byName).SetLimit(int64(limit)).SetSkip(offset)
	return r.find(ctx, bson.M{}, opts)
}

func (r *mongoFacilityRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions) ([]*model.Facility, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find facilities: %w", err)
	}
	defer cursor.Close(ctx)

	facilities := []*model.Facility{}
	if err = cursor.All(ctx, &facilities); err != nil {
		return nil, fmt.Errorf("failed to decode facilities: %w", err)
	}
	return facilities, nil
}

func (r *mongoFacilityRepository) Update(ctx context.Context, id string, facility *model.Facility) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	facility.UpdatedAt = time.Now().UTC().Truncate(time.Millisecond)
	update := bson.M{
		"$set": bson.M{
			"name":              facility.Name,
			"type":              facility.Type,
			"description":       facility.Description,
			"short_description": facility.ShortDescription,
			"image":             facility.Image,
			"capacity":          facility.Capacity,
			"operating_hours":   facility.OperatingHours,
			"price_per_hour":    facility.PricePerHour,
			"max_guests":        facility.MaxGuests,
			"bookable":          facility.Bookable,
			"featured":          facility.Featured,
			"available":         facility.Available,
			"amenities":         facility.Amenities,
			"rules":             facility.Rules,
			"updated_at":        facility.UpdatedAt,
		},
	}

	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": objectID}, update)
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s", facilitieserrors.ErrDuplicateName, facility.Name)
		}
		return fmt.Errorf("failed to update facility: %w", err)
	}
	if result.MatchedCount == 0 {
		return facilitieserrors.ErrNotFound
	}
	return nil
}

func (r *mongoFacilityRepository) Delete(ctx context.Context, id string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", facilitieserrors.ErrInvalidID, id)
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return fmt.Errorf("failed to delete facility: %w", err)
	}
	if result.DeletedCount == 0 {
		return facilitieserrors.ErrNotFound
	}
	return nil
}

func (r *mongoFacilityRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("failed to count facilities: %w", err)
	}
	return count, nil
}
