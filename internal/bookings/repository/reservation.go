package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingserrors "fullmoon/internal/bookings/errors"
	"fullmoon/pkg/config"
	mongotx "fullmoon/pkg/db/mongo"
	"fullmoon/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	CollectionName = "Reservations"
)

type mongoReservationRepository struct {
	cfg        *config.Config
	db         *mongo.Database
	collection *mongo.Collection
	txManager  mongotx.TransactionManager
}

type ReservationRepository interface {
	Create(ctx context.Context, reservation *model.Reservation) error
	FindByID(ctx context.Context, id string) (*model.Reservation, error)
	// FindOverlapping returns non-cancelled reservations whose stay
	// intersects [checkIn, checkOut), optionally scoped to one room.
	FindOverlapping(ctx context.Context, roomID *string, checkIn, checkOut time.Time) ([]*model.Reservation, error)
	FindAll(ctx context.Context, limit int, offset int64, status model.ReservationStatus) ([]*model.Reservation, error)
	Count(ctx context.Context, status model.ReservationStatus) (int64, error)
	CountByStatus(ctx context.Context) (map[model.ReservationStatus]int64, error)
	UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) error
	ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error
}

func NewMongoReservationRepository(cfg *config.Config) ReservationRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoReservationRepository{
		cfg:        cfg,
		db:         db,
		collection: db.Collection(CollectionName),
		txManager:  mongotx.NewTransactionManager(cfg.Client.Mongo.Client),
	}
}

// Create inserts with an ObjectID fixed before the write, so a retried
// transaction reinserts the same _id instead of the hex string left on
// reservation.ID by the previous attempt.
func (r *mongoReservationRepository) Create(ctx context.Context, reservation *model.Reservation) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC().Truncate(time.Millisecond)
	reservation.CreatedAt = now
	reservation.UpdatedAt = now

	doc, oid, err := reservationDocument(reservation)
	if err != nil {
		return err
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("failed to create reservation: %w", err)
	}

	reservation.ID = oid.Hex()
	return nil
}

// reservationDocument encodes the reservation with a typed ObjectID _id,
// reusing reservation.ID when it already holds one.
func reservationDocument(reservation *model.Reservation) (bson.M, primitive.ObjectID, error) {
	oid := primitive.NewObjectID()
	if reservation.ID != "" {
		parsed, err := primitive.ObjectIDFromHex(reservation.ID)
		if err != nil {
			return nil, primitive.NilObjectID, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, reservation.ID)
		}
		oid = parsed
	}

	raw, err := bson.Marshal(reservation)
	if err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("failed to encode reservation: %w", err)
	}
	var doc bson.M
	if err := bson.Unmarshal(raw, &doc); err != nil {
		return nil, primitive.NilObjectID, fmt.Errorf("failed to encode reservation: %w", err)
	}
	doc["_id"] = oid

	return doc, oid, nil
}

func (r *mongoReservationRepository) FindByID(ctx context.Context, id string) (*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	var reservation model.Reservation
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&reservation)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, bookingserrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find reservation: %w", err)
	}

	return &reservation, nil
}

func (r *mongoReservationRepository) FindOverlapping(ctx context.Context, roomID *string, checkIn, checkOut time.Time) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	filter := buildOverlapFilter(roomID, checkIn, checkOut)

	cursor, err := r.collection.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "check_in", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("failed to find overlapping reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

// buildOverlapFilter encodes existing.check_in < checkOut AND
// existing.check_out > checkIn over non-cancelled reservations.
func buildOverlapFilter(roomID *string, checkIn, checkOut time.Time) bson.M {
	filter := bson.M{
		"status":    bson.M{"$ne": model.ReservationCancelled},
		"check_in":  bson.M{"$lt": checkOut},
		"check_out": bson.M{"$gt": checkIn},
	}
	if roomID != nil {
		filter["room_id"] = *roomID
	}
	return filter
}

func (r *mongoReservationRepository) FindAll(ctx context.Context, limit int, offset int64, status model.ReservationStatus) ([]*model.Reservation, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(limit)).
		SetSkip(offset)

	cursor, err := r.collection.Find(ctx, statusFilter(status), opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find reservations: %w", err)
	}
	defer cursor.Close(ctx)

	reservations := []*model.Reservation{}
	if err = cursor.All(ctx, &reservations); err != nil {
		return nil, fmt.Errorf("failed to decode reservations: %w", err)
	}

	return reservations, nil
}

func statusFilter(status model.ReservationStatus) bson.M {
	if status == "" {
		return bson.M{}
	}
	return bson.M{"status": status}
}

func (r *mongoReservationRepository) Count(ctx context.Context, status model.ReservationStatus) (int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	count, err := r.collection.CountDocuments(ctx, statusFilter(status))
	if err != nil {
		return 0, fmt.Errorf("failed to count reservations: %w", err)
	}
	return count, nil
}

func (r *mongoReservationRepository) CountByStatus(ctx context.Context) (map[model.ReservationStatus]int64, error) {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.D{
			{Key: "_id", Value: "$status"},
			{Key: "count", Value: bson.D{{Key: "$sum", Value: 1}}},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate reservations: %w", err)
	}
	defer cursor.Close(ctx)

	var rows []struct {
		Status model.ReservationStatus `bson:"_id"`
		Count  int64                   `bson:"count"`
	}
	if err = cursor.All(ctx, &rows); err != nil {
		return nil, fmt.Errorf("failed to decode reservation counts: %w", err)
	}

	counts := make(map[model.ReservationStatus]int64, len(rows))
	for _, row := range rows {
		counts[row.Status] = row.Count
	}
	return counts, nil
}

// UpdateStatus moves a reservation from one status to another. It fails
// with ErrStatusChanged when the stored status is no longer from.
func (r *mongoReservationRepository) UpdateStatus(ctx context.Context, id string, from, to model.ReservationStatus) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return fmt.Errorf("%w: %s", bookingserrors.ErrInvalidID, id)
	}

	filter := bson.M{"_id": objectID, "status": from}
	update := bson.M{
		"$set": bson.M{
			"status":     to,
			"updated_at": time.Now().UTC().Truncate(time.Millisecond),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to update reservation status: %w", err)
	}
	if result.MatchedCount == 0 {
		return bookingserrors.ErrStatusChanged
	}

	return nil
}

func (r *mongoReservationRepository) ExecuteTransaction(ctx context.Context, fn mongotx.TransactionFunc) error {
	return r.txManager.ExecuteTransaction(ctx, fn)
}
