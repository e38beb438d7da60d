package repository

import (
	"context"
	"fmt"
	"time"

	bookingserrors "fullmoon/internal/bookings/errors"
	"fullmoon/pkg/config"
	mongotx "fullmoon/pkg/db/mongo"
	"fullmoon/pkg/model"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	LockCollectionName = "Booking_locks"
)

// BookingLockRepository provides operations for advisory locks
type BookingLockRepository interface {
	CreateAll(ctx context.Context, locks []*model.BookingLock) error
	DeleteByOwner(ctx context.Context, owner string) error
}

type mongoBookingLockRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

func NewBookingLockRepository(cfg *config.Config) BookingLockRepository {
	db := cfg.Client.Mongo.Client.Database(cfg.MongoDatabaseName)
	return &mongoBookingLockRepository{
		cfg:        cfg,
		collection: db.Collection(LockCollectionName),
	}
}

// CreateAll inserts the locks in order and stops at the first one already
// held, returning ErrLockHeld. Locks inserted before it stay in place; the
// caller releases them with DeleteByOwner.
func (r *mongoBookingLockRepository) CreateAll(ctx context.Context, locks []*model.BookingLock) error {
	if len(locks) == 0 {
		return nil
	}

	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	now := time.Now().UTC()
	docs := make([]interface{}, 0, len(locks))
	for _, lock := range locks {
		lock.CreatedAt = now
		docs = append(docs, lock)
	}

	_, err := r.collection.InsertMany(ctx, docs, options.InsertMany().SetOrdered(true))
	if err != nil {
		if mongotx.IsDuplicateKey(err) {
			return fmt.Errorf("%w: %s..%s", bookingserrors.ErrLockHeld, locks[0].ID, locks[len(locks)-1].ID)
		}
		return fmt.Errorf("failed to create booking locks: %w", err)
	}

	return nil
}

// DeleteByOwner removes every lock owner still holds; a lock that expired
// and was taken by another request is left alone.
func (r *mongoBookingLockRepository) DeleteByOwner(ctx context.Context, owner string) error {
	ctx, cancel := mongotx.WithTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	_, err := r.collection.DeleteMany(ctx, bson.M{"owner": owner})
	if err != nil {
		return fmt.Errorf("failed to delete booking locks: %w", err)
	}
	return nil
}
