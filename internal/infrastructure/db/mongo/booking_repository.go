package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const collectionBookings = "bookings"

// BookingRepository implements ports.BookingRepository using MongoDB.
type BookingRepository struct {
	col *mongo.Collection
}

func NewBookingRepository(db *mongo.Database) *BookingRepository {
	return &BookingRepository{col: db.Collection(collectionBookings)}
}

// EnsureIndexes creates the list indexes and the idempotency key index.
func (r *BookingRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "provider_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}}},
		{
			Keys:    bson.D{{Key: "idempotency_key", Value: 1}},
			Options: options.Index().SetUnique(true).SetSparse(true),
		},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}

// Create inserts a new booking document.
func (r *BookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	b.ID = newID()
	if _, err := r.col.InsertOne(ctx, b); err != nil {
		b.ID = ""
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("insert booking: idempotency key reused: %w", domain.ErrInvalidInput)
		}
		return storeErr("insert booking", err)
	}
	return nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

// FindByIdempotencyKey retrieves an existing booking that was created with the given key.
func (r *BookingRepository) FindByIdempotencyKey(ctx context.Context, key string) (*domain.Booking, error) {
	return r.findOne(ctx, bson.M{"idempotency_key": key})
}

func (r *BookingRepository) findOne(ctx context.Context, filter bson.M) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var b domain.Booking
	if err := r.col.FindOne(ctx, filter).Decode(&b); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrBookingNotFound
		}
		return nil, storeErr("find booking", err)
	}
	return &b, nil
}

func (r *BookingRepository) ListByUser(ctx context.Context, userID string) ([]*domain.Booking, error) {
	return r.list(ctx, bson.M{"user_id": userID})
}

func (r *BookingRepository) ListByProvider(ctx context.Context, providerID string, statuses ...domain.BookingStatus) ([]*domain.Booking, error) {
	filter := bson.M{"provider_id": providerID}
	if len(statuses) > 0 {
		filter["status"] = bson.M{"$in": statuses}
	}
	return r.list(ctx, filter)
}

func (r *BookingRepository) list(ctx context.Context, filter bson.M) ([]*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})
	cursor, err := r.col.Find(ctx, filter, opts)
	if err != nil {
		return nil, storeErr("list bookings", err)
	}
	defer cursor.Close(ctx)

	out := []*domain.Booking{}
	if err := cursor.All(ctx, &out); err != nil {
		return nil, storeErr("decode bookings", err)
	}
	return out, nil
}

// UpdateStatus atomically sets the new status and appends a history entry,
// but only while the booking is still in status from. When the filter misses
// the booking is re-read to tell a missing booking from a lost race.
func (r *BookingRepository) UpdateStatus(
	ctx context.Context,
	id string,
	from, to domain.BookingStatus,
	entry domain.StatusHistoryEntry,
) (*domain.Booking, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": id, "status": from}
	update := bson.M{
		"$set":  bson.M{"status": to, "updated_at": entry.Timestamp.UTC()},
		"$push": bson.M{"status_history": entry},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var b domain.Booking
	err := r.col.FindOneAndUpdate(ctx, filter, update, opts).Decode(&b)
	if err == nil {
		return &b, nil
	}
	if !errors.Is(err, mongo.ErrNoDocuments) {
		return nil, storeErr("update booking status", err)
	}

	current, err := r.findOne(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	return nil, fmt.Errorf("%w (from %s to %s)", domain.ErrInvalidTransition, current.Status, to)
}
