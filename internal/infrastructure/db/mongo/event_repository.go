package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const collectionBookingEvents = "booking_events"

// BookingEventRepository implements ports.BookingEventRepository using MongoDB.
type BookingEventRepository struct {
	col *mongo.Collection
}

// NewBookingEventRepository creates a new BookingEventRepository.
func NewBookingEventRepository(db *mongo.Database) *BookingEventRepository {
	return &BookingEventRepository{col: db.Collection(collectionBookingEvents)}
}

func (r *BookingEventRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, indexTimeout)
	defer cancel()

	_, err := r.col.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "booking_id", Value: 1}, {Key: "timestamp", Value: 1}},
	})
	return err
}

// InsertEvent persists a transition to the booking_events audit collection.
func (r *BookingEventRepository) InsertEvent(ctx context.Context, event *domain.BookingEvent) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := bson.M{
		"booking_id":   event.BookingID,
		"provider_id":  event.ProviderID,
		"to":           string(event.To),
		"actor":        string(event.Actor),
		"timestamp":    event.Timestamp.UTC(),
		"processed_at": time.Now().UTC(),
	}
	if event.From != "" {
		doc["from"] = string(event.From)
	}
	if event.Source != "" {
		doc["source"] = event.Source
	}

	if _, err := r.col.InsertOne(ctx, doc); err != nil {
		return storeErr("insert booking event", err)
	}
	return nil
}
