package domain

import "time"

// Coordinates represents a geographic point.
type Coordinates struct {
	Lat float64 `json:"lat" bson:"lat"`
	Lng float64 `json:"lng" bson:"lng"`
}

// BookingEvent is the audit record written for every applied transition.
type BookingEvent struct {
	BookingID  string        `bson:"booking_id"`
	ProviderID string        `bson:"provider_id"`
	From       BookingStatus `bson:"from"`
	To         BookingStatus `bson:"to"`
	Actor      Actor         `bson:"actor"`
	Source     string        `bson:"source,omitempty"`
	Timestamp  time.Time     `bson:"timestamp"`
}
