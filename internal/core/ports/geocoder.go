package ports

import (
	"context"

	"github.com/servicehub/marketplace/internal/core/domain"
)

// Geocoder resolves an Indian postal code to coordinates. Implementations
// return domain.ErrInvalidPostalCode when nothing matches.
type Geocoder interface {
	Resolve(ctx context.Context, postalCode string) (domain.Coordinates, error)
}

// GeocodeCache remembers resolved postal codes.
type GeocodeCache interface {
	Get(ctx context.Context, postalCode string) (domain.Coordinates, bool, error)
	Set(ctx context.Context, postalCode string, c domain.Coordinates) error
}

type GeocodeService interface {
	Locate(ctx context.Context, postalCode string) (domain.Coordinates, error)
}
