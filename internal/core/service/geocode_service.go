package service

import (
	"context"
	"fmt"
	"regexp"

	"github.com/rs/zerolog"

	"github.com/servicehub/marketplace/internal/core/domain"
	"github.com/servicehub/marketplace/internal/core/ports"
)

var pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)

// GeocodeService resolves postal codes through a cache. It is never called
// from inside a booking transition.
type GeocodeService struct {
	geocoder ports.Geocoder
	cache    ports.GeocodeCache
	log      zerolog.Logger
}

func NewGeocodeService(geocoder ports.Geocoder, cache ports.GeocodeCache, log zerolog.Logger) *GeocodeService {
	return &GeocodeService{geocoder: geocoder, cache: cache, log: log}
}

func (s *GeocodeService) Locate(ctx context.Context, postalCode string) (domain.Coordinates, error) {
	if !pincodePattern.MatchString(postalCode) {
		return domain.Coordinates{}, domain.ErrInvalidPostalCode
	}

	c, ok, err := s.cache.Get(ctx, postalCode)
	if err != nil {
		s.log.Warn().Err(err).Str("pincode", postalCode).Msg("geocode cache read failed")
	} else if ok {
		return c, nil
	}

	c, err = s.geocoder.Resolve(ctx, postalCode)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("locate %s: %w", postalCode, err)
	}

	if err := s.cache.Set(ctx, postalCode, c); err != nil {
		s.log.Warn().Err(err).Str("pincode", postalCode).Msg("geocode cache write failed")
	}
	return c, nil
}
