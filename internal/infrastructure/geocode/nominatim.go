package geocode

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/servicehub/marketplace/internal/core/domain"
)

const (
	DefaultBaseURL = "https://nominatim.openstreetmap.org"
	userAgent      = "servicehub"
	defaultTimeout = 5 * time.Second
)

// Nominatim resolves Indian postal codes with the OpenStreetMap search API.
type Nominatim struct {
	baseURL string
	client  *http.Client
}

// NewNominatim returns a client for baseURL. An empty baseURL uses the
// public OpenStreetMap instance.
func NewNominatim(baseURL string, timeout time.Duration) *Nominatim {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Nominatim{
		baseURL: baseURL,
		client:  &http.Client{Timeout: timeout},
	}
}

type place struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Resolve returns the coordinates of the first match for postalCode, or
// domain.ErrInvalidPostalCode when the search comes back empty.
func (n *Nominatim) Resolve(ctx context.Context, postalCode string) (domain.Coordinates, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("countrycodes", "in")
	q.Set("postalcode", postalCode)
	q.Set("limit", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+"/search?"+q.Encode(), nil)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.client.Do(req)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.Coordinates{}, fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}

	var places []place
	if err := json.NewDecoder(resp.Body).Decode(&places); err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim decode: %w", err)
	}
	if len(places) == 0 {
		return domain.Coordinates{}, domain.ErrInvalidPostalCode
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim lat %q: %w", places[0].Lat, err)
	}
	lng, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("nominatim lon %q: %w", places[0].Lon, err)
	}
	return domain.Coordinates{Lat: lat, Lng: lng}, nil
}
