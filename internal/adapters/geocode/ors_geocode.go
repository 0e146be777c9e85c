package geocode

import (
	"accident-alert-service/internal/domain"
	"accident-alert-service/internal/platform/obs"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// ORSReverseGeocoder implements ReverseGeocoder using OpenRouteService
// (/geocode/reverse). It is safe for concurrent use.
type ORSReverseGeocoder struct {
	session        *http.Client
	apiKey         string
	baseURL        string
	maxAttempts    int
	initialBackoff time.Duration
}

type Option func(*ORSReverseGeocoder)

// WithBaseURL points the geocoder at another ORS-compatible endpoint.
func WithBaseURL(u string) Option {
	return func(o *ORSReverseGeocoder) { o.baseURL = strings.TrimRight(u, "/") }
}

func WithHTTPClient(c *http.Client) Option {
	return func(o *ORSReverseGeocoder) { o.session = c }
}

func WithRetry(maxAttempts int, initialBackoff time.Duration) Option {
	return func(o *ORSReverseGeocoder) {
		if maxAttempts > 0 {
			o.maxAttempts = maxAttempts
		}
		o.initialBackoff = initialBackoff
	}
}

func NewORSReverseGeocoder(apiKey string, opts ...Option) (*ORSReverseGeocoder, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	o := &ORSReverseGeocoder{
		session:        &http.Client{Timeout: 10 * time.Second},
		apiKey:         apiKey,
		baseURL:        "https://api.openrouteservice.org",
		maxAttempts:    4,
		initialBackoff: 200 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(o)
	}

	return o, nil
}

type reverseResponse struct {
	Features []struct {
		Properties struct {
			Name      string `json:"name"`
			Street    string `json:"street"`
			Locality  string `json:"locality"`
			County    string `json:"county"`
			Region    string `json:"region"`
			Neighbour string `json:"neighbourhood"`
		} `json:"properties"`
	} `json:"features"`
}

// ReverseGeocode returns the closest known address to c, or nil when ORS has none.
func (o *ORSReverseGeocoder) ReverseGeocode(
	ctx context.Context,
	c domain.Coordinates,
) (_ *domain.Address, err error) {
	defer obs.Time(ctx, "ors.ReverseGeocode")(&err)

	if !c.IsFinite() {
		return nil, fmt.Errorf("reverse geocode: %w", domain.ErrInvalidCoordinates)
	}

	params := url.Values{}
	params.Set("point.lat", strconv.FormatFloat(c.Lat, 'f', -1, 64))
	params.Set("point.lon", strconv.FormatFloat(c.Lon, 'f', -1, 64))
	params.Set("size", "1")

	var decoded reverseResponse
	if err := o.getJSON(ctx, "/geocode/reverse", params, &decoded); err != nil {
		return nil, fmt.Errorf("reverse geocode: %w", err)
	}

	if len(decoded.Features) == 0 {
		return nil, nil
	}

	p := decoded.Features[0].Properties
	city := firstNonEmpty(p.Locality, p.County, p.Region)
	street := firstNonEmpty(p.Street, p.Neighbour, p.Name)

	return &domain.Address{City: city, Street: street}, nil
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
