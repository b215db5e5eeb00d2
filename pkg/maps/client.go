package maps

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/lien-travel/planner-backend/pkg/config"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	places "google.golang.org/api/places/v1"
)

const defaultTimeout = 5 * time.Second

var (
	autocompleteFields = []googleapi.Field{
		"suggestions.placePrediction.placeId",
		"suggestions.placePrediction.text",
		"suggestions.placePrediction.types",
	}
	placeFields = []googleapi.Field{
		"id",
		"displayName",
		"formattedAddress",
		"location",
		"types",
		"addressComponents",
	}
)

var errAPIKeyRequired = errors.New("google maps api key is required")

// Client wraps the Google Places API (v1) calls used to pre-fill locations.
type Client struct {
	places  *places.Service
	timeout time.Duration
}

// NewClient builds a Places client from configuration. Extra options are
// appended after the API key and endpoint, so tests can point at a fake server.
func NewClient(ctx context.Context, cfg config.GoogleMapsConfig, extra ...option.ClientOption) (*Client, error) {
	key := strings.TrimSpace(cfg.APIKey)
	if key == "" {
		return nil, errAPIKeyRequired
	}

	opts := []option.ClientOption{option.WithAPIKey(key)}
	if endpoint := strings.TrimSpace(cfg.BaseURL); endpoint != "" {
		opts = append(opts, option.WithEndpoint(strings.TrimRight(endpoint, "/")+"/"))
	}
	opts = append(opts, extra...)

	svc, err := places.NewService(ctx, opts...)
	if err != nil {
		return nil, err
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{places: svc, timeout: timeout}, nil
}

// AutocompleteRequest describes a partial-text place query.
type AutocompleteRequest struct {
	Input               string
	IncludedRegionCodes []string
	LanguageCode        string
}

// AutocompleteSuggestion is one predicted place.
type AutocompleteSuggestion struct {
	PlaceID     string
	Description string
	Types       []string
}

// PlaceDetails is the normalized place record.
type PlaceDetails struct {
	PlaceID           string
	Name              string
	FormattedAddress  string
	Location          LatLng
	Types             []string
	AddressComponents []AddressComponent
}

// LatLng is the latitude/longitude pair returned by Google.
type LatLng struct {
	Latitude  float64
	Longitude float64
}

// AddressComponent mirrors one entry of Google's address breakdown.
type AddressComponent struct {
	LongName  string
	ShortName string
	Types     []string
}

// Autocomplete queries suggested places based on partial input.
func (c *Client) Autocomplete(ctx context.Context, req AutocompleteRequest) ([]AutocompleteSuggestion, error) {
	if c == nil || c.places == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "google maps client not configured")
	}
	input := strings.TrimSpace(req.Input)
	if input == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "autocomplete input is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.places.Places.Autocomplete(&places.GoogleMapsPlacesV1AutocompletePlacesRequest{
		Input:               input,
		IncludedRegionCodes: req.IncludedRegionCodes,
		LanguageCode:        req.LanguageCode,
	}).Fields(autocompleteFields...).Context(ctx).Do()
	if err != nil {
		return nil, translate(err, "autocomplete request failed")
	}

	suggestions := make([]AutocompleteSuggestion, 0, len(resp.Suggestions))
	for _, s := range resp.Suggestions {
		if s == nil || s.PlacePrediction == nil {
			continue
		}
		suggestion := AutocompleteSuggestion{
			PlaceID: s.PlacePrediction.PlaceId,
			Types:   s.PlacePrediction.Types,
		}
		if s.PlacePrediction.Text != nil {
			suggestion.Description = s.PlacePrediction.Text.Text
		}
		suggestions = append(suggestions, suggestion)
	}
	return suggestions, nil
}

// ResolvePlace fetches the canonical place data for the provided place ID.
func (c *Client) ResolvePlace(ctx context.Context, placeID string) (*PlaceDetails, error) {
	if c == nil || c.places == nil {
		return nil, pkgerrors.New(pkgerrors.CodeDependency, "google maps client not configured")
	}
	trimmed := strings.TrimPrefix(strings.TrimSpace(placeID), "places/")
	if trimmed == "" || strings.Contains(trimmed, "/") {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "place ID is required")
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	place, err := c.places.Places.Get("places/" + trimmed).Fields(placeFields...).Context(ctx).Do()
	if err != nil {
		return nil, translate(err, "place resolve request failed")
	}

	details := &PlaceDetails{
		PlaceID:          place.Id,
		FormattedAddress: place.FormattedAddress,
		Types:            place.Types,
	}
	if place.DisplayName != nil {
		details.Name = place.DisplayName.Text
	}
	if place.Location != nil {
		details.Location = LatLng{Latitude: place.Location.Latitude, Longitude: place.Location.Longitude}
	}
	for _, comp := range place.AddressComponents {
		if comp == nil {
			continue
		}
		details.AddressComponents = append(details.AddressComponents, AddressComponent{
			LongName:  comp.LongText,
			ShortName: comp.ShortText,
			Types:     comp.Types,
		})
	}
	return details, nil
}

func translate(err error, message string) error {
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) && apiErr != nil {
		switch apiErr.Code {
		case http.StatusNotFound:
			return pkgerrors.Wrap(pkgerrors.CodeNotFound, err, "place not found")
		case http.StatusBadRequest:
			return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "place lookup rejected")
		}
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, message)
}
