package places

import (
	"context"
	"strings"

	"github.com/lien-travel/planner-backend/pkg/enums"
	"github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/maps"
)

// Service turns Google place lookups into location drafts.
type Service interface {
	Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error)
	Resolve(ctx context.Context, placeID string) (*LocationDraft, error)
}

type placesClient interface {
	Autocomplete(ctx context.Context, req maps.AutocompleteRequest) ([]maps.AutocompleteSuggestion, error)
	ResolvePlace(ctx context.Context, placeID string) (*maps.PlaceDetails, error)
}

type service struct {
	maps placesClient
}

// NewService wraps client. A nil client yields a service that reports the
// lookups as unavailable.
func NewService(client placesClient) Service {
	return &service{maps: client}
}

type SuggestRequest struct {
	Query    string
	Country  string
	Language string
}

type Suggestion struct {
	PlaceID     string                 `json:"place_id"`
	Description string                 `json:"description"`
	Category    enums.LocationCategory `json:"category"`
}

// LocationDraft carries the fields a client needs to create a Location from a place.
type LocationDraft struct {
	PlaceID   string                 `json:"place_id"`
	Name      string                 `json:"name"`
	Category  enums.LocationCategory `json:"category"`
	Latitude  float64                `json:"latitude"`
	Longitude float64                `json:"longitude"`
	Address   string                 `json:"address"`
}

func (s *service) Suggest(ctx context.Context, req SuggestRequest) ([]Suggestion, error) {
	if s == nil || s.maps == nil {
		return nil, errors.New(errors.CodeDependency, "place lookups unavailable")
	}
	if strings.TrimSpace(req.Query) == "" {
		return nil, errors.New(errors.CodeValidation, "input is required")
	}

	payload := maps.AutocompleteRequest{Input: req.Query}
	if country := strings.TrimSpace(req.Country); country != "" {
		payload.IncludedRegionCodes = []string{strings.ToUpper(country)}
	}
	if lang := strings.TrimSpace(req.Language); lang != "" {
		payload.LanguageCode = lang
	}

	resp, err := s.maps.Autocomplete(ctx, payload)
	if err != nil {
		return nil, err
	}

	suggestions := make([]Suggestion, 0, len(resp))
	for _, item := range resp {
		if item.PlaceID == "" {
			continue
		}
		suggestions = append(suggestions, Suggestion{
			PlaceID:     item.PlaceID,
			Description: item.Description,
			Category:    CategoryFor(item.Types),
		})
	}
	return suggestions, nil
}

func (s *service) Resolve(ctx context.Context, placeID string) (*LocationDraft, error) {
	if s == nil || s.maps == nil {
		return nil, errors.New(errors.CodeDependency, "place lookups unavailable")
	}
	if strings.TrimSpace(placeID) == "" {
		return nil, errors.New(errors.CodeValidation, "place_id is required")
	}

	details, err := s.maps.ResolvePlace(ctx, placeID)
	if err != nil {
		return nil, err
	}
	return draftFromDetails(details)
}

func draftFromDetails(details *maps.PlaceDetails) (*LocationDraft, error) {
	if details == nil {
		return nil, errors.New(errors.CodeDependency, "place details missing")
	}
	if details.Location.Latitude == 0 && details.Location.Longitude == 0 {
		return nil, errors.New(errors.CodeDependency, "place location missing")
	}

	address := strings.TrimSpace(details.FormattedAddress)
	if address == "" {
		address = joinComponents(details.AddressComponents)
	}
	if address == "" {
		return nil, errors.New(errors.CodeDependency, "place address missing")
	}

	name := strings.TrimSpace(details.Name)
	if name == "" {
		name = strings.TrimSpace(strings.Split(address, ",")[0])
	}

	return &LocationDraft{
		PlaceID:   details.PlaceID,
		Name:      name,
		Category:  CategoryFor(details.Types),
		Latitude:  details.Location.Latitude,
		Longitude: details.Location.Longitude,
		Address:   address,
	}, nil
}

func joinComponents(components []maps.AddressComponent) string {
	parts := make([]string, 0, len(components))
	for _, comp := range components {
		if v := strings.TrimSpace(comp.LongName); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.Join(parts, ", ")
}

// placeTypeCategories maps Google place types onto location categories. The
// first matching type wins, so more specific types come first.
var placeTypeCategories = []struct {
	placeType string
	category  enums.LocationCategory
}{
	{"airport", enums.LocationCategoryAirport},
	{"international_airport", enums.LocationCategoryAirport},
	{"lodging", enums.LocationCategoryHotel},
	{"hotel", enums.LocationCategoryHotel},
	{"resort_hotel", enums.LocationCategoryHotel},
	{"hostel", enums.LocationCategoryHotel},
	{"massage", enums.LocationCategoryMassage},
	{"spa", enums.LocationCategoryMassage},
	{"restaurant", enums.LocationCategoryRestaurant},
	{"cafe", enums.LocationCategoryRestaurant},
	{"food", enums.LocationCategoryRestaurant},
	{"bar", enums.LocationCategoryRestaurant},
	{"shopping_mall", enums.LocationCategoryShopping},
	{"market", enums.LocationCategoryShopping},
	{"store", enums.LocationCategoryShopping},
	{"clothing_store", enums.LocationCategoryShopping},
}

// CategoryFor guesses a location category from Google place types, falling
// back to attraction.
func CategoryFor(types []string) enums.LocationCategory {
	for _, candidate := range placeTypeCategories {
		for _, t := range types {
			if strings.EqualFold(t, candidate.placeType) {
				return candidate.category
			}
		}
	}
	return enums.LocationCategoryAttraction
}
