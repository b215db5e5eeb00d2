package enums

import (
	"fmt"
	"strings"
)

// LocationCategory classifies a Location record.
type LocationCategory string

const (
	LocationCategoryAttraction LocationCategory = "ATTRACTION"
	LocationCategoryHotel      LocationCategory = "HOTEL"
	LocationCategoryAirport    LocationCategory = "AIRPORT"
	LocationCategoryRestaurant LocationCategory = "RESTAURANT"
	LocationCategoryMassage    LocationCategory = "MASSAGE"
	LocationCategoryShopping   LocationCategory = "SHOPPING"
)

var validLocationCategories = []LocationCategory{
	LocationCategoryAttraction,
	LocationCategoryHotel,
	LocationCategoryAirport,
	LocationCategoryRestaurant,
	LocationCategoryMassage,
	LocationCategoryShopping,
}

// String implements fmt.Stringer.
func (c LocationCategory) String() string {
	return string(c)
}

// IsValid reports whether the value is a known LocationCategory.
func (c LocationCategory) IsValid() bool {
	for _, candidate := range validLocationCategories {
		if candidate == c {
			return true
		}
	}
	return false
}

// ParseLocationCategory converts raw input into a LocationCategory.
// Matching is case-insensitive so query strings like "hotel" are accepted.
func ParseLocationCategory(value string) (LocationCategory, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	for _, candidate := range validLocationCategories {
		if string(candidate) == normalized {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid location category %q", value)
}

// LocationCategories returns every known category in declaration order.
func LocationCategories() []LocationCategory {
	out := make([]LocationCategory, len(validLocationCategories))
	copy(out, validLocationCategories)
	return out
}
