package locations

import (
	"strings"
	"time"

	"github.com/lien-travel/planner-backend/pkg/db/models"
	"github.com/lien-travel/planner-backend/pkg/enums"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
)

// LocationDTO is the public view of a location record.
type LocationDTO struct {
	ID          uint                   `json:"id"`
	OwnerID     *uint                  `json:"owner_id,omitempty"`
	Name        string                 `json:"name"`
	Category    enums.LocationCategory `json:"category"`
	Latitude    float64                `json:"latitude"`
	Longitude   float64                `json:"longitude"`
	Address     string                 `json:"address"`
	Description *string                `json:"description,omitempty"`
	IsPublic    bool                   `json:"is_public"`
	CreatedAt   time.Time              `json:"created_at"`
}

// LocationInput carries every mutable location field. Updates replace all of them.
type LocationInput struct {
	Name        string
	Category    enums.LocationCategory
	Latitude    float64
	Longitude   float64
	Address     string
	Description *string
	IsPublic    bool
}

// FromModel maps the persisted location into a DTO.
func FromModel(m *models.Location) *LocationDTO {
	if m == nil {
		return nil
	}
	return &LocationDTO{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		Name:        m.Name,
		Category:    m.Category,
		Latitude:    m.Latitude,
		Longitude:   m.Longitude,
		Address:     m.Address,
		Description: m.Description,
		IsPublic:    m.IsPublic,
		CreatedAt:   m.CreatedAt,
	}
}

func (in LocationInput) validate() error {
	if strings.TrimSpace(in.Name) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	if !in.Category.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid location category")
	}
	if in.Latitude < -90 || in.Latitude > 90 {
		return pkgerrors.New(pkgerrors.CodeValidation, "latitude must be between -90 and 90")
	}
	if in.Longitude < -180 || in.Longitude > 180 {
		return pkgerrors.New(pkgerrors.CodeValidation, "longitude must be between -180 and 180")
	}
	if strings.TrimSpace(in.Address) == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "address is required")
	}
	return nil
}

func (in LocationInput) applyTo(m *models.Location) {
	m.Name = strings.TrimSpace(in.Name)
	m.Category = in.Category
	m.Latitude = in.Latitude
	m.Longitude = in.Longitude
	m.Address = strings.TrimSpace(in.Address)
	m.Description = in.Description
	m.IsPublic = in.IsPublic
}
