package controllers

import (
	"net/http"
	"strings"

	"github.com/lien-travel/planner-backend/api/responses"
	"github.com/lien-travel/planner-backend/api/validators"
	"github.com/lien-travel/planner-backend/internal/locations"
	"github.com/lien-travel/planner-backend/pkg/enums"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/logger"
)

const maxKeywordLength = 100

type locationPayload struct {
	Name        string   `json:"name" validate:"required,max=200"`
	Category    string   `json:"category" validate:"required"`
	Latitude    *float64 `json:"latitude" validate:"required,gte=-90,lte=90"`
	Longitude   *float64 `json:"longitude" validate:"required,gte=-180,lte=180"`
	Address     string   `json:"address" validate:"required,max=500"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	IsPublic    bool     `json:"is_public"`
}

func (p locationPayload) toInput() (locations.LocationInput, error) {
	category, err := enums.ParseLocationCategory(p.Category)
	if err != nil {
		return locations.LocationInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location category").
			WithDetails(map[string]any{"category": "must be one of " + joinCategories()})
	}
	return locations.LocationInput{
		Name:        p.Name,
		Category:    category,
		Latitude:    *p.Latitude,
		Longitude:   *p.Longitude,
		Address:     p.Address,
		Description: p.Description,
		IsPublic:    p.IsPublic,
	}, nil
}

func joinCategories() string {
	all := enums.LocationCategories()
	names := make([]string, 0, len(all))
	for _, c := range all {
		names = append(names, c.String())
	}
	return strings.Join(names, ", ")
}

func locationsUnavailable() error {
	return pkgerrors.New(pkgerrors.CodeInternal, "locations service unavailable")
}

// LocationsCreate registers a location owned by the caller.
func LocationsCreate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, locationsUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body locationPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Create(ctx, userID, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, dto)
	}
}

// LocationsList returns public locations plus the caller's own, optionally
// narrowed by ?category= and ?keyword=.
func LocationsList(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, locationsUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var filter locations.ListFilter
		if raw := strings.TrimSpace(r.URL.Query().Get("category")); raw != "" {
			category, err := enums.ParseLocationCategory(raw)
			if err != nil {
				responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid location category"))
				return
			}
			filter.Category = &category
		}
		filter.Keyword = validators.SanitizeString(r.URL.Query().Get("keyword"), maxKeywordLength)

		items, err := svc.List(ctx, userID, filter)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if items == nil {
			items = []locations.LocationDTO{}
		}
		responses.WriteSuccess(w, items)
	}
}

func LocationsGet(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, locationsUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "locationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Get(ctx, userID, id)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

// LocationsUpdate replaces every mutable field of a caller-owned location.
func LocationsUpdate(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, locationsUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "locationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		var body locationPayload
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		input, err := body.toInput()
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		dto, err := svc.Update(ctx, userID, id, input)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, dto)
	}
}

func LocationsDelete(svc locations.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, locationsUnavailable())
			return
		}
		userID, err := requireUser(r)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		id, err := validators.ParsePathID(r, "locationId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := svc.Delete(ctx, userID, id); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}
