package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/lien-travel/planner-backend/api/responses"
	"github.com/lien-travel/planner-backend/api/validators"
	"github.com/lien-travel/planner-backend/internal/places"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/logger"
)

const maxPlaceInputLength = 200

// PlacesAutocomplete proxies ?input= (plus optional country and language) to
// the place suggestion lookup.
func PlacesAutocomplete(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "places service unavailable"))
			return
		}

		q := r.URL.Query()
		suggestions, err := svc.Suggest(ctx, places.SuggestRequest{
			Query:    validators.SanitizeString(q.Get("input"), maxPlaceInputLength),
			Country:  validators.SanitizeString(q.Get("country"), 2),
			Language: validators.SanitizeString(q.Get("language"), 10),
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if suggestions == nil {
			suggestions = []places.Suggestion{}
		}
		responses.WriteSuccess(w, suggestions)
	}
}

// PlacesResolve returns a location draft for a place id.
func PlacesResolve(svc places.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if svc == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "places service unavailable"))
			return
		}

		placeID := strings.TrimSpace(chi.URLParam(r, "placeId"))
		if placeID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "place id is required"))
			return
		}

		draft, err := svc.Resolve(ctx, placeID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, draft)
	}
}
