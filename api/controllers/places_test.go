package controllers

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-travel/planner-backend/internal/places"
	"github.com/lien-travel/planner-backend/pkg/config"
	"github.com/lien-travel/planner-backend/pkg/enums"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
)

type stubPlacesService struct {
	suggest  places.SuggestRequest
	resolved string
}

func (s *stubPlacesService) Suggest(_ context.Context, req places.SuggestRequest) ([]places.Suggestion, error) {
	s.suggest = req
	return []places.Suggestion{{PlaceID: "p1", Description: "Wat Arun", Category: enums.LocationCategoryAttraction}}, nil
}

func (s *stubPlacesService) Resolve(_ context.Context, placeID string) (*places.LocationDraft, error) {
	s.resolved = placeID
	if placeID == "missing" {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "place not found")
	}
	return &places.LocationDraft{PlaceID: placeID, Name: "Wat Arun"}, nil
}

func TestPlacesAutocompleteForwardsQuery(t *testing.T) {
	svc := &stubPlacesService{}
	rec := serve(t, http.MethodGet, "/places/autocomplete", PlacesAutocomplete(svc, nil), "/places/autocomplete?input=wat%20a&country=th&language=en", "", 1)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, places.SuggestRequest{Query: "wat a", Country: "th", Language: "en"}, svc.suggest)
	var out []places.Suggestion
	decodeData(t, rec, &out)
	require.Len(t, out, 1)
	assert.Equal(t, enums.LocationCategoryAttraction, out[0].Category)
}

func TestPlacesResolve(t *testing.T) {
	svc := &stubPlacesService{}
	rec := serve(t, http.MethodGet, "/places/{placeId}", PlacesResolve(svc, nil), "/places/ChIJ123", "", 1)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ChIJ123", svc.resolved)

	rec = serve(t, http.MethodGet, "/places/{placeId}", PlacesResolve(svc, nil), "/places/missing", "", 1)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlacesUnavailableWithoutClient(t *testing.T) {
	rec := serve(t, http.MethodGet, "/places/autocomplete", PlacesAutocomplete(places.NewService(nil), nil), "/places/autocomplete?input=x", "", 1)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type stubPinger struct{ err error }

func (s stubPinger) Ping(context.Context) error { return s.err }

func TestHealthReady(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}

	rec := serve(t, http.MethodGet, "/health/ready", HealthReady(cfg, map[string]Pinger{"db": stubPinger{}, "redis": stubPinger{}}, nil), "/health/ready", "", 0)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "test", rec.Header().Get("X-Planner-Env"))

	rec = serve(t, http.MethodGet, "/health/ready", HealthReady(cfg, map[string]Pinger{"db": stubPinger{}, "redis": stubPinger{err: errors.New("refused")}}, nil), "/health/ready", "", 0)
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)
	env := decodeError(t, rec)
	assert.Equal(t, "down", env.Error.Details["redis"])
	assert.Equal(t, "up", env.Error.Details["db"])
}

func TestHealthLive(t *testing.T) {
	cfg := &config.Config{App: config.AppConfig{Env: "test"}}
	rec := serve(t, http.MethodGet, "/health/live", HealthLive(cfg), "/health/live", "", 0)
	assert.Equal(t, http.StatusOK, rec.Code)
}
