package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lien-travel/planner-backend/api/controllers"
	"github.com/lien-travel/planner-backend/internal/auth"
	"github.com/lien-travel/planner-backend/internal/locations"
	"github.com/lien-travel/planner-backend/internal/places"
	"github.com/lien-travel/planner-backend/internal/templates"
	"github.com/lien-travel/planner-backend/internal/users"
	pkgAuth "github.com/lien-travel/planner-backend/pkg/auth"
	"github.com/lien-travel/planner-backend/pkg/config"
	"github.com/lien-travel/planner-backend/pkg/db/dbtest"
	"github.com/lien-travel/planner-backend/pkg/db/models"
	"github.com/lien-travel/planner-backend/pkg/metrics"
)

type stubPinger struct{}

func (stubPinger) Ping(context.Context) error { return nil }

type stubSessions struct{}

func (stubSessions) HasSession(context.Context, string) (bool, error) { return true, nil }

type stubAuthService struct{}

func (stubAuthService) Register(context.Context, auth.RegisterRequest) (*users.UserDTO, error) {
	return &users.UserDTO{ID: 99}, nil
}

func (stubAuthService) Login(context.Context, auth.LoginRequest) (*auth.LoginResponse, error) {
	return &auth.LoginResponse{TokenPair: auth.TokenPair{AccessToken: "a", RefreshToken: "r"}}, nil
}

func (stubAuthService) Refresh(context.Context, string, string) (*auth.TokenPair, error) {
	return &auth.TokenPair{AccessToken: "a2", RefreshToken: "r2"}, nil
}

func (stubAuthService) Logout(context.Context, string) error { return nil }

type harness struct {
	handler http.Handler
	cfg     *config.Config
	alice   *models.User
	bob     *models.User
}

func testConfig() *config.Config {
	return &config.Config{
		App:        config.AppConfig{Env: "test", Port: "0", CORSOrigins: []string{"http://localhost:3000"}},
		JWT:        config.JWTConfig{Secret: "router-secret", Issuer: "planner", ExpirationMinutes: 15},
		Metrics:    config.MetricsConfig{Enabled: true, Path: "/metrics"},
		Pagination: config.PaginationConfig{DefaultLimit: 25, MaxLimit: 100},
	}
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	client, conn := dbtest.Client(t)
	cfg := testConfig()
	reg := prometheus.NewRegistry()
	ops := metrics.NewOperationMetrics(reg)

	locationRepo := locations.NewRepository(conn)
	locationSvc, err := locations.NewService(locations.ServiceParams{Repo: locationRepo, Tx: client, Metrics: ops})
	require.NoError(t, err)
	templateSvc, err := templates.NewService(templates.ServiceParams{
		Repo:      templates.NewRepository(conn),
		Locations: locationRepo,
		Tx:        client,
		Metrics:   ops,
	})
	require.NoError(t, err)

	handler := NewRouter(Dependencies{
		Config:    cfg,
		Sessions:  stubSessions{},
		Health:    map[string]controllers.Pinger{"db": client, "redis": stubPinger{}},
		Gatherer:  reg,
		HTTP:      metrics.NewHTTPMetrics(reg),
		Auth:      stubAuthService{},
		Locations: locationSvc,
		Templates: templateSvc,
		Places:    places.NewService(nil),
	})

	return &harness{
		handler: handler,
		cfg:     cfg,
		alice:   dbtest.SeedUser(t, conn, "alice"),
		bob:     dbtest.SeedUser(t, conn, "bob"),
	}
}

func (h *harness) token(t *testing.T, user *models.User) string {
	t.Helper()
	token, err := pkgAuth.MintAccessToken(h.cfg.JWT, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: user.ID,
		Email:  user.Email,
		JTI:    fmt.Sprintf("jti-%d", user.ID),
	})
	require.NoError(t, err)
	return token
}

func (h *harness) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	return rec
}

func dataID(t *testing.T, rec *httptest.ResponseRecorder) uint {
	t.Helper()
	var env struct {
		Data struct {
			ID uint `json:"id"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env), rec.Body.String())
	require.NotZero(t, env.Data.ID)
	return env.Data.ID
}

func TestHealthAndMetricsRoutes(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health/live", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/health/ready", "", "").Code)
	assert.Equal(t, http.StatusOK, h.do(t, http.MethodGet, "/api/public/ping", "", "").Code)

	rec := h.do(t, http.MethodGet, "/metrics", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "http_requests_total")
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	h := newHarness(t)
	for _, path := range []string{"/api/v1/ping", "/api/v1/locations", "/api/v1/templates", "/api/v1/places/autocomplete?input=x"} {
		rec := h.do(t, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
}

func TestAuthRoutesAreMounted(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodPost, "/api/v1/auth/register", "", `{"email":"new@example.com","password":"longenough","name":"New"}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	rec = h.do(t, http.MethodPost, "/api/v1/auth/login", "", `{"email":"new@example.com","password":"longenough"}`)
	assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func TestTemplateLifecycleOverHTTP(t *testing.T) {
	h := newHarness(t)
	alice := h.token(t, h.alice)
	bob := h.token(t, h.bob)

	rec := h.do(t, http.MethodPost, "/api/v1/locations", alice,
		`{"name":"Grand Palace","category":"ATTRACTION","latitude":13.75,"longitude":100.49,"address":"Na Phra Lan Rd","is_public":false}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	locationID := dataID(t, rec)

	rec = h.do(t, http.MethodPost, "/api/v1/templates", alice,
		`{"title":"Bangkok","destination":"Thailand","start_date":"2025-03-01","end_date":"2025-03-03","total_days":3}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	templateID := dataID(t, rec)
	base := fmt.Sprintf("/api/v1/templates/%d", templateID)

	rec = h.do(t, http.MethodPost, base+"/days", alice, `{"day_number":1,"date":"2025-03-01","title":"Old town"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dayID := dataID(t, rec)

	rec = h.do(t, http.MethodPost, fmt.Sprintf("%s/days/%d/activities", base, dayID), alice,
		fmt.Sprintf(`{"time":"09:00","description":"Palace visit","location_id":%d,"order_index":0}`, locationID))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodPost, base+"/checklist-sections", alice,
		`{"title":"Documents","order_index":0,"items":[{"label":"Passport","order_index":0}]}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = h.do(t, http.MethodGet, base, alice, "")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var detail struct {
		Data templates.TemplateDetailView `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &detail))
	require.Len(t, detail.Data.DaySchedules, 1)
	require.Len(t, detail.Data.DaySchedules[0].Activities, 1)
	require.NotNil(t, detail.Data.DaySchedules[0].Activities[0].Location)
	assert.Equal(t, "Grand Palace", detail.Data.DaySchedules[0].Activities[0].Location.Name)
	require.Len(t, detail.Data.ChecklistSections, 1)

	rec = h.do(t, http.MethodGet, base+"?view=summary", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodGet, base, bob, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = h.do(t, http.MethodGet, "/api/v1/templates?limit=1", alice, "")
	require.Equal(t, http.StatusOK, rec.Code)

	rec = h.do(t, http.MethodDelete, base, alice, "")
	assert.Equal(t, http.StatusNoContent, rec.Code)
	rec = h.do(t, http.MethodGet, base, alice, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPlacesRoutesReportUnavailableWithoutKey(t *testing.T) {
	h := newHarness(t)
	rec := h.do(t, http.MethodGet, "/api/v1/places/autocomplete?input=wat", h.token(t, h.alice), "")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
