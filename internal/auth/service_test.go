package auth

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/lien-travel/planner-backend/internal/users"
	pkgAuth "github.com/lien-travel/planner-backend/pkg/auth"
	"github.com/lien-travel/planner-backend/pkg/auth/session"
	"github.com/lien-travel/planner-backend/pkg/config"
	"github.com/lien-travel/planner-backend/pkg/db/models"
	pkgerrors "github.com/lien-travel/planner-backend/pkg/errors"
	"github.com/lien-travel/planner-backend/pkg/security"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var testJWT = config.JWTConfig{
	Secret:            "secret",
	Issuer:            "planner",
	ExpirationMinutes: 30,
}

type stubTxRunner struct{}

func (stubTxRunner) WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	return fn(nil)
}

type stubUserRepo struct {
	byEmail   map[string]*models.User
	nextID    uint
	createErr error
	findErr   error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{byEmail: map[string]*models.User{}, nextID: 1}
}

func (s *stubUserRepo) Create(ctx context.Context, dto users.CreateUserDTO) (*models.User, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	user := dto.ToModel()
	user.ID = s.nextID
	s.nextID++
	s.byEmail[user.Email] = user
	return user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	if s.findErr != nil {
		return nil, s.findErr
	}
	if user, ok := s.byEmail[email]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) FindByID(ctx context.Context, id uint) (*models.User, error) {
	for _, user := range s.byEmail {
		if user.ID == id {
			return user, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubUserRepo) UpdateLastLogin(ctx context.Context, id uint, at time.Time) error {
	return nil
}

type stubSessionManager struct {
	sessions map[string]string
	owners   map[string]uint
	seq      int
}

func newStubSessionManager() *stubSessionManager {
	return &stubSessionManager{sessions: map[string]string{}, owners: map[string]uint{}}
}

func (s *stubSessionManager) Generate(ctx context.Context, userID uint, accessID string) (string, error) {
	s.seq++
	token := fmt.Sprintf("refresh-%d", s.seq)
	s.sessions[accessID] = token
	s.owners[accessID] = userID
	return token, nil
}

func (s *stubSessionManager) Rotate(ctx context.Context, oldAccessID, provided string) (*session.Rotation, error) {
	stored, ok := s.sessions[oldAccessID]
	owner := s.owners[oldAccessID]
	delete(s.sessions, oldAccessID)
	delete(s.owners, oldAccessID)
	if !ok || stored != provided {
		return nil, session.ErrInvalidRefreshToken
	}
	accessID := session.NewAccessID()
	token, _ := s.Generate(ctx, owner, accessID)
	return &session.Rotation{UserID: owner, AccessID: accessID, RefreshToken: token}, nil
}

func (s *stubSessionManager) Revoke(ctx context.Context, accessID string) error {
	delete(s.sessions, accessID)
	delete(s.owners, accessID)
	return nil
}

type testSetup struct {
	svc      Service
	repo     *stubUserRepo
	sessions *stubSessionManager
}

func newTestSetup(t *testing.T) *testSetup {
	t.Helper()
	repo := newStubUserRepo()
	sessions := newStubSessionManager()
	svc, err := NewService(ServiceParams{
		Tx:              stubTxRunner{},
		UserRepoFactory: func(*gorm.DB) userRepository { return repo },
		SessionManager:  sessions,
		JWTConfig:       testJWT,
		PasswordConfig:  config.PasswordConfig{ArgonMemoryKB: 8, ArgonTime: 1, ArgonParallelism: 1},
	})
	require.NoError(t, err)
	return &testSetup{svc: svc, repo: repo, sessions: sessions}
}

func codeOf(err error) pkgerrors.Code {
	return pkgerrors.As(err).Code()
}

func TestNewServiceRequiresDependencies(t *testing.T) {
	_, err := NewService(ServiceParams{})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{Tx: stubTxRunner{}})
	assert.Error(t, err)
	_, err = NewService(ServiceParams{Tx: stubTxRunner{}, UserRepoFactory: UserRepoFactory})
	assert.Error(t, err)
}

func TestRegisterNormalizesAndHashes(t *testing.T) {
	setup := newTestSetup(t)

	user, err := setup.svc.Register(context.Background(), RegisterRequest{
		Email:    "  Traveler@Example.COM ",
		Password: "long-password",
		Name:     "Traveler",
	})
	require.NoError(t, err)
	assert.Equal(t, "traveler@example.com", user.Email)
	assert.Equal(t, "Traveler", user.Name)

	stored := setup.repo.byEmail["traveler@example.com"]
	require.NotNil(t, stored)
	assert.NotEqual(t, "long-password", stored.PasswordHash)
	ok, err := security.VerifyPassword("long-password", stored.PasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestRegisterRejectsDuplicatesAndWeakPasswords(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()

	_, err := setup.svc.Register(ctx, RegisterRequest{Email: "dup@example.com", Password: "long-password", Name: "a"})
	require.NoError(t, err)

	_, err = setup.svc.Register(ctx, RegisterRequest{Email: "DUP@example.com", Password: "long-password", Name: "b"})
	assert.Equal(t, pkgerrors.CodeConflict, codeOf(err))

	_, err = setup.svc.Register(ctx, RegisterRequest{Email: "weak@example.com", Password: "short", Name: "c"})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(err))

	_, err = setup.svc.Register(ctx, RegisterRequest{Email: "noname@example.com", Password: "long-password"})
	assert.Equal(t, pkgerrors.CodeValidation, codeOf(err))
}

func TestRegisterMapsUniqueViolationToConflict(t *testing.T) {
	setup := newTestSetup(t)
	setup.repo.createErr = errors.New("UNIQUE constraint failed: users.email")

	_, err := setup.svc.Register(context.Background(), RegisterRequest{Email: "race@example.com", Password: "long-password", Name: "r"})
	assert.Equal(t, pkgerrors.CodeConflict, codeOf(err))
}

func TestLoginIssuesTokens(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()
	registered, err := setup.svc.Register(ctx, RegisterRequest{Email: "login@example.com", Password: "long-password", Name: "L"})
	require.NoError(t, err)

	resp, err := setup.svc.Login(ctx, LoginRequest{Email: "LOGIN@example.com", Password: "long-password"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, registered.ID, resp.User.ID)
	assert.NotNil(t, resp.User.LastLoginAt)

	claims, err := pkgAuth.ParseAccessToken(testJWT, resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, registered.ID, claims.UserID)
	assert.Equal(t, "login@example.com", claims.Email)
	assert.Equal(t, resp.RefreshToken, setup.sessions.sessions[claims.ID])
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()
	_, err := setup.svc.Register(ctx, RegisterRequest{Email: "known@example.com", Password: "long-password", Name: "K"})
	require.NoError(t, err)

	cases := []LoginRequest{
		{Email: "known@example.com", Password: "wrong-password"},
		{Email: "unknown@example.com", Password: "long-password"},
		{Email: "", Password: "long-password"},
	}
	for _, req := range cases {
		_, err := setup.svc.Login(ctx, req)
		require.Error(t, err)
		typed := pkgerrors.As(err)
		require.NotNil(t, typed)
		assert.Equal(t, pkgerrors.CodeUnauthorized, typed.Code())
		assert.Equal(t, invalidCredentialsMessage, typed.Message())
	}

	setup.repo.findErr = errors.New("db down")
	_, err = setup.svc.Login(ctx, LoginRequest{Email: "known@example.com", Password: "long-password"})
	assert.Equal(t, pkgerrors.CodeDependency, codeOf(err))
}

func TestRefreshRotatesSession(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()
	_, err := setup.svc.Register(ctx, RegisterRequest{Email: "r@example.com", Password: "long-password", Name: "R"})
	require.NoError(t, err)
	login, err := setup.svc.Login(ctx, LoginRequest{Email: "r@example.com", Password: "long-password"})
	require.NoError(t, err)

	pair, err := setup.svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, login.RefreshToken, pair.RefreshToken)

	oldClaims, err := pkgAuth.ParseAccessToken(testJWT, login.AccessToken)
	require.NoError(t, err)
	newClaims, err := pkgAuth.ParseAccessToken(testJWT, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, oldClaims.UserID, newClaims.UserID)
	assert.NotEqual(t, oldClaims.ID, newClaims.ID)

	_, err = setup.svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	assert.Equal(t, pkgerrors.CodeUnauthorized, codeOf(err), "refresh tokens are single use")

	_, err = setup.svc.Refresh(ctx, "garbage", pair.RefreshToken)
	assert.Equal(t, pkgerrors.CodeUnauthorized, codeOf(err))
}

func TestRefreshAcceptsExpiredAccessToken(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()
	expired, err := pkgAuth.MintAccessToken(testJWT, time.Now().Add(-2*time.Hour), pkgAuth.AccessTokenPayload{
		UserID: 9, Email: "old@example.com", JTI: "expired-session",
	})
	require.NoError(t, err)
	refresh, err := setup.sessions.Generate(ctx, 9, "expired-session")
	require.NoError(t, err)

	pair, err := setup.svc.Refresh(ctx, expired, refresh)
	require.NoError(t, err)
	claims, err := pkgAuth.ParseAccessToken(testJWT, pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(9), claims.UserID)
}

func TestRefreshRejectsForeignSession(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()
	token, err := pkgAuth.MintAccessToken(testJWT, time.Now(), pkgAuth.AccessTokenPayload{UserID: 1, JTI: "shared"})
	require.NoError(t, err)
	refresh, err := setup.sessions.Generate(ctx, 2, "shared")
	require.NoError(t, err)

	_, err = setup.svc.Refresh(ctx, token, refresh)
	assert.Equal(t, pkgerrors.CodeUnauthorized, codeOf(err))
	assert.Empty(t, setup.sessions.sessions, "rotated session for the wrong user is revoked")
}

func TestLogoutRevokesSession(t *testing.T) {
	setup := newTestSetup(t)
	ctx := context.Background()
	_, err := setup.svc.Register(ctx, RegisterRequest{Email: "out@example.com", Password: "long-password", Name: "O"})
	require.NoError(t, err)
	login, err := setup.svc.Login(ctx, LoginRequest{Email: "out@example.com", Password: "long-password"})
	require.NoError(t, err)

	require.NoError(t, setup.svc.Logout(ctx, login.AccessToken))
	assert.Empty(t, setup.sessions.sessions)

	_, err = setup.svc.Refresh(ctx, login.AccessToken, login.RefreshToken)
	assert.Equal(t, pkgerrors.CodeUnauthorized, codeOf(err))

	assert.Equal(t, pkgerrors.CodeUnauthorized, codeOf(setup.svc.Logout(ctx, "")))
}
