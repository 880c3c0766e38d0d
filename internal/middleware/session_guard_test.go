package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"moviedb/internal/auth"
	"moviedb/internal/model"
)

const testSecret = "guard-test-secret"

type MockUsers struct {
	mock.Mock
}

func (m *MockUsers) SetActive(ctx context.Context, userID uint, active bool) error {
	args := m.Called(ctx, userID, active)
	return args.Error(0)
}

func (m *MockUsers) FindByID(ctx context.Context, id uint) (*model.User, error) {
	args := m.Called(ctx, id)
	user, _ := args.Get(0).(*model.User)
	return user, args.Error(1)
}

type memRevocation map[string]bool

func (r memRevocation) Revoke(_ context.Context, tokenID string, _ time.Duration) error {
	r[tokenID] = true
	return nil
}

func (r memRevocation) IsRevoked(_ context.Context, tokenID string) bool {
	return r[tokenID]
}

func signed(t *testing.T, secret string, userID uint, exp time.Time) string {
	t.Helper()
	claims := &auth.Claims{
		User: auth.TokenUser{ID: userID},
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        "jti-" + exp.Format(time.RFC3339Nano),
			IssuedAt:  jwt.NewNumericDate(exp.Add(-time.Hour)),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

type guardFixture struct {
	echo       *echo.Echo
	tokens     *auth.TokenService
	users      *MockUsers
	revocation memRevocation
}

func newGuardFixture(mode string) *guardFixture {
	tokens := auth.NewTokenService(testSecret, time.Hour)
	users := &MockUsers{}
	revocation := memRevocation{}
	deactivator := auth.NewDeactivator(users, tokens, mode, time.Second).
		WithDispatch(func(task func()) { task() })
	guard := NewSessionGuard(tokens, revocation, deactivator)

	e := echo.New()
	e.HTTPErrorHandler = ErrorHandler(false)
	e.GET("/protected", func(c echo.Context) error {
		id, _ := UserIDFromContext(c)
		ctxID, _ := UserIDFromRequestContext(c.Request().Context())
		return c.JSON(http.StatusOK, map[string]uint{"user_id": id, "ctx_user_id": ctxID})
	}, guard.Middleware())

	return &guardFixture{echo: e, tokens: tokens, users: users, revocation: revocation}
}

func (f *guardFixture) get(header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	f.echo.ServeHTTP(rec, req)
	return rec
}

func TestSessionGuard_ValidToken(t *testing.T) {
	f := newGuardFixture(auth.DeactivateExpired)
	token, _, err := f.tokens.Issue(7)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "bearer prefix", header: "Bearer " + token},
		{name: "bare token", header: token},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.get(tt.header)
			assert.Equal(t, http.StatusOK, rec.Code)
			assert.JSONEq(t, `{"user_id":7,"ctx_user_id":7}`, rec.Body.String())
		})
	}
	f.users.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestSessionGuard_MissingToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "bearer without token", header: "Bearer "},
		{name: "bearer trimmed", header: "Bearer"},
		{name: "blank", header: "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGuardFixture(auth.DeactivateAny)

			rec := f.get(tt.header)

			assert.Equal(t, http.StatusForbidden, rec.Code)
			assert.JSONEq(t, `{"error":"authorization denied","code":"UNAUTHENTICATED"}`, rec.Body.String())
			f.users.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestSessionGuard_ExpiredTokenDeactivatesOwner(t *testing.T) {
	f := newGuardFixture(auth.DeactivateExpired)
	f.users.On("SetActive", mock.Anything, uint(42), false).Return(nil).Once()
	expired := signed(t, testSecret, 42, time.Now().Add(-time.Minute))

	rec := f.get("Bearer " + expired)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token is not valid","code":"INVALID_TOKEN"}`, rec.Body.String())
	f.users.AssertExpectations(t)
}

func TestSessionGuard_DeactivationFailureIsOpaque(t *testing.T) {
	f := newGuardFixture(auth.DeactivateExpired)
	f.users.On("SetActive", mock.Anything, uint(42), false).Return(assert.AnError).Once()
	expired := signed(t, testSecret, 42, time.Now().Add(-time.Minute))

	rec := f.get("Bearer " + expired)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token is not valid","code":"INVALID_TOKEN"}`, rec.Body.String())
	f.users.AssertExpectations(t)
}

func TestSessionGuard_InvalidTokenByMode(t *testing.T) {
	forged := signed(t, "someone-else", 42, time.Now().Add(time.Hour))

	tests := []struct {
		name           string
		mode           string
		token          string
		wantDeactivate bool
	}{
		{name: "forged token in expired mode", mode: auth.DeactivateExpired, token: forged},
		{name: "forged token in any mode", mode: auth.DeactivateAny, token: forged, wantDeactivate: true},
		{name: "expired token with mode off", mode: auth.DeactivateOff, token: signed(t, testSecret, 42, time.Now().Add(-time.Minute))},
		{name: "garbage in any mode", mode: auth.DeactivateAny, token: "not-a-jwt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newGuardFixture(tt.mode)
			if tt.wantDeactivate {
				f.users.On("SetActive", mock.Anything, uint(42), false).Return(nil).Once()
			}

			rec := f.get("Bearer " + tt.token)

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.JSONEq(t, `{"error":"token is not valid","code":"INVALID_TOKEN"}`, rec.Body.String())
			if tt.wantDeactivate {
				f.users.AssertExpectations(t)
			} else {
				f.users.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
			}
		})
	}
}

func TestSessionGuard_RevokedTokenIsNotDeactivated(t *testing.T) {
	f := newGuardFixture(auth.DeactivateAny)
	token, claims, err := f.tokens.Issue(9)
	require.NoError(t, err)
	require.NoError(t, f.revocation.Revoke(context.Background(), claims.ID, time.Hour))

	rec := f.get("Bearer " + token)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"error":"token is not valid","code":"INVALID_TOKEN"}`, rec.Body.String())
	f.users.AssertNotCalled(t, "SetActive", mock.Anything, mock.Anything, mock.Anything)
}

func TestRejectionReason(t *testing.T) {
	assert.Equal(t, reasonRevoked, rejectionReason(auth.ErrTokenRevoked))
	assert.Equal(t, reasonExpired, rejectionReason(auth.ErrTokenExpired))
	assert.Equal(t, reasonInvalid, rejectionReason(auth.ErrTokenInvalid))
}
