package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"forge/config"
	"forge/internal/domain/entity"
	"forge/internal/domain/policy"
	"forge/internal/infra/auth"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testAuthMiddleware(t *testing.T) *AuthMiddleware {
	t.Helper()

	cfg := &config.Config{}
	cfg.SecretKey.Access = "test-access-secret"
	cfg.SecretKey.Refresh = "test-refresh-secret"

	tokenSvc, err := auth.NewJWTService(cfg)
	require.NoError(t, err)

	return NewAuthMiddleware(tokenSvc)
}

func invoke(m echo.MiddlewareFunc, authHeader string) (echo.Context, *httptest.ResponseRecorder, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m(next)(c)

	return c, rec, err
}

func TestAuthenticate_MissingHeader(t *testing.T) {
	m := testAuthMiddleware(t)

	_, rec, err := invoke(m.Authenticate, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_MalformedHeader(t *testing.T) {
	m := testAuthMiddleware(t)

	_, rec, err := invoke(m.Authenticate, "Basic abc123")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticate_ValidAccessToken(t *testing.T) {
	m := testAuthMiddleware(t)
	userID := uuid.New()

	accessToken, _, err := m.tokenSvc.GenerateTokens(userID, string(entity.RoleStaff))
	require.NoError(t, err)

	c, rec, err := invoke(m.Authenticate, "Bearer "+accessToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	actor, ok := c.Get(KeyActor).(policy.Actor)
	require.True(t, ok)
	assert.Equal(t, userID, actor.ID)
	assert.True(t, actor.IsAuthenticated)
	assert.True(t, actor.IsStaffOrAdmin())
	assert.False(t, actor.IsAdmin())
}

func TestAuthenticate_RefreshTokenRejected(t *testing.T) {
	m := testAuthMiddleware(t)

	_, refreshToken, err := m.tokenSvc.GenerateTokens(uuid.New(), string(entity.RoleUser))
	require.NoError(t, err)

	_, rec, err := invoke(m.Authenticate, "Bearer "+refreshToken)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestOptionalAuthenticate_NoHeaderYieldsAnonymous(t *testing.T) {
	m := testAuthMiddleware(t)

	c, rec, err := invoke(m.OptionalAuthenticate, "")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	actor, ok := c.Get(KeyActor).(policy.Actor)
	require.True(t, ok)
	assert.False(t, actor.IsAuthenticated)
}

func TestOptionalAuthenticate_InvalidTokenRejected(t *testing.T) {
	m := testAuthMiddleware(t)

	_, rec, err := invoke(m.OptionalAuthenticate, "Bearer not-a-token")

	assert.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin_StaffForbidden(t *testing.T) {
	m := testAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(KeyActor, policy.Actor{ID: uuid.New(), IsStaff: true, IsAuthenticated: true})

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireAdmin(next)(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRequireStaff_AdminAllowed(t *testing.T) {
	m := testAuthMiddleware(t)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(KeyActor, policy.Actor{ID: uuid.New(), IsSuperuser: true, IsAuthenticated: true})

	next := func(c echo.Context) error { return c.NoContent(http.StatusOK) }
	err := m.RequireStaff(next)(c)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
}
