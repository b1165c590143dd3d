package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"storefront/models"
	"storefront/utils"
)

func echoSession(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(SessionID(r)))
}

func bearer(t *testing.T, email, role string) string {
	t.Helper()
	utils.JwtKey = []byte("middleware-test")
	token, err := utils.GenerateJWT(email, role)
	require.NoError(t, err)
	return "Bearer " + token
}

func TestAuthenticateLetsGuestsThrough(t *testing.T) {
	h := Authenticate(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, ok := ClaimsFrom(r)
		assert.False(t, ok)
	}))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthenticateRejectsBadTokens(t *testing.T) {
	h := Authenticate(http.HandlerFunc(echoSession))
	for _, header := range []string{"Token abc", "Bearer not-a-jwt"} {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", header)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, header)
	}
}

func TestAdminMiddleware(t *testing.T) {
	h := Authenticate(AdminMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/products", nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	req := httptest.NewRequest(http.MethodPost, "/products", nil)
	req.Header.Set("Authorization", bearer(t, "nezuko@example.com", models.RoleCustomer))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	req = httptest.NewRequest(http.MethodPost, "/products", nil)
	req.Header.Set("Authorization", bearer(t, "urokodaki@example.com", models.RoleAdmin))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestSessionsKeysUsersByEmail(t *testing.T) {
	s := NewSessions("0123456789abcdef0123456789abcdef", false, 3600)
	h := Authenticate(s.Middleware(http.HandlerFunc(echoSession)))

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.Header.Set("Authorization", bearer(t, "tanjiro@example.com", models.RoleCustomer))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "user:tanjiro@example.com", rec.Body.String())
	assert.Empty(t, rec.Result().Cookies())
}

func TestSessionsGuestCookieIsStable(t *testing.T) {
	s := NewSessions("0123456789abcdef0123456789abcdef", false, 3600)
	h := s.Middleware(http.HandlerFunc(echoSession))

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	first := rec.Body.String()
	require.True(t, strings.HasPrefix(first, "guest:"))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)

	req := httptest.NewRequest(http.MethodGet, "/cart", nil)
	req.AddCookie(cookies[0])
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, first, rec.Body.String())

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	assert.NotEqual(t, first, rec.Body.String())
}
