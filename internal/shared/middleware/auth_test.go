package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/pkg/token"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type fakePrincipals struct {
	users map[uuid.UUID]auth.Role
	err   error
}

func (f *fakePrincipals) LoadPrincipal(_ context.Context, id uuid.UUID) (*auth.Principal, error) {
	if f.err != nil {
		return nil, f.err
	}
	role, ok := f.users[id]
	if !ok {
		return nil, auth.ErrPrincipalNotFound
	}
	return &auth.Principal{ID: id, Role: role}, nil
}

func newTestRouter(a *Authenticator, roles ...auth.Role) *gin.Engine {
	r := gin.New()
	chain := []gin.HandlerFunc{a.Protect()}
	if len(roles) > 0 {
		chain = append(chain, Authorize(roles...))
	}
	chain = append(chain, func(c *gin.Context) {
		p, ok := auth.FromContext(c.Request.Context())
		if !ok {
			c.Status(http.StatusTeapot)
			return
		}
		c.JSON(http.StatusOK, gin.H{"id": p.ID.String(), "role": p.Role})
	})
	r.GET("/private", chain...)
	return r
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestProtect_MissingToken(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	r := newTestRouter(NewAuthenticator(tokens, &fakePrincipals{}))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/private", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	body := decode(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "Not authorized to access this route", body["error"])
}

func TestProtect_BearerHeader(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	id := uuid.New()
	r := newTestRouter(NewAuthenticator(tokens, &fakePrincipals{users: map[uuid.UUID]auth.Role{id: auth.RolePublisher}}))

	signed, err := tokens.Issue(id.String())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, id.String(), body["id"])
	assert.Equal(t, "publisher", body["role"])
}

func TestProtect_CookieFallback(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	id := uuid.New()
	r := newTestRouter(NewAuthenticator(tokens, &fakePrincipals{users: map[uuid.UUID]auth.Role{id: auth.RoleUser}}))

	signed, err := tokens.Issue(id.String())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.AddCookie(&http.Cookie{Name: TokenCookieName, Value: signed})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProtect_InvalidOrForeignToken(t *testing.T) {
	id := uuid.New()
	r := newTestRouter(NewAuthenticator(token.NewManager("secret", time.Hour), &fakePrincipals{users: map[uuid.UUID]auth.Role{id: auth.RoleUser}}))

	foreign, err := token.NewManager("other", time.Hour).Issue(id.String())
	require.NoError(t, err)

	for _, raw := range []string{"garbage", foreign} {
		req := httptest.NewRequest(http.MethodGet, "/private", nil)
		req.Header.Set("Authorization", "Bearer "+raw)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
	}
}

func TestProtect_UnknownUser(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	r := newTestRouter(NewAuthenticator(tokens, &fakePrincipals{}))

	signed, err := tokens.Issue(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestProtect_LoaderFailureIs500(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	r := newTestRouter(NewAuthenticator(tokens, &fakePrincipals{err: errors.New("db down")}))

	signed, err := tokens.Issue(uuid.NewString())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Server Error", decode(t, w)["error"])
}

func TestAuthorize_RoleMismatch(t *testing.T) {
	tokens := token.NewManager("secret", time.Hour)
	id := uuid.New()
	r := newTestRouter(NewAuthenticator(tokens, &fakePrincipals{users: map[uuid.UUID]auth.Role{id: auth.RoleUser}}),
		auth.RolePublisher, auth.RoleAdmin)

	signed, err := tokens.Issue(id.String())
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/private", nil)
	req.Header.Set("Authorization", "Bearer "+signed)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Equal(t, "User role user is not authorized to access this route", decode(t, w)["error"])
}

func TestAuthorize_WithoutProtectIs401(t *testing.T) {
	r := gin.New()
	r.GET("/x", Authorize(auth.RoleAdmin), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestExtractToken_HeaderBeatsCookie(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set("Authorization", "Bearer from-header")
	c.Request.AddCookie(&http.Cookie{Name: TokenCookieName, Value: "from-cookie"})

	assert.Equal(t, "from-header", ExtractToken(c))

	c.Request.Header.Set("Authorization", "Basic abc")
	assert.Equal(t, "from-cookie", ExtractToken(c))
}
