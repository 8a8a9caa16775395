package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"bootcamp-backend/internal/shared/auth"
	"bootcamp-backend/internal/shared/response"
	"bootcamp-backend/pkg/logger"
	"bootcamp-backend/pkg/token"
)

const (
	// TokenCookieName is the cookie carrying the signed token
	TokenCookieName = "token"

	// PrincipalKey is the gin context key for the authenticated principal
	PrincipalKey = "principal"

	notAuthorizedMessage = "Not authorized to access this route"
)

// TokenVerifier validates a signed token
type TokenVerifier interface {
	Verify(raw string) (*token.Claims, error)
}

// PrincipalLoader resolves the current role of a user.
// Returns auth.ErrPrincipalNotFound for unknown ids.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, id uuid.UUID) (*auth.Principal, error)
}

// Authenticator builds the Protect middleware
type Authenticator struct {
	tokens     TokenVerifier
	principals PrincipalLoader
}

func NewAuthenticator(tokens TokenVerifier, principals PrincipalLoader) *Authenticator {
	return &Authenticator{
		tokens:     tokens,
		principals: principals,
	}
}

// Protect - xác thực token, gắn principal vào context
func (a *Authenticator) Protect() gin.HandlerFunc {
	return func(c *gin.Context) {
		// 1. Lấy token từ header hoặc cookie
		raw := ExtractToken(c)
		if raw == "" {
			response.Unauthorized(c, notAuthorizedMessage)
			return
		}

		// 2. Verify signature + expiry
		claims, err := a.tokens.Verify(raw)
		if err != nil {
			response.Unauthorized(c, notAuthorizedMessage)
			return
		}

		userID, err := uuid.Parse(claims.UserID())
		if err != nil {
			response.Unauthorized(c, notAuthorizedMessage)
			return
		}

		// 3. Load role từ DB (role có thể thay đổi sau khi token được cấp)
		principal, err := a.principals.LoadPrincipal(c.Request.Context(), userID)
		if err != nil {
			if errors.Is(err, auth.ErrPrincipalNotFound) {
				response.Unauthorized(c, notAuthorizedMessage)
				return
			}
			logger.Error("failed to load principal", err)
			response.AbortWithError(c, err)
			return
		}

		// 4. Gắn principal
		c.Set(PrincipalKey, principal)
		c.Request = c.Request.WithContext(auth.WithPrincipal(c.Request.Context(), principal))

		c.Next()
	}
}

// Authorize restricts a protected route to the given roles
func Authorize(roles ...auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		principal, ok := CurrentPrincipal(c)
		if !ok {
			response.Unauthorized(c, notAuthorizedMessage)
			return
		}

		if !principal.HasRole(roles...) {
			response.Forbidden(c, "User role "+principal.Role.String()+" is not authorized to access this route")
			return
		}

		c.Next()
	}
}

// ExtractToken reads "Authorization: Bearer <token>" first, then the token cookie
func ExtractToken(c *gin.Context) string {
	if header := c.GetHeader("Authorization"); strings.HasPrefix(header, "Bearer ") {
		if t := strings.TrimSpace(strings.TrimPrefix(header, "Bearer ")); t != "" {
			return t
		}
	}

	if cookie, err := c.Cookie(TokenCookieName); err == nil && cookie != "" && cookie != "none" {
		return cookie
	}

	return ""
}

// CurrentPrincipal returns the principal attached by Protect
func CurrentPrincipal(c *gin.Context) (*auth.Principal, bool) {
	if v, exists := c.Get(PrincipalKey); exists {
		if p, ok := v.(*auth.Principal); ok && p != nil {
			return p, true
		}
	}
	return auth.FromContext(c.Request.Context())
}
