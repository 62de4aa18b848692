package api

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skylinetravels/flightbooking/internal/authz"
	"github.com/skylinetravels/flightbooking/internal/domain"
)

const (
	principalKey     = "principal"
	badCredentialKey = "bad_credential"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*domain.User, error)
}

type Authorizer interface {
	Allowed(ctx context.Context, req authz.Request) (bool, error)
}

// RequestLogger writes one line per request, plus the errors handlers attached.
func RequestLogger(logger *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		attrs := []any{
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start),
			"ip", c.ClientIP(),
		}
		if len(c.Errors) > 0 {
			logger.Error("request failed", append(attrs, "error", c.Errors.String())...)
			return
		}
		logger.Info("request", attrs...)
	}
}

// Timeout bounds the request context, and with it every store call the request makes.
func Timeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if d <= 0 {
			c.Next()
			return
		}
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func CORS() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.Writer.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		h.Set("Access-Control-Allow-Headers", "Authorization, Content-Type")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		c.Next()
	}
}

// Authenticate resolves a bearer token to a principal. Requests without a
// usable token continue anonymously; a token that does not verify is only
// remembered, so public routes still answer and Authorize reports it when the
// route needs a caller.
func Authenticate(users Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			c.Next()
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		token = strings.TrimSpace(token)
		if !ok || token == "" {
			c.Set(badCredentialKey, true)
			c.Next()
			return
		}

		user, err := users.Authenticate(c.Request.Context(), token)
		if errors.Is(err, domain.ErrUnauthorized) {
			c.Set(badCredentialKey, true)
			c.Next()
			return
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.Set(principalKey, authz.Principal{ID: user.ID, Admin: user.IsAdmin})
		c.Next()
	}
}

// Authorize evaluates the route policy for the matched route.
func Authorize(policy Authorizer) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if route == "" {
			c.Next()
			return
		}

		params := make(map[string]string, len(c.Params))
		for _, p := range c.Params {
			params[p.Key] = p.Value
		}
		req := authz.Request{Method: c.Request.Method, Route: route, Params: params}
		principal, authenticated := principalFrom(c)
		if authenticated {
			req.User = &principal
		}

		allowed, err := policy.Allowed(c.Request.Context(), req)
		if err != nil {
			respondError(c, err)
			return
		}
		if !allowed {
			if !authenticated {
				respondError(c, unauthenticated(c))
				return
			}
			respondError(c, domain.Forbidden("Unauthorized"))
			return
		}
		c.Next()
	}
}

func principalFrom(c *gin.Context) (authz.Principal, bool) {
	v, ok := c.Get(principalKey)
	if !ok {
		return authz.Principal{}, false
	}
	p, ok := v.(authz.Principal)
	return p, ok
}

// requirePrincipal is for handlers behind routes the policy only grants to authenticated callers.
func requirePrincipal(c *gin.Context) (authz.Principal, bool) {
	p, ok := principalFrom(c)
	if !ok {
		respondError(c, unauthenticated(c))
	}
	return p, ok
}

func unauthenticated(c *gin.Context) error {
	if c.GetBool(badCredentialKey) {
		return domain.Unauthorized("Invalid token")
	}
	return domain.Unauthorized("Authentication required")
}
