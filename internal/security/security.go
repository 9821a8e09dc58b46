// Package security carries the HTTP middleware for the notifier's two
// audiences: end users reading their feed (JWT) and the delivery
// infrastructure hitting the trigger webhook (shared secret).
package security

import (
	"crypto/subtle"
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	limiterpkg "github.com/ulule/limiter/v3"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

type Security struct {
	jwtSecret     string
	triggerSecret string
	rateLimiter   *limiterpkg.Limiter
}

func New(jwtSecret, triggerSecret string) *Security {
	// 60 trigger calls per minute per IP. One call per chat message
	// keeps legitimate traffic far below this.
	rate := limiterpkg.Rate{
		Period: 60,
		Limit:  60,
	}
	store := memory.NewStore()

	return &Security{
		jwtSecret:     jwtSecret,
		triggerSecret: triggerSecret,
		rateLimiter:   limiterpkg.New(store, rate),
	}
}

// JWTMiddleware authenticates feed-API requests and stores the caller
// uid in the echo context.
func (s *Security) JWTMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Authorization header is required"})
		}

		if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format"})
		}

		tokenString := authHeader[7:]
		if tokenString == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token format"})
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(s.jwtSecret), nil
		})
		if err != nil || !token.Valid {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token"})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token claims"})
		}

		uid, ok := claims["sub"].(string)
		if !ok || uid == "" {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid token claims"})
		}

		c.Set("uid", uid)
		return next(c)
	}
}

// TriggerAuthMiddleware guards the webhook the message store's
// change-notification infrastructure calls.
func (s *Security) TriggerAuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		secret := c.Request().Header.Get("X-Trigger-Secret")
		if subtle.ConstantTimeCompare([]byte(secret), []byte(s.triggerSecret)) != 1 {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Invalid trigger secret"})
		}
		return next(c)
	}
}

// RateLimitMiddleware limits trigger calls per client IP.
func (s *Security) RateLimitMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ip := c.RealIP()

		limiterCtx, err := s.rateLimiter.Get(c.Request().Context(), ip)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Rate limiter error"})
		}

		if limiterCtx.Reached {
			return c.JSON(http.StatusTooManyRequests, map[string]string{"error": "Rate limit exceeded"})
		}

		return next(c)
	}
}
