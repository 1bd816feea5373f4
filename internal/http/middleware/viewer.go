package middleware

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
)

const (
	ViewerHeader = "X-Viewer-ID"
	Anonymous    = "anonymous"

	viewerLocal = "viewer"
	issuer      = "conveymed-analytics"
)

var ErrMissingSubject = errors.New("token has no subject")

type ErrorResponse struct {
	Error   string `json:"error" example:"unauthorized"`
	Message string `json:"message" example:"invalid token"`
}

type Claims struct {
	jwt.RegisteredClaims
}

// Viewer identifies the caller. With a secret every request needs a valid
// HS256 bearer token and the viewer is its subject. Without one the viewer
// comes from the X-Viewer-ID header, or is anonymous.
func Viewer(secret string, log *zap.Logger) fiber.Handler {
	if log == nil {
		log = zap.NewNop()
	}
	key := []byte(secret)

	return func(c *fiber.Ctx) error {
		if secret == "" {
			viewer := strings.Clone(strings.TrimSpace(c.Get(ViewerHeader)))
			if viewer == "" {
				viewer = Anonymous
			}
			c.Locals(viewerLocal, viewer)
			return c.Next()
		}

		raw, ok := bearer(c.Get(fiber.HeaderAuthorization))
		if !ok {
			return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "missing bearer token",
			})
		}

		claims, err := ValidateToken(key, raw)
		if err != nil {
			log.Debug("rejected token", zap.Error(err))
			return c.Status(http.StatusUnauthorized).JSON(ErrorResponse{
				Error:   "unauthorized",
				Message: "invalid token",
			})
		}

		c.Locals(viewerLocal, claims.Subject)
		return c.Next()
	}
}

// ViewerID returns the viewer set by Viewer.
func ViewerID(c *fiber.Ctx) string {
	if v, ok := c.Locals(viewerLocal).(string); ok && v != "" {
		return v
	}
	return Anonymous
}

// IssueToken signs a token for subject. Used by tooling and tests.
func IssueToken(key []byte, subject string, ttl time.Duration, now time.Time) (string, error) {
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(key)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

func ValidateToken(key []byte, raw string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}
	if claims.Subject == "" {
		return nil, ErrMissingSubject
	}
	return claims, nil
}

func bearer(header string) (string, bool) {
	const prefix = "bearer "
	if len(header) <= len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return "", false
	}
	raw := strings.TrimSpace(header[len(prefix):])
	return raw, raw != ""
}
