package middleware_test

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"conveymed-analytics/internal/http/middleware"
)

const secret = "test-secret"

func setupApp(t *testing.T, secret string) *fiber.App {
	t.Helper()
	app := fiber.New()
	app.Use(middleware.Viewer(secret, nil))
	app.Get("/whoami", func(c *fiber.Ctx) error {
		return c.SendString(middleware.ViewerID(c))
	})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, string) {
	t.Helper()
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("app.Test error: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	return resp.StatusCode, string(body)
}

// ------------------------------------------------------------
// no secret: header or anonymous
// ------------------------------------------------------------

func TestViewer_NoSecret_Header(t *testing.T) {
	app := setupApp(t, "")
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set(middleware.ViewerHeader, "u-42")

	status, body := do(t, app, req)
	if status != http.StatusOK || body != "u-42" {
		t.Fatalf("expected 200 u-42, got %d %q", status, body)
	}
}

func TestViewer_NoSecret_Anonymous(t *testing.T) {
	app := setupApp(t, "")
	status, body := do(t, app, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if status != http.StatusOK || body != middleware.Anonymous {
		t.Fatalf("expected anonymous viewer, got %d %q", status, body)
	}
}

// ------------------------------------------------------------
// secret: bearer token required
// ------------------------------------------------------------

func TestViewer_ValidToken(t *testing.T) {
	app := setupApp(t, secret)
	token, err := middleware.IssueToken([]byte(secret), "u-7", time.Hour, time.Now())
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set(middleware.ViewerHeader, "spoofed")

	status, body := do(t, app, req)
	if status != http.StatusOK || body != "u-7" {
		t.Fatalf("expected 200 u-7, got %d %q", status, body)
	}
}

func TestViewer_MissingToken(t *testing.T) {
	app := setupApp(t, secret)
	status, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/whoami", nil))
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestViewer_WrongKey(t *testing.T) {
	app := setupApp(t, secret)
	token, _ := middleware.IssueToken([]byte("other"), "u-7", time.Hour, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ := do(t, app, req)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestViewer_Expired(t *testing.T) {
	app := setupApp(t, secret)
	token, _ := middleware.IssueToken([]byte(secret), "u-7", time.Minute, time.Now().Add(-time.Hour))

	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	status, _ := do(t, app, req)
	if status != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", status)
	}
}

func TestValidateToken_RejectsNoneAlg(t *testing.T) {
	claims := &middleware.Claims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"}}
	raw, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := middleware.ValidateToken([]byte(secret), raw); err == nil {
		t.Fatalf("expected none-signed token to be rejected")
	}
}

func TestValidateToken_MissingSubject(t *testing.T) {
	raw, _ := middleware.IssueToken([]byte(secret), "", time.Hour, time.Now())
	if _, err := middleware.ValidateToken([]byte(secret), raw); err == nil {
		t.Fatalf("expected missing subject to be rejected")
	}
}
