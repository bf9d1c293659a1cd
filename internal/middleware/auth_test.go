package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ladle/internal/config"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func defaultClaims() jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": "42",
		"iss": "ladle-api",
		"aud": "ladle-client",
		"exp": now.Add(time.Hour).Unix(),
		"iat": now.Unix(),
		"nbf": now.Unix(),
	}
}

func newAuthTestApp() *fiber.App {
	app := fiber.New()
	app.Get("/protected", AuthRequired, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"user_id": c.Locals("userID")})
	})
	return app
}

func TestAuthRequired(t *testing.T) {
	const secret = "test-secret"
	InitMiddleware(&config.Config{JWTSecret: secret})

	expired := defaultClaims()
	expired["exp"] = time.Now().Add(-time.Hour).Unix()

	badIssuer := defaultClaims()
	badIssuer["iss"] = "someone-else"

	badAudience := defaultClaims()
	badAudience["aud"] = "other-client"

	badSubject := defaultClaims()
	badSubject["sub"] = "not-a-number"

	tests := []struct {
		name           string
		header         string
		expectedStatus int
	}{
		{"Valid Token", "Bearer " + signToken(t, secret, defaultClaims()), http.StatusOK},
		{"Missing Header", "", http.StatusUnauthorized},
		{"Malformed Header", "NotBearer xyz", http.StatusUnauthorized},
		{"Wrong Secret", "Bearer " + signToken(t, "other-secret", defaultClaims()), http.StatusUnauthorized},
		{"Expired", "Bearer " + signToken(t, secret, expired), http.StatusUnauthorized},
		{"Bad Issuer", "Bearer " + signToken(t, secret, badIssuer), http.StatusUnauthorized},
		{"Bad Audience", "Bearer " + signToken(t, secret, badAudience), http.StatusUnauthorized},
		{"Bad Subject", "Bearer " + signToken(t, secret, badSubject), http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := newAuthTestApp()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req)
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, tt.expectedStatus, resp.StatusCode)
		})
	}
}

func TestAuthRequiredRejectsUnsignedToken(t *testing.T) {
	InitMiddleware(&config.Config{JWTSecret: "test-secret"})

	token := jwt.NewWithClaims(jwt.SigningMethodNone, defaultClaims())
	signed, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	app := newAuthTestApp()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signed)

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}
