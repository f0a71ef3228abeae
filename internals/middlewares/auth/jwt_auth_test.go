package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pkbm_backend/internals/constants"
	helper "pkbm_backend/internals/helpers"
)

const secret = "test-secret"

func token(t *testing.T, claims jwt.MapClaims, key string) string {
	t.Helper()
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(key))
	require.NoError(t, err)
	return s
}

func newApp() *fiber.App {
	app := fiber.New()
	admin := app.Group("/api/a",
		AuthJWT(AuthJWTOpts{Secret: secret, AllowCookieFallback: true}),
		OnlyRoles(constants.RoleErrorAdmin("keuangan"), constants.AdminOnly...),
	)
	admin.Get("/whoami", func(c *fiber.Ctx) error {
		id, err := helper.GetUserIDFromToken(c)
		if err != nil {
			return helper.FromError(c, err)
		}
		return c.SendString(id.String() + ":" + helper.GetRoleFromToken(c))
	})
	return app
}

func call(t *testing.T, app *fiber.App, bearer string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/api/a/whoami", nil)
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestAuthJWT(t *testing.T) {
	app := newApp()
	uid := uuid.New()
	exp := time.Now().Add(time.Hour).Unix()

	resp := call(t, app, token(t, jwt.MapClaims{"id": uid.String(), "role": "admin", "exp": exp}, secret))
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// role dikenal tapi bukan admin
	resp = call(t, app, token(t, jwt.MapClaims{"sub": uid.String(), "role": "guru", "exp": exp}, secret))
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)

	cases := map[string]string{
		"no token":     "",
		"wrong secret": token(t, jwt.MapClaims{"id": uid.String(), "role": "admin", "exp": exp}, "other"),
		"expired":      token(t, jwt.MapClaims{"id": uid.String(), "role": "admin", "exp": time.Now().Add(-time.Hour).Unix()}, secret),
		"bad user id":  token(t, jwt.MapClaims{"id": "123", "role": "admin", "exp": exp}, secret),
		"unknown role": token(t, jwt.MapClaims{"id": uid.String(), "role": "owner", "exp": exp}, secret),
	}
	for name, tok := range cases {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, fiber.StatusUnauthorized, call(t, app, tok).StatusCode)
		})
	}
}

func TestAuthJWT_CookieFallback(t *testing.T) {
	app := newApp()
	req := httptest.NewRequest(http.MethodGet, "/api/a/whoami", nil)
	req.AddCookie(&http.Cookie{
		Name:  "access_token",
		Value: token(t, jwt.MapClaims{"user_id": uuid.NewString(), "role": "admin"}, secret),
	})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
}
