package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/agent-admin/internal/domain"
	apperrors "github.com/spec-kit/agent-admin/pkg/util"
)

type stubVerifier struct {
	principals map[string]*Principal
}

func (s *stubVerifier) Verify(_ context.Context, token string) (*Principal, error) {
	if p, ok := s.principals[token]; ok {
		return p, nil
	}
	return nil, apperrors.NewUnauthorized("invalid token")
}

func newTestApp(verifier SessionVerifier, guard fiber.Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			return c.SendStatus(apperrors.ToDomainError(err).HTTPStatus())
		},
	})
	mw := NewAuthMiddleware(verifier)
	app.Get("/guarded", mw.Handle, guard, func(c *fiber.Ctx) error {
		p, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.ErrInternalServerError
		}
		return c.SendString(p.User.Username)
	})
	return app
}

func TestAuthMiddleware(t *testing.T) {
	verifier := &stubVerifier{principals: map[string]*Principal{
		"admin-token": {User: &domain.User{Username: "AD001", Role: domain.RoleAdmin}},
		"agent-token": {User: &domain.User{Username: "AG001", Role: domain.RoleAgent}},
	}}
	app := newTestApp(verifier, RequireRole(domain.RoleAdmin))

	cases := []struct {
		name   string
		header string
		status int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"unknown token", "Bearer nope", http.StatusUnauthorized},
		{"insufficient role", "Bearer agent-token", http.StatusForbidden},
		{"admin allowed", "bearer admin-token", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tc.status, resp.StatusCode)
		})
	}
}

func TestRequireAnyRole(t *testing.T) {
	verifier := &stubVerifier{principals: map[string]*Principal{
		"agent-token": {User: &domain.User{Username: "AG001", Role: domain.RoleAgent}},
	}}
	app := newTestApp(verifier, RequireAnyRole())

	req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
	req.Header.Set("Authorization", "Bearer agent-token")
	resp, err := app.Test(req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestBearerToken(t *testing.T) {
	token, err := BearerToken("Bearer  abc.def.ghi ")
	require.NoError(t, err)
	assert.Equal(t, "abc.def.ghi", token)
}
