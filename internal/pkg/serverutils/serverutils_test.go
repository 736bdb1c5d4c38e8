package serverutils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-renamer-be/internal/service"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/renamer"
	"ai-renamer-be/pkg/workspace"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func decode(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestStatusFor(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    int
		message string
	}{
		{"app error", NewAppError(418, "teapot"), 418, "teapot"},
		{"fiber error", fiber.NewError(fiber.StatusMethodNotAllowed, "nope"), 405, "nope"},
		{"no api key", workspace.ErrNoApiKey, 400, "Please select an API key"},
		{"empty selection wrapped", fmt.Errorf("batch: %w", workspace.ErrEmptySelection), 400, "Please select at least one file"},
		{"file missing", workspace.ErrFileNotFound, 404, "File not found"},
		{"write denied", renamer.ErrPermissionDenied, 403, "Write permission denied"},
		{"read denied", renamer.ErrReadPermissionDenied, 403, "Failed to select folder"},
		{"conflict", renamer.ErrNameConflict, 409, "file with that name already exists"},
		{"credentials", service.ErrInvalidCredentials, 401, "Invalid credentials"},
		{"duplicate", service.ErrDuplicateName, 409, "name already in use"},
		{"outside root", service.ErrInvalidFolder, 400, "folder must be inside the workspace root"},
		{"quota", &naming.Error{Kind: naming.KindQuotaExceeded, Message: "API quota exceeded"}, 429, "API quota exceeded"},
		{"bad key", &naming.Error{Kind: naming.KindInvalidApiKey, Message: "Invalid API key"}, 422, "Invalid API key"},
		{"provider", &naming.Error{Kind: naming.KindProvider, Message: "overloaded"}, 502, "overloaded"},
		{"unknown", errors.New("disk on fire"), 500, "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, msg := StatusFor(tt.err)
			assert.Equal(t, tt.code, code)
			assert.Equal(t, tt.message, msg)
		})
	}
}

type createThing struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func TestErrorHandlerMiddleware_RendersEnvelope(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandlerMiddleware()})
	app.Get("/missing", func(ctx *fiber.Ctx) error { return workspace.ErrFileNotFound })
	app.Post("/things", func(ctx *fiber.Ctx) error {
		return ValidateRequest(createThing{Email: "not-an-email"})
	})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/missing", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	body := decode(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["code"])
	assert.Equal(t, "File not found", body["message"])

	resp, err = app.Test(httptest.NewRequest(http.MethodPost, "/things", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	body = decode(t, resp)
	assert.Equal(t, "Validation failed", body["message"])
	fields, ok := body["data"].([]interface{})
	require.True(t, ok)
	assert.Len(t, fields, 2)
}

func TestJwtMiddleware(t *testing.T) {
	userID := uuid.New()
	app := fiber.New()
	app.Get("/me", JwtMiddleware(testSecret), func(ctx *fiber.Ctx) error {
		id, err := UserID(ctx)
		if err != nil {
			return err
		}
		return ctx.SendString(id.String())
	})

	valid := signToken(t, testSecret, jwt.MapClaims{"user_id": userID.String(), "exp": time.Now().Add(time.Hour).Unix()})
	expired := signToken(t, testSecret, jwt.MapClaims{"user_id": userID.String(), "exp": time.Now().Add(-time.Hour).Unix()})
	foreign := signToken(t, "other-secret", jwt.MapClaims{"user_id": userID.String()})
	noSubject := signToken(t, testSecret, jwt.MapClaims{"exp": time.Now().Add(time.Hour).Unix()})

	tests := []struct {
		name   string
		header string
		status int
	}{
		{"valid", "Bearer " + valid, http.StatusOK},
		{"missing", "", http.StatusUnauthorized},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized},
		{"expired", "Bearer " + expired, http.StatusUnauthorized},
		{"other secret", "Bearer " + foreign, http.StatusUnauthorized},
		{"no user id", "Bearer " + noSubject, http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			if tt.status == http.StatusOK {
				body, _ := io.ReadAll(resp.Body)
				assert.Equal(t, userID.String(), string(body))
			}
		})
	}
}

func TestBearerToken(t *testing.T) {
	assert.Equal(t, "abc", BearerToken("Bearer abc"))
	assert.Equal(t, "abc", BearerToken("bearer abc"))
	assert.Empty(t, BearerToken("Bearer"))
	assert.Empty(t, BearerToken("Token abc"))
}
