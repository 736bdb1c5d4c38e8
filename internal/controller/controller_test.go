package controller

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"ai-renamer-be/internal/dto"
	"ai-renamer-be/internal/pkg/serverutils"
	"ai-renamer-be/internal/service"
	"ai-renamer-be/pkg/renamer"
	"ai-renamer-be/pkg/workspace"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "controller-secret"

func newTestApp(register func(r fiber.Router)) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: serverutils.ErrorHandlerMiddleware()})
	register(app.Group("/api"))
	return app
}

func bearer(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID.String(),
		"exp":     time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(testSecret))
	require.NoError(t, err)
	return "Bearer " + token
}

func call(t *testing.T, app *fiber.App, method, path, auth string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return resp.StatusCode, out
}

// Embedding the interface lets each fake implement only what a test needs.
type fakeAuthService struct {
	service.IAuthService
	registered *dto.RegisterRequest
}

func (f *fakeAuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if req.Email == "taken@example.com" {
		return nil, service.ErrEmailTaken
	}
	f.registered = req
	return &dto.RegisterResponse{Id: uuid.New(), Email: req.Email}, nil
}

func (f *fakeAuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	return nil, service.ErrInvalidCredentials
}

type fakeWorkspaceService struct {
	service.IWorkspaceService
	closed    []uuid.UUID
	processed dto.ProcessOverrides
	renamed   struct{ name, mode string }
	history   struct {
		folder        string
		limit, offset int
	}
}

func (f *fakeWorkspaceService) Close(userId uuid.UUID) { f.closed = append(f.closed, userId) }

func (f *fakeWorkspaceService) Snapshot(ctx context.Context, userId uuid.UUID) workspace.Snapshot {
	return workspace.Snapshot{Folder: "docs"}
}

func (f *fakeWorkspaceService) OpenFolder(ctx context.Context, userId uuid.UUID, path string) (workspace.Snapshot, error) {
	if path == "../etc" {
		return workspace.Snapshot{}, service.ErrInvalidFolder
	}
	return workspace.Snapshot{Folder: path}, nil
}

func (f *fakeWorkspaceService) ProcessAll(ctx context.Context, userId uuid.UUID, overrides dto.ProcessOverrides) (*dto.BatchReportResponse, error) {
	f.processed = overrides
	return &dto.BatchReportResponse{Total: 2, Succeeded: 2}, nil
}

func (f *fakeWorkspaceService) RenameOne(ctx context.Context, userId uuid.UUID, name, mode string) (*dto.RenameOutcomeResponse, error) {
	f.renamed.name, f.renamed.mode = name, mode
	if name == "missing.pdf" {
		return nil, workspace.ErrFileNotFound
	}
	return &dto.RenameOutcomeResponse{OldName: name, FinalName: "new.pdf", Renamed: true}, nil
}

func (f *fakeWorkspaceService) History(ctx context.Context, userId uuid.UUID, folder string, limit, offset int) (*dto.HistoryResponse, error) {
	f.history.folder, f.history.limit, f.history.offset = folder, limit, offset
	return &dto.HistoryResponse{Items: []dto.RenameRecordResponse{}}, nil
}

func TestAuthController_Register(t *testing.T) {
	auth := &fakeAuthService{}
	app := newTestApp(NewAuthController(auth, &fakeWorkspaceService{}, testSecret).RegisterRoutes)

	code, body := call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"full_name": "Ada Lovelace", "email": "ada@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusCreated, code)
	assert.Equal(t, true, body["success"])
	require.NotNil(t, auth.registered)

	code, body = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"full_name": "Ada", "email": "not-an-email", "password": "short",
	})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Validation failed", body["message"])

	code, _ = call(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"full_name": "Someone", "email": "taken@example.com", "password": "correct-horse",
	})
	assert.Equal(t, http.StatusConflict, code)
}

func TestAuthController_LoginFailure(t *testing.T) {
	app := newTestApp(NewAuthController(&fakeAuthService{}, &fakeWorkspaceService{}, testSecret).RegisterRoutes)

	code, body := call(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "ada@example.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Invalid credentials", body["message"])
}

func TestAuthController_LogoutClosesWorkspace(t *testing.T) {
	ws := &fakeWorkspaceService{}
	app := newTestApp(NewAuthController(&fakeAuthService{}, ws, testSecret).RegisterRoutes)
	userID := uuid.New()

	code, _ := call(t, app, http.MethodPost, "/api/auth/logout", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Empty(t, ws.closed)

	code, _ = call(t, app, http.MethodPost, "/api/auth/logout", bearer(t, userID), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, []uuid.UUID{userID}, ws.closed)
}

func TestWorkspaceController_RequiresToken(t *testing.T) {
	app := newTestApp(NewWorkspaceController(&fakeWorkspaceService{}, testSecret).RegisterRoutes)

	code, body := call(t, app, http.MethodGet, "/api/workspace/v1", "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)
	assert.Equal(t, "Missing token", body["message"])
}

func TestWorkspaceController_OpenFolder(t *testing.T) {
	app := newTestApp(NewWorkspaceController(&fakeWorkspaceService{}, testSecret).RegisterRoutes)
	auth := bearer(t, uuid.New())

	code, body := call(t, app, http.MethodPost, "/api/workspace/v1/folder", auth, map[string]string{"path": "docs"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "docs", body["data"].(map[string]interface{})["folder"])

	code, body = call(t, app, http.MethodPost, "/api/workspace/v1/folder", auth, map[string]string{"path": "../etc"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, service.ErrInvalidFolder.Error(), body["message"])

	code, _ = call(t, app, http.MethodPost, "/api/workspace/v1/folder", auth, map[string]string{})
	assert.Equal(t, http.StatusBadRequest, code)
}

func TestWorkspaceController_ProcessAcceptsEmptyBody(t *testing.T) {
	ws := &fakeWorkspaceService{}
	app := newTestApp(NewWorkspaceController(ws, testSecret).RegisterRoutes)
	auth := bearer(t, uuid.New())

	code, body := call(t, app, http.MethodPost, "/api/workspace/v1/process", auth, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 2, body["data"].(map[string]interface{})["succeeded"])

	code, _ = call(t, app, http.MethodPost, "/api/workspace/v1/process", auth, map[string]string{"model": "llama3"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "llama3", ws.processed.Model)
}

func TestWorkspaceController_RenameFile(t *testing.T) {
	ws := &fakeWorkspaceService{}
	app := newTestApp(NewWorkspaceController(ws, testSecret).RegisterRoutes)
	auth := bearer(t, uuid.New())

	code, body := call(t, app, http.MethodPost, "/api/workspace/v1/files/old%20scan.pdf/rename", auth, map[string]string{"mode": "error"})
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "old scan.pdf", ws.renamed.name)
	assert.Equal(t, string(renamer.ModeError), ws.renamed.mode)
	assert.Equal(t, true, body["data"].(map[string]interface{})["renamed"])

	code, _ = call(t, app, http.MethodPost, "/api/workspace/v1/files/a.pdf/rename", auth, map[string]string{"mode": "overwrite"})
	assert.Equal(t, http.StatusBadRequest, code)

	code, body = call(t, app, http.MethodPost, "/api/workspace/v1/files/missing.pdf/rename", auth, nil)
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "File not found", body["message"])
}

func TestWorkspaceController_HistoryQuery(t *testing.T) {
	ws := &fakeWorkspaceService{}
	app := newTestApp(NewWorkspaceController(ws, testSecret).RegisterRoutes)

	code, _ := call(t, app, http.MethodGet, "/api/workspace/v1/history?folder=docs&limit=5&offset=10", bearer(t, uuid.New()), nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Equal(t, "docs", ws.history.folder)
	assert.Equal(t, 5, ws.history.limit)
	assert.Equal(t, 10, ws.history.offset)
}

type fakeSettingsService struct {
	service.ISettingsService
	updated *dto.UpdateApiKeyRequest
}

func (f *fakeSettingsService) UpdateApiKey(ctx context.Context, userId uuid.UUID, req *dto.UpdateApiKeyRequest) (*dto.ApiKeyResponse, error) {
	f.updated = req
	return &dto.ApiKeyResponse{Id: req.Id, KeyName: req.KeyName, Masked: "••••••••abcd"}, nil
}

func (f *fakeSettingsService) DeletePrompt(ctx context.Context, userId, id uuid.UUID) error {
	return service.ErrPromptNotFound
}

func TestSettingsController_UpdateApiKeyUsesPathID(t *testing.T) {
	settings := &fakeSettingsService{}
	app := newTestApp(NewSettingsController(settings, testSecret).RegisterRoutes)
	auth := bearer(t, uuid.New())
	id := uuid.New()

	code, body := call(t, app, http.MethodPut, "/api/settings/v1/api-keys/"+id.String(), auth, map[string]string{"key_name": "work", "id": uuid.NewString()})
	assert.Equal(t, http.StatusOK, code)
	require.NotNil(t, settings.updated)
	assert.Equal(t, id, settings.updated.Id)
	assert.Equal(t, "••••••••abcd", body["data"].(map[string]interface{})["masked_value"])

	code, body = call(t, app, http.MethodPut, "/api/settings/v1/api-keys/not-a-uuid", auth, map[string]string{"key_name": "work"})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "Invalid id", body["message"])
}

func TestSettingsController_DeleteMissingPrompt(t *testing.T) {
	app := newTestApp(NewSettingsController(&fakeSettingsService{}, testSecret).RegisterRoutes)

	code, _ := call(t, app, http.MethodDelete, "/api/settings/v1/prompts/"+uuid.NewString(), bearer(t, uuid.New()), nil)
	assert.Equal(t, http.StatusNotFound, code)
}
