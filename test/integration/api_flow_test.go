package integration

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"ai-renamer-be/internal/bootstrap"
	"ai-renamer-be/internal/config"
	"ai-renamer-be/internal/server"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func TestAPIFlow(t *testing.T) {
	gormDB := openDB(t)

	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "inbox"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "inbox", "scan.pdf"), []byte("%PDF-1.4"), 0o644))

	t.Setenv("WORKSPACE_ROOT", root)
	t.Setenv("NATS_URL", "nats://127.0.0.1:1")
	t.Setenv("REDIS_URL", "redis://127.0.0.1:1")
	if os.Getenv("JWT_SECRET") == "" {
		t.Setenv("JWT_SECRET", "integration-secret")
	}
	cfg := config.Load()

	container := bootstrap.NewContainer(gormDB, cfg)
	defer container.Close()
	app := server.New(cfg, container).GetApp()

	do := func(method, path, token string, body interface{}) (int, envelope) {
		var reader io.Reader
		if body != nil {
			raw, _ := json.Marshal(body)
			reader = bytes.NewReader(raw)
		}
		req := httptest.NewRequest(method, path, reader)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		resp, err := app.Test(req, -1)
		require.NoError(t, err)
		var env envelope
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
		return resp.StatusCode, env
	}

	email := uuid.NewString() + "@example.com"
	defer func() {
		for _, table := range []string{"rename_records", "api_keys", "prompts", "user_settings"} {
			gormDB.Exec("DELETE FROM "+table+" WHERE user_id IN (SELECT id FROM users WHERE email = ?)", email)
		}
		gormDB.Exec("DELETE FROM users WHERE email = ?", email)
	}()

	code, _ := do(http.MethodPost, "/api/auth/register", "", map[string]string{"full_name": "Flow Test", "email": email, "password": "correct-horse"})
	require.Equal(t, http.StatusCreated, code)

	code, login := do(http.MethodPost, "/api/auth/login", "", map[string]string{"email": email, "password": "correct-horse"})
	require.Equal(t, http.StatusOK, code)
	var session struct {
		AccessToken string `json:"access_token"`
	}
	require.NoError(t, json.Unmarshal(login.Data, &session))
	token := session.AccessToken

	code, _ = do(http.MethodPost, "/api/settings/v1/api-keys", token, map[string]string{"key_name": "work", "key_value": "not-a-real-key-1234"})
	assert.Equal(t, http.StatusOK, code)

	code, keys := do(http.MethodGet, "/api/settings/v1/api-keys", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(keys.Data), "1234")
	assert.NotContains(t, string(keys.Data), "not-a-real-key")

	code, folder := do(http.MethodPost, "/api/workspace/v1/folder", token, map[string]string{"path": "inbox"})
	assert.Equal(t, http.StatusOK, code)
	assert.Contains(t, string(folder.Data), "scan.pdf")

	code, _ = do(http.MethodPost, "/api/workspace/v1/folder", token, map[string]string{"path": "../"})
	assert.Equal(t, http.StatusBadRequest, code)

	// Nothing processed yet, so the batch rename is empty.
	code, renamed := do(http.MethodPost, "/api/workspace/v1/rename", token, nil)
	assert.Equal(t, http.StatusOK, code)
	assert.JSONEq(t, `{"total":0,"succeeded":0,"failed":0}`, string(renamed.Data))

	code, _ = do(http.MethodPost, "/api/auth/logout", token, nil)
	assert.Equal(t, http.StatusOK, code)
}
