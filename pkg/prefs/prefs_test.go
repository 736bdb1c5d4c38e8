package prefs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileGivesDefaults(t *testing.T) {
	p, err := Load(filepath.Join(t.TempDir(), "none.json"))
	require.NoError(t, err)
	assert.Equal(t, DefaultTheme, p.Theme)
	assert.Equal(t, DefaultModel, p.SelectedModel)
	assert.Len(t, p.Prompts, len(DefaultPrompts))
	assert.Empty(t, p.ApiKeys)
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", BlobName+".json")

	p := Defaults()
	p.Theme = "dark"
	require.NoError(t, p.SetKey("work", "  secret  "))
	require.NoError(t, p.SetPrompt("Mine", "Short names"))
	require.NoError(t, p.SelectPrompt("Mine"))
	require.NoError(t, Save(path, p))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, p, got)
	assert.Equal(t, "secret", got.ApiKey())
	assert.Equal(t, "Short names", got.CustomPrompt)
}

func TestLoad_ReadsBlobWithoutSelections(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	blob := `{"theme":"dark","apiKeys":{"k":"v"},"prompts":{},"selectedModel":"","customPrompt":"x"}`
	require.NoError(t, os.WriteFile(path, []byte(blob), 0o600))

	p, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "dark", p.Theme)
	assert.Equal(t, DefaultModel, p.SelectedModel)
	assert.Len(t, p.Prompts, len(DefaultPrompts), "empty prompt library is reseeded")
	assert.Equal(t, "x", p.CustomPrompt)
	assert.Empty(t, p.ApiKey())
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.json")
	require.NoError(t, os.WriteFile(path, []byte("{"), 0o600))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestKeys(t *testing.T) {
	p := Defaults()
	assert.ErrorIs(t, p.SetKey(" ", "v"), ErrEmptyName)

	require.NoError(t, p.SetKey("work", "a"))
	require.NoError(t, p.SetKey("home", "b"))
	assert.Equal(t, "work", p.SelectedApiKey, "first key becomes the selection")
	assert.Equal(t, []string{"home", "work"}, p.KeyNames())

	require.NoError(t, p.SelectKey("home"))
	assert.Equal(t, "b", p.ApiKey())
	assert.ErrorIs(t, p.SelectKey("nope"), ErrKeyNotFound)

	require.NoError(t, p.RemoveKey("home"))
	assert.Empty(t, p.SelectedApiKey)
	assert.ErrorIs(t, p.RemoveKey("home"), ErrKeyNotFound)
}

func TestPrompts(t *testing.T) {
	p := Defaults()
	require.NoError(t, p.SelectPrompt("Invoice Renamer"))
	assert.Equal(t, DefaultPrompts["Invoice Renamer"], p.CustomPrompt)

	require.NoError(t, p.RemovePrompt("Invoice Renamer"))
	assert.Empty(t, p.SelectedPrompt)
	assert.ErrorIs(t, p.RemovePrompt("Invoice Renamer"), ErrPromptNotFound)
	assert.ErrorIs(t, p.SelectPrompt("Invoice Renamer"), ErrPromptNotFound)
	assert.NotContains(t, p.PromptNames(), "Invoice Renamer")
}
