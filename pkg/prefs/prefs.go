// Package prefs keeps the CLI's local preferences in one JSON blob, the
// offline counterpart of the per-user settings stored by the server.
package prefs

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// BlobName is the name of the preference blob on disk (plus ".json").
const BlobName = "aiFileRenamerPro"

const (
	DefaultTheme = "light"
	DefaultModel = "gemini-2.0-flash-exp"
)

var (
	ErrKeyNotFound    = errors.New("api key not found")
	ErrPromptNotFound = errors.New("prompt not found")
	ErrEmptyName      = errors.New("name must not be empty")
)

// DefaultPrompts seeds an empty prompt library.
var DefaultPrompts = map[string]string{
	"Invoice Renamer":    "Extract the invoice number and date from this document. Format the filename as: INV[NUMBER]_[YYYYMMDD]",
	"Receipt Organizer":  "Find the store name and purchase date. Format as: [STORE]_[YYYYMMDD]",
	"Delivery Tracker":   "Locate the delivery number and date. Format as: [YYYYMMDD]_delivery_[NUMBER]",
	"Contract Documents": "Extract client/company name and contract date. Format as: Contract_[NAME]_[YYYYMMDD]",
	"Medical Records":    "Find patient name and document date. Format as: [LASTNAME]_[FIRSTNAME]_[YYYYMMDD]",
}

type Prefs struct {
	Theme          string            `json:"theme"`
	ApiKeys        map[string]string `json:"apiKeys"`
	Prompts        map[string]string `json:"prompts"`
	SelectedModel  string            `json:"selectedModel"`
	CustomPrompt   string            `json:"customPrompt"`
	SelectedApiKey string            `json:"selectedApiKey,omitempty"`
	SelectedPrompt string            `json:"selectedPrompt,omitempty"`
}

func Defaults() *Prefs {
	p := &Prefs{
		Theme:         DefaultTheme,
		ApiKeys:       map[string]string{},
		Prompts:       make(map[string]string, len(DefaultPrompts)),
		SelectedModel: DefaultModel,
	}
	for name, text := range DefaultPrompts {
		p.Prompts[name] = text
	}
	return p
}

// DefaultPath is <user config dir>/ai-renamer/aiFileRenamerPro.json.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "ai-renamer", BlobName+".json"), nil
}

// Load reads the blob at path. A missing file yields Defaults; missing
// fields in an existing blob fall back to their defaults.
func Load(path string) (*Prefs, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return Defaults(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read preferences: %w", err)
	}

	var p Prefs
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse preferences: %w", err)
	}
	p.normalize()
	return &p, nil
}

func (p *Prefs) normalize() {
	if p.Theme == "" {
		p.Theme = DefaultTheme
	}
	if p.SelectedModel == "" {
		p.SelectedModel = DefaultModel
	}
	if p.ApiKeys == nil {
		p.ApiKeys = map[string]string{}
	}
	if len(p.Prompts) == 0 {
		p.Prompts = Defaults().Prompts
	}
}

// Save writes the blob with owner-only permissions, replacing it atomically.
func Save(path string, p *Prefs) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// SetKey adds or replaces a key. The first key saved becomes the selection.
func (p *Prefs) SetKey(name, value string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.ApiKeys[name] = strings.TrimSpace(value)
	if p.SelectedApiKey == "" {
		p.SelectedApiKey = name
	}
	return nil
}

func (p *Prefs) RemoveKey(name string) error {
	if _, ok := p.ApiKeys[name]; !ok {
		return ErrKeyNotFound
	}
	delete(p.ApiKeys, name)
	if p.SelectedApiKey == name {
		p.SelectedApiKey = ""
	}
	return nil
}

func (p *Prefs) SetPrompt(name, text string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return ErrEmptyName
	}
	p.Prompts[name] = text
	return nil
}

func (p *Prefs) RemovePrompt(name string) error {
	if _, ok := p.Prompts[name]; !ok {
		return ErrPromptNotFound
	}
	delete(p.Prompts, name)
	if p.SelectedPrompt == name {
		p.SelectedPrompt = ""
	}
	return nil
}

// SelectKey and SelectPrompt only accept names that exist.
func (p *Prefs) SelectKey(name string) error {
	if _, ok := p.ApiKeys[name]; !ok {
		return ErrKeyNotFound
	}
	p.SelectedApiKey = name
	return nil
}

func (p *Prefs) SelectPrompt(name string) error {
	if _, ok := p.Prompts[name]; !ok {
		return ErrPromptNotFound
	}
	p.SelectedPrompt = name
	p.CustomPrompt = p.Prompts[name]
	return nil
}

// ApiKey returns the selected key's value, or "" when none is selected.
func (p *Prefs) ApiKey() string {
	return p.ApiKeys[p.SelectedApiKey]
}

// KeyNames and PromptNames are sorted for stable listings.
func (p *Prefs) KeyNames() []string {
	return sortedKeys(p.ApiKeys)
}

func (p *Prefs) PromptNames() []string {
	return sortedKeys(p.Prompts)
}

func sortedKeys(m map[string]string) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
