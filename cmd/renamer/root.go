package main

import (
	"github.com/spf13/cobra"

	"ai-renamer-be/pkg/prefs"
)

var prefsPath string

var rootCmd = &cobra.Command{
	Use:   "renamer",
	Short: "Rename files from their content with an AI model",
	Long: `renamer reads the supported files of a folder (pdf, jpg, jpeg, png, txt, doc, docx),
asks a generative model for a descriptive name and optionally renames them on disk.
API keys, prompts and the selected model are kept in a local preference file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&prefsPath, "prefs", "", "Preference file (default <config dir>/ai-renamer/"+prefs.BlobName+".json)")
}

func resolvePrefsPath() (string, error) {
	if prefsPath != "" {
		return prefsPath, nil
	}
	return prefs.DefaultPath()
}

func loadPrefs() (*prefs.Prefs, string, error) {
	path, err := resolvePrefsPath()
	if err != nil {
		return nil, "", err
	}
	p, err := prefs.Load(path)
	if err != nil {
		return nil, "", err
	}
	return p, path, nil
}

// updatePrefs loads, applies fn and saves only when fn succeeds.
func updatePrefs(fn func(p *prefs.Prefs) error) error {
	p, path, err := loadPrefs()
	if err != nil {
		return err
	}
	if err := fn(p); err != nil {
		return err
	}
	return prefs.Save(path, p)
}
