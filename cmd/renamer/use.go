package main

import (
	"errors"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-renamer-be/pkg/prefs"
)

var useFlags struct {
	model  string
	key    string
	prompt string
	custom string
	theme  string
}

var useCmd = &cobra.Command{
	Use:   "use",
	Short: "Select the model, API key and prompt used by process",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return updatePrefs(func(p *prefs.Prefs) error {
			if err := applyUse(cmd, p); err != nil {
				return err
			}
			fmt.Printf("Model:  %s\n", color.CyanString(p.SelectedModel))
			fmt.Printf("Key:    %s\n", orNone(p.SelectedApiKey))
			fmt.Printf("Prompt: %s\n", orNone(p.SelectedPrompt))
			return nil
		})
	},
}

func applyUse(cmd *cobra.Command, p *prefs.Prefs) error {
	flags := cmd.Flags()
	if flags.Changed("model") {
		if strings.TrimSpace(useFlags.model) == "" {
			return errors.New("model must not be empty")
		}
		p.SelectedModel = strings.TrimSpace(useFlags.model)
	}
	if flags.Changed("key") {
		if err := p.SelectKey(useFlags.key); err != nil {
			return fmt.Errorf("%w: %s", err, useFlags.key)
		}
	}
	if flags.Changed("prompt") {
		if err := p.SelectPrompt(useFlags.prompt); err != nil {
			return fmt.Errorf("%w: %s", err, useFlags.prompt)
		}
	}
	if flags.Changed("custom-prompt") {
		p.CustomPrompt = useFlags.custom
		p.SelectedPrompt = ""
	}
	if flags.Changed("theme") {
		if useFlags.theme != "light" && useFlags.theme != "dark" {
			return fmt.Errorf("theme must be light or dark")
		}
		p.Theme = useFlags.theme
	}
	return nil
}

func orNone(s string) string {
	if s == "" {
		return color.YellowString("(none)")
	}
	return s
}

func init() {
	useCmd.Flags().StringVar(&useFlags.model, "model", "", "Model name, e.g. gemini-2.0-flash-exp")
	useCmd.Flags().StringVar(&useFlags.key, "key", "", "Name of a stored API key")
	useCmd.Flags().StringVar(&useFlags.prompt, "prompt", "", "Name of a stored prompt")
	useCmd.Flags().StringVar(&useFlags.custom, "custom-prompt", "", "Free-form prompt text")
	useCmd.Flags().StringVar(&useFlags.theme, "theme", "", "light or dark (stored for the web client)")
	rootCmd.AddCommand(useCmd)
}
