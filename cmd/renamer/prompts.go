package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-renamer-be/pkg/prefs"
)

var promptsCmd = &cobra.Command{
	Use:   "prompts",
	Short: "Manage the prompt library",
}

var promptsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved prompts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := loadPrefs()
		if err != nil {
			return err
		}
		for _, name := range p.PromptNames() {
			title := color.New(color.Bold).Sprint(name)
			if name == p.SelectedPrompt {
				title = color.GreenString("* ") + title
			}
			fmt.Printf("%s\n    %s\n", title, p.Prompts[name])
		}
		return nil
	},
}

var promptsSetCmd = &cobra.Command{
	Use:   "set <name> <text>",
	Short: "Save or replace a prompt",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updatePrefs(func(p *prefs.Prefs) error { return p.SetPrompt(args[0], args[1]) }); err != nil {
			return err
		}
		color.Green("Prompt %q saved", args[0])
		return nil
	},
}

var promptsRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete a prompt",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updatePrefs(func(p *prefs.Prefs) error { return p.RemovePrompt(args[0]) }); err != nil {
			return err
		}
		color.Green("Prompt %q deleted", args[0])
		return nil
	},
}

func init() {
	promptsCmd.AddCommand(promptsListCmd, promptsSetCmd, promptsRmCmd)
	rootCmd.AddCommand(promptsCmd)
}
