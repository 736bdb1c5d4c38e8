package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-renamer-be/pkg/prefs"
)

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "Manage stored API keys",
}

var keysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored API keys (values masked)",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, _, err := loadPrefs()
		if err != nil {
			return err
		}
		names := p.KeyNames()
		if len(names) == 0 {
			fmt.Println("No API keys saved. Add one with: renamer keys set <name> <value>")
			return nil
		}
		for _, name := range names {
			marker := "  "
			if name == p.SelectedApiKey {
				marker = color.GreenString("* ")
			}
			fmt.Printf("%s%s  %s\n", marker, name, maskKey(p.ApiKeys[name]))
		}
		return nil
	},
}

var keysSetCmd = &cobra.Command{
	Use:   "set <name> <value>",
	Short: "Save or replace an API key",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updatePrefs(func(p *prefs.Prefs) error { return p.SetKey(args[0], args[1]) }); err != nil {
			return err
		}
		color.Green("API key %q saved", args[0])
		return nil
	},
}

var keysRmCmd = &cobra.Command{
	Use:     "rm <name>",
	Aliases: []string{"remove", "delete"},
	Short:   "Delete an API key",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := updatePrefs(func(p *prefs.Prefs) error { return p.RemoveKey(args[0]) }); err != nil {
			return err
		}
		color.Green("API key %q deleted", args[0])
		return nil
	},
}

func maskKey(v string) string {
	if len(v) <= 4 {
		return "••••"
	}
	return "••••••••" + v[len(v)-4:]
}

func init() {
	keysCmd.AddCommand(keysListCmd, keysSetCmd, keysRmCmd)
	rootCmd.AddCommand(keysCmd)
}
