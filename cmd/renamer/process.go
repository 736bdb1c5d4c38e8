package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"ai-renamer-be/internal/pkg/logger"
	"ai-renamer-be/pkg/fsaccess"
	"ai-renamer-be/pkg/naming"
	"ai-renamer-be/pkg/prefs"
	"ai-renamer-be/pkg/renamer"
	"ai-renamer-be/pkg/workspace"
)

var processFlags struct {
	rename      bool
	dryRun      bool
	mode        string
	concurrency int
	provider    string
	baseURL     string
	model       string
	key         string
	prompt      string
	timeout     time.Duration
	retries     int
	logFile     string
}

var processCmd = &cobra.Command{
	Use:   "process <dir>",
	Short: "Suggest AI names for every supported file in a folder",
	Long: `Reads the folder, asks the model for a name per file and prints the suggestions.
With --rename the suggestions are applied; --dry-run prints the plan instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runProcess,
}

func init() {
	f := processCmd.Flags()
	f.BoolVar(&processFlags.rename, "rename", false, "Apply the suggested names")
	f.BoolVar(&processFlags.dryRun, "dry-run", false, "With --rename, print the plan without touching files")
	f.StringVar(&processFlags.mode, "mode", string(renamer.ModeAutoIncrement), "Name conflict handling: auto-increment or error")
	f.IntVar(&processFlags.concurrency, "concurrency", 4, "Parallel AI requests (0 = unbounded)")
	f.StringVar(&processFlags.provider, "provider", naming.ProviderGemini, "AI provider: gemini or ollama")
	f.StringVar(&processFlags.baseURL, "base-url", "", "Provider endpoint (default depends on provider)")
	f.StringVar(&processFlags.model, "model", "", "Model override (default from preferences)")
	f.StringVar(&processFlags.key, "key", "", "Stored API key name to use instead of the selected one")
	f.StringVar(&processFlags.prompt, "prompt", "", "Prompt text override")
	f.DurationVar(&processFlags.timeout, "timeout", 120*time.Second, "Per-request timeout")
	f.IntVar(&processFlags.retries, "retries", 3, "Attempts per file for transient provider errors")
	f.StringVar(&processFlags.logFile, "log-file", "", "Write a JSON log of the run to this file")
	rootCmd.AddCommand(processCmd)
}

// buildRequest resolves credentials and prompt: flags first, then the
// preference file, then AI_RENAMER_API_KEY for the key.
func buildRequest(p *prefs.Prefs) (workspace.ProcessRequest, error) {
	req := workspace.ProcessRequest{
		ApiKey: p.ApiKey(),
		Model:  p.SelectedModel,
		Prompt: p.CustomPrompt,
	}
	if processFlags.key != "" {
		v, ok := p.ApiKeys[processFlags.key]
		if !ok {
			return req, fmt.Errorf("%w: %s", prefs.ErrKeyNotFound, processFlags.key)
		}
		req.ApiKey = v
	}
	if req.ApiKey == "" {
		req.ApiKey = os.Getenv("AI_RENAMER_API_KEY")
	}
	// A local Ollama server needs no key; the value is only sent as a bearer token.
	if req.ApiKey == "" && processFlags.provider == naming.ProviderOllama {
		req.ApiKey = "local"
	}
	if processFlags.model != "" {
		req.Model = processFlags.model
	}
	if processFlags.prompt != "" {
		req.Prompt = processFlags.prompt
	}
	return req, nil
}

func runProcess(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	p, _, err := loadPrefs()
	if err != nil {
		return err
	}
	req, err := buildRequest(p)
	if err != nil {
		return err
	}
	mode, err := renamer.ParseRenameMode(processFlags.mode)
	if err != nil {
		return err
	}
	namer, err := naming.NewNamer(processFlags.provider, processFlags.baseURL, &http.Client{Timeout: processFlags.timeout})
	if err != nil {
		return err
	}

	writable := processFlags.rename && !processFlags.dryRun
	dir, err := fsaccess.OpenLocalDirectory(args[0], writable)
	if err != nil {
		return err
	}

	log := logger.NewNopLogger()
	if processFlags.logFile != "" {
		log = logger.NewIsolatedLogger(processFlags.logFile)
	}
	defer log.Sync()

	store := workspace.NewStore(workspace.Options{
		Namer:       namer,
		Notifier:    workspace.NotifierFunc(printNotification),
		Logger:      log,
		Concurrency: processFlags.concurrency,
		Retry: workspace.RetryPolicy{
			MaxAttempts:    processFlags.retries,
			InitialBackoff: 500 * time.Millisecond,
			MaxBackoff:     8 * time.Second,
		},
		DefaultModel: p.SelectedModel,
	})
	defer store.Close()

	if err := store.LoadDirectory(ctx, dir); err != nil {
		return err
	}
	if len(store.Snapshot().Files) == 0 {
		color.Yellow("No supported files in %s", dir.Name())
		return nil
	}

	fmt.Printf("Processing %d file(s) in %s with %s...\n", len(store.Snapshot().Files), color.CyanString(dir.Name()), req.Model)
	if _, err := store.ProcessAll(ctx, req); err != nil {
		return errors.New(workspace.UserMessage(err))
	}
	snap := store.Snapshot()
	printSuggestions(snap)

	if !processFlags.rename {
		return nil
	}
	if processFlags.dryRun {
		plan, err := planRenames(ctx, dir, snap, mode)
		if err != nil {
			return err
		}
		printPlan(plan)
		return nil
	}

	report, err := store.RenameAll(ctx, mode)
	if err != nil {
		return errors.New(workspace.UserMessage(err))
	}
	if report.Failed > 0 {
		return fmt.Errorf("%d of %d rename(s) failed", report.Failed, report.Total)
	}
	return nil
}

func printNotification(n workspace.Notification) {
	switch n.Level {
	case workspace.LevelSuccess:
		color.Green("%s", n.Message)
	case workspace.LevelWarning:
		color.Yellow("%s", n.Message)
	case workspace.LevelError:
		color.Red("%s", n.Message)
	default:
		color.Cyan("%s", n.Message)
	}
}

func printSuggestions(snap workspace.Snapshot) {
	for _, f := range snap.Files {
		switch f.Status {
		case renamer.StatusProcessed:
			fmt.Printf("%s %s -> %s %s\n", color.GreenString("✔"), f.Name, color.New(color.Bold).Sprint(f.NewName), ratingStars(f.Rating))
			if f.Reasoning != "" {
				fmt.Printf("    %s\n", color.New(color.Faint).Sprint(f.Reasoning))
			}
		case renamer.StatusFailed:
			fmt.Printf("%s %s: %s\n", color.RedString("✘"), f.Name, f.Error)
		default:
			fmt.Printf("%s %s\n", color.YellowString("…"), f.Name)
		}
	}
	fmt.Printf("\nTotal %d  processed %d  pending %d  failed %d\n",
		snap.Stats.Total, snap.Stats.Processed, snap.Stats.Pending, snap.Stats.Failed)
}

// planRenames replays the batch against an in-memory copy of the folder's
// names, so conflicts resolve exactly as a real run would resolve them.
func planRenames(ctx context.Context, dir fsaccess.Directory, snap workspace.Snapshot, mode renamer.RenameMode) ([]renamer.RenameOutcome, error) {
	entries, err := dir.Entries(ctx)
	if err != nil {
		return nil, err
	}
	mirror := fsaccess.NewMemoryDirectory(dir.Name())
	for _, e := range entries {
		if e.Kind == fsaccess.KindDirectory {
			mirror.AddDirectory(e.Name)
		} else {
			mirror.AddFile(e.Name, nil)
		}
	}

	exec := renamer.NewExecutor()
	var plan []renamer.RenameOutcome
	for _, f := range snap.Files {
		if f.Status == renamer.StatusProcessed {
			plan = append(plan, exec.Rename(ctx, mirror, f.Name, f.NewName, mode))
		}
	}
	return plan, nil
}

func printPlan(plan []renamer.RenameOutcome) {
	color.Cyan("\nDry run, nothing renamed:")
	for _, out := range plan {
		switch {
		case out.Err != nil:
			fmt.Printf("  %s %s: %s\n", color.RedString("✘"), out.OldName, out.Message())
		case out.FinalName != out.RequestedName:
			fmt.Printf("  mv %q %q %s\n", out.OldName, out.FinalName, color.YellowString("(%s taken)", out.RequestedName))
		default:
			fmt.Printf("  mv %q %q\n", out.OldName, out.FinalName)
		}
	}
}

func ratingStars(r int) string {
	if r < 1 || r > 3 {
		return ""
	}
	return color.YellowString(strings.Repeat("★", r) + strings.Repeat("☆", 3-r))
}
