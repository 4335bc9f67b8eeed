package handlers

import (
	"fmt"
	"os/exec"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"storygen/internal/config"
	"storygen/internal/fetch"
	"storygen/internal/llm"
	"storygen/internal/pipeline"
	"storygen/internal/story"
	"storygen/internal/tui"
)

var (
	summaryHeaderStyle = lipgloss.NewStyle().Bold(true).Margin(1, 0, 0, 0)
	summaryTeamStyle   = lipgloss.NewStyle().Bold(true)
	summaryPathStyle   = lipgloss.NewStyle().Faint(true)
)

// NewGenerateCmd creates the generate command
func NewGenerateCmd() *cobra.Command {
	var (
		outputDir string
		modelName string
		allTeams  bool
	)

	generateCmd := &cobra.Command{
		Use:   "generate [team ...]",
		Short: "Generate a match story for one or more teams",
		Long: `Generate runs the full pipeline for each named team: fetch the latest
match, generate story copy, validate it, and write JSON plus an HTML
preview. With no arguments it opens an interactive team menu.

A failure for one team does not stop the others; the command exits
non-zero only when no team succeeded.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()

			teamKeys, err := resolveTeamKeys(cfg, args, allTeams)
			if err != nil {
				return err
			}
			if len(teamKeys) == 0 {
				fmt.Println("No team selected. Exiting.")
				return nil
			}

			if outputDir == "" {
				outputDir = cfg.Output.Directory
			}

			generator, err := llm.NewClient(cmd.Context(), modelName, llm.Options{
				MaxTokens:   cfg.AI.Gemini.MaxTokens,
				Temperature: cfg.AI.Gemini.Temperature,
			})
			if err != nil {
				return err
			}

			p := pipeline.New(
				fetch.NewClient(cfg.Sports),
				generator,
				story.NewValidator(cfg.Story.ExpectedSlides),
				outputDir,
			)

			results := p.RunAll(cmd.Context(), teamKeys)
			if len(results) == 0 {
				return fmt.Errorf("no stories were generated")
			}

			printSummary(results)

			if cfg.Output.OpenPreview {
				openPreviews(results)
			}
			return nil
		},
	}

	generateCmd.Flags().StringVarP(&outputDir, "output", "o", "", "output directory (default from config)")
	generateCmd.Flags().StringVarP(&modelName, "model", "m", "", "Gemini model to use (default from config)")
	generateCmd.Flags().BoolVar(&allTeams, "all", false, "generate stories for every configured team")

	return generateCmd
}

// resolveTeamKeys picks the teams to run: explicit args win, then --all,
// then the interactive menu.
func resolveTeamKeys(cfg *config.Config, args []string, allTeams bool) ([]string, error) {
	if len(args) > 0 {
		for _, key := range args {
			if _, ok := cfg.Sports.Teams[key]; !ok {
				known := cfg.TeamKeys()
				sort.Strings(known)
				return nil, fmt.Errorf("unknown team %q, choose from: %s", key, strings.Join(known, ", "))
			}
		}
		return args, nil
	}

	if allTeams {
		keys := cfg.TeamKeys()
		sort.Strings(keys)
		return keys, nil
	}

	return tui.SelectTeams(cfg.Sports.Teams)
}

// openPreviews opens each generated HTML file in the default browser.
// Enabled with output.open_preview in the config; failures are reported but
// never fail the run.
func openPreviews(results []pipeline.Result) {
	opener := "xdg-open"
	switch runtime.GOOS {
	case "darwin":
		opener = "open"
	case "windows":
		opener = "explorer"
	}

	for _, r := range results {
		path, err := filepath.Abs(r.HTMLPath)
		if err != nil {
			path = r.HTMLPath
		}
		if err := exec.Command(opener, path).Start(); err != nil {
			fmt.Printf("Could not open %s: %v\n", path, err)
		}
	}
}

func printSummary(results []pipeline.Result) {
	fmt.Println(summaryHeaderStyle.Render("Generation complete"))
	for _, r := range results {
		fmt.Printf("\n  %s\n", summaryTeamStyle.Render(r.TeamName))
		fmt.Printf("    Match:  %s\n", r.Match)
		fmt.Printf("    Result: %s\n", r.Outcome)
		fmt.Printf("    JSON:   %s\n", summaryPathStyle.Render(r.JSONPath))
		fmt.Printf("    HTML:   %s\n", summaryPathStyle.Render(r.HTMLPath))
	}
	fmt.Println("\nOpen the HTML files above in any browser to preview the story cards.")
}
