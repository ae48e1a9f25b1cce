package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wronai/taskguard/internal/logging"
	"github.com/wronai/taskguard/internal/security"
	"github.com/wronai/taskguard/internal/storage"
)

var (
	criticalStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	highStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	mediumStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	lowStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("242"))
	pathStyle     = lipgloss.NewStyle().Bold(true)
)

// getScanCommand returns the scan command.
func getScanCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a file or directory for security issues",
		Long: `Scan a file or directory tree for security issues.

Every eligible file goes through the line scanner and the syntax
analyzer; findings are printed ranked by severity. The command exits
non-zero when anything at HIGH severity or above is found.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target := "."
			if len(args) > 0 {
				target = args[0]
			}
			return runScan(target, format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json or markdown")
	return cmd
}

func runScan(target, format string) error {
	cfg := storage.GetConfig()
	scanner, err := security.NewScanner(cfg.Scanner, logging.L())
	if err != nil {
		return err
	}

	info, err := os.Stat(target)
	if err != nil {
		return fmt.Errorf("cannot scan %s: %w", target, err)
	}

	var results map[string][]security.Issue
	if info.IsDir() {
		results, err = scanner.ScanDirectory(target)
		if err != nil {
			return err
		}
	} else {
		abs, err := filepath.Abs(target)
		if err != nil {
			return err
		}
		results = make(map[string][]security.Issue)
		if issues := scanner.ScanFile(abs); len(issues) > 0 {
			results[abs] = issues
		}
	}

	recordScan()

	switch format {
	case "json":
		if err := printJSON(results); err != nil {
			return err
		}
	case "markdown":
		printMarkdown(results)
	case "text":
		printText(results)
	default:
		return fmt.Errorf("unknown format %q", format)
	}

	if n := blockingCount(results); n > 0 {
		return fmt.Errorf("found %d issue(s) at HIGH severity or above", n)
	}
	return nil
}

// recordScan stamps the last scan time into the project state, but only
// for initialized projects.
func recordScan() {
	dir := storage.GetDataDir()
	if _, err := os.Stat(dir); err != nil {
		return
	}
	state, err := storage.LoadState(dir)
	if err != nil {
		return
	}
	state.LastScanAt = time.Now()
	_ = state.Save(dir)
}

func blockingCount(results map[string][]security.Issue) int {
	n := 0
	for _, issues := range results {
		for _, issue := range issues {
			if issue.Level >= security.LevelHigh {
				n++
			}
		}
	}
	return n
}

func sortedPaths(results map[string][]security.Issue) []string {
	paths := make([]string, 0, len(results))
	for path := range results {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths
}

func printJSON(results map[string][]security.Issue) error {
	data, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	fmt.Println(string(data))
	return nil
}

func printText(results map[string][]security.Issue) {
	if len(results) == 0 {
		fmt.Println("No security issues found.")
		return
	}

	color := isatty.IsTerminal(os.Stdout.Fd())
	total := 0

	for _, path := range sortedPaths(results) {
		header := path
		if color {
			header = pathStyle.Render(header)
		}
		fmt.Printf("\n%s\n", header)

		for _, issue := range results[path] {
			total++
			label := issue.Level.String()
			if color {
				label = levelStyle(issue.Level).Render(label)
			}
			fmt.Printf("  %s %s%s\n", label, location(issue), issue.Message)
			if issue.FixSuggestion != "" {
				fmt.Printf("      fix: %s\n", issue.FixSuggestion)
			}
		}
	}

	fmt.Printf("\n%d issue(s) in %d file(s)\n", total, len(results))
}

func printMarkdown(results map[string][]security.Issue) {
	report := markdownReport(results)

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		fmt.Print(report)
		return
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		fmt.Print(report)
		return
	}
	out, err := renderer.Render(report)
	if err != nil {
		fmt.Print(report)
		return
	}
	fmt.Print(out)
}

func markdownReport(results map[string][]security.Issue) string {
	var b strings.Builder
	b.WriteString("# Security scan report\n\n")

	if len(results) == 0 {
		b.WriteString("No security issues found.\n")
		return b.String()
	}

	for _, path := range sortedPaths(results) {
		b.WriteString(fmt.Sprintf("## %s\n\n", path))
		for _, issue := range results[path] {
			b.WriteString(fmt.Sprintf("- **%s** %s%s\n", issue.Level, location(issue), issue.Message))
			if issue.FixSuggestion != "" {
				b.WriteString(fmt.Sprintf("  - fix: %s\n", issue.FixSuggestion))
			}
		}
		b.WriteString("\n")
	}
	return b.String()
}

func location(issue security.Issue) string {
	if issue.Line == nil {
		return ""
	}
	if issue.Column != nil {
		return fmt.Sprintf("line %d, col %d: ", *issue.Line, *issue.Column)
	}
	return fmt.Sprintf("line %d: ", *issue.Line)
}

func levelStyle(level security.Level) lipgloss.Style {
	switch level {
	case security.LevelCritical:
		return criticalStyle
	case security.LevelHigh:
		return highStyle
	case security.LevelMedium:
		return mediumStyle
	}
	return lowStyle
}
