package cmd

import (
	"fmt"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

const Version = "1.0.0"

var (
	jsonOutput      bool
	skipInteractive bool

	labelStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#01FAC6"))
	tipMsgStyle    = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("190")).Italic(true)
	endingMsgStyle = lipgloss.NewStyle().PaddingLeft(1).Foreground(lipgloss.Color("170")).Bold(true)
)

var rootCmd = &cobra.Command{
	Use:   "devserve",
	Short: "Resolve the local dev server configuration for a project",
	Long: `Devserve reconciles CLI flags, your devserve config file and auto-detected
framework metadata into the effective dev server settings: the command to run,
the ports involved and the directory to serve static assets from.`,
	Version: Version,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// isTerminal reports whether interactive prompts can be shown
func isTerminal() bool {
	if os.Getenv("CI") != "" || os.Getenv("TERM") == "dumb" {
		return false
	}
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}

func init() {
	rootCmd.SetVersionTemplate("devserve version {{.Version}}\n")

	rootCmd.AddCommand(devCmd)
	rootCmd.AddCommand(frameworksCmd)

	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output results as JSON (disables interactive mode)")
	rootCmd.PersistentFlags().BoolVar(&skipInteractive, "no-interactive", false, "Skip interactive prompts (for CI/automation)")
}
