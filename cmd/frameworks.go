package cmd

import (
	"fmt"
	"os"
	"strings"

	"devserve/cmd/ui/spinner"
	"devserve/pkg/detector"
	"devserve/pkg/util"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var listAll bool

var frameworksCmd = &cobra.Command{
	Use:   "frameworks [PROJECT_PATH]",
	Short: "List the frameworks detected in a project",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runFrameworks,
}

func runFrameworks(cmd *cobra.Command, args []string) error {
	if listAll {
		fmt.Println(labelStyle.Render("Supported frameworks:"))
		for _, name := range detector.Names() {
			fmt.Printf("  %s\n", name)
		}
		return nil
	}

	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	projectPath, err := util.ValidateProjectPath(projectPath)
	if err != nil {
		return err
	}

	var spinnerProgram *tea.Program
	if isTerminal() && !jsonOutput {
		spinnerProgram = tea.NewProgram(spinner.InitialModel("Detecting frameworks..."))
		go func() {
			if _, err := spinnerProgram.Run(); err != nil {
				// Suppress the "program was killed" error since it's expected
				if err.Error() != "program was killed" {
					fmt.Fprintf(os.Stderr, "Error running spinner: %v\n", err)
				}
			}
		}()
	}

	frameworks, err := detector.Detector{}.ListFrameworks(projectPath)

	if spinnerProgram != nil {
		spinnerProgram.Quit()
		spinnerProgram.Wait()
	}

	if err != nil {
		return err
	}

	if len(frameworks) == 0 {
		fmt.Println("No frameworks detected.")
		fmt.Printf("%s\n", tipMsgStyle.Render("Tip: run 'devserve frameworks --all' to list supported frameworks"))
		return nil
	}

	for _, fw := range frameworks {
		fmt.Printf("%s\n", labelStyle.Render(fw.Name))
		fmt.Printf("  command: %s\n", strings.Join(fw.Dev.Commands, " | "))
		fmt.Printf("  port:    %d\n", fw.Dev.Port)
		if fw.Build.Directory != "" {
			fmt.Printf("  build:   %s\n", fw.Build.Directory)
		}
	}
	return nil
}

func init() {
	frameworksCmd.Flags().BoolVar(&listAll, "all", false, "List every supported framework instead of detecting")
}
