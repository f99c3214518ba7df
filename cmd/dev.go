package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"devserve/pkg/config"
	"devserve/pkg/settings"
	"devserve/pkg/tui"
	"devserve/pkg/util"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	devDir           string
	devPort          int
	devTargetPort    int
	devCommand       string
	devFramework     string
	devPublish       string
	devFunctions     string
	devFunctionsPort int
)

var devCmd = &cobra.Command{
	Use:   "dev [PROJECT_PATH]",
	Short: "Resolve the dev server settings for a project",
	Long: `Resolve which command to run, which ports to use and which directory to
serve for the project's local dev server. The resolved settings are printed;
no server is started.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDev,
}

func runDev(cmd *cobra.Command, args []string) error {
	projectPath := "."
	if len(args) > 0 {
		projectPath = args[0]
	}

	projectPath, err := util.ValidateProjectPath(projectPath)
	if err != nil {
		return err
	}

	cfg, raw, err := config.Load(projectPath)
	if err != nil {
		return err
	}
	applyFlagOverrides(cfg)

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	workingDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("cannot determine working directory: %w", err)
	}

	var chooser settings.Chooser
	if isTerminal() && !skipInteractive && !jsonOutput {
		chooser = tui.ChooseFramework
	}

	resolved, err := settings.Resolve(settings.Options{
		Flags:      settings.Flags{Dir: devDir},
		Config:     cfg,
		Raw:        raw,
		ProjectDir: projectPath,
		WorkingDir: workingDir,
		Choose:     chooser,
		Log:        log,
	})
	if err != nil {
		return err
	}

	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(resolved)
	}

	printResolved(resolved)
	return nil
}

// applyFlagOverrides lets explicit CLI flags win over the config file,
// mirroring how configured values win over detected ones
func applyFlagOverrides(cfg *config.DevConfig) {
	if devFramework != "" {
		cfg.Framework = devFramework
	}
	if devCommand != "" {
		cfg.Command = devCommand
	}
	if devPort > 0 {
		cfg.Port = devPort
	}
	if devTargetPort > 0 {
		cfg.TargetPort = devTargetPort
	}
	if devPublish != "" {
		cfg.Publish = devPublish
	}
	if devFunctions != "" {
		cfg.Functions = devFunctions
	}
	if devFunctionsPort > 0 {
		cfg.FunctionsPort = devFunctionsPort
	}
}

func printResolved(r *settings.Resolved) {
	line := func(label, value string) {
		if value != "" {
			fmt.Printf("%s %s\n", labelStyle.Render(label+":"), value)
		}
	}

	line("Framework", r.Framework)
	line("Command", r.Command)
	if r.FrameworkPort > 0 {
		line("App server port", fmt.Sprintf("%d", r.FrameworkPort))
	}
	line("Serve directory", r.Dist)
	line("Proxy port", fmt.Sprintf("%d", r.Port))
	if r.UseStaticServer {
		line("Mode", "static server")
	}
	if len(r.PollingStrategies) > 0 {
		line("Polling strategies", strings.Join(r.PollingStrategies, ", "))
	}
	if r.FunctionsDir != "" {
		line("Functions directory", r.FunctionsDir)
		if r.FunctionsPort != nil {
			line("Functions port", fmt.Sprintf("%d", *r.FunctionsPort))
		}
	}
	if r.HTTPS != nil {
		line("HTTPS", "enabled")
	}

	fmt.Printf("\n%s\n", endingMsgStyle.Render("Settings resolved. Hand them to your server bootstrap to start serving."))
}

func init() {
	devCmd.Flags().StringVar(&devDir, "dir", "", "Serve this directory with the static server (skips detection)")
	devCmd.Flags().IntVarP(&devPort, "port", "p", 0, "Port the dev proxy should expose")
	devCmd.Flags().IntVar(&devTargetPort, "target-port", 0, "Port your app server listens on")
	devCmd.Flags().StringVarP(&devCommand, "command", "c", "", "Command to run your dev server")
	devCmd.Flags().StringVar(&devFramework, "framework", "", "Framework to use (#auto, #static, #custom or a framework name)")
	devCmd.Flags().StringVar(&devPublish, "publish", "", "Directory to serve static assets from")
	devCmd.Flags().StringVar(&devFunctions, "functions", "", "Directory holding serverless functions")
	devCmd.Flags().IntVar(&devFunctionsPort, "functions-port", 0, "Port for the functions server")
}
