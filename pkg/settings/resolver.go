package settings

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"devserve/pkg/config"
	"devserve/pkg/detector"
	"devserve/pkg/ports"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// ErrCustomRequiresCommand is returned when the #custom framework is
// configured without the fields it needs
var ErrCustomRequiresCommand = errors.New("\"command\" and \"targetPort\" properties are required when \"framework\" is set to \"#custom\"")

// Detector is the detection collaborator consumed by the engine
type Detector interface {
	ListFrameworks(projectDir string) ([]detector.FrameworkInfo, error)
	HasFramework(name, projectDir string) (bool, error)
	GetFramework(name, projectDir string) (detector.FrameworkInfo, error)
}

// Chooser picks one framework when detection yields several candidates.
// The interactive prompt is the usual implementation; tests and
// non-interactive runs inject a fixed selection.
type Chooser func(candidates []detector.FrameworkInfo) (detector.FrameworkInfo, error)

// Flags carries the CLI flags the engine reacts to
type Flags struct {
	// Dir forces static mode, serving the given directory
	Dir string
}

// Options is everything a resolution run needs. Working directory, logger
// and collaborators are explicit so the engine stays a plain function of
// its inputs.
type Options struct {
	Flags      Flags
	Config     *config.DevConfig
	Raw        map[string]any
	ProjectDir string
	WorkingDir string
	Detector   Detector
	Choose     Chooser
	Log        *logrus.Logger
}

// Resolve reconciles CLI flags, the user's dev config block and detected
// framework metadata into one settings object. Every failure is terminal:
// no partial settings object is ever returned.
func Resolve(opts Options) (*Resolved, error) {
	if opts.Config == nil {
		opts.Config = &config.DevConfig{}
	}
	if opts.Log == nil {
		opts.Log = logrus.New()
		opts.Log.SetOutput(io.Discard)
	}
	if opts.WorkingDir == "" {
		opts.WorkingDir = opts.ProjectDir
	}
	if opts.Detector == nil {
		opts.Detector = detector.Detector{}
	}

	draft, err := selectMode(opts).resolve(opts)
	if err != nil {
		return nil, err
	}

	if err := config.ValidateConfiguredPort(opts.Config, draft.FrameworkPort); err != nil {
		return nil, err
	}

	port, err := ports.Acquire(opts.Config.Port, ports.DefaultPort, "could not acquire required port")
	if err != nil {
		return nil, err
	}
	draft.Port = port

	draft.JWTSecret = opts.Config.JWTSecret
	draft.JWTRolePath = opts.Config.JWTRolePath

	if functionsDir := firstNonEmpty(opts.Config.Functions, draft.FunctionsDir); functionsDir != "" {
		functionsPort, err := ports.Acquire(opts.Config.FunctionsPort, 0, "could not acquire the functions port")
		if err != nil {
			return nil, err
		}
		draft.FunctionsDir = functionsDir
		draft.FunctionsPort = &functionsPort
	}

	mergeEnvFile(draft, opts)

	if opts.Config.HTTPS != nil {
		https, err := resolveHTTPS(opts.Config.HTTPS)
		if err != nil {
			return nil, err
		}
		draft.HTTPS = https
	}

	return draft, nil
}

// mode is the four-way dispatch over how settings are assembled. Exactly
// one variant applies per invocation.
type mode interface {
	resolve(opts Options) (*Resolved, error)
}

type staticMode struct{ dir string }
type autoMode struct{}
type customMode struct{}
type namedMode struct{ name string }

// selectMode picks the resolution mode, in priority order: the directory
// flag beats everything, then the framework sentinel in config.
func selectMode(opts Options) mode {
	switch {
	case opts.Flags.Dir != "":
		return staticMode{dir: opts.Flags.Dir}
	case opts.Config.Framework == config.FrameworkStatic:
		return staticMode{}
	case opts.Config.Framework == "" || opts.Config.Framework == config.FrameworkAuto:
		return autoMode{}
	case opts.Config.Framework == config.FrameworkCustom:
		return customMode{}
	default:
		return namedMode{name: opts.Config.Framework}
	}
}

func (m staticMode) resolve(opts Options) (*Resolved, error) {
	return resolveStatic(opts, m.dir)
}

// resolveStatic serves a fixed directory with no app server behind it; the
// static server gets its own port, separate from the proxy port.
func resolveStatic(opts Options, dir string) (*Resolved, error) {
	cfg := opts.Config
	if cfg.Command != "" || cfg.TargetPort != 0 {
		opts.Log.Warn("ignoring \"command\" and \"targetPort\": a static server runs no app server")
	}

	port, err := ports.Acquire(cfg.StaticServerPort, ports.DefaultStaticPort, "could not acquire configured static server port")
	if err != nil {
		return nil, err
	}

	return &Resolved{
		Dist:            firstNonEmpty(dir, cfg.Publish, opts.WorkingDir),
		FrameworkPort:   port,
		Framework:       config.FrameworkStatic,
		UseStaticServer: true,
	}, nil
}

func (autoMode) resolve(opts Options) (*Resolved, error) {
	cfg := opts.Config

	frameworks, err := opts.Detector.ListFrameworks(opts.ProjectDir)
	if err != nil {
		return nil, fmt.Errorf("framework detection failed: %w", err)
	}

	if len(frameworks) == 0 {
		if cfg.Command == "" && cfg.TargetPort == 0 {
			opts.Log.Warn("no app server detected, serving static content")
			return resolveStatic(opts, "")
		}

		// A partial command/targetPort pair still skips the static
		// fallback and proceeds without detected defaults.
		if err := config.ValidateFrameworkConfig(opts.Raw); err != nil {
			return nil, err
		}
		return &Resolved{
			Command:       cfg.Command,
			FrameworkPort: cfg.TargetPort,
			Dist:          firstNonEmpty(cfg.Publish, opts.WorkingDir),
		}, nil
	}

	info := frameworks[0]
	if len(frameworks) > 1 {
		info, err = chooseFramework(opts, frameworks)
		if err != nil {
			return nil, err
		}
	}

	if err := config.ValidateFrameworkConfig(opts.Raw); err != nil {
		return nil, err
	}

	draft := FromFramework(info)
	applyOverrides(&draft, opts)
	return &draft, nil
}

func (customMode) resolve(opts Options) (*Resolved, error) {
	cfg := opts.Config

	if err := config.ValidateFrameworkConfig(opts.Raw); err != nil {
		return nil, err
	}
	if cfg.Command == "" || cfg.TargetPort == 0 {
		return nil, ErrCustomRequiresCommand
	}

	return &Resolved{
		Command:       cfg.Command,
		FrameworkPort: cfg.TargetPort,
		Dist:          firstNonEmpty(cfg.Publish, opts.WorkingDir),
		Framework:     config.FrameworkCustom,
	}, nil
}

func (m namedMode) resolve(opts Options) (*Resolved, error) {
	// Detector failures and non-matches collapse into one answer: the
	// detection library's internals are not meaningful to the user.
	ok, err := opts.Detector.HasFramework(m.name, opts.ProjectDir)
	if err != nil || !ok {
		return nil, unsupportedFramework(m.name)
	}

	info, err := opts.Detector.GetFramework(m.name, opts.ProjectDir)
	if err != nil {
		return nil, unsupportedFramework(m.name)
	}

	if err := config.ValidateFrameworkConfig(opts.Raw); err != nil {
		return nil, err
	}

	draft := FromFramework(info)
	applyOverrides(&draft, opts)
	return &draft, nil
}

func unsupportedFramework(name string) error {
	return fmt.Errorf("unsupported framework %q: see the documentation for the list of supported frameworks", name)
}

// chooseFramework hands the candidates to the injected chooser; without
// one the first candidate wins so non-interactive runs keep working.
func chooseFramework(opts Options, frameworks []detector.FrameworkInfo) (detector.FrameworkInfo, error) {
	if opts.Choose == nil {
		opts.Log.Warnf("multiple frameworks detected, defaulting to %s; set \"framework\" in config to choose", frameworks[0].Name)
		return frameworks[0], nil
	}
	return opts.Choose(frameworks)
}

// applyOverrides lets explicit user configuration win over detected
// values, then falls the serve directory back to the working directory.
func applyOverrides(draft *Resolved, opts Options) {
	cfg := opts.Config

	if cfg.Command != "" {
		opts.Log.Infof("using configured command: %s", cfg.Command)
		draft.Command = cfg.Command
	}
	if cfg.TargetPort != 0 {
		draft.FrameworkPort = cfg.TargetPort
	}
	if cfg.Publish != "" {
		draft.Dist = cfg.Publish
	}
	if draft.Dist == "" {
		draft.Dist = opts.WorkingDir
	}
}

// mergeEnvFile folds the project .env into the resolved environment;
// framework-mandated variables win on collision.
func mergeEnvFile(draft *Resolved, opts Options) {
	fileEnv, err := godotenv.Read(filepath.Join(opts.ProjectDir, ".env"))
	if err != nil || len(fileEnv) == 0 {
		return
	}

	merged := make(map[string]string, len(fileEnv)+len(draft.Env))
	for k, v := range fileEnv {
		merged[k] = v
	}
	for k, v := range draft.Env {
		merged[k] = v
	}
	draft.Env = merged
	opts.Log.Debugf("loaded %d variables from .env", len(fileEnv))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
