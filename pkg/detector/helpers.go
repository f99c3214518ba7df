package detector

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// preferredScriptNames is the order in which package.json scripts are
// promoted to dev commands
var preferredScriptNames = []string{"dev", "serve", "develop", "start", "run"}

// hasDependency checks whether package.json declares the dependency,
// matching the quoted name so substrings of other packages don't hit
func hasDependency(fs *FSReader, dep string) bool {
	if !fs.Has("package.json") {
		return false
	}
	return strings.Contains(fs.Read("package.json"), `"`+dep+`"`)
}

// packageScripts parses the scripts block of package.json
func packageScripts(fs *FSReader) map[string]string {
	content := fs.Read("package.json")
	if content == "" {
		return nil
	}

	var pkg struct {
		Scripts map[string]string `json:"scripts"`
	}
	if err := json.Unmarshal([]byte(content), &pkg); err != nil {
		return nil
	}
	return pkg.Scripts
}

// devCommands builds the ordered dev command list for a framework: scripts
// whose body invokes the framework CLI come first (npm run form, preferred
// names first), the framework's own command is the fallback and always last.
func devCommands(fs *FSReader, def definition) []string {
	keyword := strings.Fields(def.devCommand)[0]
	scripts := packageScripts(fs)

	var commands []string
	seen := map[string]bool{}
	for _, name := range preferredScriptNames {
		body, ok := scripts[name]
		if !ok || seen[name] || !strings.Contains(body, keyword) {
			continue
		}
		seen[name] = true
		commands = append(commands, "npm run "+name)
	}

	return append(commands, def.devCommand)
}

// portFlagRe matches -p 3001, --port 3001 and --port=3001 forms
var portFlagRe = regexp.MustCompile(`(?:-p|--port)[ =](\d+)`)

// extractPortFromCommand pulls an explicit port out of a command line
func extractPortFromCommand(command string) int {
	matches := portFlagRe.FindStringSubmatch(command)
	if len(matches) < 2 {
		return 0
	}
	port, err := strconv.Atoi(matches[1])
	if err != nil || port <= 0 || port > 65535 {
		return 0
	}
	return port
}

// scriptPort scans the dev-ish package.json scripts for an explicit port
// override of the framework default
func scriptPort(fs *FSReader, def definition) int {
	keyword := strings.Fields(def.devCommand)[0]
	scripts := packageScripts(fs)

	for _, name := range preferredScriptNames {
		body, ok := scripts[name]
		if !ok || !strings.Contains(body, keyword) {
			continue
		}
		if port := extractPortFromCommand(body); port != 0 {
			return port
		}
	}
	return 0
}

// pollingStrategies maps strategy names into descriptors
func pollingStrategies(names []string) []PollingStrategy {
	out := make([]PollingStrategy, 0, len(names))
	for _, name := range names {
		out = append(out, PollingStrategy{Name: name})
	}
	return out
}

// watchCommands splits each dev command into its argument list
func watchCommands(commands []string) [][]string {
	out := make([][]string, 0, len(commands))
	for _, c := range commands {
		out = append(out, strings.Fields(c))
	}
	return out
}

// info materializes the descriptor for a project, resolving dev commands
// and port overrides against the project's package.json
func (def definition) info(fs *FSReader) FrameworkInfo {
	commands := devCommands(fs, def)

	port := def.devPort
	if override := scriptPort(fs, def); override != 0 {
		port = override
	}

	return FrameworkInfo{
		Name: def.name,
		Build: Build{
			Directory: def.buildDirectory,
		},
		Dev: Dev{
			Commands:          commands,
			Port:              port,
			PollingStrategies: pollingStrategies(def.pollingStrategies),
		},
		StaticAssetsDirectory: def.staticAssetsDirectory,
		Env:                   def.env,
		Watch: Watch{
			Commands: watchCommands(commands),
		},
	}
}

// findDefinition looks up a registry entry by name, case-insensitively
func findDefinition(name string) (definition, error) {
	for _, def := range registry {
		if strings.EqualFold(def.name, name) {
			return def, nil
		}
	}
	return definition{}, fmt.Errorf("unknown framework: %s", name)
}
