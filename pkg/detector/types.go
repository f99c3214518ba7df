package detector

// PollingStrategy is a named file-change-detection technique a framework's
// dev server recommends
type PollingStrategy struct {
	Name string `json:"name"`
}

// Dev describes how a framework's development server is run
type Dev struct {
	Commands          []string          `json:"commands"`
	Port              int               `json:"port"`
	PollingStrategies []PollingStrategy `json:"pollingStrategies,omitempty"`
}

// Build describes where a framework writes its build output
type Build struct {
	Directory string `json:"directory"`
}

// Watch carries the command variants shown when several frameworks match
type Watch struct {
	Commands [][]string `json:"commands"`
}

// FrameworkInfo is the descriptor for one detected framework. The first
// entry of Dev.Commands is the canonical run command.
type FrameworkInfo struct {
	Name                  string            `json:"name"`
	Build                 Build             `json:"build"`
	Dev                   Dev               `json:"dev"`
	StaticAssetsDirectory string            `json:"staticAssetsDirectory,omitempty"`
	Env                   map[string]string `json:"env,omitempty"`
	Watch                 Watch             `json:"watch"`
}

// definition is a registry entry: static framework metadata plus the
// predicate that decides whether a project uses it
type definition struct {
	name                  string
	devCommand            string
	devPort               int
	buildDirectory        string
	staticAssetsDirectory string
	env                   map[string]string
	pollingStrategies     []string
	detect                func(fs *FSReader) bool
}
