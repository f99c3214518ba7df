// Package settings resolves the effective local dev-server configuration
// for a project: the command to run, the ports involved and the directory
// to serve static assets from.
package settings

import (
	"devserve/pkg/detector"
)

// HTTPS holds resolved TLS material, file contents rather than paths
type HTTPS struct {
	Key  string `json:"-"`
	Cert string `json:"-"`
}

// Resolved is the final settings object handed to the server bootstrap.
// It is assembled once per invocation and never mutated after return.
type Resolved struct {
	Command           string            `json:"command,omitempty"`
	FrameworkPort     int               `json:"frameworkPort,omitempty"`
	Dist              string            `json:"dist"`
	Framework         string            `json:"framework,omitempty"`
	Env               map[string]string `json:"env,omitempty"`
	PollingStrategies []string          `json:"pollingStrategies,omitempty"`
	Port              int               `json:"port"`
	JWTSecret         string            `json:"jwtSecret,omitempty"`
	JWTRolePath       string            `json:"jwtRolePath,omitempty"`
	FunctionsDir      string            `json:"functions,omitempty"`
	FunctionsPort     *int              `json:"functionsPort,omitempty"`
	HTTPS             *HTTPS            `json:"https,omitempty"`
	UseStaticServer   bool              `json:"useStaticServer,omitempty"`
}

// FromFramework projects a framework descriptor onto the settings shape.
// The first dev command is canonical; a purely static framework's asset
// directory wins over its build output directory.
func FromFramework(info detector.FrameworkInfo) Resolved {
	command := ""
	if len(info.Dev.Commands) > 0 {
		command = info.Dev.Commands[0]
	}

	dist := info.Build.Directory
	if info.StaticAssetsDirectory != "" {
		dist = info.StaticAssetsDirectory
	}

	strategies := make([]string, 0, len(info.Dev.PollingStrategies))
	for _, s := range info.Dev.PollingStrategies {
		strategies = append(strategies, s.Name)
	}

	return Resolved{
		Command:           command,
		FrameworkPort:     info.Dev.Port,
		Dist:              dist,
		Framework:         info.Name,
		Env:               info.Env,
		PollingStrategies: strategies,
	}
}
