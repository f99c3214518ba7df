package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// ConfigName is the base name of the project-level config file; viper
// resolves the extension (devserve.json, devserve.toml, devserve.yaml, ...)
const ConfigName = "devserve"

// Framework sentinel values accepted in the dev block
const (
	FrameworkAuto   = "#auto"
	FrameworkStatic = "#static"
	FrameworkCustom = "#custom"
)

// HTTPSConfig names the TLS material for serving the dev proxy over HTTPS
type HTTPSConfig struct {
	KeyFile  string `json:"keyFile"`
	CertFile string `json:"certFile"`
}

// DevConfig is the user-supplied dev block of the project config file.
// Zero values mean the field is absent.
type DevConfig struct {
	Framework        string       `json:"framework,omitempty"`
	Command          string       `json:"command,omitempty"`
	Port             int          `json:"port,omitempty"`
	TargetPort       int          `json:"targetPort,omitempty"`
	Publish          string       `json:"publish,omitempty"`
	Functions        string       `json:"functions,omitempty"`
	FunctionsPort    int          `json:"functionsPort,omitempty"`
	StaticServerPort int          `json:"staticServerPort,omitempty"`
	JWTSecret        string       `json:"jwtSecret,omitempty"`
	JWTRolePath      string       `json:"jwtRolePath,omitempty"`
	HTTPS            *HTTPSConfig `json:"https,omitempty"`
}

// Load reads the project config file and returns the typed dev block plus
// the raw map it was built from. A missing config file is not an error: the
// returned config is empty and resolution proceeds on defaults.
func Load(projectDir string) (*DevConfig, map[string]any, error) {
	v := viper.New()
	v.SetConfigName(ConfigName)
	v.AddConfigPath(projectDir)

	if err := v.ReadInConfig(); err != nil {
		if _, notFound := err.(viper.ConfigFileNotFoundError); notFound {
			return &DevConfig{}, nil, nil
		}
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	raw, _ := v.Get("dev").(map[string]any)
	cfg, err := FromRaw(raw)
	if err != nil {
		return nil, raw, err
	}
	return cfg, raw, nil
}

// FromRaw type-checks a raw dev block and converts it into a DevConfig
func FromRaw(raw map[string]any) (*DevConfig, error) {
	if err := ValidateDevConfig(raw); err != nil {
		return nil, err
	}

	cfg := &DevConfig{
		Framework:        stringField(raw, "framework"),
		Command:          stringField(raw, "command"),
		Port:             intField(raw, "port"),
		TargetPort:       intField(raw, "targetPort"),
		Publish:          stringField(raw, "publish"),
		Functions:        stringField(raw, "functions"),
		FunctionsPort:    intField(raw, "functionsPort"),
		StaticServerPort: intField(raw, "staticServerPort"),
		JWTSecret:        stringField(raw, "jwtSecret"),
		JWTRolePath:      stringField(raw, "jwtRolePath"),
	}

	httpsRaw, _ := rawValue(raw, "https")
	if https, ok := httpsRaw.(map[string]any); ok {
		cfg.HTTPS = &HTTPSConfig{
			KeyFile:  stringField(https, "keyFile"),
			CertFile: stringField(https, "certFile"),
		}
	}

	return cfg, nil
}

// rawValue looks a field up by name. Some config decoders (viper among
// them) lowercase keys, so the lowercased form is checked as well.
func rawValue(raw map[string]any, name string) (any, bool) {
	if v, ok := raw[name]; ok {
		return v, true
	}
	v, ok := raw[strings.ToLower(name)]
	return v, ok
}

func stringField(raw map[string]any, name string) string {
	v, _ := rawValue(raw, name)
	s, _ := v.(string)
	return s
}

// intField reads a numeric field; config file decoders surface numbers as
// int, int64 or float64 depending on the format
func intField(raw map[string]any, name string) int {
	v, _ := rawValue(raw, name)
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	}
	return 0
}
