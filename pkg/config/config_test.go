package config

import (
	"os"
	"path/filepath"
	"testing"
)

// writeConfigFile drops a config file into a fresh project dir
func writeConfigFile(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
	return dir
}

func TestLoadMissingConfigFile(t *testing.T) {
	cfg, raw, err := Load(t.TempDir())
	if err != nil {
		t.Fatalf("Expected no error for missing config file, got %v", err)
	}
	if cfg == nil {
		t.Fatal("Expected empty config, got nil")
	}
	if cfg.Framework != "" || cfg.Port != 0 {
		t.Errorf("Expected zero-valued config, got %+v", cfg)
	}
	if raw != nil {
		t.Errorf("Expected nil raw block, got %v", raw)
	}
}

func TestLoadJSONConfig(t *testing.T) {
	dir := writeConfigFile(t, "devserve.json", `{
		"dev": {
			"framework": "#custom",
			"command": "npm start",
			"port": 8888,
			"targetPort": 5000,
			"publish": "dist",
			"jwtSecret": "secret",
			"https": {"keyFile": "key.pem", "certFile": "cert.pem"}
		}
	}`)

	cfg, raw, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Framework != "#custom" {
		t.Errorf("Expected framework #custom, got %q", cfg.Framework)
	}
	if cfg.Command != "npm start" {
		t.Errorf("Expected command 'npm start', got %q", cfg.Command)
	}
	if cfg.Port != 8888 || cfg.TargetPort != 5000 {
		t.Errorf("Expected ports 8888/5000, got %d/%d", cfg.Port, cfg.TargetPort)
	}
	if cfg.Publish != "dist" {
		t.Errorf("Expected publish 'dist', got %q", cfg.Publish)
	}
	if cfg.HTTPS == nil || cfg.HTTPS.KeyFile != "key.pem" || cfg.HTTPS.CertFile != "cert.pem" {
		t.Errorf("Expected https key/cert files, got %+v", cfg.HTTPS)
	}
	if raw == nil {
		t.Error("Expected raw dev block to be returned")
	}
}

func TestLoadYAMLConfig(t *testing.T) {
	dir := writeConfigFile(t, "devserve.yaml", "dev:\n  framework: \"#static\"\n  publish: public\n  staticServerPort: 4000\n")

	cfg, _, err := Load(dir)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Framework != "#static" {
		t.Errorf("Expected framework #static, got %q", cfg.Framework)
	}
	if cfg.Publish != "public" {
		t.Errorf("Expected publish 'public', got %q", cfg.Publish)
	}
	if cfg.StaticServerPort != 4000 {
		t.Errorf("Expected staticServerPort 4000, got %d", cfg.StaticServerPort)
	}
}

func TestLoadRejectsInvalidShapes(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "non-string framework", content: `{"dev": {"framework": 12}}`},
		{name: "non-number port", content: `{"dev": {"port": "8888"}}`},
		{name: "equal port and targetPort", content: `{"dev": {"port": 5000, "targetPort": 5000}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := writeConfigFile(t, "devserve.json", tt.content)
			if _, _, err := Load(dir); err == nil {
				t.Error("Expected validation error, got nil")
			}
		})
	}
}

func TestFromRawNilBlock(t *testing.T) {
	cfg, err := FromRaw(nil)
	if err != nil {
		t.Fatalf("Expected nil raw block to produce empty config, got %v", err)
	}
	if cfg.Framework != "" {
		t.Errorf("Expected empty framework, got %q", cfg.Framework)
	}
}
