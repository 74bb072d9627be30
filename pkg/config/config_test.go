package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "settings.toml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config: %v", err)
	}
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Output.Width != 512 || cfg.Output.Height != 512 {
		t.Errorf("expected 512x512, got %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Output.MinX != -0.5 || cfg.Output.ViewWidth != 1 {
		t.Errorf("expected unit viewBox, got %+v", cfg.Output)
	}
	if cfg.Style.Fill != "white" || cfg.Style.Stroke != "black" {
		t.Errorf("unexpected default style: %+v", cfg.Style)
	}
	if err := cfg.check(); err != nil {
		t.Errorf("default config should validate: %v", err)
	}
}

func TestLoadPartialOverlay(t *testing.T) {
	path := writeConfig(t, `
[output]
width = 1024
height = 768

[style]
fill = "#ddeeff"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Output.Width != 1024 || cfg.Output.Height != 768 {
		t.Errorf("expected 1024x768, got %dx%d", cfg.Output.Width, cfg.Output.Height)
	}
	if cfg.Style.Fill != "#ddeeff" {
		t.Errorf("expected fill override, got %q", cfg.Style.Fill)
	}
	// Unset fields keep their defaults.
	if cfg.Style.Stroke != "black" {
		t.Errorf("expected default stroke, got %q", cfg.Style.Stroke)
	}
	if cfg.Kernel.Cells != 100 {
		t.Errorf("expected default cells, got %d", cfg.Kernel.Cells)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoadBadTOML(t *testing.T) {
	path := writeConfig(t, `[output width = ]`)
	_, err := Load(path)
	if err == nil {
		t.Fatal("expected parse error")
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{
			name:    "zero width",
			content: "[output]\nwidth = 0\n",
			wantMsg: "dimensions",
		},
		{
			name:    "negative viewbox",
			content: "[output]\nview-width = -1.0\n",
			wantMsg: "viewBox",
		},
		{
			name:    "zero cells",
			content: "[kernel]\ncells = 0\n",
			wantMsg: "cells",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.content)
			_, err := Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q should mention %q", err, tt.wantMsg)
			}
		})
	}
}
