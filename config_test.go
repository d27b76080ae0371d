package flashanimedit

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}

func TestValidateRejectsUnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Display.Backend = "vulkan"
	if err := cfg.Validate(); err == nil {
		t.Error("unknown backend accepted")
	}
}

func TestValidateRejectsBadColors(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Brush.Color = "red"
	if err := cfg.Validate(); err == nil {
		t.Error("non-hex brush color accepted")
	}

	cfg = DefaultConfig()
	cfg.Brush.Palette = append(cfg.Brush.Palette, "#GGGGGG")
	if err := cfg.Validate(); err == nil {
		t.Error("non-hex palette color accepted")
	}
}

func TestLoadConfigOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `display:
  backend: "null"
brush:
  color: "#FF0000"
export:
  dir: /tmp/frames
logLevel: debug
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}

	if cfg.Display.Backend != "null" {
		t.Errorf("backend = %q, want %q", cfg.Display.Backend, "null")
	}
	if cfg.Brush.Color != "#FF0000" {
		t.Errorf("color = %q, want %q", cfg.Brush.Color, "#FF0000")
	}
	if cfg.Export.Dir != "/tmp/frames" {
		t.Errorf("export dir = %q, want %q", cfg.Export.Dir, "/tmp/frames")
	}
	if len(cfg.Brush.Palette) == 0 {
		t.Error("palette default lost after load")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig("/nonexistent/config.yaml"); err == nil {
		t.Error("missing file did not error")
	}
}
