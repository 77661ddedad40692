// SPDX-License-Identifier: MPL-2.0

package config

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/kittenmods/ksatool/internal/issue"

	"github.com/spf13/afero"
)

const testConfigDir = "/home/kitten/.config/ksatool"

func writeConfig(t *testing.T, fsys afero.Fs, path, content string) {
	t.Helper()

	if err := fsys.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := afero.WriteFile(fsys, path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestLoad_DefaultsWhenNoFile(t *testing.T) {
	t.Parallel()

	loaded, err := LoadWithPath(context.Background(), NewProviderFs(afero.NewMemMapFs()), LoadOptions{ConfigDirPath: testConfigDir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Path != "" {
		t.Errorf("Path = %q, want empty", loaded.Path)
	}

	cfg := loaded.Config
	if cfg.LogLevel != LogLevelInfo || cfg.UI.ColorScheme != ColorSchemeAuto || cfg.UI.Verbose {
		t.Errorf("defaults not applied: %+v", cfg)
	}
	if cfg.DataDir != "" || cfg.InstallDir != "" {
		t.Errorf("directories should default to empty: %+v", cfg)
	}
}

func TestLoad_FromConfigDir(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	path := filepath.Join(testConfigDir, "config.cue")
	writeConfig(t, fsys, path, `
install_dir: "/games/ksa"
log_level:   "debug"
ui: verbose: true
`)

	loaded, err := LoadWithPath(context.Background(), NewProviderFs(fsys), LoadOptions{ConfigDirPath: testConfigDir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Path != path {
		t.Errorf("Path = %q, want %q", loaded.Path, path)
	}

	cfg := loaded.Config
	if cfg.InstallDir != "/games/ksa" || cfg.LogLevel != LogLevelDebug || !cfg.UI.Verbose {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.UI.ColorScheme != ColorSchemeAuto {
		t.Errorf("ColorScheme = %q, want default auto", cfg.UI.ColorScheme)
	}
}

func TestLoad_ExplicitFile(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, "/tmp/custom.cue", `data_dir: "/srv/ksatool"`)

	cfg, err := NewProviderFs(fsys).Load(context.Background(), LoadOptions{ConfigFilePath: "/tmp/custom.cue"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/srv/ksatool" {
		t.Errorf("DataDir = %q", cfg.DataDir)
	}

	dataDir, err := ResolvedDataDir(cfg)
	if err != nil || dataDir != "/srv/ksatool" {
		t.Errorf("ResolvedDataDir() = %q, %v", dataDir, err)
	}
}

func TestLoad_ExplicitFileMissing(t *testing.T) {
	t.Parallel()

	_, err := NewProviderFs(afero.NewMemMapFs()).Load(context.Background(), LoadOptions{ConfigFilePath: "/nope.cue"})
	if err == nil {
		t.Fatal("Load() should fail for a missing explicit config file")
	}

	var ae *issue.ActionableError
	if !errors.As(err, &ae) {
		t.Fatalf("error %T is not an ActionableError", err)
	}
	if ae.Resource != "/nope.cue" || ae.Issue != issue.ConfigLoadFailedId {
		t.Errorf("ActionableError = %+v", ae)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantMsg string
	}{
		{"unknown field", `container_engine: "docker"`, "container_engine"},
		{"bad log level", `log_level: "trace"`, "log_level"},
		{"bad color scheme", `ui: color_scheme: "sepia"`, "color_scheme"},
		{"empty data dir", `data_dir: ""`, "data_dir"},
		{"wrong type", `ui: verbose: "yes"`, "verbose"},
		{"syntax error", `install_dir: "/games`, "config.cue"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			fsys := afero.NewMemMapFs()
			writeConfig(t, fsys, filepath.Join(testConfigDir, "config.cue"), tt.content)

			_, err := NewProviderFs(fsys).Load(context.Background(), LoadOptions{ConfigDirPath: testConfigDir})
			if err == nil {
				t.Fatal("Load() should reject the file")
			}
			if !strings.Contains(err.Error(), tt.wantMsg) {
				t.Errorf("error %q does not mention %q", err, tt.wantMsg)
			}
		})
	}
}

func TestLoad_FileTooLarge(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	big := "// " + strings.Repeat("x", maxConfigFileSize) + "\n"
	writeConfig(t, fsys, filepath.Join(testConfigDir, "config.cue"), big)

	_, err := NewProviderFs(fsys).Load(context.Background(), LoadOptions{ConfigDirPath: testConfigDir})
	if err == nil || !strings.Contains(err.Error(), "exceeds maximum") {
		t.Errorf("Load() error = %v, want size error", err)
	}
}

func TestLoad_Canceled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewProviderFs(afero.NewMemMapFs()).Load(ctx, LoadOptions{ConfigDirPath: testConfigDir})
	if !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestLoad_EnvironmentOverride(t *testing.T) {
	t.Setenv("KSATOOL_INSTALL_DIR", "/env/ksa")
	t.Setenv("KSATOOL_UI_VERBOSE", "true")

	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, filepath.Join(testConfigDir, "config.cue"), `install_dir: "/file/ksa"`)

	cfg, err := NewProviderFs(fsys).Load(context.Background(), LoadOptions{ConfigDirPath: testConfigDir})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.InstallDir != "/env/ksa" {
		t.Errorf("InstallDir = %q, want environment value", cfg.InstallDir)
	}
	if !cfg.UI.Verbose {
		t.Error("UI.Verbose should be set from the environment")
	}
}

func TestLoad_InvalidEnvironmentValue(t *testing.T) {
	t.Setenv("KSATOOL_LOG_LEVEL", "loud")

	_, err := NewProviderFs(afero.NewMemMapFs()).Load(context.Background(), LoadOptions{ConfigDirPath: testConfigDir})
	if !errors.Is(err, ErrInvalidLogLevel) {
		t.Errorf("Load() error = %v, want ErrInvalidLogLevel", err)
	}
}

func TestCreateDefaultConfig(t *testing.T) {
	t.Parallel()

	fsys := afero.NewMemMapFs()
	opts := LoadOptions{ConfigDirPath: testConfigDir}

	path, written, err := CreateDefaultConfig(fsys, opts, false)
	if err != nil || !written {
		t.Fatalf("CreateDefaultConfig() = %q, %v, %v", path, written, err)
	}
	if path != filepath.Join(testConfigDir, "config.cue") {
		t.Errorf("path = %q", path)
	}

	// The generated file must load back through the schema.
	cfg, err := NewProviderFs(fsys).Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if *cfg != *DefaultConfig() {
		t.Errorf("loaded %+v, want defaults", cfg)
	}

	writeConfig(t, fsys, path, `log_level: "warn"`)
	if _, written, _ := CreateDefaultConfig(fsys, opts, false); written {
		t.Error("existing config should not be overwritten without force")
	}
	if _, written, _ := CreateDefaultConfig(fsys, opts, true); !written {
		t.Error("force should overwrite the existing config")
	}
}

func TestGenerateCUE_RoundTrip(t *testing.T) {
	t.Parallel()

	cfg := &Config{
		DataDir:    "/data/ksa tool",
		InstallDir: `C:\Games\KSA`,
		LogLevel:   LogLevelWarn,
		UI:         UIConfig{ColorScheme: ColorSchemeLight, Verbose: true},
	}

	fsys := afero.NewMemMapFs()
	writeConfig(t, fsys, "/cfg.cue", GenerateCUE(cfg))

	got, err := NewProviderFs(fsys).Load(context.Background(), LoadOptions{ConfigFilePath: "/cfg.cue"})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if *got != *cfg {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}

func TestFilePath(t *testing.T) {
	t.Parallel()

	if got, _ := FilePath(LoadOptions{ConfigFilePath: "/x.cue", ConfigDirPath: "/ignored"}); got != "/x.cue" {
		t.Errorf("FilePath(explicit) = %q", got)
	}
	if got, _ := FilePath(LoadOptions{ConfigDirPath: "/etc/ksatool"}); got != filepath.Join("/etc/ksatool", "config.cue") {
		t.Errorf("FilePath(dir) = %q", got)
	}
}
