package configloader

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/yaklabco/plugmod/pkg/config"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func isolated(dir string) LoadOptions {
	return LoadOptions{
		WorkingDir:         dir,
		IgnoreSystemConfig: true,
		IgnoreUserConfig:   true,
		IgnoreEnv:          true,
	}
}

func TestLoad_Defaults(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	// Stop the upward search at the temp dir.
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(tmpDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Commit != config.CommitPerFile {
		t.Errorf("expected commit %q, got %q", config.CommitPerFile, cfg.Commit)
	}
	if len(cfg.Platforms) != 2 {
		t.Errorf("expected both platforms, got %v", cfg.Platforms)
	}
	if !cfg.Backups.IsEnabled() {
		t.Error("expected backups enabled by default")
	}
	if cfg.ProjectRoot != tmpDir {
		t.Errorf("expected project root %q, got %q", tmpDir, cfg.ProjectRoot)
	}
	if len(result.LoadedFrom) != 0 {
		t.Errorf("expected no loaded files, got %v", result.LoadedFrom)
	}
}

func TestLoad_ProjectConfigUpwardSearch(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, "plugmod.yml"), `
name: Bacon
platforms: [android]
backups:
  enabled: false
android:
  package: com.example.bacon
  meta_data:
    bacon: pancake
`)
	subDir := filepath.Join(tmpDir, "android", "app")
	if err := os.MkdirAll(subDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(subDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Name != "Bacon" {
		t.Errorf("expected name Bacon, got %q", cfg.Name)
	}
	if len(cfg.Platforms) != 1 || cfg.Platforms[0] != "android" {
		t.Errorf("expected [android], got %v", cfg.Platforms)
	}
	if cfg.Backups.IsEnabled() {
		t.Error("expected backups disabled by the project config")
	}
	if cfg.Android.MetaData["bacon"] != "pancake" {
		t.Errorf("expected meta-data, got %v", cfg.Android.MetaData)
	}
	if cfg.ProjectRoot != tmpDir {
		t.Errorf("expected project root %q, got %q", tmpDir, cfg.ProjectRoot)
	}
	if len(result.LoadedFrom) != 1 {
		t.Errorf("expected one loaded file, got %v", result.LoadedFrom)
	}
}

func TestLoad_ExplicitConfigAndCLIOverrides(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	explicit := filepath.Join(tmpDir, "configs", "ci.yml")
	writeFile(t, explicit, `
name: Bacon
commit: platform
ios:
  info_plist:
    CFBundleDisplayName: Bacon
`)

	opts := isolated(tmpDir)
	opts.IgnoreProjectConfig = true
	opts.ExplicitPath = explicit
	opts.CLIConfig = &config.Config{
		DryRun:    true,
		Platforms: []string{"ios"},
		IOS: config.IOSConfig{
			InfoPlist: map[string]any{"UIRequiresFullScreen": true},
		},
	}

	result, err := Load(context.Background(), opts)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	cfg := result.Config
	if cfg.Commit != config.CommitPerPlatform {
		t.Errorf("expected commit from explicit file, got %q", cfg.Commit)
	}
	if !cfg.DryRun {
		t.Error("expected CLI dry run")
	}
	if len(cfg.Platforms) != 1 || cfg.Platforms[0] != "ios" {
		t.Errorf("expected CLI platforms, got %v", cfg.Platforms)
	}
	if len(cfg.IOS.InfoPlist) != 2 {
		t.Errorf("expected merged info_plist, got %v", cfg.IOS.InfoPlist)
	}
	if cfg.ProjectRoot != filepath.Dir(explicit) {
		t.Errorf("expected project root next to explicit config, got %q", cfg.ProjectRoot)
	}
}

func TestLoad_InvalidConfig(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "platform", content: "platforms: [windows]\n", field: "platforms[0]"},
		{name: "commit", content: "commit: never\n", field: "commit"},
		{name: "package", content: "android:\n  package: 1bad\n", field: "android.package"},
		{name: "literal policy", content: "xml:\n  literal_policy: sometimes\n", field: "xml.literal_policy"},
		{name: "backup mode", content: "backups:\n  mode: xdg\n", field: "backups.mode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tmpDir := t.TempDir()
			if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
				t.Fatalf("mkdir: %v", err)
			}
			path := filepath.Join(tmpDir, "plugmod.yml")
			writeFile(t, path, tt.content)

			_, err := Load(context.Background(), isolated(tmpDir))
			var validationErr *ValidationError
			if !errors.As(err, &validationErr) {
				t.Fatalf("expected ValidationError, got %v", err)
			}
			if validationErr.Field != tt.field {
				t.Errorf("expected field %q, got %q", tt.field, validationErr.Field)
			}
			if validationErr.FilePath != path {
				t.Errorf("expected file path %q, got %q", path, validationErr.FilePath)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, "plugmod.yml"), "name: [oops\n")

	_, err := Load(context.Background(), isolated(tmpDir))
	if err == nil || !strings.Contains(err.Error(), "load project config") {
		t.Fatalf("expected project config error, got %v", err)
	}
}

func TestLoad_ContextCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, isolated(t.TempDir()))
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestLoad_ProjectRootFromAppMarker(t *testing.T) {
	t.Parallel()

	appDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(appDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(appDir, "package.json"), "{}\n")
	workDir := filepath.Join(appDir, "src", "screens")
	if err := os.MkdirAll(workDir, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	result, err := Load(context.Background(), isolated(workDir))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if result.Config.ProjectRoot != appDir {
		t.Errorf("expected project root %q, got %q", appDir, result.Config.ProjectRoot)
	}
	if result.Paths.AppRoot != appDir || result.Paths.Project != "" {
		t.Errorf("unexpected paths: %+v", result.Paths)
	}
}

func TestLoad_RejectsUnknownPlugins(t *testing.T) {
	t.Parallel()

	tmpDir := t.TempDir()
	if err := os.Mkdir(filepath.Join(tmpDir, ".git"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(tmpDir, "plugmod.yml"), "name: Bacon\nplugins: [meta-data, splash]\n")

	opts := isolated(tmpDir)
	opts.KnownPlugins = []string{"meta-data", "permissions"}

	_, err := Load(context.Background(), opts)
	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if validationErr.Field != "plugins[1]" || !strings.Contains(err.Error(), `unknown plugin "splash"`) {
		t.Errorf("unexpected validation error: %v", err)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PLUGMOD_PLATFORMS", "android, ios ,")
	t.Setenv("PLUGMOD_COMMIT", "platform")
	t.Setenv("PLUGMOD_BACKUPS_ENABLED", "false")
	t.Setenv("PLUGMOD_ANDROID_PACKAGE", "com.example.env")

	cfg := config.NewConfig()
	if err := LoadFromEnv(cfg); err != nil {
		t.Fatalf("LoadFromEnv() error = %v", err)
	}

	if len(cfg.Platforms) != 2 || cfg.Platforms[1] != "ios" {
		t.Errorf("expected trimmed platforms, got %v", cfg.Platforms)
	}
	if cfg.Commit != config.CommitPerPlatform {
		t.Errorf("expected commit platform, got %q", cfg.Commit)
	}
	if cfg.Backups.IsEnabled() {
		t.Error("expected backups disabled")
	}
	if cfg.Android.Package != "com.example.env" {
		t.Errorf("expected package from env, got %q", cfg.Android.Package)
	}
}

func TestLoadFromEnv_InvalidBool(t *testing.T) {
	t.Setenv("PLUGMOD_CONCURRENT", "maybe")

	err := LoadFromEnv(config.NewConfig())
	if err == nil || !strings.Contains(err.Error(), "PLUGMOD_CONCURRENT") {
		t.Fatalf("expected error naming the variable, got %v", err)
	}
}

func TestListEnvVars(t *testing.T) {
	t.Parallel()

	vars := ListEnvVars()
	if _, ok := vars["PLUGMOD_DRY_RUN"]; !ok {
		t.Error("expected PLUGMOD_DRY_RUN")
	}
	if GetEnvVarName("xml.literal_policy") != "PLUGMOD_XML_LITERAL_POLICY" {
		t.Errorf("unexpected env var name %q", GetEnvVarName("xml.literal_policy"))
	}
}

func TestWriteConfig(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), ProjectConfigFile)
	if err := WriteConfig(path, []byte("name: a\n"), false); err != nil {
		t.Fatalf("WriteConfig() error = %v", err)
	}
	if err := WriteConfig(path, []byte("name: b\n"), false); err == nil {
		t.Fatal("expected refusal to overwrite")
	}
	if err := WriteConfig(path, []byte("name: b\n"), true); err != nil {
		t.Fatalf("WriteConfig(force) error = %v", err)
	}
	content, err := os.ReadFile(path)
	if err != nil || string(content) != "name: b\n" {
		t.Fatalf("unexpected content %q (%v)", content, err)
	}
}
