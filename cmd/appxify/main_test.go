package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"appxify/internal/converr"
	"appxify/internal/testsupport"
)

type cliTestEnv struct {
	baseDir    string
	assetDir   string
	configPath string
}

func setupCLITestEnv(t *testing.T) *cliTestEnv {
	t.Helper()

	base := t.TempDir()
	assetDir := filepath.Join(base, "app")
	if err := os.MkdirAll(assetDir, 0o755); err != nil {
		t.Fatalf("create asset dir: %v", err)
	}

	configPath := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`[paths]
log_dir = %q

[identity]
name = "ExampleCorp.Sample"
publisher = "CN=ExampleCorp"
publisher_display_name = "Example Corp"
`, filepath.Join(base, "logs"))
	testsupport.WriteFile(t, configPath, content)

	return &cliTestEnv{baseDir: base, assetDir: assetDir, configPath: configPath}
}

func (env *cliTestEnv) writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(env.assetDir, "manifest.json")
	testsupport.WriteFile(t, path, content)
	return path
}

func runCLI(t *testing.T, args []string, configPath string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

const sampleW3CManifest = `{
  "lang": "en-GB",
  "name": "Sample App",
  "start_url": "https://sample.example.com/index.html",
  "icons": [
    {"src": "icons/logo50.png", "sizes": "50x50"},
    {"src": "icons/logo512.png", "sizes": "512x512"}
  ]
}`

func writeSampleIcons(t *testing.T, assetDir string) {
	t.Helper()
	testsupport.WritePNG(t, filepath.Join(assetDir, "icons", "logo50.png"), 50, 50)
	testsupport.WritePNG(t, filepath.Join(assetDir, "icons", "logo512.png"), 512, 512)
}

func TestCLIConvertWritesDescriptor(t *testing.T) {
	env := setupCLITestEnv(t)
	manifestPath := env.writeManifest(t, sampleW3CManifest)
	writeSampleIcons(t, env.assetDir)

	outDir := filepath.Join(env.baseDir, "out")
	stdout, _, err := runCLI(t, []string{"convert", manifestPath, "--out", outDir}, env.configPath)
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	descriptorPath := filepath.Join(outDir, "AppxManifest.xml")
	data, err := os.ReadFile(descriptorPath)
	if err != nil {
		t.Fatalf("read descriptor: %v", err)
	}
	rendered := string(data)
	for _, want := range []string{
		`Name="ExampleCorp.Sample"`,
		`Publisher="CN=ExampleCorp"`,
		"<PublisherDisplayName>Example Corp</PublisherDisplayName>",
		"https://sample.example.com/index.html",
	} {
		if !strings.Contains(rendered, want) {
			t.Fatalf("descriptor missing %q:\n%s", want, rendered)
		}
	}

	// The exact 50x50 match is copied; requested slots reference the copy.
	if _, err := os.Stat(filepath.Join(outDir, "icons", "logo50.png")); err != nil {
		t.Fatalf("expected copied asset: %v", err)
	}

	for _, want := range []string{"StoreLogo", "SmallLogo", "LargeLogo", "SplashScreen", "Wrote " + descriptorPath} {
		if !strings.Contains(stdout, want) {
			t.Fatalf("convert output missing %q:\n%s", want, stdout)
		}
	}
}

func TestCLIConvertJSONReport(t *testing.T) {
	env := setupCLITestEnv(t)
	manifestPath := env.writeManifest(t, sampleW3CManifest)
	writeSampleIcons(t, env.assetDir)

	stdout, _, err := runCLI(t, []string{"convert", manifestPath, "--json"}, env.configPath)
	if err != nil {
		t.Fatalf("convert --json: %v", err)
	}

	var report conversionReport
	if err := json.Unmarshal([]byte(stdout), &report); err != nil {
		t.Fatalf("decode report: %v\noutput: %s", err, stdout)
	}
	if report.Format != "w3c" {
		t.Fatalf("format = %q, want w3c", report.Format)
	}
	if report.Language != "en-gb" {
		t.Fatalf("language = %q, want en-gb", report.Language)
	}
	if len(report.Assets) != 4 {
		t.Fatalf("expected 4 assets, got %d", len(report.Assets))
	}
	if len(report.Rules) == 0 {
		t.Fatal("expected access rules in report")
	}
	last := report.Rules[len(report.Rules)-1]
	if last.Match != "https://sample.example.com/" {
		t.Fatalf("base rule = %q, want https://sample.example.com/", last.Match)
	}
}

func TestCLIConvertMissingManifest(t *testing.T) {
	env := setupCLITestEnv(t)

	_, _, err := runCLI(t, []string{"convert", filepath.Join(env.assetDir, "absent.json")}, env.configPath)
	if err == nil {
		t.Fatal("expected error for missing manifest")
	}
	var convErr *converr.Error
	if !errors.As(err, &convErr) {
		t.Fatalf("expected converr.Error, got %T: %v", err, err)
	}
	if convErr.Code != converr.CodeManifestNotFound {
		t.Fatalf("code = %d, want %d", convErr.Code, converr.CodeManifestNotFound)
	}
}

func TestCLIValidateDryRun(t *testing.T) {
	env := setupCLITestEnv(t)
	manifestPath := env.writeManifest(t, sampleW3CManifest)
	writeSampleIcons(t, env.assetDir)

	stdout, _, err := runCLI(t, []string{"validate", manifestPath}, env.configPath)
	if err != nil {
		t.Fatalf("validate: %v", err)
	}
	if !strings.Contains(stdout, "Manifest valid") {
		t.Fatalf("unexpected validate output: %q", stdout)
	}

	// Dry run must not synthesize any scaled files.
	matches, err := filepath.Glob(filepath.Join(env.assetDir, "icons", "*_scaled_*"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(matches) != 0 {
		t.Fatalf("validate wrote files: %v", matches)
	}
}

func TestCLIValidateReportsManifestErrors(t *testing.T) {
	env := setupCLITestEnv(t)
	manifestPath := env.writeManifest(t, `{"name": "No Start", "icons": [{"src": "a.png"}]}`)
	testsupport.WritePNG(t, filepath.Join(env.assetDir, "a.png"), 16, 16)

	_, _, err := runCLI(t, []string{"validate", manifestPath}, env.configPath)
	var convErr *converr.Error
	if !errors.As(err, &convErr) {
		t.Fatalf("expected converr.Error, got %v", err)
	}
	if convErr.Code != converr.CodeStartURLNotSpecified {
		t.Fatalf("code = %d, want %d", convErr.Code, converr.CodeStartURLNotSpecified)
	}
}

func TestCLIVersion(t *testing.T) {
	stdout, _, err := runCLI(t, []string{"version"}, "")
	if err != nil {
		t.Fatalf("version: %v", err)
	}
	if !strings.Contains(stdout, "appxify") {
		t.Fatalf("unexpected version output: %q", stdout)
	}
}
