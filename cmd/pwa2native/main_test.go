package main

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/toolchain"
)

// writeConfig writes a JSON config and returns its path.
func writeConfig(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "pwa2native.json")
	if err := os.WriteFile(p, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return p
}

func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := newRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

func TestLoadConfigFlagsOverrideFile(t *testing.T) {
	cfgPath := writeConfig(t, `{"output": "from-file", "workers": 2, "platforms": ["ios"]}`)
	cmd := newRootCmd()
	if err := cmd.ParseFlags([]string{"--output", "from-flag", "--platforms", "android,windows", "-v"}); err != nil {
		t.Fatal(err)
	}
	cfg, err := loadConfig(cmd, options{config: cfgPath, output: "from-flag", platforms: "android,windows", verbose: true})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if cfg.Output != "from-flag" {
		t.Errorf("Output = %q, want from-flag", cfg.Output)
	}
	if cfg.Workers != 2 {
		t.Errorf("Workers = %d, want 2 from file", cfg.Workers)
	}
	if strings.Join(cfg.Platforms, ",") != "android,windows" {
		t.Errorf("Platforms = %v", cfg.Platforms)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadConfigUnknownPlatformWarns(t *testing.T) {
	cfgPath := writeConfig(t, `{}`)
	cmd := newRootCmd()
	var errOut bytes.Buffer
	cmd.SetErr(&errOut)
	cmd.ParseFlags([]string{"--platforms", "linux,android"})

	cfg, err := loadConfig(cmd, options{config: cfgPath, platforms: "linux,android"})
	if err != nil {
		t.Fatalf("loadConfig: %v", err)
	}
	if len(cfg.Platforms) != 1 || cfg.Platforms[0] != "android" {
		t.Errorf("Platforms = %v, want [android]", cfg.Platforms)
	}
	if !strings.Contains(errOut.String(), `"linux"`) {
		t.Errorf("stderr = %q, want a warning about linux", errOut.String())
	}
}

func TestLoadConfigNoKnownPlatforms(t *testing.T) {
	cfgPath := writeConfig(t, `{}`)
	cmd := newRootCmd()
	cmd.SetErr(io.Discard)
	cmd.ParseFlags([]string{"--platforms", "linux"})

	if _, err := loadConfig(cmd, options{config: cfgPath, platforms: "linux"}); err == nil {
		t.Fatal("expected error when no known platform remains")
	}
}

func TestRootRequiresURL(t *testing.T) {
	if _, _, err := execute(t); err == nil {
		t.Fatal("expected error without a url")
	}
}

func TestVersionCmd(t *testing.T) {
	out, _, err := execute(t, "version")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(out, "pwa2native dev") {
		t.Errorf("version output = %q", out)
	}
}

func TestAboutCmd(t *testing.T) {
	out, _, err := execute(t, "about")
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"android", "ios", "macos", "windows", "doctor"} {
		if !strings.Contains(out, want) {
			t.Errorf("about output missing %q", want)
		}
	}
}

func TestDoctorReportsMissingTools(t *testing.T) {
	c := toolchain.Checker{
		GOOS:     "linux",
		LookPath: func(string) (string, error) { return "", exec.ErrNotFound },
		Getenv:   func(string) string { return "" },
	}
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())

	if doctor(cmd, c, []string{"windows", "macos"}) {
		t.Error("doctor should report not ready")
	}
	got := out.String()
	for _, want := range []string{"windows: missing tools", "macos: missing tools", "dotnet"} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q:\n%s", want, got)
		}
	}
}

func TestHistoryCmd(t *testing.T) {
	t.Setenv("APPDATA", t.TempDir())

	out, _, err := execute(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "No runs recorded.") {
		t.Errorf("empty history output = %q", out)
	}

	store, err := history.NewSQLiteStore(paths.HistoryPath())
	if err != nil {
		t.Fatal(err)
	}
	run := history.NewRun("https://app.example.com", "Demo", "./dist")
	run.Platforms = []history.PlatformResult{{Platform: "android", OK: true, IconsProduced: 5}}
	if err := store.Record(run); err != nil {
		t.Fatal(err)
	}
	store.Close()

	out, _, err = execute(t, "history", "--days", "1")
	if err != nil {
		t.Fatalf("history --days: %v", err)
	}
	if !strings.Contains(out, "Demo") || !strings.Contains(out, "android") {
		t.Errorf("history output = %q", out)
	}

	if _, _, err := execute(t, "history", "--clean"); err == nil {
		t.Error("--clean without --days should fail")
	}
}

func TestPrintSummary(t *testing.T) {
	run := history.Run{
		AppName:      "Demo",
		URL:          "https://app.example.com",
		IconsFetched: 2,
		Platforms: []history.PlatformResult{
			{Platform: "android", OK: true, IconsProduced: 5, Dir: "dist/android"},
			{Platform: "ios", Error: "manifest: not found"},
		},
	}
	var buf bytes.Buffer
	printSummary(&buf, run)
	got := buf.String()
	for _, want := range []string{"Demo", "android  ok", "ios      FAIL  manifest: not found", "downloaded: 2"} {
		if !strings.Contains(got, want) {
			t.Errorf("summary missing %q:\n%s", want, got)
		}
	}
	if failed(run) != 1 {
		t.Errorf("failed = %d, want 1", failed(run))
	}
}

func TestRunEndToEnd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/manifest.json" {
			io.WriteString(w, `{"name": "Hello Site"}`)
			return
		}
		http.NotFound(w, r)
	}))
	defer srv.Close()

	outDir := t.TempDir()
	cfgPath := writeConfig(t, `{"history": false, "log_level": "error"}`)
	out, _, err := execute(t, srv.URL+"/", "--config", cfgPath, "--platforms", "windows", "--output", outDir)
	if err != nil {
		t.Fatalf("run: %v\n%s", err, out)
	}
	if !strings.Contains(out, "windows  ok") {
		t.Errorf("summary = %q", out)
	}
	if _, err := os.Stat(filepath.Join(outDir, "windows", "HelloSite.sln")); err != nil {
		t.Errorf("solution not written: %v", err)
	}
}
