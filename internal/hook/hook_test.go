package hook

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"

	"github.com/Ismailco/PWA2Native/internal/history"
)

func sampleRun(out string) history.Run {
	r := history.NewRun("https://app.example.com", "Demo", out)
	r.IconsFetched = 2
	r.Platforms = []history.PlatformResult{
		{Platform: "android", OK: true, Dir: filepath.Join(out, "android")},
		{Platform: "ios", Error: "boom"},
	}
	return r
}

func envMap(env []string) map[string]string {
	m := make(map[string]string)
	for _, e := range env {
		parts := strings.SplitN(e, "=", 2)
		if len(parts) == 2 && strings.HasPrefix(parts[0], "PWA2NATIVE_") {
			m[parts[0]] = parts[1]
		}
	}
	return m
}

func TestBuildEnv(t *testing.T) {
	r := sampleRun("/tmp/dist")
	got := envMap(buildEnv(r))
	want := map[string]string{
		"PWA2NATIVE_RUN_ID":        r.ID,
		"PWA2NATIVE_URL":           "https://app.example.com",
		"PWA2NATIVE_APP_NAME":      "Demo",
		"PWA2NATIVE_OUTPUT":        "/tmp/dist",
		"PWA2NATIVE_STATUS":        "failed",
		"PWA2NATIVE_PLATFORMS":     "android",
		"PWA2NATIVE_ICONS_FETCHED": "2",
		"PWA2NATIVE_ANDROID_DIR":   filepath.Join("/tmp/dist", "android"),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %q, want %q", k, got[k], v)
		}
	}
	if _, ok := got["PWA2NATIVE_IOS_DIR"]; ok {
		t.Error("failed platforms should not get a dir variable")
	}
}

func failCmd() string {
	if runtime.GOOS == "windows" {
		return "echo FAIL>&2 && exit 1"
	}
	return "echo FAIL >&2; exit 1"
}

func sleepCmd() string {
	if runtime.GOOS == "windows" {
		return "ping -n 6 127.0.0.1 >nul"
	}
	return "sleep 5"
}

func TestRunSeesEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("uses sh redirection")
	}
	out := t.TempDir()
	err := Run(context.Background(), `echo "$PWA2NATIVE_APP_NAME" > hook.txt`, -1, sampleRun(out))
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(out, "hook.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.TrimSpace(string(data)) != "Demo" {
		t.Errorf("hook wrote %q", data)
	}
}

func TestRunFailure(t *testing.T) {
	err := Run(context.Background(), failCmd(), -1, sampleRun(t.TempDir()))
	if err == nil {
		t.Fatal("expected error from failing command")
	}
	if !strings.Contains(err.Error(), "FAIL") {
		t.Errorf("error should contain stderr output, got: %v", err)
	}
}

func TestRunTimeout(t *testing.T) {
	err := Run(context.Background(), sleepCmd(), time.Second, sampleRun(t.TempDir()))
	if err == nil {
		t.Fatal("expected timeout error")
	}
	if !strings.Contains(err.Error(), "timed out") {
		t.Errorf("error should mention timeout, got: %v", err)
	}
}
