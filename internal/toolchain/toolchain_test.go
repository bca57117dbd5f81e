package toolchain

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"testing"
)

func fakeChecker(goos string, onPath map[string]bool, env map[string]string) Checker {
	return Checker{
		GOOS: goos,
		LookPath: func(name string) (string, error) {
			if onPath[name] {
				return "/usr/bin/" + name, nil
			}
			return "", exec.ErrNotFound
		},
		Getenv: func(k string) string { return env[k] },
		Run: func(ctx context.Context, name string, args ...string) (string, error) {
			return "8.0.100", nil
		},
	}
}

func TestCheckAndroid(t *testing.T) {
	dir := t.TempDir()
	c := fakeChecker("linux", map[string]bool{"gradle": true}, map[string]string{"JAVA_HOME": dir})
	findings := c.Check(context.Background(), "android")
	if len(findings) != 3 {
		t.Fatalf("got %d findings", len(findings))
	}
	if !findings[0].OK {
		t.Errorf("JAVA_HOME = %+v, want ok", findings[0])
	}
	if findings[1].OK || findings[1].Detail != "not set" {
		t.Errorf("ANDROID_HOME = %+v, want not set", findings[1])
	}
	if !findings[2].OK {
		t.Errorf("gradle = %+v", findings[2])
	}
	if Ready(findings) {
		t.Error("Ready should be false with ANDROID_HOME missing")
	}
}

func TestCheckEnvDirMissing(t *testing.T) {
	c := fakeChecker("linux", nil, map[string]string{"JAVA_HOME": "/definitely/not/here"})
	c.Stat = func(string) (os.FileInfo, error) { return nil, os.ErrNotExist }
	f := c.Check(context.Background(), "android")[0]
	if f.OK {
		t.Errorf("JAVA_HOME pointing nowhere should fail: %+v", f)
	}
}

func TestCheckApplePlatforms(t *testing.T) {
	all := map[string]bool{"xcodebuild": true, "swiftc": true, "iconutil": true}
	if !Ready(fakeChecker("darwin", all, nil).Check(context.Background(), "macos")) {
		t.Error("macos should be ready on darwin with tools")
	}
	if Ready(fakeChecker("linux", all, nil).Check(context.Background(), "ios")) {
		t.Error("ios should not be ready off darwin")
	}
}

func TestCheckWindows(t *testing.T) {
	f := fakeChecker("windows", map[string]bool{"dotnet": true}, nil).Check(context.Background(), "windows")
	if !Ready(f) || f[0].Detail != "SDK 8.0.100" {
		t.Errorf("findings = %+v", f)
	}

	c := fakeChecker("windows", map[string]bool{"dotnet": true}, nil)
	c.Run = func(context.Context, string, ...string) (string, error) { return "", errors.New("exit 1") }
	if Ready(c.Check(context.Background(), "windows")) {
		t.Error("failing dotnet --version should not be ready")
	}
}

func TestCheckUnknown(t *testing.T) {
	f := Checker{}.Check(context.Background(), "linux")
	if len(f) != 1 || f[0].OK {
		t.Errorf("findings = %+v", f)
	}
}

func TestGradleWrapperMissing(t *testing.T) {
	if _, err := exec.LookPath("gradle"); err == nil {
		t.Skip("gradle is installed, skipping missing-gradle test")
	}
	err := GradleWrapper(context.Background(), t.TempDir())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}
