// Package toolchain checks for the native build tools each platform's
// generated project needs, and runs the few of them the packager calls.
package toolchain

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNotFound means a required executable is not on PATH.
var ErrNotFound = errors.New("not found on PATH")

// Finding is the result of one capability check.
type Finding struct {
	Name   string
	OK     bool
	Detail string
}

// Checker runs capability checks. The zero value inspects the real
// environment.
type Checker struct {
	GOOS     string
	LookPath func(string) (string, error)
	Getenv   func(string) string
	Stat     func(string) (os.FileInfo, error)
	Run      func(ctx context.Context, name string, args ...string) (string, error)
}

func (c Checker) goos() string {
	if c.GOOS != "" {
		return c.GOOS
	}
	return runtime.GOOS
}

func (c Checker) lookPath(name string) (string, error) {
	if c.LookPath != nil {
		return c.LookPath(name)
	}
	return exec.LookPath(name)
}

func (c Checker) getenv(key string) string {
	if c.Getenv != nil {
		return c.Getenv(key)
	}
	return os.Getenv(key)
}

func (c Checker) stat(p string) (os.FileInfo, error) {
	if c.Stat != nil {
		return c.Stat(p)
	}
	return os.Stat(p)
}

func (c Checker) run(ctx context.Context, name string, args ...string) (string, error) {
	if c.Run != nil {
		return c.Run(ctx, name, args...)
	}
	out, err := exec.CommandContext(ctx, name, args...).Output()
	return strings.TrimSpace(string(out)), err
}

// Check returns the findings for platform. Unknown platforms yield a
// single failed finding.
func (c Checker) Check(ctx context.Context, platform string) []Finding {
	switch platform {
	case "android":
		return []Finding{c.envDir("JAVA_HOME"), c.envDir("ANDROID_HOME"), c.binary("gradle")}
	case "ios":
		return []Finding{c.host("darwin", "iOS projects build on macOS"), c.binary("xcodebuild")}
	case "macos":
		return []Finding{c.host("darwin", "macOS apps build on macOS"), c.binary("swiftc"), c.binary("iconutil")}
	case "windows":
		return []Finding{c.dotnet(ctx)}
	}
	return []Finding{{Name: platform, Detail: "unknown platform"}}
}

// Ready reports whether every finding passed.
func Ready(findings []Finding) bool {
	for _, f := range findings {
		if !f.OK {
			return false
		}
	}
	return true
}

func (c Checker) envDir(key string) Finding {
	v := c.getenv(key)
	if v == "" {
		return Finding{Name: key, Detail: "not set"}
	}
	if fi, err := c.stat(v); err != nil || !fi.IsDir() {
		return Finding{Name: key, Detail: v + " is not a directory"}
	}
	return Finding{Name: key, OK: true, Detail: v}
}

func (c Checker) binary(name string) Finding {
	p, err := c.lookPath(name)
	if err != nil {
		return Finding{Name: name, Detail: ErrNotFound.Error()}
	}
	return Finding{Name: name, OK: true, Detail: p}
}

func (c Checker) host(goos, why string) Finding {
	if c.goos() != goos {
		return Finding{Name: "host", Detail: why}
	}
	return Finding{Name: "host", OK: true, Detail: goos}
}

func (c Checker) dotnet(ctx context.Context) Finding {
	if _, err := c.lookPath("dotnet"); err != nil {
		return Finding{Name: "dotnet", Detail: ErrNotFound.Error()}
	}
	v, err := c.run(ctx, "dotnet", "--version")
	if err != nil {
		return Finding{Name: "dotnet", Detail: fmt.Sprintf("dotnet --version: %v", err)}
	}
	return Finding{Name: "dotnet", OK: true, Detail: "SDK " + v}
}

// GradleWrapper runs `gradle wrapper` in dir so the generated Android
// project can be built with ./gradlew. Returns ErrNotFound if gradle is
// not on PATH.
func GradleWrapper(ctx context.Context, dir string) error {
	if _, err := exec.LookPath("gradle"); err != nil {
		return fmt.Errorf("gradle %w: %v", ErrNotFound, err)
	}
	cmd := exec.CommandContext(ctx, "gradle", "wrapper", "--quiet")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		return fmt.Errorf("gradle wrapper: %w\n%s", err, out)
	}
	return nil
}
