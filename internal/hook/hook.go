// Package hook runs the user's post-run command once packaging finishes.
package hook

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/Ismailco/PWA2Native/internal/history"
)

// DefaultTimeout is used when the configured timeout is negative.
const DefaultTimeout = 10 * time.Minute

// Run executes command through the system shell (sh -c on Unix, cmd /C
// on Windows) with PWA2NATIVE_* variables describing run. Run data is
// passed only through the environment; the command string is used as
// written.
//
// timeout < 0 uses DefaultTimeout, 0 disables the limit.
func Run(ctx context.Context, command string, timeout time.Duration, run history.Run) error {
	if timeout < 0 {
		timeout = DefaultTimeout
	}
	var cancel context.CancelFunc
	if timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, timeout)
	} else {
		ctx, cancel = context.WithCancel(ctx)
	}
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		cmd = exec.CommandContext(ctx, "sh", "-c", command)
	}
	cmd.Env = buildEnv(run)
	cmd.Dir = run.Output

	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return fmt.Errorf("hook %q timed out after %v", command, timeout)
		}
		if stderr.Len() > 0 {
			return fmt.Errorf("hook %q: %s", command, bytes.TrimSpace(stderr.Bytes()))
		}
		return fmt.Errorf("hook %q: %w", command, err)
	}
	return nil
}

// buildEnv returns the process environment plus the run description.
// PWA2NATIVE_<PLATFORM>_DIR is set for every platform that succeeded.
func buildEnv(run history.Run) []string {
	status := "ok"
	if !run.OK() {
		status = "failed"
	}
	var built []string
	for _, p := range run.Platforms {
		if p.OK {
			built = append(built, p.Platform)
		}
	}

	env := append(os.Environ(),
		"PWA2NATIVE_RUN_ID="+run.ID,
		"PWA2NATIVE_URL="+run.URL,
		"PWA2NATIVE_APP_NAME="+run.AppName,
		"PWA2NATIVE_OUTPUT="+run.Output,
		"PWA2NATIVE_STATUS="+status,
		"PWA2NATIVE_PLATFORMS="+strings.Join(built, ","),
		"PWA2NATIVE_ICONS_FETCHED="+strconv.Itoa(run.IconsFetched),
	)
	for _, p := range run.Platforms {
		if p.OK && p.Dir != "" {
			env = append(env, "PWA2NATIVE_"+strings.ToUpper(p.Platform)+"_DIR="+p.Dir)
		}
	}
	return env
}
