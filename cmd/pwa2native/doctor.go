package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/toolchain"
)

var errToolchain = errors.New("some platforms cannot be built on this machine")

func newDoctorCmd(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [platform...]",
		Short: "Check for the tools needed to build the generated projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			platforms := args
			if len(platforms) == 0 {
				platforms = config.SupportedPlatforms
				if cfg, _, err := config.Load(o.config); err == nil {
					platforms, _ = config.SplitPlatforms(cfg.Platforms)
				}
			}
			if !doctor(cmd, toolchain.Checker{}, platforms) {
				return errToolchain
			}
			return nil
		},
	}
}

// doctor prints findings per platform and reports whether all passed.
func doctor(cmd *cobra.Command, c toolchain.Checker, platforms []string) bool {
	w := cmd.OutOrStdout()
	ready := true
	for _, p := range platforms {
		findings := c.Check(cmd.Context(), p)
		ok := toolchain.Ready(findings)
		ready = ready && ok
		printFindings(w, p, ok, findings)
	}
	return ready
}

func printFindings(w io.Writer, platform string, ok bool, findings []toolchain.Finding) {
	status := "ready"
	if !ok {
		status = "missing tools"
	}
	fmt.Fprintf(w, "%s: %s\n", platform, status)
	for _, f := range findings {
		mark := "ok"
		if !f.OK {
			mark = "--"
		}
		fmt.Fprintf(w, "  [%s] %-12s %s\n", mark, f.Name, f.Detail)
	}
}
