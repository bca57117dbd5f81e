package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/hook"
	"github.com/Ismailco/PWA2Native/internal/httputil"
	"github.com/Ismailco/PWA2Native/internal/logging"
	"github.com/Ismailco/PWA2Native/internal/packager"
	"github.com/Ismailco/PWA2Native/internal/paths"
)

func runPackage(cmd *cobra.Command, url string, o options) error {
	cfg, err := loadConfig(cmd, o)
	if err != nil {
		return err
	}
	log := logging.Setup(cfg.LogLevel)

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	opts := packager.OptionsFromConfig(cfg)
	opts.URL = url
	opts.ManifestURL = o.manifest
	opts.AppName = o.name
	opts.Client = httputil.NewClient(cfg.FetchTimeout())
	opts.Log = log

	run, err := packager.New(opts).Run(ctx)
	printSummary(cmd.OutOrStdout(), run)
	if err != nil {
		return err
	}

	if cfg.History {
		recordRun(log, run)
	}
	if err := packager.Notify(ctx, cfg.Notify, run); err != nil {
		log.Warn("run summary not delivered", "err", err)
	}
	if cfg.PostRun != "" {
		if err := hook.Run(ctx, cfg.PostRun, cfg.PostRunLimit(), run); err != nil {
			log.Warn("post-run hook failed", "err", err)
		}
	}
	if !run.OK() {
		return fmt.Errorf("%d of %d platforms failed", failed(run), len(run.Platforms))
	}
	return nil
}

// loadConfig reads the config file and layers explicitly set flags on top.
func loadConfig(cmd *cobra.Command, o options) (config.Config, error) {
	cfg, _, err := config.Load(o.config)
	if err != nil {
		return config.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("output") {
		cfg.Output = o.output
	}
	if flags.Changed("workers") {
		cfg.Workers = o.workers
	}
	if flags.Changed("platforms") {
		cfg.Platforms = strings.Split(o.platforms, ",")
	}
	if o.verbose {
		cfg.LogLevel = "debug"
	}

	// Unknown platforms are reported and skipped rather than rejected.
	known, unknown := config.SplitPlatforms(cfg.Platforms)
	for _, u := range unknown {
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: unknown platform %q, skipping\n", u)
	}
	if len(known) == 0 {
		return config.Config{}, fmt.Errorf("no platforms to build (choose from %s)", strings.Join(config.SupportedPlatforms, ", "))
	}
	cfg.Platforms = known

	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

func recordRun(log *slog.Logger, run history.Run) {
	store, err := history.NewSQLiteStore(paths.HistoryPath())
	if err != nil {
		log.Warn("history unavailable", "err", err)
		return
	}
	defer store.Close()
	if err := store.Record(run); err != nil {
		log.Warn("history not recorded", "err", err)
	}
}

func printSummary(w io.Writer, run history.Run) {
	fmt.Fprintf(w, "\n%s  (%s)\n", run.AppName, run.URL)
	fmt.Fprintf(w, "  icons downloaded: %d, failed: %d\n", run.IconsFetched, run.IconsFailed)
	for _, p := range run.Platforms {
		if p.OK {
			fmt.Fprintf(w, "  %-8s ok    %2d icons  %s\n", p.Platform, p.IconsProduced, p.Dir)
		} else {
			fmt.Fprintf(w, "  %-8s FAIL  %s\n", p.Platform, p.Error)
		}
	}
}

func failed(run history.Run) int {
	n := 0
	for _, p := range run.Platforms {
		if !p.OK {
			n++
		}
	}
	return n
}
