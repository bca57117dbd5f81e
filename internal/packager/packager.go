// Package packager drives a full run: it loads the manifest, downloads
// the icons once, then builds each requested platform's project tree in
// turn. A platform failing never stops the others.
package packager

import (
	"context"
	"errors"
	"fmt"
	"image/color"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/sync/errgroup"

	"github.com/Ismailco/PWA2Native/internal/config"
	"github.com/Ismailco/PWA2Native/internal/history"
	"github.com/Ismailco/PWA2Native/internal/iconutil"
	"github.com/Ismailco/PWA2Native/internal/icons"
	"github.com/Ismailco/PWA2Native/internal/manifest"
	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/tmpl"
)

// IconsDir is the directory under the output root that holds the
// downloaded manifest icons.
const IconsDir = "icons"

// Options configures one run.
type Options struct {
	URL           string // site root, trailing slash stripped
	ManifestURL   string // skips discovery when set
	AppName       string // overrides the manifest name
	Platforms     []string
	Output        string
	Workers       int
	FetchTimeout  time.Duration
	PackageID     string
	Version       string
	GradleWrapper bool
	Packer        iconutil.Packer
	Client        *http.Client
	Log           *slog.Logger
}

// OptionsFromConfig fills Options from cfg. URL and AppName are left to
// the caller.
func OptionsFromConfig(cfg config.Config) Options {
	return Options{
		Platforms:     cfg.Platforms,
		Output:        cfg.Output,
		Workers:       cfg.Workers,
		FetchTimeout:  cfg.FetchTimeout(),
		PackageID:     cfg.PackageID,
		Version:       cfg.AppVersion,
		GradleWrapper: cfg.GradleWrapper,
	}
}

// Packager runs the pipeline for one site.
type Packager struct {
	opts Options
	log  *slog.Logger
}

// New returns a Packager with defaults applied to unset options.
func New(opts Options) *Packager {
	opts.URL = strings.TrimRight(strings.TrimSpace(opts.URL), "/")
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if opts.PackageID == "" {
		opts.PackageID = config.DefaultPackageID
	}
	if opts.Version == "" {
		opts.Version = config.DefaultAppVersion
	}
	if opts.Output == "" {
		opts.Output = config.DefaultOutput
	}
	if len(opts.Platforms) == 0 {
		opts.Platforms = config.SupportedPlatforms
	}
	log := opts.Log
	if log == nil {
		log = slog.Default()
	}
	return &Packager{opts: opts, log: log}
}

// build carries what every platform driver needs.
type build struct {
	m     manifest.Manifest
	icons icons.IconSet
	vars  tmpl.Vars
	dir   string
	res   *history.PlatformResult
}

// Run packages every requested platform. The returned Run is complete
// even when platforms failed; err is non-nil only when the output root
// cannot be created or ctx was cancelled.
func (p *Packager) Run(ctx context.Context) (run history.Run, err error) {
	start := time.Now()
	run = history.NewRun(p.opts.URL, "", p.opts.Output)
	defer func() { run.Duration = time.Since(start) }()

	if p.opts.URL == "" {
		return run, errors.New("packager: empty url")
	}
	known, unknown := config.SplitPlatforms(p.opts.Platforms)
	for _, u := range unknown {
		p.log.Warn("unknown platform, skipping", "platform", u)
	}
	if err := os.MkdirAll(p.opts.Output, paths.DirPerm); err != nil {
		return run, fmt.Errorf("packager: output: %w", err)
	}

	m, err := p.loadManifest(ctx)
	if err != nil {
		p.log.Error("manifest unavailable", "url", p.opts.URL, "err", err)
		run.AppName = manifest.DefaultAppName
		if p.opts.AppName != "" {
			run.AppName = p.opts.AppName
		}
		for _, name := range known {
			run.Platforms = append(run.Platforms, history.PlatformResult{
				Platform: name,
				Dir:      filepath.Join(p.opts.Output, name),
				Error:    err.Error(),
			})
		}
		return run, ctx.Err()
	}
	run.AppName = m.AppName(p.opts.AppName)

	set := icons.NewCatalog(m.Icons())
	if len(set) == 0 {
		p.log.Warn("manifest lists no icons", "url", p.opts.URL)
	}
	f := &icons.Fetcher{Client: p.opts.Client, Timeout: p.opts.FetchTimeout, Workers: p.opts.Workers, Log: p.log}
	report, err := f.FetchAll(ctx, set, p.opts.URL, filepath.Join(p.opts.Output, IconsDir))
	run.IconsFetched, run.IconsFailed = report.Fetched, report.Failed
	if err != nil {
		return run, err
	}

	base := p.baseVars(m, run.AppName)
	for _, name := range known {
		if err := ctx.Err(); err != nil {
			return run, err
		}
		res := history.PlatformResult{Platform: name, Dir: filepath.Join(p.opts.Output, name)}
		b := &build{m: m, icons: set, vars: base, dir: res.Dir, res: &res}
		log := p.log.With("platform", name)
		log.Info("packaging")
		if err := p.platform(ctx, name, b); err != nil {
			res.Error = err.Error()
			log.Error("platform failed", "err", err)
		} else {
			res.OK = true
			log.Info("done", "dir", res.Dir, "icons", res.IconsProduced, "icon_failures", res.IconsFailed)
		}
		run.Platforms = append(run.Platforms, res)
	}
	return run, nil
}

func (p *Packager) platform(ctx context.Context, name string, b *build) error {
	if err := os.MkdirAll(b.dir, paths.DirPerm); err != nil {
		return fmt.Errorf("packager: %s: %w", name, err)
	}
	switch name {
	case "android":
		return p.android(ctx, b)
	case "ios":
		return p.ios(ctx, b)
	case "macos":
		return p.macos(ctx, b)
	case "windows":
		return p.windows(ctx, b)
	}
	return fmt.Errorf("packager: unknown platform %q", name)
}

func (p *Packager) loadManifest(ctx context.Context) (manifest.Manifest, error) {
	if p.opts.ManifestURL != "" {
		return manifest.Fetch(ctx, p.opts.Client, p.opts.ManifestURL)
	}
	m, where, err := manifest.Discover(ctx, p.opts.Client, p.opts.URL)
	if err != nil {
		return manifest.Manifest{}, err
	}
	p.log.Debug("manifest found", "url", where)
	return m, nil
}

func (p *Packager) baseVars(m manifest.Manifest, appName string) tmpl.Vars {
	bg := hexColor(m.Background())
	theme := bg
	if c, err := manifest.ParseColor(m.ThemeColor()); err == nil {
		theme = hexColor(c)
	}
	project := tmpl.ProjectName(appName)
	return tmpl.Vars{
		AppName:         appName,
		ProjectName:     project,
		ExecutableName:  project,
		URL:             p.opts.URL,
		PackageID:       p.opts.PackageID,
		BundleID:        tmpl.BundleID(p.opts.PackageID, appName),
		Version:         p.opts.Version,
		BackgroundColor: bg,
		ThemeColor:      theme,
	}
}

func hexColor(c color.NRGBA) string {
	cc, _ := colorful.MakeColor(c)
	return cc.Hex()
}

// pick returns the downloaded icon closest to size, logging the choice.
func (p *Packager) pick(b *build, size int) (string, bool) {
	d, err := icons.SelectDescriptor(b.icons, size)
	if err != nil {
		p.log.Warn("no icon for size, skipping", "platform", b.res.Platform, "size", size)
		return "", false
	}
	p.log.Debug("icon selected", "platform", b.res.Platform, "size", size, "src", d.Source, "nominal", d.NominalSize)
	return d.LocalPath, true
}

// each calls fn for 0..n-1 on up to Workers goroutines and counts the
// outcomes into b.res. Every index writes distinct files.
func (p *Packager) each(ctx context.Context, b *build, n int, fn func(i int) bool) int {
	var g errgroup.Group
	g.SetLimit(p.opts.Workers)
	var mu sync.Mutex
	produced := 0
	for i := 0; i < n; i++ {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			ok := fn(i)
			mu.Lock()
			if ok {
				produced++
				b.res.IconsProduced++
			} else {
				b.res.IconsFailed++
			}
			mu.Unlock()
			return nil
		})
	}
	g.Wait()
	return produced
}

// file is one rendered template and where it lands under the platform dir.
type file struct {
	tmpl string
	path string
	mode os.FileMode
}

func (p *Packager) render(b *build, v tmpl.Vars, files []file) error {
	for _, f := range files {
		data, err := tmpl.Render(f.tmpl, v)
		if err != nil {
			return err
		}
		if err := p.write(b, f.path, data, f.mode); err != nil {
			return err
		}
	}
	return nil
}

func (p *Packager) write(b *build, rel string, data []byte, mode os.FileMode) error {
	if mode == 0 {
		mode = paths.FilePerm
	}
	if err := paths.AtomicWriteMode(filepath.Join(b.dir, rel), data, mode); err != nil {
		return fmt.Errorf("packager: write %s: %w", rel, err)
	}
	return nil
}
