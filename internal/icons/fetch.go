package icons

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/sync/errgroup"

	"github.com/Ismailco/PWA2Native/internal/httputil"
	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/raster"
)

// MaxIconSize caps a single download unless Fetcher.MaxBytes is set.
const MaxIconSize = 32 << 20

// ErrTooLarge is returned for a body longer than the download cap.
var ErrTooLarge = errors.New("icons: icon exceeds size limit")

// Fetcher downloads manifest icons. The zero value uses the shared
// client, the default timeout and one worker.
type Fetcher struct {
	Client   *http.Client
	Timeout  time.Duration
	Workers  int
	MaxBytes int64
	Log      *slog.Logger
}

// Report counts the outcome of FetchAll.
type Report struct {
	Fetched int
	Failed  int
	Bytes   int64
}

// FetchAll downloads every descriptor in set into destDir and sets
// LocalPath on those that arrive intact. Failures are logged and
// counted; they never abort the remaining downloads.
func (f *Fetcher) FetchAll(ctx context.Context, set IconSet, baseURL, destDir string) (Report, error) {
	if err := os.MkdirAll(destDir, paths.DirPerm); err != nil {
		return Report{}, fmt.Errorf("icons: create %s: %w", destDir, err)
	}

	var (
		mu  sync.Mutex
		rep Report
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(f.Workers, 1))
	for _, d := range set {
		g.Go(func() error {
			p, n, err := f.fetchOne(gctx, d, baseURL, destDir)
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				rep.Failed++
				f.logger().Warn("icon download failed", "src", d.Source, "sizes", d.Sizes, "err", err)
				return nil
			}
			d.LocalPath = p
			rep.Fetched++
			rep.Bytes += n
			f.logger().Debug("icon downloaded", "src", d.Source, "file", filepath.Base(p), "size", humanize.Bytes(uint64(n)))
			return nil
		})
	}
	g.Wait()
	if err := ctx.Err(); err != nil {
		return rep, fmt.Errorf("icons: fetch: %w", err)
	}
	return rep, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, d *IconDescriptor, baseURL, destDir string) (string, int64, error) {
	u, err := ResolveURL(baseURL, d.Source)
	if err != nil {
		return "", 0, err
	}
	timeout := f.Timeout
	if timeout <= 0 {
		timeout = httputil.DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	resp, err := httputil.Get(ctx, f.Client, u)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()
	if err := httputil.CheckStatus(resp, "icon "+u); err != nil {
		return "", 0, err
	}

	dest := filepath.Join(destDir, FileName(d))
	if rel, err := filepath.Rel(destDir, dest); err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", 0, fmt.Errorf("icons: %q escapes %s", FileName(d), destDir)
	}
	limit := f.MaxBytes
	if limit <= 0 {
		limit = MaxIconSize
	}
	tmp, err := os.CreateTemp(destDir, filepath.Base(dest)+".*.part")
	if err != nil {
		return "", 0, err
	}
	part := tmp.Name()
	n, err := io.Copy(tmp, io.LimitReader(resp.Body, limit+1))
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		os.Remove(part)
		return "", 0, fmt.Errorf("read body: %w", err)
	}
	if n > limit {
		os.Remove(part)
		return "", 0, fmt.Errorf("%w (%s)", ErrTooLarge, humanize.Bytes(uint64(limit)))
	}
	// A full decode, not just the header, so truncated bodies fail here.
	if _, err := raster.Load(part); err != nil {
		os.Remove(part)
		return "", 0, err
	}
	if err := os.Rename(part, dest); err != nil {
		os.Remove(part)
		return "", 0, err
	}
	return dest, n, nil
}

// ResolveURL turns a manifest src into an absolute URL. Sources with a
// scheme are used unchanged, protocol-relative ones take the base
// scheme, and everything else is joined onto the base URL.
func ResolveURL(baseURL, src string) (string, error) {
	if strings.HasPrefix(src, "//") {
		b, err := url.Parse(baseURL)
		if err != nil || b.Scheme == "" {
			return "", fmt.Errorf("icons: base url %q has no scheme", baseURL)
		}
		return b.Scheme + ":" + src, nil
	}
	if u, err := url.Parse(src); err == nil && u.Scheme != "" {
		return src, nil
	}
	return strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(src, "/"), nil
}

// FileName is the local name for a descriptor: icon_<width><ext>, with
// the extension taken from the source path and defaulting to .png. Only
// short alphanumeric extensions are kept.
func FileName(d *IconDescriptor) string {
	src := d.Source
	if u, err := url.Parse(src); err == nil {
		src = u.Path
	}
	ext := strings.ToLower(path.Ext(src))
	if !plainExt(ext) {
		ext = ".png"
	}
	return "icon_" + sizeToken(d.Sizes) + ext
}

func plainExt(ext string) bool {
	if len(ext) < 2 || len(ext) > 6 || ext[0] != '.' {
		return false
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return false
		}
	}
	return true
}

func (f *Fetcher) logger() *slog.Logger {
	if f.Log != nil {
		return f.Log
	}
	return slog.Default()
}
