package packager

import (
	"context"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Ismailco/PWA2Native/internal/icons"
	"github.com/Ismailco/PWA2Native/internal/page"
	"github.com/Ismailco/PWA2Native/internal/paths"
	"github.com/Ismailco/PWA2Native/internal/tmpl"
	"github.com/Ismailco/PWA2Native/internal/transform"
)

// MaxNavLinks caps the Navigation menu.
const MaxNavLinks = 20

// macos writes a .app bundle skeleton, main.swift and a build.sh that
// compiles it with swiftc.
func (p *Packager) macos(ctx context.Context, b *build) error {
	v := b.vars
	contents := filepath.Join(v.ExecutableName+".app", "Contents")
	iconset := filepath.Join(b.dir, "icon.iconset")

	rendered := p.each(ctx, b, len(transform.MacOSEntries), func(i int) bool {
		e := transform.MacOSEntries[i]
		src, ok := p.pick(b, e.Pixels())
		if !ok {
			return false
		}
		return transform.MacOSImage(src, filepath.Join(iconset, e.FileName()), e.Pixels())
	})
	if err := ctx.Err(); err != nil {
		os.RemoveAll(iconset)
		return err
	}

	if rendered > 0 {
		icns := filepath.Join(b.dir, contents, "Resources", "icon.icns")
		if err := transform.PackIconset(p.opts.Packer, iconset, icns); err != nil {
			p.log.Warn("icns packing failed", "platform", "macos", "err", err)
		} else {
			v.HasIcon = true
		}
	} else {
		os.RemoveAll(iconset)
	}

	if err := os.MkdirAll(filepath.Join(b.dir, contents, "MacOS"), paths.DirPerm); err != nil {
		return err
	}
	v.Shortcuts = p.shortcuts(b)
	v.NavLinks = p.navLinks(ctx)

	info, err := tmpl.MacInfoPlist(v)
	if err != nil {
		return err
	}
	if err := p.write(b, filepath.Join(contents, "Info.plist"), info, 0); err != nil {
		return err
	}
	return p.render(b, v, []file{
		{tmpl: "macos/main.swift", path: "main.swift"},
		{tmpl: "macos/build.sh", path: "build.sh", mode: paths.ExecPerm},
	})
}

// shortcuts maps manifest shortcuts to menu items; the first nine get
// Cmd+1..9.
func (p *Packager) shortcuts(b *build) []tmpl.MenuItem {
	var out []tmpl.MenuItem
	for i, s := range b.m.Shortcuts() {
		u, err := icons.ResolveURL(p.opts.URL, s.URL)
		if err != nil {
			p.log.Warn("bad shortcut url", "name", s.Name, "url", s.URL, "err", err)
			continue
		}
		item := tmpl.MenuItem{Title: s.Name, URL: u}
		if i < 9 {
			item.Key = strconv.Itoa(i + 1)
		}
		out = append(out, item)
	}
	return out
}

// navLinks scrapes the start page's navigation. Failure only drops the
// menu entries.
func (p *Packager) navLinks(ctx context.Context) []tmpl.MenuItem {
	doc, err := page.Load(ctx, p.opts.Client, p.opts.URL+"/")
	if err != nil {
		p.log.Warn("navigation links unavailable", "url", p.opts.URL, "err", err)
		return nil
	}
	var out []tmpl.MenuItem
	for _, l := range page.NavLinks(doc, p.opts.URL) {
		if len(out) == MaxNavLinks {
			break
		}
		out = append(out, tmpl.MenuItem{Title: l.Text, URL: l.URL})
	}
	return out
}
