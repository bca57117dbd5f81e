package packager

import (
	"context"
	"path/filepath"
	"sync"

	"github.com/Ismailco/PWA2Native/internal/tmpl"
	"github.com/Ismailco/PWA2Native/internal/transform"
)

// ios writes an Xcode project with an asset catalog. Slots that share a
// pixel size share one rendered file.
func (p *Packager) ios(ctx context.Context, b *build) error {
	v := b.vars
	catalog := filepath.Join(v.ProjectName, "Assets.xcassets")
	iconDir := filepath.Join(b.dir, catalog, "AppIcon.appiconset")

	sizes := transform.IOSPixelSizes()
	var mu sync.Mutex
	done := make(map[string]bool)
	produced := p.each(ctx, b, len(sizes), func(i int) bool {
		px := sizes[i]
		src, ok := p.pick(b, px)
		if !ok {
			return false
		}
		name := transform.IOSEntry{Point: float64(px), Scale: 1}.FileName()
		if !transform.IOS(src, filepath.Join(iconDir, name), px) {
			return false
		}
		mu.Lock()
		done[name] = true
		mu.Unlock()
		return true
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	v.HasIcon = produced > 0
	if err := transform.WriteCatalogContents(filepath.Join(b.dir, catalog)); err != nil {
		return err
	}
	if v.HasIcon {
		if err := transform.WriteIOSContents(iconDir, done); err != nil {
			return err
		}
	}

	files := []file{
		{tmpl: "ios/AppDelegate.swift", path: filepath.Join(v.ProjectName, "AppDelegate.swift")},
		{tmpl: "ios/ViewController.swift", path: filepath.Join(v.ProjectName, "ViewController.swift")},
		{tmpl: "ios/project.pbxproj", path: filepath.Join(v.ProjectName+".xcodeproj", "project.pbxproj")},
	}
	if err := p.render(b, v, files); err != nil {
		return err
	}
	plist, err := tmpl.IOSInfoPlist(v)
	if err != nil {
		return err
	}
	return p.write(b, filepath.Join(v.ProjectName, "Info.plist"), plist, 0)
}
