package packager

import (
	"context"
	"errors"
	"path/filepath"
	"strings"

	"github.com/Ismailco/PWA2Native/internal/toolchain"
	"github.com/Ismailco/PWA2Native/internal/transform"
)

const androidRes = "app/src/main/res"

// android writes a Gradle project whose single activity hosts a WebView.
// Each density picks its own source icon.
func (p *Packager) android(ctx context.Context, b *build) error {
	bg := b.m.Background()
	produced := p.each(ctx, b, len(transform.AndroidDensities), func(i int) bool {
		d := transform.AndroidDensities[i]
		src, ok := p.pick(b, d.Size)
		if !ok {
			return false
		}
		return transform.Android(src, filepath.Join(b.dir, androidRes, d.Dir()), d.Size, bg)
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	v := b.vars
	v.HasIcon = produced > 0
	javaDir := filepath.Join("app/src/main/java", strings.ReplaceAll(v.PackageID, ".", "/"))
	files := []file{
		{tmpl: "android/build.gradle", path: "build.gradle"},
		{tmpl: "android/settings.gradle", path: "settings.gradle"},
		{tmpl: "android/gradle.properties", path: "gradle.properties"},
		{tmpl: "android/app.build.gradle", path: "app/build.gradle"},
		{tmpl: "android/AndroidManifest.xml", path: "app/src/main/AndroidManifest.xml"},
		{tmpl: "android/MainActivity.java", path: filepath.Join(javaDir, "MainActivity.java")},
		{tmpl: "android/colors.xml", path: filepath.Join(androidRes, "values/colors.xml")},
	}
	if v.HasIcon {
		files = append(files, file{tmpl: "android/ic_launcher.xml", path: filepath.Join(androidRes, "mipmap-anydpi-v26/ic_launcher.xml")})
	}
	if err := p.render(b, v, files); err != nil {
		return err
	}

	if p.opts.GradleWrapper {
		err := toolchain.GradleWrapper(ctx, b.dir)
		switch {
		case errors.Is(err, toolchain.ErrNotFound):
			p.log.Warn("gradle not installed, skipping wrapper", "platform", "android")
		case err != nil:
			p.log.Warn("gradle wrapper failed", "platform", "android", "err", err)
		}
	}
	return nil
}
