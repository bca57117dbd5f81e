package packager

import (
	"context"
	"path/filepath"

	"github.com/Ismailco/PWA2Native/internal/transform"
)

// WindowsIconSize is the target the .ico source is selected for; smaller
// frames are scaled down from it.
const WindowsIconSize = 256

// windows writes a WinForms + WebView2 project and its solution file.
func (p *Packager) windows(ctx context.Context, b *build) error {
	v := b.vars
	produced := p.each(ctx, b, 1, func(int) bool {
		src, ok := p.pick(b, WindowsIconSize)
		if !ok {
			return false
		}
		return transform.Windows(src, filepath.Join(b.dir, v.ProjectName, "app.ico"))
	})
	if err := ctx.Err(); err != nil {
		return err
	}

	v.HasIcon = produced > 0
	return p.render(b, v, []file{
		{tmpl: "windows/project.csproj", path: filepath.Join(v.ProjectName, v.ProjectName+".csproj")},
		{tmpl: "windows/Program.cs", path: filepath.Join(v.ProjectName, "Program.cs")},
		{tmpl: "windows/MainWindow.cs", path: filepath.Join(v.ProjectName, "MainWindow.cs")},
		{tmpl: "windows/solution.sln", path: v.ProjectName + ".sln"},
	})
}
