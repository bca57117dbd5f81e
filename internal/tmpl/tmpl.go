// Package tmpl renders the native project files from embedded templates.
// Every template reads from a Vars value; a template that references a
// field Vars does not have, or a required field left empty, is an error.
package tmpl

import (
	"bytes"
	"crypto/sha1"
	"embed"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"reflect"
	"strings"
	"text/template"
	"unicode"

	"github.com/google/uuid"
)

//go:embed templates
var files embed.FS

// MenuItem is one entry of a generated menu.
type MenuItem struct {
	Title string
	URL   string
	Key   string
}

// Vars is the full set of values templates may reference.
type Vars struct {
	AppName         string
	ProjectName     string
	ExecutableName  string
	URL             string
	PackageID       string
	BundleID        string
	Version         string
	BackgroundColor string
	ThemeColor      string
	HasIcon         bool
	Shortcuts       []MenuItem
	NavLinks        []MenuItem
}

// required lists the Vars fields each template needs to be non-empty.
var required = map[string][]string{
	"android/build.gradle":        nil,
	"android/settings.gradle":     {"ProjectName"},
	"android/gradle.properties":   nil,
	"android/app.build.gradle":    {"AppName", "URL", "PackageID", "BundleID", "Version"},
	"android/AndroidManifest.xml": {"AppName"},
	"android/MainActivity.java":   {"URL", "PackageID"},
	"android/colors.xml":          {"BackgroundColor", "ThemeColor"},
	"android/ic_launcher.xml":     nil,
	"ios/AppDelegate.swift":       {"AppName"},
	"ios/ViewController.swift":    {"URL"},
	"ios/project.pbxproj":         {"ProjectName", "BundleID", "Version"},
	"macos/main.swift":            {"AppName", "URL"},
	"macos/build.sh":              {"AppName", "ExecutableName"},
	"windows/project.csproj":      {"ProjectName", "AppName", "Version"},
	"windows/Program.cs":          {"ProjectName"},
	"windows/MainWindow.cs":       {"ProjectName", "AppName", "URL"},
	"windows/solution.sln":        {"ProjectName"},
}

// Names returns every template name in a stable order.
func Names() []string {
	var out []string
	for _, p := range []string{"android", "ios", "macos", "windows"} {
		entries, _ := files.ReadDir("templates/" + p)
		for _, e := range entries {
			out = append(out, p+"/"+strings.TrimSuffix(e.Name(), ".tmpl"))
		}
	}
	return out
}

// Render executes the named template (e.g. "android/MainActivity.java").
func Render(name string, v Vars) ([]byte, error) {
	need, ok := required[name]
	if !ok {
		return nil, fmt.Errorf("tmpl: unknown template %q", name)
	}
	if err := v.check(need); err != nil {
		return nil, fmt.Errorf("tmpl: %s: %w", name, err)
	}

	src, err := files.ReadFile("templates/" + name + ".tmpl")
	if err != nil {
		return nil, fmt.Errorf("tmpl: %s: %w", name, err)
	}
	t, err := template.New(name).Option("missingkey=error").Funcs(funcs(v)).Parse(string(src))
	if err != nil {
		return nil, fmt.Errorf("tmpl: parse %s: %w", name, err)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, v); err != nil {
		return nil, fmt.Errorf("tmpl: render %s: %w", name, err)
	}
	return buf.Bytes(), nil
}

func (v Vars) check(fields []string) error {
	rv := reflect.ValueOf(v)
	var missing []string
	for _, f := range fields {
		if rv.FieldByName(f).IsZero() {
			missing = append(missing, f)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing %s", strings.Join(missing, ", "))
	}
	return nil
}

func funcs(v Vars) template.FuncMap {
	return template.FuncMap{
		"quote": func(s string) string { return `"` + escape(s) + `"` },
		"swift": escape,
		"xml": func(s string) string {
			var b strings.Builder
			xml.EscapeText(&b, []byte(s))
			return b.String()
		},
		"shell": func(s string) string { return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'" },
		"list":  func(items ...string) []string { return items },
		// Object ids are derived from the project name so output is stable.
		"pbxid": func(key string) string {
			sum := sha1.Sum([]byte(v.ProjectName + "/" + key))
			return strings.ToUpper(hex.EncodeToString(sum[:12]))
		},
		"guid": func(key string) string {
			id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("pwa2native:"+v.ProjectName+"/"+key))
			return "{" + strings.ToUpper(id.String()) + "}"
		},
	}
}

// escape makes s safe inside a double-quoted Java, Swift or C# literal.
func escape(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if unicode.IsControl(r) {
				continue
			}
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ProjectName strips everything but letters and digits from an app name,
// falling back to "App" when nothing is left or it starts with a digit.
func ProjectName(appName string) string {
	var b strings.Builder
	for _, r := range appName {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			b.WriteRune(r)
		}
	}
	s := b.String()
	if s == "" {
		return "App"
	}
	if unicode.IsDigit(rune(s[0])) {
		return "App" + s
	}
	return s
}

// BundleID appends a lower-cased ProjectName to prefix.
func BundleID(prefix, appName string) string {
	return prefix + "." + strings.ToLower(ProjectName(appName))
}
