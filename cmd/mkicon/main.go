// mkicon runs one platform icon transform on a local image, for checking
// output without fetching a site.
// Usage: go run ./cmd/mkicon <android|ios|macos|windows> <source> <output> [size]
package main

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strconv"

	"github.com/Ismailco/PWA2Native/internal/iconutil"
	"github.com/Ismailco/PWA2Native/internal/logging"
	"github.com/Ismailco/PWA2Native/internal/transform"
)

func main() {
	logging.Setup("debug")
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Usage: mkicon <android|ios|macos|windows> <source> <output> [size]")
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("expected platform, source and output")
	}
	platform, src, out := args[0], args[1], args[2]
	size := 0
	if len(args) > 3 {
		n, err := strconv.Atoi(args[3])
		if err != nil || n <= 0 {
			return fmt.Errorf("size must be a positive integer")
		}
		size = n
	}

	switch platform {
	case "android":
		// out is a res directory; every density is written below it.
		for _, d := range transform.AndroidDensities {
			if size != 0 && size != d.Size {
				continue
			}
			if !transform.Android(src, filepath.Join(out, d.Dir()), d.Size, color.White) {
				return fmt.Errorf("android %s failed", d.Name)
			}
		}
	case "ios":
		if size == 0 {
			size = 1024
		}
		if !transform.IOS(src, out, size) {
			return fmt.Errorf("ios %d failed", size)
		}
	case "macos":
		iconset := out + ".iconset"
		if transform.MacOSIconset(src, iconset) == 0 {
			os.RemoveAll(iconset)
			return fmt.Errorf("no macos images rendered")
		}
		if err := transform.PackIconset(iconutil.Auto, iconset, out); err != nil {
			return err
		}
	case "windows":
		if !transform.Windows(src, out) {
			return fmt.Errorf("windows icon failed")
		}
	default:
		return fmt.Errorf("unknown platform %q", platform)
	}
	fmt.Println("wrote", out)
	return nil
}
