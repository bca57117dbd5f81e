// pwa2native turns a Progressive Web App into native project skeletons
// for Android, iOS, macOS and Windows.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	version   = "dev"
	buildDate = "unknown"
)

// options holds the root command's flags.
type options struct {
	name      string
	platforms string
	output    string
	config    string
	workers   int
	manifest  string
	verbose   bool
}

func newRootCmd() *cobra.Command {
	var o options
	root := &cobra.Command{
		Use:   "pwa2native <url>",
		Short: "Package a Progressive Web App as native project skeletons",
		Long: `pwa2native fetches a site's web app manifest, downloads its icons and
writes Android, iOS, macOS and Windows projects that wrap the site in a
WebView. Build the results with Gradle, Xcode, swiftc or dotnet.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPackage(cmd, args[0], o)
		},
	}

	f := root.Flags()
	f.StringVarP(&o.name, "name", "n", "", "app name (default: manifest name)")
	f.StringVarP(&o.platforms, "platforms", "p", "all", `"all" or a comma list of android,ios,macos,windows`)
	f.StringVarP(&o.output, "output", "o", "", "output directory (default ./dist)")
	f.IntVarP(&o.workers, "workers", "w", 0, "parallel downloads and transforms")
	f.StringVar(&o.manifest, "manifest", "", "manifest URL, skips discovery")
	root.PersistentFlags().StringVarP(&o.config, "config", "c", "", "config file path")
	root.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(
		newDoctorCmd(&o),
		newHistoryCmd(),
		newVersionCmd(),
		newAboutCmd(),
	)
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
