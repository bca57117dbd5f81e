package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

const logo = `
  ___ _      __ _     ___   _  _      _   _
 | _ \ \    / //_\   |_  ) | \| |__ _| |_(_)_ _____
 |  _/\ \/\/ // _ \   / /  | .  / _' |  _| \ V / -_)
 |_|   \_/\_//_/ \_\ /___| |_|\_\__,_|\__|_|\_/\___|
`

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintln(cmd.OutOrStdout(), versionString())
		},
	}
}

func newAboutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "about",
		Short: "Describe what pwa2native does",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			w := cmd.OutOrStdout()
			fmt.Fprint(w, logo)
			fmt.Fprintf(w, "\n%s\n\n", versionString())
			fmt.Fprintln(w, "Turns a Progressive Web App into native project skeletons:")
			fmt.Fprintln(w, "  android  Gradle project with a WebView activity and adaptive icons")
			fmt.Fprintln(w, "  ios      Xcode project with a WKWebView and an AppIcon asset catalog")
			fmt.Fprintln(w, "  macos    .app bundle, main.swift and build.sh, icon.icns")
			fmt.Fprintln(w, "  windows  WinForms + WebView2 project with a multi-size app.ico")
			fmt.Fprintln(w)
			fmt.Fprintln(w, "Run 'pwa2native doctor' to check the build tools on this machine.")
		},
	}
}

func versionString() string {
	return fmt.Sprintf("pwa2native %s (%s) %s/%s", version, buildDate, runtime.GOOS, runtime.GOARCH)
}
