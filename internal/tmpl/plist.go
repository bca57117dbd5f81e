package tmpl

import (
	"fmt"

	"howett.net/plist"
)

type iosInfo struct {
	DevelopmentRegion    string   `plist:"CFBundleDevelopmentRegion"`
	Executable           string   `plist:"CFBundleExecutable"`
	Identifier           string   `plist:"CFBundleIdentifier"`
	InfoVersion          string   `plist:"CFBundleInfoDictionaryVersion"`
	Name                 string   `plist:"CFBundleName"`
	DisplayName          string   `plist:"CFBundleDisplayName"`
	PackageType          string   `plist:"CFBundlePackageType"`
	ShortVersion         string   `plist:"CFBundleShortVersionString"`
	Version              string   `plist:"CFBundleVersion"`
	RequiresIPhoneOS     bool     `plist:"LSRequiresIPhoneOS"`
	LaunchStoryboard     string   `plist:"UILaunchStoryboardName"`
	DeviceCapabilities   []string `plist:"UIRequiredDeviceCapabilities"`
	Orientations         []string `plist:"UISupportedInterfaceOrientations"`
	AppTransportSecurity ats      `plist:"NSAppTransportSecurity"`
}

type ats struct {
	AllowsArbitraryLoadsInWebContent bool `plist:"NSAllowsArbitraryLoadsInWebContent"`
}

type macInfo struct {
	Executable       string `plist:"CFBundleExecutable"`
	IconFile         string `plist:"CFBundleIconFile,omitempty"`
	Identifier       string `plist:"CFBundleIdentifier"`
	Name             string `plist:"CFBundleName"`
	DisplayName      string `plist:"CFBundleDisplayName"`
	PackageType      string `plist:"CFBundlePackageType"`
	ShortVersion     string `plist:"CFBundleShortVersionString"`
	Version          string `plist:"CFBundleVersion"`
	MinSystemVersion string `plist:"LSMinimumSystemVersion"`
	HighResCapable   bool   `plist:"NSHighResolutionCapable"`
	PrincipalClass   string `plist:"NSPrincipalClass"`
	Category         string `plist:"LSApplicationCategoryType"`
}

// IOSInfoPlist renders the iOS app Info.plist.
func IOSInfoPlist(v Vars) ([]byte, error) {
	if err := v.check([]string{"AppName", "BundleID", "Version"}); err != nil {
		return nil, fmt.Errorf("tmpl: ios Info.plist: %w", err)
	}
	info := iosInfo{
		DevelopmentRegion:  "en",
		Executable:         "$(EXECUTABLE_NAME)",
		Identifier:         v.BundleID,
		InfoVersion:        "6.0",
		Name:               v.AppName,
		DisplayName:        v.AppName,
		PackageType:        "APPL",
		ShortVersion:       v.Version,
		Version:            "1",
		RequiresIPhoneOS:   true,
		LaunchStoryboard:   "LaunchScreen",
		DeviceCapabilities: []string{"arm64"},
		Orientations: []string{
			"UIInterfaceOrientationPortrait",
			"UIInterfaceOrientationLandscapeLeft",
			"UIInterfaceOrientationLandscapeRight",
		},
		AppTransportSecurity: ats{AllowsArbitraryLoadsInWebContent: true},
	}
	return marshal(info)
}

// MacInfoPlist renders Contents/Info.plist for the .app bundle. The icon
// file is only referenced when HasIcon is set.
func MacInfoPlist(v Vars) ([]byte, error) {
	if err := v.check([]string{"AppName", "ExecutableName", "BundleID", "Version"}); err != nil {
		return nil, fmt.Errorf("tmpl: macos Info.plist: %w", err)
	}
	info := macInfo{
		Executable:       v.ExecutableName,
		Identifier:       v.BundleID,
		Name:             v.AppName,
		DisplayName:      v.AppName,
		PackageType:      "APPL",
		ShortVersion:     v.Version,
		Version:          "1",
		MinSystemVersion: "10.15",
		HighResCapable:   true,
		PrincipalClass:   "NSApplication",
		Category:         "public.app-category.productivity",
	}
	if v.HasIcon {
		info.IconFile = "icon.icns"
	}
	return marshal(info)
}

func marshal(v any) ([]byte, error) {
	data, err := plist.MarshalIndent(v, plist.XMLFormat, "\t")
	if err != nil {
		return nil, fmt.Errorf("tmpl: plist: %w", err)
	}
	return append(data, '\n'), nil
}
