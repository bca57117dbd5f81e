package paths

import (
	"os"
	"path/filepath"
)

const (
	AppDirName      = "pwa2native"
	ConfigFileName  = "pwa2native.json"
	HistoryFileName = "history.db"
	DirPerm         = 0755
	FilePerm        = 0644
	ExecPerm        = 0755
)

// ConfigCandidates lists the config file names tried in each search
// directory, in order.
var ConfigCandidates = []string{ConfigFileName, "pwa2native.yaml", "pwa2native.yml"}

// AtomicWrite writes data to path via a temporary file + rename to avoid
// partial writes. The parent directory is created if needed.
func AtomicWrite(path string, data []byte) error {
	return AtomicWriteMode(path, data, FilePerm)
}

// AtomicWriteMode is AtomicWrite with an explicit file mode.
func AtomicWriteMode(path string, data []byte, mode os.FileMode) error {
	if err := os.MkdirAll(filepath.Dir(path), DirPerm); err != nil {
		return err
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, mode); err != nil {
		return err
	}
	if err := os.Chmod(tmp, mode); err != nil {
		os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return err
	}
	return nil
}

// DataDir returns the platform-specific data directory for pwa2native:
//   - Windows: %APPDATA%\pwa2native
//   - Unix:    ~/.config/pwa2native
//
// Falls back to os.TempDir()/pwa2native if neither is available.
func DataDir() string {
	if appdata := os.Getenv("APPDATA"); appdata != "" {
		return filepath.Join(appdata, AppDirName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), AppDirName)
	}
	return filepath.Join(home, ".config", AppDirName)
}

// HistoryPath returns the location of the run history database.
func HistoryPath() string {
	return filepath.Join(DataDir(), HistoryFileName)
}
