package config

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
)

const (
	appDirName = "biblereader"

	// DatabaseFileName is the reader database file inside the data directory.
	DatabaseFileName = "biblereader.db"

	DefaultMaintenanceSchedule = "0 3 * * *"
)

// DataDir is where the reader keeps its databases when DATABASE_PATH is unset:
// $XDG_DATA_HOME/biblereader, falling back to ~/.local/share/biblereader.
func DataDir() string {
	xdg.Reload()

	dataHome := xdg.DataHome
	if dataHome == "" {
		home := xdg.Home
		if home == "" {
			var err error
			home, err = os.UserHomeDir()
			if err != nil {
				return filepath.Join(os.TempDir(), appDirName)
			}
		}
		dataHome = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(dataHome, appDirName)
}

func DefaultDatabasePath() string {
	return filepath.Join(DataDir(), DatabaseFileName)
}
