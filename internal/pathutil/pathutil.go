// Package pathutil manages application file paths and locations
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/adrg/xdg"
)

const envName = "TRACKER_ENV"

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	sqliteFileName string
	boltFileName   string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	sqliteFilePath string
	boltFilePath   string
	logFilePath    string
}

var (
	paths *Paths
	once  sync.Once
)

// Initialize must be called once at program startup.
func Initialize() error {
	var initErr error

	once.Do(func() {
		paths = &Paths{
			configDir:      "tracker",
			configFileName: "config.yml",
			sqliteFileName: "productivity.db",
			boltFileName:   "productivity.bolt",
			logFileName:    "tracker.log",
		}

		paths.applyEnvironmentOverrides()
		initErr = paths.computePaths()
	})

	return initErr
}

// Must panics if paths haven't been initialized.
func Must() *Paths {
	if paths == nil {
		panic("pathutil.Initialize() must be called before accessing paths")
	}

	return paths
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func SQLiteFilePath() string {
	return Must().sqliteFilePath
}

func BoltFilePath() string {
	return Must().boltFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.sqliteFileName = fmt.Sprintf("productivity_%s.db", env)
		p.boltFileName = fmt.Sprintf("productivity_%s.bolt", env)
		p.logFileName = fmt.Sprintf("tracker_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	p.configFilePath, err = xdg.ConfigFile(
		filepath.Join(p.configDir, p.configFileName),
	)
	if err != nil {
		return err
	}

	p.sqliteFilePath, err = xdg.DataFile(
		filepath.Join(p.configDir, p.sqliteFileName),
	)
	if err != nil {
		return err
	}

	p.boltFilePath, err = xdg.DataFile(
		filepath.Join(p.configDir, p.boltFileName),
	)
	if err != nil {
		return err
	}

	p.logFilePath, err = xdg.DataFile(
		filepath.Join(p.configDir, "log", p.logFileName),
	)

	return err
}
