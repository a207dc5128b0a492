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

const envName = "SLUMBER_ENV"

// Paths holds all application path configurations.
type Paths struct {
	configDir      string
	configFileName string
	dbFileName     string
	statusFileName string
	logFileName    string

	// Computed absolute paths
	configFilePath string
	dataDir        string
	dbFilePath     string
	statusFilePath string
	logFilePath    string
	soundsDir      string
	crashDir       string
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
			configDir:      "slumber",
			configFileName: "config.yml",
			dbFileName:     "slumber.db",
			statusFileName: "status.json",
			logFileName:    "slumber.log",
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

func Dir() string {
	return Must().configDir
}

func ConfigFilePath() string {
	return Must().configFilePath
}

func DataDir() string {
	return Must().dataDir
}

func DBFilePath() string {
	return Must().dbFilePath
}

func StatusFilePath() string {
	return Must().statusFilePath
}

func LogFilePath() string {
	return Must().logFilePath
}

// SoundsDir is where downloaded ambient sounds are cached.
func SoundsDir() string {
	return Must().soundsDir
}

// CrashDir is where unexpected startup failures are recorded.
func CrashDir() string {
	return Must().crashDir
}

func (p *Paths) applyEnvironmentOverrides() {
	env := strings.TrimSpace(os.Getenv(envName))
	if env != "" {
		p.configFileName = fmt.Sprintf("config_%s.yml", env)
		p.dbFileName = fmt.Sprintf("slumber_%s.db", env)
		p.statusFileName = fmt.Sprintf("status_%s.json", env)
		p.logFileName = fmt.Sprintf("slumber_%s.log", env)
	}
}

func (p *Paths) computePaths() error {
	var err error

	relPath := filepath.Join(p.configDir, p.configFileName)

	p.configFilePath, err = xdg.ConfigFile(relPath)
	if err != nil {
		return err
	}

	p.dataDir, err = xdg.DataFile(p.configDir)
	if err != nil {
		return err
	}

	if err = os.MkdirAll(p.dataDir, 0o755); err != nil {
		return err
	}

	p.dbFilePath = filepath.Join(p.dataDir, p.dbFileName)
	p.statusFilePath = filepath.Join(p.dataDir, p.statusFileName)
	p.logFilePath = filepath.Join(p.dataDir, "log", p.logFileName)
	p.soundsDir = filepath.Join(p.dataDir, "sounds")
	p.crashDir = filepath.Join(p.dataDir, "crash")

	return nil
}

// StripExtension returns the input file name without its extension.
func StripExtension(fileName string) string {
	return fileName[:len(fileName)-len(filepath.Ext(fileName))]
}
