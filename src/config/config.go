package config

import (
	"os"
	"os/user"
	"path/filepath"
	"runtime"

	"github.com/sirupsen/logrus"
	prefixed "github.com/x-cray/logrus-prefixed-formatter"
)

// Default filenames.
const (
	// DefaultKeyfile is the default name of the file containing a
	// participant's private key.
	DefaultKeyfile = "priv_key"

	// DefaultBadgerFile is the default name of the folder containing the
	// Badger database.
	DefaultBadgerFile = "badger_db"
)

// Default configuration values.
const (
	DefaultLogLevel    = "debug"
	DefaultServiceAddr = "127.0.0.1:8090"

	// DefaultOracleFee is the stake an oracle must put down to register.
	DefaultOracleFee = uint64(1)

	// DefaultAirlineFee is the stake an airline must pay to become
	// authorized.
	DefaultAirlineFee = uint64(10)

	// DefaultNotifyBuffer is the size of the in-memory notification buffer.
	DefaultNotifyBuffer = 1000
)

// Config contains all the configuration properties of a flightsurety engine.
type Config struct {
	// DataDir is the top-level directory containing configuration and the
	// database.
	DataDir string `mapstructure:"datadir"`

	// ServiceAddr is the address:port of the HTTP API service.
	ServiceAddr string `mapstructure:"service-listen"`

	// LogLevel determines the chattiness of the log output (debug, info,
	// warn, error, fatal, panic).
	LogLevel string `mapstructure:"log"`

	// Store activates the durable Badger store. Without it, all state is kept
	// in memory and lost on shutdown.
	Store bool `mapstructure:"store"`

	// DatabaseDir is the directory containing the database files when Store
	// is activated.
	DatabaseDir string `mapstructure:"db"`

	// FirstAirline is the address of the airline admitted and authorized
	// unconditionally at initialization.
	FirstAirline string `mapstructure:"first-airline"`

	// FirstAirlineMoniker is a user-friendly name for the first airline.
	FirstAirlineMoniker string `mapstructure:"first-airline-moniker"`

	// OracleFee is the minimum stake for oracle registration.
	OracleFee uint64 `mapstructure:"oracle-fee"`

	// AirlineFee is the stake an airline pays to become authorized.
	AirlineFee uint64 `mapstructure:"airline-fee"`

	// StrictResponses activates one-value-per-reporter response aggregation
	// instead of the literal per-bucket behavior.
	StrictResponses bool `mapstructure:"strict-responses"`

	// NotifyBuffer is the size of the in-memory notification buffer.
	NotifyBuffer int `mapstructure:"notify-buffer"`

	logger *logrus.Logger
}

// NewDefaultConfig returns the default configuration.
func NewDefaultConfig() *Config {
	config := &Config{
		DataDir:      DefaultDataDir(),
		ServiceAddr:  DefaultServiceAddr,
		LogLevel:     DefaultLogLevel,
		DatabaseDir:  DefaultDatabaseDir(),
		OracleFee:    DefaultOracleFee,
		AirlineFee:   DefaultAirlineFee,
		NotifyBuffer: DefaultNotifyBuffer,
	}
	return config
}

// NewTestConfig returns a config with in-memory storage and a logger suitable
// for tests.
func NewTestConfig(logger *logrus.Logger) *Config {
	config := NewDefaultConfig()
	config.logger = logger
	return config
}

// SetDataDir sets the top-level directory and resets the database directory
// underneath it.
func (c *Config) SetDataDir(dataDir string) {
	c.DataDir = dataDir
	c.DatabaseDir = filepath.Join(dataDir, DefaultBadgerFile)
}

// Keyfile returns the path to the keyfile within the data directory.
func (c *Config) Keyfile() string {
	return filepath.Join(c.DataDir, DefaultKeyfile)
}

// Logger returns a formatted logrus Entry, with prefix set to "flightsurety".
func (c *Config) Logger() *logrus.Entry {
	if c.logger == nil {
		c.logger = logrus.New()
		c.logger.Level = LogLevel(c.LogLevel)
		c.logger.Formatter = new(prefixed.TextFormatter)
	}
	return c.logger.WithField("prefix", "flightsurety")
}

// DefaultDatabaseDir returns the default path for the badger database files.
func DefaultDatabaseDir() string {
	return filepath.Join(DefaultDataDir(), DefaultBadgerFile)
}

// DefaultDataDir returns the default directory name for top-level
// configuration based on the underlying OS, attempting to respect
// conventions.
func DefaultDataDir() string {
	// Try to place the data folder in the user's home dir
	home := HomeDir()
	if home != "" {
		if runtime.GOOS == "darwin" {
			return filepath.Join(home, ".FlightSurety")
		} else if runtime.GOOS == "windows" {
			return filepath.Join(home, "AppData", "Roaming", "FlightSurety")
		} else {
			return filepath.Join(home, ".flightsurety")
		}
	}
	// As we cannot guess a stable location, return empty and handle later
	return ""
}

// HomeDir returns the user's home directory.
func HomeDir() string {
	if home := os.Getenv("HOME"); home != "" {
		return home
	}
	if usr, err := user.Current(); err == nil {
		return usr.HomeDir
	}
	return ""
}

// LogLevel converts a string to a logrus logging level.
func LogLevel(l string) logrus.Level {
	switch l {
	case "debug":
		return logrus.DebugLevel
	case "info":
		return logrus.InfoLevel
	case "warn":
		return logrus.WarnLevel
	case "error":
		return logrus.ErrorLevel
	case "fatal":
		return logrus.FatalLevel
	case "panic":
		return logrus.PanicLevel
	default:
		return logrus.DebugLevel
	}
}
