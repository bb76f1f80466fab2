// Package config holds the daemon configuration.
package config

// Config is the daemon configuration source.
type Config interface {
	// Listen is the address the daemon HTTP API binds to.
	Listen() string
	// LogLevel is the logrus level name.
	LogLevel() string
	// ReadOnly rejects every write operation at the API boundary.
	ReadOnly() bool

	SetListen(string)
	SetLogLevel(string)
	SetReadOnly(bool)

	// Load reads the configuration from the source.
	Load() error
	// Save saves the configuration to the source.
	Save() error
}
