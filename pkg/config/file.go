package config

import (
	"encoding/json"
	"os"
	"sync"

	pkgerrors "github.com/pkg/errors"

	"github.com/poti-san/powpowerman/pkg/utils/ptr"
)

var defaultFileConfig = &RawFileConfig{
	Listen:   ptr.To("127.0.0.1:9536"),
	LogLevel: ptr.To("info"),
	ReadOnly: ptr.To(false),
}

var _ Config = &File{}

// File is a JSON-file-backed Config.
type File struct {
	c        *RawFileConfig
	mu       *sync.RWMutex
	filepath string
}

// NewFile loads the configuration at configPath. A missing file yields
// the defaults.
func NewFile(configPath string) (*File, error) {
	f := &File{
		filepath: configPath,
		mu:       &sync.RWMutex{},
	}
	if err := f.Load(); err != nil {
		return nil, err
	}
	return f, nil
}

// NewFileFromConfig wraps an already parsed RawFileConfig.
func NewFileFromConfig(c *RawFileConfig, configPath string) *File {
	if c == nil {
		c = defaultFileConfig
	}
	return &File{
		c:        c,
		mu:       &sync.RWMutex{},
		filepath: configPath,
	}
}

// RawFileConfig is the on-disk form. Fields are pointers so that
// omitted keys fall back to the defaults.
type RawFileConfig struct {
	Listen   *string `json:"listen,omitempty"`
	LogLevel *string `json:"logLevel,omitempty"`
	ReadOnly *bool   `json:"readOnly,omitempty"`
}

// NewRawFileConfigFromConfig snapshots a Config into its on-disk form.
func NewRawFileConfigFromConfig(c Config) (*RawFileConfig, error) {
	if c == nil {
		return nil, pkgerrors.New("config is nil")
	}
	return &RawFileConfig{
		Listen:   ptr.To(c.Listen()),
		LogLevel: ptr.To(c.LogLevel()),
		ReadOnly: ptr.To(c.ReadOnly()),
	}, nil
}

func (f *File) Listen() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.Listen != nil {
		return *f.c.Listen
	}
	return *defaultFileConfig.Listen
}

func (f *File) LogLevel() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.LogLevel != nil {
		return *f.c.LogLevel
	}
	return *defaultFileConfig.LogLevel
}

func (f *File) ReadOnly() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.c.ReadOnly != nil {
		return *f.c.ReadOnly
	}
	return *defaultFileConfig.ReadOnly
}

func (f *File) SetListen(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.Listen = ptr.To(v)
}

func (f *File) SetLogLevel(v string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.LogLevel = ptr.To(v)
}

func (f *File) SetReadOnly(v bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.c.ReadOnly = ptr.To(v)
}

// Load reads the file. A missing file is not an error; the defaults
// apply.
func (f *File) Load() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	b, err := os.ReadFile(f.filepath)
	if err != nil {
		if os.IsNotExist(err) {
			f.c = &RawFileConfig{}
			return nil
		}
		return pkgerrors.Wrapf(err, "failed to read config %s", f.filepath)
	}

	c := &RawFileConfig{}
	if err := json.Unmarshal(b, c); err != nil {
		return pkgerrors.Wrapf(err, "failed to parse config %s", f.filepath)
	}
	f.c = c
	return nil
}

// Save writes the file.
func (f *File) Save() error {
	f.mu.RLock()
	defer f.mu.RUnlock()

	b, err := json.MarshalIndent(f.c, "", "  ")
	if err != nil {
		return pkgerrors.Wrap(err, "failed to marshal config")
	}
	if err := os.WriteFile(f.filepath, b, 0o644); err != nil {
		return pkgerrors.Wrapf(err, "failed to write config %s", f.filepath)
	}
	return nil
}
