package config

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	DefaultFileName      = "pitboard.toml"
	DefaultPollIntervalS = 15
)

// ErrMissing indicates the device IP or API key has not been
// configured. Sends are refused locally until both are set.
var ErrMissing = errors.New("device IP and API key must be set")

// Settings are the user-editable connection settings.
type Settings struct {
	DeviceIP     string `toml:"device_ip"`
	APIKey       string `toml:"api_key"`
	PollInterval int    `toml:"poll_interval_s"`
}

func Default() Settings {
	return Settings{
		PollInterval: DefaultPollIntervalS,
	}
}

func (s Settings) Validate() error {
	if s.DeviceIP == "" || s.APIKey == "" {
		return ErrMissing
	}
	return nil
}

// Interval returns the poll interval as a duration, falling back to the
// default when unset or nonsensical.
func (s Settings) Interval() time.Duration {
	if s.PollInterval <= 0 {
		return DefaultPollIntervalS * time.Second
	}
	return time.Duration(s.PollInterval) * time.Second
}

// DefaultPath resolves the settings file location next to the binary.
func DefaultPath() (string, error) {
	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))
	if err != nil {
		return "", errors.Wrap(err, "unable to determine binary location")
	}
	return filepath.Join(dir, DefaultFileName), nil
}

// Store holds the current settings and their on-disk location. It is
// safe for concurrent readers; writes happen only on explicit save.
type Store struct {
	path string

	mu sync.Mutex
	s  Settings
}

func NewStore(path string) *Store {
	return &Store{
		path: path,
		s:    Default(),
	}
}

func (st *Store) Path() string {
	return st.path
}

// Load reads the settings file. A missing file is not an error; the
// store keeps defaults.
func (st *Store) Load() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	s := Default()
	if _, err := toml.DecodeFile(st.path, &s); err != nil {
		if os.IsNotExist(err) {
			st.s = s
			return nil
		}
		return errors.Wrapf(err, "unable to load settings from %s", st.path)
	}
	st.s = s
	return nil
}

// Save writes the current settings back to the settings file.
func (st *Store) Save() error {
	st.mu.Lock()
	defer st.mu.Unlock()
	f, err := os.Create(st.path)
	if err != nil {
		return errors.Wrapf(err, "unable to write settings to %s", st.path)
	}
	defer f.Close()
	if err := toml.NewEncoder(f).Encode(st.s); err != nil {
		return errors.Wrap(err, "unable to encode settings")
	}
	return nil
}

func (st *Store) Get() Settings {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.s
}

func (st *Store) Set(s Settings) {
	st.mu.Lock()
	defer st.mu.Unlock()
	st.s = s
}
