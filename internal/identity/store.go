// Package identity persists the logged-in username between runs.
package identity

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNoIdentity is returned by Load when nobody is logged in.
var ErrNoIdentity = errors.New("not logged in")

// ErrEmptyUsername is returned when a blank username is saved.
var ErrEmptyUsername = errors.New("username cannot be empty")

const fileName = "identity.json"

// Identity is the explicit session context handed to every operation.
// The zero value means "logged out".
type Identity struct {
	Username string `json:"username"`
}

// New trims username and returns ErrEmptyUsername if nothing is left.
func New(username string) (Identity, error) {
	u := strings.TrimSpace(username)
	if u == "" {
		return Identity{}, ErrEmptyUsername
	}
	return Identity{Username: u}, nil
}

// IsZero reports whether id represents a logged-out client.
func (id Identity) IsZero() bool {
	return id.Username == ""
}

// Store persists a single Identity.
type Store interface {
	Save(id Identity) error
	Load() (Identity, error) // returns ErrNoIdentity if none exists
	Clear() error
	Path() string
}

// diskStore is the concrete Store that writes to the XDG data directory.
type diskStore struct {
	path string // full path to identity.json
}

// NewStore returns a Store backed by the XDG data directory.
// Path: $XDG_DATA_HOME/worktrack/identity.json or ~/.local/share/worktrack/identity.json
func NewStore() (Store, error) {
	dir, err := DataDir()
	if err != nil {
		return nil, fmt.Errorf("resolving data directory: %w", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	return &diskStore{path: filepath.Join(dir, fileName)}, nil
}

// DataDir returns the worktrack-specific XDG data directory.
func DataDir() (string, error) {
	base := os.Getenv("XDG_DATA_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		base = filepath.Join(home, ".local", "share")
	}
	return filepath.Join(base, "worktrack"), nil
}

func (d *diskStore) Path() string { return d.path }

// Save writes id atomically via a temp file + os.Rename.
func (d *diskStore) Save(id Identity) (err error) {
	id, err = New(id.Username)
	if err != nil {
		return err
	}
	data, err := json.Marshal(id)
	if err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(d.path), "identity-*.json.tmp")
	if err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	if err = os.Rename(tmpName, d.path); err != nil {
		return fmt.Errorf("failed to persist identity: %w", err)
	}
	return nil
}

// Load reads the stored identity. A file holding a blank username counts as
// no identity.
func (d *diskStore) Load() (Identity, error) {
	data, err := os.ReadFile(d.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Identity{}, ErrNoIdentity
		}
		return Identity{}, fmt.Errorf("failed to read identity: %w", err)
	}

	var id Identity
	if err := json.Unmarshal(data, &id); err != nil {
		return Identity{}, fmt.Errorf("failed to parse identity: %w", err)
	}
	id, err = New(id.Username)
	if err != nil {
		return Identity{}, ErrNoIdentity
	}
	return id, nil
}

// Clear removes the identity file. Clearing an empty store is not an error.
func (d *diskStore) Clear() error {
	if err := os.Remove(d.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to clear identity: %w", err)
	}
	return nil
}
