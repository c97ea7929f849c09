package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/hammamikhairi/cookbook/internal/domain"
)

// Compile-time interface check.
var _ domain.CredentialStore = (*FileCredentials)(nil)

// FileCredentials persists the signed-in user as a small JSON file under
// the user config directory. It is the restart-survival slot, nothing
// more: no password and no token is ever written.
type FileCredentials struct {
	path string
}

// NewFileCredentials creates a store at an explicit path. An empty path
// resolves to <user config dir>/cookbook/session.json.
func NewFileCredentials(path string) (*FileCredentials, error) {
	if path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("auth: resolve config dir: %w", err)
		}
		path = filepath.Join(dir, "cookbook", "session.json")
	}
	return &FileCredentials{path: path}, nil
}

// Get reads the persisted user. A missing file means no session and
// returns (nil, nil).
func (f *FileCredentials) Get() (*domain.User, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("auth: read session file: %w", err)
	}

	var u domain.User
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("auth: parse session file: %w", err)
	}
	if u.ID == "" {
		return nil, nil
	}
	return &u, nil
}

// Set writes the user to the session file, creating parent directories
// as needed.
func (f *FileCredentials) Set(u *domain.User) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return fmt.Errorf("auth: create session dir: %w", err)
	}
	data, err := json.MarshalIndent(u, "", "  ")
	if err != nil {
		return fmt.Errorf("auth: encode session: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0o600); err != nil {
		return fmt.Errorf("auth: write session file: %w", err)
	}
	return nil
}

// Clear removes the session file. Clearing an absent session is not an
// error.
func (f *FileCredentials) Clear() error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}
