package session

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// DefaultKey names the persisted token in every TokenStore backend.
const DefaultKey = "library_token"

// ErrNoToken is returned by TokenStore.Load when nothing is persisted.
var ErrNoToken = errors.New("session: no persisted token")

// TokenStore persists the raw bearer token across restarts.
type TokenStore interface {
	Load() (string, error)
	Save(token string) error
	// Delete succeeds when there is nothing to delete.
	Delete() error
}

// FileStore keeps the token in a single 0600 file.
type FileStore struct {
	path string
}

// NewFileStore stores the token in dir/key. An empty dir means
// <user config dir>/libctl.
func NewFileStore(dir, key string) (*FileStore, error) {
	if key == "" {
		key = DefaultKey
	}
	if dir == "" {
		base, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("resolve config dir: %w", err)
		}
		dir = filepath.Join(base, "libctl")
	}
	return &FileStore{path: filepath.Join(dir, key)}, nil
}

func (f *FileStore) Path() string { return f.path }

func (f *FileStore) Load() (string, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return "", ErrNoToken
	}
	if err != nil {
		return "", err
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return "", ErrNoToken
	}
	return token, nil
}

func (f *FileStore) Save(token string) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(filepath.Dir(f.path), ".token-*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0o600); err != nil {
		tmp.Close()
		return err
	}
	if _, err := tmp.WriteString(token); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path)
}

func (f *FileStore) Delete() error {
	err := os.Remove(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is a TokenStore that lives as long as the value does.
type MemoryStore struct {
	mu    sync.Mutex
	token string
}

func NewMemoryStore(token string) *MemoryStore {
	return &MemoryStore{token: token}
}

func (m *MemoryStore) Load() (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.token == "" {
		return "", ErrNoToken
	}
	return m.token, nil
}

func (m *MemoryStore) Save(token string) error {
	m.mu.Lock()
	m.token = token
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Delete() error {
	m.mu.Lock()
	m.token = ""
	m.mu.Unlock()
	return nil
}
