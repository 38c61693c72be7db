package session

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// File persists the session as a JSON document on disk so it survives a
// full process restart. A corrupt or unreadable document reads as "no
// session" rather than failing, mirroring how an unparseable cookie would
// simply log the user out.
type File struct {
	mu   sync.Mutex
	path string
}

// NewFile creates a file-backed store at path. Parent directories are
// created on first write.
func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) GetUser() (*Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := os.ReadFile(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	var s Session
	if err := json.Unmarshal(data, &s); err != nil || s.Token == "" {
		return nil, nil
	}
	return &s, nil
}

func (f *File) SetToken(token, tenantID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	data, err := json.Marshal(Session{Token: token, TenantID: tenantID})
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(f.path, data, 0o600)
}

func (f *File) ClearToken() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

var _ Store = (*File)(nil)
