// Package sessionstore persists the client's session under the "currentUser" key.
package sessionstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mmynk/peopleevents/internal/models"
)

// Key is the name the session is persisted under.
const Key = "currentUser"

// Store reads and writes the persisted session.
type Store interface {
	// Load returns the persisted session, or nil when none is stored.
	Load(ctx context.Context) (*models.Session, error)
	// Save replaces the persisted session.
	Save(ctx context.Context, session *models.Session) error
	// Clear removes the persisted session. Clearing an empty store succeeds.
	Clear(ctx context.Context) error
}

// Dir returns the default directory for client state.
func Dir() string {
	if d := os.Getenv("PE_SESSION_DIR"); d != "" {
		return d
	}
	if d := os.Getenv("XDG_CONFIG_HOME"); d != "" {
		return filepath.Join(d, "peopleevents")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".peopleevents"
	}
	return filepath.Join(home, ".config", "peopleevents")
}

// FileStore keeps the session as a JSON file in a directory.
type FileStore struct {
	path string
}

var _ Store = (*FileStore)(nil)

// NewFileStore stores the session as <dir>/currentUser.json.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, Key+".json")}
}

// Load implements Store.
func (s *FileStore) Load(ctx context.Context) (*models.Session, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read session: %w", err)
	}
	return decode(data)
}

// Save implements Store. The file is replaced atomically.
func (s *FileStore) Save(ctx context.Context, session *models.Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return fmt.Errorf("create session dir: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), Key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp session: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close session: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("replace session: %w", err)
	}
	return nil
}

// Clear implements Store.
func (s *FileStore) Clear(ctx context.Context) error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove session: %w", err)
	}
	return nil
}

func decode(data []byte) (*models.Session, error) {
	var session models.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	if _, err := models.ParseRole(string(session.Role)); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}
