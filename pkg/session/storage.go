package session

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"

	"euclid-dex/pkg/wallet"
)

const (
	DefaultStorageFileName = ".euclid-dex-session.json"
)

// Storage persists the connected wallet session between invocations
type Storage struct {
	filePath string
	mu       sync.Mutex
}

// sessionFile represents the JSON structure on disk
type sessionFile struct {
	Session *wallet.Session `json:"session"`
}

// NewStorage creates a storage instance. An empty path uses the home directory.
func NewStorage(filePath string) (*Storage, error) {
	if filePath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, errors.Wrap(err, "failed to get home directory")
		}
		filePath = filepath.Join(home, DefaultStorageFileName)
	}

	return &Storage{filePath: filePath}, nil
}

// Load returns the saved session. ok is false when nothing is saved.
func (s *Storage) Load() (session wallet.Session, ok bool, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return wallet.Session{}, false, nil
		}
		return wallet.Session{}, false, errors.Wrap(err, "failed to read session")
	}

	var f sessionFile
	if err := json.Unmarshal(data, &f); err != nil {
		return wallet.Session{}, false, errors.Wrap(err, "failed to unmarshal session")
	}
	if f.Session == nil || f.Session.Address == "" {
		return wallet.Session{}, false, nil
	}

	return *f.Session, true, nil
}

// Save writes the session, replacing any previous one
func (s *Storage) Save(session wallet.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sessionFile{Session: &session}, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal session")
	}

	// Ensure directory exists
	dir := filepath.Dir(s.filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrap(err, "failed to create directory")
	}

	// Write to temporary file first, then rename for atomic write
	tempFile := s.filePath + ".tmp"
	if err := os.WriteFile(tempFile, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write session")
	}

	if err := os.Rename(tempFile, s.filePath); err != nil {
		return errors.Wrap(err, "failed to rename temp file")
	}

	return nil
}

// Clear removes the saved session
func (s *Storage) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.filePath); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "failed to remove session")
	}
	return nil
}

// GetFilePath returns the storage file path
func (s *Storage) GetFilePath() string {
	return s.filePath
}
