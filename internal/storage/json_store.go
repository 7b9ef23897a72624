package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

type storeFile struct {
	Version int                        `json:"version"`
	Data    map[string]json.RawMessage `json:"data"`
}

// JSONStore keeps every key in a single JSON file, rewritten in full on
// each Set/Remove.
type JSONStore struct {
	path string
	file *storeFile
}

func NewJSONStore(configPath string) *JSONStore {
	return &JSONStore{
		path: configPath,
	}
}

func (s *JSONStore) Init() error {
	// Create config directory if it doesn't exist
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	// Check if file already exists
	if _, err := os.Stat(s.path); err == nil {
		return fmt.Errorf("storage already initialized at %s", s.path)
	}

	s.file = &storeFile{
		Version: 1,
		Data:    make(map[string]json.RawMessage),
	}

	return s.save()
}

func (s *JSONStore) Load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			// Fresh install: start with an empty store in memory. The
			// file is created on the first write.
			s.file = &storeFile{
				Version: 1,
				Data:    make(map[string]json.RawMessage),
			}
			return nil
		}
		return fmt.Errorf("failed to read storage: %w", err)
	}

	s.file = &storeFile{}
	if err := json.Unmarshal(data, s.file); err != nil {
		return fmt.Errorf("failed to parse storage: %w", err)
	}

	if s.file.Data == nil {
		s.file.Data = make(map[string]json.RawMessage)
	}

	return nil
}

func (s *JSONStore) Close() error {
	return nil
}

func (s *JSONStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize storage: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write storage: %w", err)
	}

	return nil
}

func (s *JSONStore) Get(key string) ([]byte, bool, error) {
	if s.file == nil {
		return nil, false, fmt.Errorf("storage not loaded")
	}

	value, ok := s.file.Data[key]
	if !ok {
		return nil, false, nil
	}
	return value, true, nil
}

func (s *JSONStore) Set(key string, value []byte) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	s.file.Data[key] = json.RawMessage(value)
	return s.save()
}

func (s *JSONStore) Remove(key string) error {
	if s.file == nil {
		return fmt.Errorf("storage not loaded")
	}

	if _, ok := s.file.Data[key]; !ok {
		return nil
	}
	delete(s.file.Data, key)
	return s.save()
}

func (s *JSONStore) GetConfigPath() string {
	return s.path
}
