// internal/auth/credentials.go
package auth

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var ErrNoCredentials = errors.New("no credentials found")

// Credentials holds one provider's API token.
type Credentials struct {
	AccessToken string `json:"access_token"`
	Username    string `json:"username,omitempty"`
}

// FileStore persists per-provider credentials as a single JSON file.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func DefaultStorePath() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(configDir, "repolens", "credentials.json")
}

func (s *FileStore) Save(provider string, cred Credentials) error {
	all, _ := s.loadAll()
	if all == nil {
		all = make(map[string]Credentials)
	}
	all[provider] = cred

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal credentials: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("write credentials: %w", err)
	}
	return nil
}

func (s *FileStore) Load(provider string) (Credentials, error) {
	all, err := s.loadAll()
	if err != nil {
		return Credentials{}, ErrNoCredentials
	}
	cred, ok := all[provider]
	if !ok {
		return Credentials{}, ErrNoCredentials
	}
	return cred, nil
}

// LoadWithEnv prefers a REPOLENS_<PROVIDER>_TOKEN environment variable over
// the stored credential.
func (s *FileStore) LoadWithEnv(provider string) (Credentials, error) {
	upper := strings.ToUpper(provider)
	if token := os.Getenv("REPOLENS_" + upper + "_TOKEN"); token != "" {
		return Credentials{
			AccessToken: token,
			Username:    os.Getenv("REPOLENS_" + upper + "_USERNAME"),
		}, nil
	}
	return s.Load(provider)
}

func (s *FileStore) loadAll() (map[string]Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, err
	}
	var all map[string]Credentials
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}
