// Package credentials stores the API endpoint and bearer token for the
// review service. The record lives in $SR_HOME/config.json with
// owner-only permissions. Environment variables override stored values
// field by field, so CI jobs can run without a config file.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// EnvAPIURL overrides the stored API base URL.
	EnvAPIURL = "SR_API_URL"

	// EnvToken overrides the stored bearer token.
	EnvToken = "SR_TOKEN"
)

// ErrNotConfigured reports that no usable credentials exist.
var ErrNotConfigured = errors.New("not configured")

// Credentials is the stored record. Both fields are optional on disk;
// Resolve enforces completeness.
type Credentials struct {
	APIURL string `json:"api_url,omitempty"`
	Token  string `json:"token,omitempty"`
}

// Store reads and writes the credential file.
type Store struct {
	path string
}

// NewStore returns a store backed by the file at path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the location of the credential file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the stored record. A missing file is ErrNotConfigured.
func (s *Store) Load() (Credentials, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Credentials{}, ErrNotConfigured
		}
		return Credentials{}, fmt.Errorf("failed to read credentials: %w", err)
	}

	var creds Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return Credentials{}, fmt.Errorf("failed to parse credentials file %s: %w", s.path, err)
	}
	return creds, nil
}

// Save merges the non-empty fields of update over the stored record and
// writes the result readable only by the owner. Fields absent from
// update keep their stored values; Save never removes the file.
func (s *Store) Save(update Credentials) error {
	current, err := s.Load()
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return err
	}

	if update.APIURL != "" {
		current.APIURL = update.APIURL
	}
	if update.Token != "" {
		current.Token = update.Token
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create credentials directory: %w", err)
	}

	data, err := json.MarshalIndent(current, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return fmt.Errorf("failed to write credentials: %w", err)
	}
	return nil
}

// Resolve returns the effective credentials, environment variables
// first, then the stored record. Partial credentials count as not
// configured.
func (s *Store) Resolve() (Credentials, error) {
	creds, err := s.Load()
	if err != nil && !errors.Is(err, ErrNotConfigured) {
		return Credentials{}, err
	}

	if v := os.Getenv(EnvAPIURL); v != "" {
		creds.APIURL = v
	}
	if v := os.Getenv(EnvToken); v != "" {
		creds.Token = v
	}

	if creds.APIURL == "" || creds.Token == "" {
		return Credentials{}, ErrNotConfigured
	}
	return creds, nil
}
