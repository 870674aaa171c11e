package credentials

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return NewStore(filepath.Join(t.TempDir(), "home", "config.json"))
}

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvAPIURL, "")
	t.Setenv(EnvToken, "")
	os.Unsetenv(EnvAPIURL)
	os.Unsetenv(EnvToken)
}

func TestLoadMissingFile(t *testing.T) {
	s := newTestStore(t)

	_, err := s.Load()
	if !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got: %v", err)
	}
}

func TestSaveCreatesFileWithRestrictedMode(t *testing.T) {
	s := newTestStore(t)

	err := s.Save(Credentials{APIURL: "https://review.example.com", Token: "tok-1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("credentials file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("expected mode 0600, got %o", perm)
	}

	creds, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIURL != "https://review.example.com" {
		t.Errorf("APIURL = %q, want https://review.example.com", creds.APIURL)
	}
	if creds.Token != "tok-1" {
		t.Errorf("Token = %q, want tok-1", creds.Token)
	}
}

func TestSaveMergesPartialUpdate(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(Credentials{APIURL: "https://review.example.com", Token: "old-token"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Update only the token; the URL must survive.
	if err := s.Save(Credentials{Token: "new-token"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	creds, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIURL != "https://review.example.com" {
		t.Errorf("expected APIURL to survive token update, got %q", creds.APIURL)
	}
	if creds.Token != "new-token" {
		t.Errorf("Token = %q, want new-token", creds.Token)
	}
}

func TestSaveEmptyUpdateKeepsRecord(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(Credentials{APIURL: "https://review.example.com", Token: "tok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := s.Save(Credentials{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	creds, err := s.Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIURL == "" || creds.Token == "" {
		t.Errorf("expected record to survive empty update, got %+v", creds)
	}
}

func TestSaveOnEmptyStateWritesEmptyRecord(t *testing.T) {
	s := newTestStore(t)

	if err := s.Save(Credentials{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	data, err := os.ReadFile(s.Path())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(data) != "{}" {
		t.Errorf("expected empty JSON object, got %q", string(data))
	}
}

func TestLoadCorruptFile(t *testing.T) {
	s := newTestStore(t)

	if err := os.MkdirAll(filepath.Dir(s.Path()), 0700); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(s.Path(), []byte("{not json"), 0600); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Load(); err == nil {
		t.Error("expected error for corrupt credentials file")
	}

	// Save must refuse to clobber a file it cannot parse.
	if err := s.Save(Credentials{Token: "tok"}); err == nil {
		t.Error("expected Save to fail on corrupt existing file")
	}
}

func TestResolveFromFile(t *testing.T) {
	clearEnv(t)
	s := newTestStore(t)

	if err := s.Save(Credentials{APIURL: "https://review.example.com", Token: "tok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	creds, err := s.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIURL != "https://review.example.com" || creds.Token != "tok" {
		t.Errorf("Resolve() = %+v, want stored record", creds)
	}
}

func TestResolveEnvOverridesFile(t *testing.T) {
	clearEnv(t)
	s := newTestStore(t)

	if err := s.Save(Credentials{APIURL: "https://stored.example.com", Token: "stored-tok"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvToken, "env-tok")

	creds, err := s.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIURL != "https://env.example.com" {
		t.Errorf("expected env URL to win, got %q", creds.APIURL)
	}
	if creds.Token != "env-tok" {
		t.Errorf("expected env token to win, got %q", creds.Token)
	}
}

func TestResolveEnvAloneSuffices(t *testing.T) {
	clearEnv(t)
	s := newTestStore(t)

	t.Setenv(EnvAPIURL, "https://env.example.com")
	t.Setenv(EnvToken, "env-tok")

	creds, err := s.Resolve()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if creds.APIURL != "https://env.example.com" || creds.Token != "env-tok" {
		t.Errorf("Resolve() = %+v, want env values", creds)
	}
}

func TestResolveMissingIsNotConfigured(t *testing.T) {
	clearEnv(t)
	s := newTestStore(t)

	if _, err := s.Resolve(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured, got: %v", err)
	}
}

func TestResolvePartialIsNotConfigured(t *testing.T) {
	clearEnv(t)
	s := newTestStore(t)

	if err := s.Save(Credentials{APIURL: "https://review.example.com"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := s.Resolve(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("expected ErrNotConfigured for URL without token, got: %v", err)
	}
}
