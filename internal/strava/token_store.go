package strava

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lmehl/trainsync/pkg"
)

// Tokens is the persisted OAuth2 token pair, the only durable state of
// the Strava client. The access token is assumed valid until a request
// fails; only then is it exchanged via the refresh token.
type Tokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type TokenStore struct {
	path string
}

func NewTokenStore(path string) *TokenStore {
	return &TokenStore{path: path}
}

// Load returns zero Tokens (no error) when the file does not exist yet.
func (s *TokenStore) Load() (Tokens, error) {
	exists, err := pkg.PathExists(s.path, false)
	if err != nil {
		return Tokens{}, fmt.Errorf("stat token file: %w", err)
	}
	if !exists {
		return Tokens{}, nil
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return Tokens{}, fmt.Errorf("read token file: %w", err)
	}

	var tokens Tokens
	if err := json.Unmarshal(data, &tokens); err != nil {
		return Tokens{}, fmt.Errorf("unmarshal token file: %w", err)
	}
	return tokens, nil
}

// Save overwrites the token pair atomically, via a temp file rename.
func (s *TokenStore) Save(tokens Tokens) error {
	data, err := json.Marshal(tokens)
	if err != nil {
		return fmt.Errorf("marshal tokens: %w", err)
	}

	tmpPath := filepath.Join(filepath.Dir(s.path), "."+filepath.Base(s.path)+".tmp")
	if err := os.WriteFile(tmpPath, data, 0o600); err != nil {
		return fmt.Errorf("write token file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		return fmt.Errorf("replace token file: %w", err)
	}
	return nil
}
