package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// ErrCredentialsNotFound is returned when neither GOOGLE_CREDENTIALS_JSON nor
// the credentials file is available.
var ErrCredentialsNotFound = errors.New("Google credentials not found. Create credentials.json or set GOOGLE_CREDENTIALS_JSON environment variable")

// Credentials is the service-account bundle with the spreadsheet locator
// split out. It is read once at startup and never mutated.
type Credentials struct {
	ServiceAccountJSON []byte
	SpreadsheetURL     string
}

// LoadCredentials reads the bundle from GOOGLE_CREDENTIALS_JSON, falling back
// to cfg.CredentialsFile. A spreadsheet_url key inside the bundle wins over
// cfg.SpreadsheetURL.
func LoadCredentials(cfg *Config) (*Credentials, error) {
	raw := []byte(cfg.CredentialsJSON)
	if len(raw) == 0 {
		data, err := os.ReadFile(cfg.CredentialsFile)
		if err != nil {
			if errors.Is(err, os.ErrNotExist) {
				return nil, ErrCredentialsNotFound
			}
			return nil, fmt.Errorf("failed to read credentials file: %w", err)
		}
		raw = data
	}

	var bundle map[string]any
	if err := json.Unmarshal(raw, &bundle); err != nil {
		return nil, fmt.Errorf("failed to parse credentials: %w", err)
	}

	spreadsheetURL := cfg.SpreadsheetURL
	if u, ok := bundle["spreadsheet_url"].(string); ok && u != "" {
		spreadsheetURL = u
	}
	delete(bundle, "spreadsheet_url")

	sa, err := json.Marshal(bundle)
	if err != nil {
		return nil, fmt.Errorf("failed to encode service account: %w", err)
	}
	return &Credentials{ServiceAccountJSON: sa, SpreadsheetURL: spreadsheetURL}, nil
}
