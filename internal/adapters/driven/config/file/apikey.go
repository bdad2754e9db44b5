package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/threatfeed-cli/internal/core/domain"
)

// apiKeyFileName is the key file inside the config directory.
const apiKeyFileName = "api_key"

// DefaultAPIKeyPath returns the default location of the API key file,
// ~/.threatfeed/api_key.
func DefaultAPIKeyPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".threatfeed", apiKeyFileName), nil
}

// LoadAPIKey reads the application key from path. A missing or empty
// file is an ErrAuthRequired: commands that talk to the API cannot
// proceed without a key.
func LoadAPIKey(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: no API key at %s (run 'threatfeed auth set')", domain.ErrAuthRequired, path)
		}
		return "", fmt.Errorf("read API key: %w", err)
	}

	key := strings.TrimSpace(string(data))
	if key == "" {
		return "", fmt.Errorf("%w: API key file %s is empty", domain.ErrAuthRequired, path)
	}
	return key, nil
}

// SaveAPIKey writes the application key to path with restricted
// permissions, creating the parent directory if needed.
func SaveAPIKey(path, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%w: refusing to save an empty API key", domain.ErrInvalidInput)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0700); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(key+"\n"), 0600); err != nil {
		return fmt.Errorf("write API key: %w", err)
	}
	return nil
}
