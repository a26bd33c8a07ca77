// Package config loads FinMate's configuration from flags, environment,
// .env files and an optional YAML file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/finmate/internal/common"
)

// ExpandPath resolves a leading ~ to the user's home directory and then
// expands $VAR references. "~user" forms are not supported.
func ExpandPath(path string) (string, error) {
	if path == "" || !strings.HasPrefix(path, "~") {
		return os.ExpandEnv(path), nil
	}

	rest := path[1:]
	if rest != "" && rest[0] != '/' && rest[0] != filepath.Separator {
		return "", fmt.Errorf("%w: cannot expand %q", common.ErrInvalidConfig, path)
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory for %q: %w", path, err)
	}
	return os.ExpandEnv(filepath.Join(home, rest)), nil
}
