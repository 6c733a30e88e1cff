// internal/credential/migrate.go
package credential

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// KeyStore is the part of Store the migration needs.
type KeyStore interface {
	Get() (string, bool, error)
	Set(value string) error
}

// MigrateLegacy moves a plaintext key out of an older settings file into the
// secure store. It only acts when the store is empty and the file holds a
// non-blank string under entry; the entry is then removed and every other
// setting is written back. A missing file is not an error.
func MigrateLegacy(store KeyStore, path, entry string) (bool, error) {
	if _, ok, err := store.Get(); err != nil || ok {
		return false, err
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("read legacy settings: %w", err)
	}

	var settings map[string]json.RawMessage
	if err := json.Unmarshal(data, &settings); err != nil {
		return false, fmt.Errorf("parse legacy settings %s: %w", path, err)
	}

	raw, found := settings[entry]
	if !found {
		return false, nil
	}
	var legacy string
	if err := json.Unmarshal(raw, &legacy); err != nil || strings.TrimSpace(legacy) == "" {
		return false, nil
	}

	if err := store.Set(legacy); err != nil {
		return false, err
	}

	delete(settings, entry)
	out, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return true, fmt.Errorf("encode legacy settings: %w", err)
	}
	if err := os.WriteFile(path, out, 0o600); err != nil {
		return true, fmt.Errorf("write legacy settings: %w", err)
	}
	// WriteFile keeps the mode of an existing file.
	if err := os.Chmod(path, 0o600); err != nil {
		return true, fmt.Errorf("restrict legacy settings: %w", err)
	}
	return true, nil
}
