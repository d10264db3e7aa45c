package element

import (
	"fmt"
	"os"
)

// LoadElements opens and parses an elements.data file. A read failure is
// fatal and returned to the caller; malformed individual blocks are not —
// they are logged and skipped by ParseElements.
func LoadElements(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("load elements: %w", err)
	}
	defer f.Close()
	return ParseElements(f), nil
}

// LoadSettingsFile opens and parses a settings.data file. A read failure is
// fatal and returned to the caller; unknown keys and unparseable values are
// silently ignored, leaving the current value (the built-in default unless
// an earlier line set it) in place.
func LoadSettingsFile(path string) (Settings, error) {
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, fmt.Errorf("load settings: %w", err)
	}
	defer f.Close()
	return ParseSettings(f), nil
}
