// Package importmap reads and validates the client import map embedded in
// every server rendered page.
package importmap

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ErrInvalid wraps every validation failure.
var ErrInvalid = errors.New("invalid import map")

// SpecifierMap maps import specifiers to absolute or relative URLs, in order.
type SpecifierMap = orderedmap.OrderedMap[string, string]

// Map is a standard import map. Key order is kept through decoding and
// encoding, since it's significant to browsers.
type Map struct {
	Imports *SpecifierMap                                 `json:"imports,omitempty"`
	Scopes  *orderedmap.OrderedMap[string, *SpecifierMap] `json:"scopes,omitempty"`
}

// New creates an empty import map.
func New() *Map {
	return &Map{Imports: orderedmap.New[string, string]()}
}

// Parse decodes and validates an import map.
func Parse(data []byte) (*Map, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return nil, fmt.Errorf("%w: must be a JSON object", ErrInvalid)
	}
	for _, name := range []string{"imports", "scopes"} {
		if raw, ok := fields[name]; ok && !isObject(raw) {
			return nil, fmt.Errorf("%w: property %q must be an object", ErrInvalid, name)
		}
	}

	m := &Map{}
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalid, err)
	}
	if err := m.Validate(); err != nil {
		return nil, err
	}
	return m, nil
}

func isObject(raw json.RawMessage) bool {
	return bytes.HasPrefix(bytes.TrimSpace(raw), []byte("{"))
}

// Validate checks that no key or URL is empty.
func (m *Map) Validate() error {
	if m.Imports != nil {
		if err := validateSpecifiers(m.Imports, "imports"); err != nil {
			return err
		}
	}

	if m.Scopes == nil {
		return nil
	}
	for pair := m.Scopes.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			return fmt.Errorf("%w: property \"scopes\" must not contain an empty key", ErrInvalid)
		}
		if pair.Value == nil {
			return fmt.Errorf("%w: scope %q must be an object", ErrInvalid, pair.Key)
		}
		if err := validateSpecifiers(pair.Value, fmt.Sprintf("scopes.%s", pair.Key)); err != nil {
			return err
		}
	}
	return nil
}

func validateSpecifiers(specifiers *SpecifierMap, path string) error {
	for pair := specifiers.Oldest(); pair != nil; pair = pair.Next() {
		if pair.Key == "" {
			return fmt.Errorf("%w: property %q must not contain an empty key", ErrInvalid, path)
		}
		if pair.Value == "" {
			return fmt.Errorf("%w: property %q specifier %q must be a non empty string", ErrInvalid, path, pair.Key)
		}
	}
	return nil
}

// JSON encodes the import map.
func (m *Map) JSON() ([]byte, error) {
	return json.Marshal(m)
}

// ReadFile reads and validates an import map JSON file.
func ReadFile(path string) (*Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read import map file %s: %w", path, err)
	}

	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("import map file %s: %w", path, err)
	}
	return m, nil
}
