// Package messages loads the response message catalog.
package messages

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/sii-nl/buscador/internal/core/search"
)

// ErrUnknownLocale is returned for a locale without a built-in catalog.
var ErrUnknownLocale = errors.New("unknown locale")

// Load returns the catalog for locale, with entries from the YAML file at
// path taking precedence. An empty path returns the built-in catalog.
//
// The file lists any subset of the keys:
//
//	missing_value: "..."
//	invalid_method: "..."
//	invalid_identifier: "..."
//	invalid_pagination: "..."
//	not_found: "%s ..."
//	success: "..."
func Load(path, locale string) (search.Messages, error) {
	base, ok := search.MessagesFor(locale)
	if !ok {
		return search.Messages{}, fmt.Errorf("%w: %q", ErrUnknownLocale, locale)
	}
	if path == "" {
		return base, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return search.Messages{}, fmt.Errorf("failed to read messages file: %w", err)
	}

	override, err := Decode(data)
	if err != nil {
		return search.Messages{}, fmt.Errorf("failed to parse messages file %s: %w", path, err)
	}
	return override.Merge(base), nil
}

// Decode parses a YAML catalog. Unknown keys are rejected.
func Decode(data []byte) (search.Messages, error) {
	var m search.Messages
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil && !errors.Is(err, io.EOF) {
		return search.Messages{}, err
	}
	return m, nil
}
