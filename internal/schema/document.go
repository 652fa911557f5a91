// Package schema minimizes JSON schema documents to the definitions
// reachable from a chosen root, rewriting references left dangling by the
// pruning to an explicit sentinel.
package schema

import (
	"errors"
	"fmt"
	"os"

	"github.com/goccy/go-json"
)

const (
	// DefinitionsKey is the top-level container of named definitions.
	DefinitionsKey = "definitions"

	// RefKey marks an object as a reference to another definition.
	RefKey = "$ref"

	// RefPrefix is the local pointer prefix for flat definition references.
	RefPrefix = "#/definitions/"

	// RemovedRef replaces references whose target was pruned away.
	RemovedRef = RefPrefix + "REMOVED_REFERENCE"
)

// ErrNoDefinitions reports a document without the definitions container.
var ErrNoDefinitions = errors.New("document has no top-level \"" + DefinitionsKey + "\" key")

// Document is a parsed schema document.
type Document map[string]any

// Decode parses raw JSON into a Document.
func Decode(data []byte) (Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse schema document: %w", err)
	}
	return doc, nil
}

// Load reads and parses a schema document from disk.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read schema file: %w", err)
	}
	return Decode(data)
}

// Encode renders the document as indented JSON.
func (d Document) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode schema document: %w", err)
	}
	return data, nil
}

// Write encodes the document and writes it to path.
func (d Document) Write(path string) error {
	data, err := d.Encode()
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write schema file: %w", err)
	}
	return nil
}

// Definitions returns the definitions container, or ErrNoDefinitions when
// the key is absent or not an object.
func (d Document) Definitions() (map[string]any, error) {
	raw, ok := d[DefinitionsKey]
	if !ok {
		return nil, ErrNoDefinitions
	}
	defs, ok := raw.(map[string]any)
	if !ok {
		return nil, ErrNoDefinitions
	}
	return defs, nil
}
