package model

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dkowalski/logsentinel/internal/feature"
)

// artifact is the on-disk representation of a trained (schema, model)
// pair. encoding/gob is used rather than JSON since this is opaque
// internal state never exposed over the API; no pack library offers a
// smaller surface for this.
type artifact struct {
	Schema      feature.Schema
	Scorer      Scorer
	LastTrained time.Time
}

// save writes the artifact to path via a temp file plus rename, so a
// crash mid-write never leaves a corrupt model file in place.
func save(path string, a artifact) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("model: create model dir: %w", err)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(a); err != nil {
		return fmt.Errorf("model: encode artifact: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("model: write temp file: %w", err)
	}

	if err := os.Rename(tmp, path); err != nil {
		return fmt.Errorf("model: rename temp file: %w", err)
	}

	return nil
}

// load reads an artifact from path. A missing file is not an error: the
// caller enters the untrained state.
func load(path string) (*artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("model: read model file: %w", err)
	}

	var a artifact
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&a); err != nil {
		return nil, fmt.Errorf("model: decode artifact: %w", err)
	}
	return &a, nil
}
