package prefabs

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// EntityBuildSpec is one entity prefab: a name plus raw component entries
// keyed by component name. Entries are decoded lazily by the builder.
type EntityBuildSpec struct {
	Name       string         `yaml:"name"`
	Components map[string]any `yaml:"components"`
}

// DecodeComponentSpec re-decodes one raw `components:` entry into T. Keys T
// does not declare are an error so typos in a prefab surface on reload.
func DecodeComponentSpec[T any](raw any) (T, error) {
	var out T
	if raw == nil {
		return out, nil
	}
	b, err := yaml.Marshal(raw)
	if err != nil {
		return out, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil && !errors.Is(err, io.EOF) {
		return out, fmt.Errorf("prefabs: %w", err)
	}
	return out, nil
}
