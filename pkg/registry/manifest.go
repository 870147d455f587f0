package registry

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formkit/pkg/field"
	"github.com/goliatone/go-formkit/pkg/widgets"
)

// ErrUnknownAlias is returned when a manifest aliases a field type or widget
// that the target registry does not know.
var ErrUnknownAlias = errors.New("registry: manifest alias target not registered")

// Manifest is a declarative plugin decoded from YAML or JSON. Fields and
// Widgets map a new name to an already registered one; Settings are merged
// as-is. A manifest written as a top-level sequence is a legacy triple
// ([fields, widgets, settings]); a mapping is a bundle.
type Manifest struct {
	Name     string
	Legacy   bool
	Fields   map[string]string
	Widgets  map[string]string
	Settings map[string]any
}

// LoadManifest reads and parses the manifest at path. Files ending in .toml
// are decoded with ParseManifestTOML, anything else with ParseManifest. The
// manifest is named after the file unless it declares a name.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("registry: read manifest %q: %w", path, err)
	}
	parse := ParseManifest
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		parse = ParseManifestTOML
	}
	manifest, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("registry: manifest %q: %w", path, err)
	}
	if manifest.Name == "" {
		manifest.Name = filepath.Base(path)
	}
	return manifest, nil
}

// ParseManifest decodes a manifest document. JSON documents are accepted as
// YAML.
func ParseManifest(data []byte) (*Manifest, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("registry: decode manifest: %w", err)
	}
	if doc.Kind != yaml.DocumentNode || len(doc.Content) == 0 {
		return &Manifest{}, nil
	}

	root := doc.Content[0]
	switch root.Kind {
	case yaml.SequenceNode:
		return parseTriple(root)
	case yaml.MappingNode:
		return parseBundle(root)
	case yaml.ScalarNode:
		if root.Tag == "!!null" {
			return &Manifest{}, nil
		}
	}
	return nil, fmt.Errorf("%w: manifest must be a sequence or a mapping (line %d)", ErrInvalidFeatures, root.Line)
}

// ParseManifestTOML decodes a TOML manifest. TOML has no top-level arrays, so
// the document is always a bundle.
func ParseManifestTOML(data []byte) (*Manifest, error) {
	var doc struct {
		Name     string            `toml:"name"`
		Fields   map[string]string `toml:"fields"`
		Widgets  map[string]string `toml:"widgets"`
		Settings map[string]any    `toml:"settings"`
	}
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&doc); err != nil {
		var strict *toml.StrictMissingError
		if errors.As(err, &strict) {
			return nil, fmt.Errorf("%w: unknown manifest key\n%s", ErrInvalidFeatures, strict.String())
		}
		var decodeErr *toml.DecodeError
		if errors.As(err, &decodeErr) {
			row, col := decodeErr.Position()
			return nil, fmt.Errorf("registry: decode manifest at line %d, column %d: %w", row, col, err)
		}
		return nil, fmt.Errorf("registry: decode manifest: %w", err)
	}
	return &Manifest{
		Name:     doc.Name,
		Fields:   doc.Fields,
		Widgets:  doc.Widgets,
		Settings: doc.Settings,
	}, nil
}

func parseTriple(root *yaml.Node) (*Manifest, error) {
	if len(root.Content) > 3 {
		return nil, fmt.Errorf("%w: legacy manifest has %d entries, want at most 3", ErrInvalidFeatures, len(root.Content))
	}
	m := &Manifest{Legacy: true}
	targets := []any{&m.Fields, &m.Widgets, &m.Settings}
	for i, node := range root.Content {
		if err := node.Decode(targets[i]); err != nil {
			return nil, fmt.Errorf("registry: manifest entry %d: %w", i, err)
		}
	}
	return m, nil
}

func parseBundle(root *yaml.Node) (*Manifest, error) {
	m := &Manifest{}
	for i := 0; i+1 < len(root.Content); i += 2 {
		key, value := root.Content[i], root.Content[i+1]
		var target any
		switch key.Value {
		case "name":
			target = &m.Name
		case "fields":
			target = &m.Fields
		case "widgets":
			target = &m.Widgets
		case "settings":
			target = &m.Settings
		case "extensions":
			return nil, fmt.Errorf("%w: extensions cannot be declared in a manifest (line %d)", ErrInvalidFeatures, key.Line)
		default:
			return nil, fmt.Errorf("%w: unknown manifest key %q (line %d)", ErrInvalidFeatures, key.Value, key.Line)
		}
		if err := value.Decode(target); err != nil {
			return nil, fmt.Errorf("registry: manifest %s: %w", key.Value, err)
		}
	}
	return m, nil
}

// Install resolves the aliases against reg and returns the contribution in
// the manifest's own shape.
func (m *Manifest) Install(reg *Registry) (Features, error) {
	var fields map[string]field.Factory
	for _, name := range sortedKeys(m.Fields) {
		target := m.Fields[name]
		factory := reg.GetField(target)
		if factory == nil {
			return nil, fmt.Errorf("%w: field %q -> %q", ErrUnknownAlias, name, target)
		}
		if fields == nil {
			fields = make(map[string]field.Factory, len(m.Fields))
		}
		fields[name] = factory
	}

	var widgetSet map[string]widgets.Factory
	for _, name := range sortedKeys(m.Widgets) {
		target := m.Widgets[name]
		factory := reg.GetWidget(target)
		if factory == nil {
			factory, _ = widgets.Lookup(target)
		}
		if factory == nil {
			return nil, fmt.Errorf("%w: widget %q -> %q", ErrUnknownAlias, name, target)
		}
		if widgetSet == nil {
			widgetSet = make(map[string]widgets.Factory, len(m.Widgets))
		}
		widgetSet[name] = factory
	}

	if m.Legacy {
		return Triple(fields, widgetSet, m.Settings), nil
	}
	return Bundle{Fields: fields, Widgets: widgetSet, Settings: m.Settings}, nil
}

// PluginName reports the manifest name for diagnostics.
func (m *Manifest) PluginName() string {
	return m.Name
}
