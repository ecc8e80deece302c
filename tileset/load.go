package tileset

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
	"gopkg.in/yaml.v3"
)

//go:embed catalog.schema.json
var catalogSchemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schema, schemaErr = jsonschema.CompileString("catalog.schema.json", catalogSchemaJSON)
	})
	return schema, schemaErr
}

// document is the on-disk catalog layout.
//
//	tiles:
//	  - id: meadow
//	    weight: 4
//	    fill: grass              # six identical edges
//	  - id: road-bend
//	    edges: [grass/road, grass/road, grass, grass, grass, grass]
type document struct {
	Name  string        `yaml:"name"`
	Tiles []documentDef `yaml:"tiles"`
}

type documentDef struct {
	ID     string   `yaml:"id"`
	Weight *float64 `yaml:"weight"`
	Fill   string   `yaml:"fill"`
	Edges  []string `yaml:"edges"`
}

// LoadFile reads a YAML or JSON catalog document from path.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog: %w", err)
	}
	defer f.Close()
	c, err := Load(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// Load reads a YAML or JSON catalog document (JSON is valid YAML), checks it
// against the catalog schema and builds the Catalog. A missing weight
// defaults to 1.
func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	if err := validateDocument(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	defs := make([]Def, 0, len(doc.Tiles))
	for _, dt := range doc.Tiles {
		d, err := dt.toDef()
		if err != nil {
			return nil, err
		}
		defs = append(defs, d)
	}
	return NewCatalog(defs)
}

// validateDocument round-trips the YAML tree through JSON so the validator
// sees JSON-native types (json.Number, map[string]any, []any).
func validateDocument(raw []byte) error {
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("failed to parse catalog: %w", err)
	}
	js, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("catalog is not JSON-compatible: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(js))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	s, err := catalogSchema()
	if err != nil {
		return fmt.Errorf("compile catalog schema: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("%w: %v", ErrSchema, err)
	}
	return nil
}

func (dt documentDef) toDef() (Def, error) {
	d := Def{ID: dt.ID, Weight: 1}
	if dt.Weight != nil {
		d.Weight = *dt.Weight
	}
	if dt.Fill != "" {
		sig, err := ParseSignature(dt.Fill)
		if err != nil {
			return Def{}, fmt.Errorf("tile %q: %w", dt.ID, err)
		}
		for s := range d.Edges {
			d.Edges[s] = sig
		}
		return d, nil
	}
	for s, text := range dt.Edges {
		sig, err := ParseSignature(text)
		if err != nil {
			return Def{}, fmt.Errorf("tile %q side %d: %w", dt.ID, s, err)
		}
		d.Edges[s] = sig
	}
	return d, nil
}

// ParseSignature parses "terrain" or "terrain/utility".
func ParseSignature(text string) (Signature, error) {
	terrain, utility, _ := strings.Cut(text, "/")
	t, err := ParseTerrain(terrain)
	if err != nil {
		return Signature{}, err
	}
	u, err := ParseUtility(utility)
	if err != nil {
		return Signature{}, err
	}
	return Signature{Terrain: t, Utility: u}, nil
}
