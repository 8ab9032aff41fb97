package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"gopkg.in/yaml.v3"
)

//go:embed data/volcanoes.yaml
var rawContent []byte

//go:embed data/volcanoes.schema.json
var rawSchema []byte

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// Load parses, validates, and indexes the embedded content document.
func Load() (*Catalog, error) {
	return LoadBytes(rawContent)
}

// LoadBytes parses and validates a content document from raw YAML. Exposed
// separately so tests can feed malformed documents.
func LoadBytes(raw []byte) (*Catalog, error) {
	if err := validateSchema(raw); err != nil {
		return nil, err
	}

	var doc document
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}

	if err := validateDocument(&doc); err != nil {
		return nil, err
	}

	return build(&doc), nil
}

// validateSchema checks the raw document against the embedded JSON Schema.
func validateSchema(raw []byte) error {
	compiled, err := compiledSchema()
	if err != nil {
		return err
	}

	// The jsonschema library expects a parsed JSON value (any). Decode the
	// YAML generically, then round-trip through encoding/json so numbers
	// and nested maps arrive in the representation it expects.
	var tree any
	if err := yaml.Unmarshal(raw, &tree); err != nil {
		return fmt.Errorf("parse catalog: %w", err)
	}
	buf, err := json.Marshal(tree)
	if err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}
	var normalized any
	if err := json.Unmarshal(buf, &normalized); err != nil {
		return fmt.Errorf("normalize catalog: %w", err)
	}

	if err := compiled.Validate(normalized); err != nil {
		return fmt.Errorf("catalog schema validation failed: %w", err)
	}
	return nil
}

// compiledSchema compiles the embedded schema once and caches it.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		var def any
		if err := json.Unmarshal(rawSchema, &def); err != nil {
			schemaErr = fmt.Errorf("parse schema definition: %w", err)
			return
		}

		c := jsonschema.NewCompiler()
		const schemaURL = "schema://volcanoes.json"
		if err := c.AddResource(schemaURL, def); err != nil {
			schemaErr = fmt.Errorf("add resource: %w", err)
			return
		}

		schema, schemaErr = c.Compile(schemaURL)
	})
	return schema, schemaErr
}
