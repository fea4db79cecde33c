package lexicon

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/xeipuuv/gojsonschema"
	"gopkg.in/yaml.v3"
)

// tablesSchema describes a lexicon extension file. Every table is optional.
const tablesSchema = `{
	"type": "object",
	"additionalProperties": false,
	"properties": {
		"cliches":   {"type": "array", "items": {"type": "string", "minLength": 1}},
		"buzzwords": {"type": "array", "items": {"type": "string", "minLength": 1}},
		"buzzword_replacements": {"$ref": "#/definitions/replacements"},
		"cliche_replacements":   {"$ref": "#/definitions/replacements"},
		"contractions":          {"$ref": "#/definitions/replacements"}
	},
	"definitions": {
		"replacements": {
			"type": "array",
			"items": {
				"type": "object",
				"additionalProperties": false,
				"required": ["phrase", "replacement"],
				"properties": {
					"phrase":      {"type": "string", "minLength": 1},
					"replacement": {"type": "string"}
				}
			}
		}
	}
}`

// Load reads a YAML or TOML extension file, validates it and returns the
// default lexicon merged with its entries. An empty path yields Default().
func Load(path string) (*Lexicon, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("lexicon: read %s: %w", path, err)
	}

	extra, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("lexicon: %s: %w", path, err)
	}
	return New(Merge(DefaultTables(), extra))
}

// Parse decodes and validates an extension document. ext selects the
// decoder: ".yaml", ".yml" or ".toml".
func Parse(data []byte, ext string) (Tables, error) {
	var doc map[string]any
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Tables{}, fmt.Errorf("decode yaml: %w", err)
		}
	case ".toml":
		if _, err := toml.Decode(string(data), &doc); err != nil {
			return Tables{}, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return Tables{}, fmt.Errorf("unsupported lexicon format %q", ext)
	}
	if doc == nil {
		doc = map[string]any{}
	}

	if err := validate(doc); err != nil {
		return Tables{}, err
	}

	// The document is already known to be well-formed; a JSON round trip
	// is the simplest way onto the tagged struct for both decoders.
	raw, err := json.Marshal(doc)
	if err != nil {
		return Tables{}, fmt.Errorf("encode: %w", err)
	}
	var t Tables
	if err := json.Unmarshal(raw, &t); err != nil {
		return Tables{}, fmt.Errorf("decode: %w", err)
	}
	return t, nil
}

func validate(doc map[string]any) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(tablesSchema),
		gojsonschema.NewGoLoader(doc),
	)
	if err != nil {
		return fmt.Errorf("schema validation error: %w", err)
	}
	if result.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(result.Errors()))
	for _, e := range result.Errors() {
		msgs = append(msgs, e.String())
	}
	return fmt.Errorf("invalid lexicon: %s", strings.Join(msgs, "; "))
}
