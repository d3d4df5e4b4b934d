package config

//go:generate sh -c "cd .. && go run ./tools/schema-generator/"

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// GenerateSchema generates the JSON Schema for deck.yml. Extension keys such
// as logging are validated by their own packages, so the schema allows
// additional top-level properties.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		AllowAdditionalProperties: false,
		ExpandedStruct:            true,
		FieldNameTag:              "yaml",
	}

	schema := r.Reflect(&Config{})
	schema.Title = "Deck Configuration"
	schema.Description = "Schema for deck.yml."
	schema.Version = "http://json-schema.org/draft-07/schema#"
	schema.AdditionalProperties = jsonschema.TrueSchema

	return json.MarshalIndent(schema, "", "  ")
}
