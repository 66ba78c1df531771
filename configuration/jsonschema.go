package configuration

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"
)

// JSONSchema renders the configuration schema as an indented JSON Schema
// document. With strict set, unknown properties are disallowed.
func JSONSchema(strict bool) ([]byte, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  !strict,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}

	schema := reflector.Reflect(&Config{})
	schema.Version = "https://json-schema.org/draft/2020-12/schema"
	schema.Title = "Node service configuration"
	schema.Description = "Configuration schema for services built on nodeservice"

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to generate schema: %w", err)
	}

	return data, nil
}
