package config

import (
	"encoding/json"
	"reflect"
	"time"

	"github.com/invopop/jsonschema"
	"github.com/rxtech-lab/argo-tradelog/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SchemaFileName is the schema file name referenced from sample configurations.
const SchemaFileName = "tradelog-config.json"

// GenerateSchema reflects the YAML layout of Config into a JSON schema.
func GenerateSchema() *jsonschema.Schema {
	reflector := &jsonschema.Reflector{
		FieldNameTag:               "yaml",
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
		Mapper: func(t reflect.Type) *jsonschema.Schema {
			if t == reflect.TypeOf(time.Duration(0)) {
				return &jsonschema.Schema{
					Type:        "string",
					Pattern:     `^([0-9]+(\.[0-9]+)?(ns|us|µs|ms|s|m|h))+$`,
					Description: "Go duration such as 10s or 1m30s",
				}
			}

			return nil
		},
	}

	schema := reflector.Reflect(&Config{})
	schema.Title = "tradelog-config"
	schema.Description = "Configuration schema for tradelog"
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return schema
}

// GenerateSchemaJSON returns GenerateSchema as indented JSON.
func GenerateSchemaJSON() (string, error) {
	schemaBytes, err := json.MarshalIndent(GenerateSchema(), "", "  ")
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to encode config schema", err)
	}

	return string(schemaBytes), nil
}

// SampleYAML renders the default configuration with a yaml-language-server
// header pointing at schemaName.
func SampleYAML(schemaName string) ([]byte, error) {
	cfg := Default()

	body, err := yaml.Marshal(&cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to encode sample config", err)
	}

	return append([]byte("# yaml-language-server: $schema="+schemaName+"\n"), body...), nil
}
