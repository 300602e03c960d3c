package config

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"gopkg.in/yaml.v3"
)

type SchemaTestSuite struct {
	suite.Suite
}

func TestSchemaSuite(t *testing.T) {
	suite.Run(t, new(SchemaTestSuite))
}

func (suite *SchemaTestSuite) TestGenerateSchemaJSON() {
	schemaJSON, err := GenerateSchemaJSON()
	suite.Require().NoError(err)

	var result map[string]any
	suite.Require().NoError(json.Unmarshal([]byte(schemaJSON), &result))

	suite.Equal("tradelog-config", result["title"])

	properties, ok := result["properties"].(map[string]any)
	suite.Require().True(ok)

	for _, key := range []string{"log_dir", "timezone", "retention_days", "telegram", "notify", "unknown_operations"} {
		suite.Contains(properties, key)
	}

	notify, ok := properties["notify"].(map[string]any)
	suite.Require().True(ok)

	timeout := notify["properties"].(map[string]any)["timeout"].(map[string]any)
	suite.Equal("string", timeout["type"])
	suite.NotContains(result, "required")
}

func (suite *SchemaTestSuite) TestSampleYAMLRoundTrips() {
	sample, err := SampleYAML(SchemaFileName)
	suite.Require().NoError(err)
	suite.True(strings.HasPrefix(string(sample), "# yaml-language-server: $schema=tradelog-config.json\n"))

	var cfg Config
	suite.Require().NoError(yaml.Unmarshal(sample, &cfg))
	suite.Equal(Default(), cfg)
	suite.NoError(cfg.Validate())
}
