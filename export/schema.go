package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// catalogSchemaJSON is the JSON Schema for the exported catalog index. The
// three scrape_info counters are required; source is optional. The session
// list must be non-empty, which re-states the fail-closed rule at the wire
// level. A paper list may be empty: an extractor configured to keep empty
// sessions emits them with zero papers.
const catalogSchemaJSON = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "title": "Conference contribution catalog",
  "type": "object",
  "required": ["scrape_info", "sessions"],
  "properties": {
    "scrape_info": {
      "type": "object",
      "required": ["extraction_time", "total_contributions", "sessions_processed"],
      "properties": {
        "extraction_time": {"type": "string"},
        "total_contributions": {"type": "integer", "minimum": 1},
        "sessions_processed": {"type": "integer", "minimum": 1},
        "source": {"type": "string"}
      }
    },
    "sessions": {
      "type": "array",
      "minItems": 1,
      "items": {
        "type": "object",
        "required": ["session_info", "papers"],
        "properties": {
          "session_info": {
            "type": "object",
            "required": ["id", "name"],
            "properties": {
              "id": {"type": "string", "minLength": 1},
              "name": {"type": "string", "minLength": 1}
            }
          },
          "papers": {
            "type": "array",
            "minItems": 0,
            "items": {
              "type": "object",
              "required": [
                "contribution_id", "contribution_code", "type", "title",
                "date_time", "abstract", "footnotes", "session"
              ],
              "properties": {
                "contribution_id": {"type": "string", "pattern": "^[0-9]+$"},
                "contribution_code": {"type": "string", "minLength": 1},
                "type": {"type": "string"},
                "title": {"type": "string"},
                "date_time": {"type": "string"},
                "abstract": {"type": "string"},
                "footnotes": {"type": "string"},
                "session": {"type": "string"}
              }
            }
          }
        }
      }
    }
  }
}`

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func catalogSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource("catalog.schema.json", bytes.NewReader([]byte(catalogSchemaJSON))); err != nil {
			schemaErr = fmt.Errorf("add schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile("catalog.schema.json")
	})
	return schema, schemaErr
}

// ValidateCatalogJSON validates serialized catalog JSON against the embedded
// schema.
func ValidateCatalogJSON(data []byte) error {
	s, err := catalogSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("unmarshal data: %w", err)
	}
	if err := s.Validate(v); err != nil {
		return fmt.Errorf("json does not match schema: %w", err)
	}
	return nil
}
