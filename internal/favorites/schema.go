package favorites

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// documentSchema describes the favorites file. Missing keys are tolerated;
// wrong types are treated as corruption.
const documentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "properties": {
    "favorites": {
      "type": "array",
      "items": {
        "type": "object",
        "properties": {
          "id":         {"type": "string"},
          "text":       {"type": "string"},
          "character":  {"type": "string"},
          "setting":    {"type": "string"},
          "conflict":   {"type": "string"},
          "genre":      {"type": "string"},
          "created_at": {"type": "string"},
          "saved_at":   {"type": "string"}
        }
      }
    },
    "last_updated": {"type": "string"},
    "count": {"type": "integer", "minimum": 0}
  }
}`

var compiledSchema = jsonschema.MustCompileString("favorites.schema.json", documentSchema)

// validateDocument checks raw file content against the favorites schema.
func validateDocument(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var doc any
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("invalid JSON: trailing data after document")
	}
	if err := compiledSchema.Validate(doc); err != nil {
		return fmt.Errorf("favorites file does not match schema: %w", err)
	}
	return nil
}
