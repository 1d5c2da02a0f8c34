package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// schemaDoc is the JSON Schema every Report must satisfy. It is kept
// as a plain Go string rather than a loaded file so `crack --json`
// has no runtime dependency beyond the binary itself.
const schemaDoc = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "$id": "https://m3crack/report.schema.json",
  "type": "object",
  "required": [
    "wheels", "rings", "positions", "pairs", "reflector", "score",
    "plaintext", "ciphertext_chars", "phase1_candidate_count",
    "phase1_survivor_count", "plugboard_rounds"
  ],
  "properties": {
    "wheels": {
      "type": "array", "minItems": 3, "maxItems": 3,
      "items": { "type": "string", "enum": ["I", "II", "III", "IV", "V"] }
    },
    "rings": {
      "type": "array", "minItems": 3, "maxItems": 3,
      "items": { "type": "integer", "minimum": 0, "maximum": 25 }
    },
    "positions": {
      "type": "array", "minItems": 3, "maxItems": 3,
      "items": { "type": "integer", "minimum": 0, "maximum": 25 }
    },
    "pairs": {
      "type": "array", "maxItems": 13,
      "items": { "type": "string", "pattern": "^[A-Z]{2}$" }
    },
    "reflector": { "type": "string", "enum": ["B", "C"] },
    "score": { "type": "number" },
    "plaintext": { "type": "string" },
    "ciphertext_chars": { "type": "integer", "minimum": 0 },
    "phase1_candidate_count": { "type": "integer", "minimum": 0 },
    "phase1_survivor_count": { "type": "integer", "minimum": 0 },
    "plugboard_rounds": { "type": "integer", "minimum": 0 }
  }
}`

const schemaResourceName = "report.schema.json"

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

// compiledSchema compiles schemaDoc exactly once and caches the
// result; every call to Validate reuses the same compiled schema.
func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		if err := compiler.AddResource(schemaResourceName, bytes.NewReader([]byte(schemaDoc))); err != nil {
			schemaErr = fmt.Errorf("report: failed to load embedded schema: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaResourceName)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("report: failed to compile embedded schema: %w", schemaErr)
		}
	})
	return schema, schemaErr
}

// Validate checks raw JSON-encoded report data against the embedded
// schema, returning a descriptive error on any mismatch.
func Validate(data []byte) error {
	s, err := compiledSchema()
	if err != nil {
		return err
	}

	var v interface{}
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("report: invalid JSON: %w", err)
	}

	if err := s.Validate(v); err != nil {
		return fmt.Errorf("report: schema validation failed: %w", err)
	}
	return nil
}
