package catalog

import (
	"bytes"
	"encoding/json"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// The documents come from a zoo of per-platform fetchers, so shape drift is
// a real failure mode; validating on load turns it into an immediate
// diagnostic instead of a nil-map panic deep in a pipeline.
const top100Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "type": "object",
  "required": ["top100"],
  "properties": {
    "top100": {
      "type": "array",
      "items": {
        "type": "object",
        "required": ["name"],
        "properties": {
          "repo": {"type": ["string", "null"]},
          "name": {"type": "string"},
          "description": {"type": ["string", "null"]},
          "tags": {"type": "array", "items": {"type": "string"}},
          "categories": {"type": "array", "items": {"type": "string"}},
          "downloads": {"type": "number"},
          "githubStats": {
            "type": "object",
            "properties": {
              "stars": {"type": "number"},
              "lastUpdated": {"type": ["string", "null"]},
              "dependencies": {
                "type": "object",
                "properties": {
                  "dependencies": {"type": "object"},
                  "devDependencies": {"type": "object"}
                }
              }
            }
          }
        }
      }
    }
  }
}`

var compiledSchema = jsonschema.MustCompileString("top100.json", top100Schema)

func validate(data []byte) error {
	var doc any
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&doc); err != nil {
		return err
	}
	return compiledSchema.Validate(doc)
}
