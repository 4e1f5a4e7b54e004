package config

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/c360/mechstreams/errors"
)

// configSchema is the structural contract for a config document,
// checked before unmarshalling so shape errors surface with field
// paths instead of as zero values.
const configSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["loop"],
  "additionalProperties": false,
  "properties": {
    "version": {"type": "string"},
    "loop": {
      "type": "object",
      "required": ["name", "interval_ms"],
      "additionalProperties": false,
      "properties": {
        "name": {"type": "string", "minLength": 1},
        "interval_ms": {"type": "integer", "minimum": 1}
      }
    },
    "nats": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "url": {"type": "string"},
        "client_name": {"type": "string"}
      }
    },
    "metrics": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "enabled": {"type": "boolean"},
        "port": {"type": "integer", "minimum": 0, "maximum": 65535},
        "path": {"type": "string"}
      }
    },
    "tuning": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "gains": {
          "type": "object",
          "additionalProperties": {"$ref": "#/definitions/gains"}
        },
        "filters": {
          "type": "object",
          "additionalProperties": {"$ref": "#/definitions/filter"}
        },
        "gear_ratios": {
          "type": "object",
          "additionalProperties": {"type": "number"}
        }
      }
    }
  },
  "definitions": {
    "kvalues": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "kp": {"type": "number"},
        "ki": {"type": "number"},
        "kd": {"type": "number"}
      }
    },
    "gains": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "position": {"$ref": "#/definitions/kvalues"},
        "velocity": {"$ref": "#/definitions/kvalues"},
        "acceleration": {"$ref": "#/definitions/kvalues"}
      }
    },
    "filter": {
      "type": "object",
      "additionalProperties": false,
      "properties": {
        "smoothing": {"type": "number"},
        "window": {
          "type": "array",
          "items": {"type": "number"},
          "minItems": 1
        }
      }
    }
  }
}`

// validateSchema validates raw config JSON against the embedded schema.
func validateSchema(data []byte) error {
	schemaLoader := gojsonschema.NewStringLoader(configSchema)
	documentLoader := gojsonschema.NewBytesLoader(data)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return errors.WrapInvalid(err, "config", "validateSchema", "run schema validation")
	}
	if !result.Valid() {
		var b strings.Builder
		for i, desc := range result.Errors() {
			if i > 0 {
				b.WriteString("; ")
			}
			fmt.Fprintf(&b, "%s: %s", desc.Field(), desc.Description())
		}
		return errors.WrapInvalid(errors.ErrInvalidConfig, "config", "validateSchema", b.String())
	}
	return nil
}
