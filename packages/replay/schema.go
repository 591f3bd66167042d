package replay

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// eventSchema is the JSON schema every event-log line must satisfy.
// Deliberately permissive about extra properties: engines may record
// more than testglow renders.
const eventSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["kind", "instant"],
  "properties": {
    "kind": {
      "type": "string",
      "enum": [
        "runStarted", "planStepStarted", "testStarted", "testCaseStarted",
        "expectationChecked", "issueRecorded", "testCaseEnded", "testEnded",
        "testSkipped", "testBypassed", "planStepEnded", "runEnded"
      ]
    },
    "instant": {"type": "string", "format": "date-time"},
    "skipReason": {"type": "string"},
    "test": {
      "type": "object",
      "required": ["id"],
      "properties": {
        "id": {"type": "array", "items": {"type": "string"}, "minItems": 1},
        "displayName": {"type": "string"},
        "name": {"type": "string"},
        "isSuite": {"type": "boolean"},
        "tags": {"type": "array", "items": {"type": "string"}},
        "comments": {"type": "array", "items": {"type": "string"}},
        "parameters": {
          "type": "array",
          "items": {
            "type": "object",
            "properties": {"name": {"type": "string"}}
          }
        }
      }
    },
    "case": {
      "type": "object",
      "properties": {
        "distinct": {"type": "boolean"},
        "arguments": {
          "type": "array",
          "items": {
            "type": "object",
            "required": ["value"],
            "properties": {
              "name": {"type": "string"},
              "value": {"type": "string"}
            }
          }
        }
      }
    },
    "issue": {
      "type": "object",
      "required": ["description"],
      "properties": {
        "description": {"type": "string"},
        "known": {"type": "boolean"},
        "diff": {"type": "string"},
        "comments": {"type": "array", "items": {"type": "string"}},
        "sourceLocation": {
          "type": "object",
          "required": ["file", "line"],
          "properties": {
            "file": {"type": "string"},
            "line": {"type": "integer", "minimum": 0},
            "column": {"type": "integer", "minimum": 0}
          }
        }
      }
    }
  }
}`

// LineError describes one rejected log line.
type LineError struct {
	Line    int
	Message string
}

func (e LineError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Message)
}

// ValidateLog checks every line of a log against the event schema and
// returns the failures. A nil slice means the log is valid.
func ValidateLog(src io.Reader) ([]LineError, error) {
	schema, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(eventSchema))
	if err != nil {
		return nil, fmt.Errorf("compiling event schema: %w", err)
	}

	var failures []LineError
	scanner := bufio.NewScanner(src)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		result, err := schema.Validate(gojsonschema.NewStringLoader(line))
		if err != nil {
			failures = append(failures, LineError{Line: lineNo, Message: err.Error()})
			continue
		}
		for _, desc := range result.Errors() {
			failures = append(failures, LineError{Line: lineNo, Message: desc.String()})
		}
	}
	if err := scanner.Err(); err != nil {
		return failures, err
	}
	return failures, nil
}
