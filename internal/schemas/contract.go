// Package schemas provides declarative output-shape contracts for
// structured generation. A contract is reflected from a Go struct into a
// JSON Schema and enforced on provider output before it reaches callers.
package schemas

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/invopop/jsonschema"
	"github.com/xeipuuv/gojsonschema"
)

// Contract is a named output-shape contract. Construct with Reflect.
type Contract struct {
	Name   string
	schema map[string]any
	strict map[string]any
	raw    string
}

// Reflect builds a Contract from the struct type T. Field requiredness
// follows jsonschema struct tags; objects reject unknown properties.
// Optional fields additionally admit null, so providers constrained to
// emit every property can still express absence.
func Reflect[T any](name string) (*Contract, error) {
	reflector := jsonschema.Reflector{
		AllowAdditionalProperties:  false,
		DoNotReference:             true,
		RequiredFromJSONSchemaTags: true,
	}
	var v T
	reflected := reflector.Reflect(v)

	reflectedRaw, err := reflected.MarshalJSON()
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reflected schema %s: %w", name, err)
	}

	var schema map[string]any
	if err := json.Unmarshal(reflectedRaw, &schema); err != nil {
		return nil, fmt.Errorf("failed to decode reflected schema %s: %w", name, err)
	}
	allowNullOptionals(schema)

	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal schema %s: %w", name, err)
	}

	strict, err := deepCopySchema(schema)
	if err != nil {
		return nil, fmt.Errorf("failed to copy schema %s: %w", name, err)
	}
	requireAllProperties(strict)

	return &Contract{Name: name, schema: schema, strict: strict, raw: string(raw)}, nil
}

// allowNullOptionals unions "null" into the type of every property not
// listed in its parent's required set, recursively through nested objects
// and array items. Validation then accepts both an omitted optional field
// and an explicit null for it.
func allowNullOptionals(node map[string]any) {
	if props, ok := node["properties"].(map[string]any); ok {
		required := make(map[string]bool)
		if list, ok := node["required"].([]any); ok {
			for _, r := range list {
				if s, ok := r.(string); ok {
					required[s] = true
				}
			}
		}
		for name, raw := range props {
			child, ok := raw.(map[string]any)
			if !ok {
				continue
			}
			if !required[name] {
				addNullType(child)
			}
			allowNullOptionals(child)
		}
	}
	if items, ok := node["items"].(map[string]any); ok {
		allowNullOptionals(items)
	}
}

func addNullType(node map[string]any) {
	switch t := node["type"].(type) {
	case string:
		if t != "null" {
			node["type"] = []any{t, "null"}
		}
	case []any:
		for _, v := range t {
			if v == "null" {
				return
			}
		}
		node["type"] = append(t, "null")
	}
}

// requireAllProperties forces every object's property list into its
// required set and pins additionalProperties to false, recursively.
// OpenAI strict mode rejects any object schema whose required list omits
// a property; optionality survives through the null-unioned types.
func requireAllProperties(node map[string]any) {
	if props, ok := node["properties"].(map[string]any); ok {
		node["additionalProperties"] = false
		names := make([]string, 0, len(props))
		for name := range props {
			names = append(names, name)
		}
		sort.Strings(names)
		required := make([]any, 0, len(names))
		for _, name := range names {
			required = append(required, name)
		}
		node["required"] = required

		for _, raw := range props {
			if child, ok := raw.(map[string]any); ok {
				requireAllProperties(child)
			}
		}
	}
	if items, ok := node["items"].(map[string]any); ok {
		requireAllProperties(items)
	}
}

func deepCopySchema(schema map[string]any) (map[string]any, error) {
	data, err := json.Marshal(schema)
	if err != nil {
		return nil, err
	}
	var out map[string]any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MustReflect is Reflect for contracts constructed at package init.
func MustReflect[T any](name string) *Contract {
	c, err := Reflect[T](name)
	if err != nil {
		panic(err)
	}
	return c
}

// Schema returns the contract as a JSON Schema document, suitable for
// providers that accept a response schema directly.
func (c *Contract) Schema() map[string]any {
	return c.schema
}

// StrictSchema returns a constrained-decoding variant of the contract:
// every property is required at every level and optional fields are
// expressed through null-unioned types instead of omission. This is the
// form OpenAI's strict json_schema response format accepts.
func (c *Contract) StrictSchema() map[string]any {
	return c.strict
}

// Validate checks a JSON document against the contract. Violations are
// returned as a ValidationError with per-field messages; the contract is
// all-or-nothing.
func (c *Contract) Validate(jsonText string) error {
	schemaLoader := gojsonschema.NewStringLoader(c.raw)
	documentLoader := gojsonschema.NewStringLoader(jsonText)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &LoadError{Contract: c.Name, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Contract: c.Name,
		Errors:   make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}
	return validationErr
}

// ValidationError represents a contract violation with field paths.
type ValidationError struct {
	Contract string
	Errors   []FieldError
}

// FieldError represents a single validation error at a specific field.
type FieldError struct {
	Field   string
	Message string
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "validation against %s failed:\n", ve.Contract)
	for i, err := range ve.Errors {
		fmt.Fprintf(&sb, "  %d. %s: %s\n", i+1, err.Field, err.Message)
	}
	return sb.String()
}

// LoadError represents errors loading or parsing either the schema or the
// document, as opposed to the document failing validation.
type LoadError struct {
	Contract string
	Cause    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("failed to load schema %s: %v", e.Contract, e.Cause)
}

func (e *LoadError) Unwrap() error {
	return e.Cause
}
