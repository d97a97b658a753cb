package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPoint struct {
	ID      string `json:"id" jsonschema:"required"`
	Content string `json:"content" jsonschema:"required"`
}

type testExperience struct {
	Company     string      `json:"company" jsonschema:"required"`
	Description []testPoint `json:"description" jsonschema:"required"`
	Location    string      `json:"location"`
}

func TestReflect_SchemaShape(t *testing.T) {
	contract, err := Reflect[testExperience]("experience")
	require.NoError(t, err)
	assert.Equal(t, "experience", contract.Name)

	schema := contract.Schema()
	assert.Equal(t, "object", schema["type"])

	props, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, props, "company")
	assert.Contains(t, props, "description")
	assert.Contains(t, props, "location")

	// Required follows the jsonschema tags, not every field.
	required, ok := schema["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"company", "description"}, required)

	// Unknown properties are rejected everywhere.
	assert.Equal(t, false, schema["additionalProperties"])
}

func TestValidate_Accepts(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{
		"company": "Acme",
		"description": [{"id": "1", "content": "Shipped"}]
	}`)
	assert.NoError(t, err)
}

func TestValidate_MissingRequiredField(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{"company": "Acme"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, "experience", ve.Contract)
	require.NotEmpty(t, ve.Errors)
	assert.Contains(t, ve.Error(), "description")
}

func TestValidate_WrongTypeReportsFieldPath(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{"company": "Acme", "description": "not an array"}`)
	require.Error(t, err)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	found := false
	for _, fe := range ve.Errors {
		if fe.Field == "description" {
			found = true
		}
	}
	assert.True(t, found, "expected a field error on description, got %v", ve.Errors)
}

func TestValidate_NestedViolation(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{
		"company": "Acme",
		"description": [{"id": "1"}]
	}`)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Contains(t, ve.Error(), "content")
}

func TestValidate_RejectsUnknownProperties(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{
		"company": "Acme",
		"description": [],
		"unexpected": true
	}`)

	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}

func TestValidate_MalformedDocument(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{"company":`)
	require.Error(t, err)

	var le *LoadError
	assert.True(t, errors.As(err, &le))
}

func TestStrictSchema_EveryPropertyRequired(t *testing.T) {
	contract := MustReflect[testExperience]("experience")
	strict := contract.StrictSchema()

	// Top level: all three properties required, optional or not.
	required, ok := strict["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"company", "description", "location"}, required)
	assert.Equal(t, false, strict["additionalProperties"])

	// The optional field admits null so it can still express absence.
	props := strict["properties"].(map[string]any)
	location := props["location"].(map[string]any)
	assert.ElementsMatch(t, []any{"string", "null"}, location["type"])

	// Nested objects get the same treatment through array items.
	item := props["description"].(map[string]any)["items"].(map[string]any)
	itemRequired, ok := item["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"id", "content"}, itemRequired)
}

func TestStrictSchema_LeavesValidationSchemaRelaxed(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	// The plain schema keeps tag-driven requiredness.
	required, ok := contract.Schema()["required"].([]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"company", "description"}, required)
}

func TestValidate_AcceptsNullForOptionalField(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	// A provider constrained to emit every property expresses an absent
	// optional as null; validation accepts both forms.
	err := contract.Validate(`{
		"company": "Acme",
		"description": [],
		"location": null
	}`)
	assert.NoError(t, err)
}

func TestValidate_StillRejectsNullForRequiredField(t *testing.T) {
	contract := MustReflect[testExperience]("experience")

	err := contract.Validate(`{
		"company": null,
		"description": []
	}`)
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
}
