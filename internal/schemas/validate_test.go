package schemas

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPlan = `{
	"version": 1,
	"exportedAt": "2026-01-02T03:04:05Z",
	"currentStep": 3,
	"organization": {"firstName": "Ada", "organizationName": "Acme"},
	"skills": [
		{
			"skill_id": "reliability",
			"selected_tools": "Daily task list,Checklists",
			"tasks": [{"id": "t1", "description": "Open the shop"}],
			"completed": true
		}
	]
}`

func TestValidatePlanDocument_Valid(t *testing.T) {
	assert.NoError(t, ValidatePlanDocument([]byte(validPlan)))
}

func TestValidatePlanDocument_ArrayMultiValue(t *testing.T) {
	doc := `{"version": 1, "organization": {}, "skills": [{"skill_id": "teamwork", "teaching_strategy": ["Modeling"]}]}`
	assert.NoError(t, ValidatePlanDocument([]byte(doc)))
}

func TestValidatePlanDocument_Invalid(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"missing skills", `{"version": 1, "organization": {}}`},
		{"zero version", `{"version": 0, "organization": {}, "skills": []}`},
		{"skill without id", `{"version": 1, "organization": {}, "skills": [{"completed": true}]}`},
		{"numeric tools", `{"version": 1, "organization": {}, "skills": [{"skill_id": "x", "selected_tools": 4}]}`},
		{"task without id", `{"version": 1, "organization": {}, "skills": [{"skill_id": "x", "tasks": [{"description": "d"}]}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidatePlanDocument([]byte(tt.doc))
			require.Error(t, err)

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "error should be ValidationError type")
			assert.NotEmpty(t, validationErr.Errors)
			assert.NotEmpty(t, validationErr.Summary())
		})
	}
}

func TestValidatePlanDocument_Malformed(t *testing.T) {
	err := ValidatePlanDocument([]byte("{ invalid json }"))
	require.Error(t, err)
	var validationErr *ValidationError
	assert.False(t, errors.As(err, &validationErr))
}

func TestValidateSuggestionRequest(t *testing.T) {
	assert.NoError(t, ValidateSuggestionRequest([]byte(`{"type": "task", "skillName": "Reliability", "selectedTools": ["Timers"]}`)))
	assert.Error(t, ValidateSuggestionRequest([]byte(`{"type": "poem"}`)))
	assert.Error(t, ValidateSuggestionRequest([]byte(`{"selectedTools": "Timers"}`)))
}

func TestValidateEmbedded_UnknownSchema(t *testing.T) {
	err := ValidateEmbedded("nope.schema.json", []byte(`{}`))
	require.Error(t, err)

	var loadErr *SchemaLoadError
	require.True(t, errors.As(err, &loadErr))
	assert.Equal(t, "nope.schema.json", loadErr.Path)
	assert.NotNil(t, errors.Unwrap(loadErr))
}
