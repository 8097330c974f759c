package schema

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRoster_Valid(t *testing.T) {
	v := NewValidator()
	doc := `[{"name":"Ada","student_id":"S1","courses":{"Math":90,"CS":80.5}}]`
	assert.NoError(t, v.ValidateRoster([]byte(doc)))
}

func TestValidateRoster_EmptyArray(t *testing.T) {
	v := NewValidator()
	assert.NoError(t, v.ValidateRoster([]byte(`[]`)))
}

func TestValidateRoster_MissingField(t *testing.T) {
	v := NewValidator()
	err := v.ValidateRoster([]byte(`[{"name":"Ada","courses":{}}]`))

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, err.Error(), "student_id")
}

func TestValidateRoster_NonNumericGrade(t *testing.T) {
	v := NewValidator()
	err := v.ValidateRoster([]byte(`[{"name":"Ada","student_id":"S1","courses":{"Math":"A+"}}]`))
	assert.Error(t, err)
}

func TestValidateRoster_NotAnArray(t *testing.T) {
	v := NewValidator()
	err := v.ValidateRoster([]byte(`{"name":"Ada"}`))
	assert.Error(t, err)
}

func TestValidate_CachesSchema(t *testing.T) {
	v := NewValidator()
	require.NoError(t, v.ValidateRoster([]byte(`[]`)))
	require.NoError(t, v.ValidateRoster([]byte(`[]`)))

	count := 0
	v.cache.Range(func(_, _ any) bool {
		count++
		return true
	})
	assert.Equal(t, 1, count)
}

func TestValidate_MapSchema(t *testing.T) {
	v := NewValidator()
	schema := map[string]any{
		"type":     "object",
		"required": []string{"id"},
	}
	assert.NoError(t, v.Validate(schema, []byte(`{"id":1}`)))
	assert.Error(t, v.Validate(schema, []byte(`{}`)))
}

func TestValidationError_Truncates(t *testing.T) {
	var items []string
	for i := 0; i < 5; i++ {
		items = append(items, fmt.Sprintf("problem %d", i))
	}
	err := &ValidationError{Errors: items}
	msg := err.Error()

	assert.Contains(t, msg, "problem 2")
	assert.NotContains(t, msg, "problem 3")
	assert.True(t, strings.HasSuffix(msg, "... and 2 more"))
}
