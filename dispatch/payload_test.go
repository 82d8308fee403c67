package dispatch

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_marshalMaskedPayload_MasksNestedSensitiveFields(t *testing.T) {
	// arrange
	value := map[string]any{
		"email": "a@b.test",
		"credentials": map[string]any{
			"password": "hunter2",
			"apiKey":   "sk-12345",
		},
		"cards": []any{
			map[string]any{"creditCard": "4111111111111111", "holder": "A B"},
		},
	}

	// act
	payload, err := marshalMaskedPayload(value, 0)

	// assert
	require.NoError(t, err, "Should marshal the payload")
	assert.Contains(t, payload, "a@b.test", "Non-sensitive fields should survive")
	assert.Contains(t, payload, "A B", "Non-sensitive fields inside arrays should survive")
	assert.NotContains(t, payload, "hunter2", "Sensitive values must be masked")
	assert.NotContains(t, payload, "sk-12345", "Sensitive values must be masked")
	assert.NotContains(t, payload, "4111111111111111", "Sensitive values inside arrays must be masked")
}

func Test_marshalMaskedPayload_Truncation(t *testing.T) {
	// arrange
	value := map[string]any{"description": strings.Repeat("x", 200)}

	// act
	truncated, err := marshalMaskedPayload(value, 50)
	require.NoError(t, err, "Should marshal the payload")

	unlimited, err := marshalMaskedPayload(value, 0)
	require.NoError(t, err, "Should marshal the payload")

	// assert
	assert.Equal(t, 50+len(truncationMarker), len(truncated), "Should cut at the byte limit and mark the cut")
	assert.True(t, strings.HasSuffix(truncated, truncationMarker))
	assert.Greater(t, len(unlimited), 200, "Zero disables truncation")
}

func Test_marshalMaskedPayload_ScalarValues(t *testing.T) {
	// act
	payload, err := marshalMaskedPayload(42, 0)

	// assert
	require.NoError(t, err, "Scalars marshal without masking")
	assert.Equal(t, "42", payload)
}
