package dispatch

import (
	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const truncationMarker = "..."

// marshalMaskedPayload serializes a request or result for logging or
// journaling. Sensitive fields are masked after serialization by walking the
// decoded document, so nested fields are covered regardless of struct tags.
// A maxBytes of zero or less disables truncation.
func marshalMaskedPayload(value any, maxBytes int) (string, error) {
	raw, err := json.Marshal(value)
	if err != nil {
		return "", err
	}

	var decoded any
	if err = json.Unmarshal(raw, &decoded); err != nil {
		return "", err
	}

	masked, err := json.Marshal(maskSensitiveData(decoded))
	if err != nil {
		return "", err
	}

	payload := string(masked)
	if maxBytes > 0 && len(payload) > maxBytes {
		payload = payload[:maxBytes] + truncationMarker
	}

	return payload, nil
}

// maskSensitiveData replaces the values of sensitive keys in a decoded JSON
// document, recursing through objects and arrays.
func maskSensitiveData(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		for key, nested := range typed {
			if IsSensitiveFieldName(key) {
				typed[key] = MaskedValue
				continue
			}
			typed[key] = maskSensitiveData(nested)
		}
		return typed
	case []any:
		for i, nested := range typed {
			typed[i] = maskSensitiveData(nested)
		}
		return typed
	default:
		return value
	}
}
