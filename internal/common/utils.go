package common

import (
	"encoding/json"
	"strings"
)

// FilterResultFields keeps only the requested top-level fields of a
// structured result. fieldsStr is a comma-separated list of JSON field
// names; empty means no filtering.
func FilterResultFields(result interface{}, fieldsStr string) map[string]interface{} {
	if fieldsStr == "" {
		// No filtering, convert to map and return all fields
		return structToMap(result)
	}

	includeFields := make(map[string]bool)
	for _, field := range strings.Split(fieldsStr, ",") {
		includeFields[strings.TrimSpace(field)] = true
	}

	fullMap := structToMap(result)

	filtered := make(map[string]interface{})
	for key, value := range fullMap {
		if includeFields[key] {
			filtered[key] = value
		}
	}

	return filtered
}

// structToMap converts a struct to map[string]interface{} using JSON marshaling.
func structToMap(obj interface{}) map[string]interface{} {
	data, _ := json.Marshal(obj)
	var result map[string]interface{}
	_ = json.Unmarshal(data, &result)
	return result
}
