package val

import (
	"reflect"
	"strings"
)

// GetFieldName extracts the field name from struct tags.
// Priority: path > query > header > json > field name.
func GetFieldName(field reflect.StructField) string {
	// Try tags in order of priority
	tagPriority := []string{"path", "query", "header", "json"}
	for _, tagName := range tagPriority {
		if tagValue := field.Tag.Get(tagName); tagValue != "" && tagValue != "-" {
			return parseTagName(tagValue)
		}
	}

	// Fallback to field name
	return field.Name
}

// parseTagName extracts the name part from a tag value (before comma).
func parseTagName(tagValue string) string {
	if idx := strings.Index(tagValue, ","); idx != -1 {
		return tagValue[:idx]
	}

	return tagValue
}
