package prompt

import (
	"fmt"
	"sort"
)

// FieldType names a primitive JSON type for schema validation.
type FieldType string

const (
	TypeString  FieldType = "string"
	TypeNumber  FieldType = "number"
	TypeBoolean FieldType = "boolean"
	TypeObject  FieldType = "object"
	TypeArray   FieldType = "array"
	TypeAny     FieldType = "any"
)

// FieldSpec describes one expected field.
type FieldSpec struct {
	Type     FieldType
	Required bool
	Fields   Schema // nested object fields, validated recursively
}

// Schema maps field names to their specs.
type Schema map[string]FieldSpec

// Validate checks obj against the schema and returns every violation.
// Field order in the report is deterministic.
func (s Schema) Validate(obj map[string]interface{}) []string {
	return s.validate(obj, "")
}

func (s Schema) validate(obj map[string]interface{}, prefix string) []string {
	var violations []string

	names := make([]string, 0, len(s))
	for name := range s {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		spec := s[name]
		path := name
		if prefix != "" {
			path = prefix + "." + name
		}

		value, present := obj[name]
		if !present || value == nil {
			if spec.Required {
				violations = append(violations, fmt.Sprintf("missing required field %q", path))
			}
			continue
		}

		if !matchesType(value, spec.Type) {
			violations = append(violations, fmt.Sprintf("field %q: expected %s, got %T", path, spec.Type, value))
			continue
		}

		if spec.Type == TypeObject && len(spec.Fields) > 0 {
			nested, _ := value.(map[string]interface{})
			violations = append(violations, spec.Fields.validate(nested, path)...)
		}
	}

	return violations
}

func matchesType(value interface{}, t FieldType) bool {
	switch t {
	case TypeString:
		_, ok := value.(string)
		return ok
	case TypeNumber:
		switch value.(type) {
		case float64, float32, int, int64:
			return true
		}
		return false
	case TypeBoolean:
		_, ok := value.(bool)
		return ok
	case TypeObject:
		_, ok := value.(map[string]interface{})
		return ok
	case TypeArray:
		_, ok := value.([]interface{})
		return ok
	default:
		return true
	}
}
