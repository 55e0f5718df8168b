package llmtool

import (
	"fmt"
	"reflect"
	"strings"
)

// Struct tags read by FieldsFromStruct.
const (
	tagDesc   = "prompt_desc"
	tagType   = "prompt_type"
	tagPrompt = "prompt" // "-" skips the field, "optional" clears Required
)

// FieldsFromStruct lists the exported fields of v as prompt fields, named by
// their json tag. Fields are required unless tagged prompt:"optional".
func FieldsFromStruct(v any) ([]PromptField, error) {
	if v == nil {
		return nil, fmt.Errorf("llmtool: struct is nil")
	}
	t := reflect.TypeOf(v)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, fmt.Errorf("llmtool: expected struct, got %s", t.Kind())
	}

	fields := make([]PromptField, 0, t.NumField())
	for i := 0; i < t.NumField(); i++ {
		f := t.Field(i)
		opt := strings.TrimSpace(f.Tag.Get(tagPrompt))
		if !f.IsExported() || opt == "-" {
			continue
		}
		name := jsonName(f)
		if name == "" {
			continue
		}
		typ := strings.TrimSpace(f.Tag.Get(tagType))
		if typ == "" {
			typ = typeString(f.Type)
		}
		fields = append(fields, PromptField{
			Name:        name,
			Type:        typ,
			Required:    opt != "optional",
			Description: strings.TrimSpace(f.Tag.Get(tagDesc)),
		})
	}
	return fields, nil
}

// MustFieldsFromStruct panics on error; for package-level field lists.
func MustFieldsFromStruct(v any) []PromptField {
	fields, err := FieldsFromStruct(v)
	if err != nil {
		panic(err)
	}
	return fields
}

// RequiredNames returns the names of the required fields, in order.
func RequiredNames(fields []PromptField) []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		if f.Required {
			out = append(out, f.Name)
		}
	}
	return out
}

func jsonName(f reflect.StructField) string {
	name := strings.Split(f.Tag.Get("json"), ",")[0]
	switch name {
	case "-":
		return ""
	case "":
		return f.Name
	}
	return name
}

func typeString(t reflect.Type) string {
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Bool:
		return "boolean"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "integer"
	case reflect.Float32, reflect.Float64:
		return "number"
	case reflect.Slice, reflect.Array:
		return "[]" + typeString(t.Elem())
	case reflect.Map, reflect.Struct:
		return "object"
	default:
		return "any"
	}
}
