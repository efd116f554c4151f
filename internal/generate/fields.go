package generate

import (
	"fmt"
	"strings"
)

// typeMapping maps a schema field type to its TypeScript type, TypeORM
// column type, and class-validator decorator.
type typeMapping struct {
	tsType     string
	columnType string
	validator  string
}

var fieldTypes = map[string]typeMapping{
	"string":    {"string", "varchar", "IsString"},
	"text":      {"string", "text", "IsString"},
	"uuid":      {"string", "uuid", "IsString"},
	"int":       {"number", "int", "IsNumber"},
	"integer":   {"number", "int", "IsNumber"},
	"number":    {"number", "int", "IsNumber"},
	"float":     {"number", "float", "IsNumber"},
	"decimal":   {"number", "decimal", "IsNumber"},
	"bool":      {"boolean", "boolean", "IsBoolean"},
	"boolean":   {"boolean", "boolean", "IsBoolean"},
	"date":      {"Date", "timestamp", "IsDateString"},
	"datetime":  {"Date", "timestamp", "IsDateString"},
	"timestamp": {"Date", "timestamp", "IsDateString"},
	"json":      {"Record<string, any>", "json", "IsObject"},
}

// ParseFields parses the space-joined "name:type:modifiers" token string
// handed over by the planner.
func ParseFields(tokens string) ([]Field, error) {
	var fields []Field
	for _, token := range strings.Fields(tokens) {
		f, err := parseField(token)
		if err != nil {
			return nil, err
		}
		fields = append(fields, f)
	}
	return fields, nil
}

func parseField(token string) (Field, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 2 || parts[0] == "" {
		return Field{}, fmt.Errorf("invalid field token %q: expected 'name:type'", token)
	}

	mapping, ok := fieldTypes[strings.ToLower(parts[1])]
	if !ok {
		return Field{}, fmt.Errorf("field %q has unknown type %q", parts[0], parts[1])
	}

	f := Field{
		Name:       parts[0],
		TsType:     mapping.tsType,
		ColumnType: mapping.columnType,
		Validator:  mapping.validator,
	}
	for _, mod := range parts[2:] {
		switch strings.ToLower(mod) {
		case "nullable", "optional":
			f.Nullable = true
		case "unique":
			f.Unique = true
		case "index", "indexed":
			f.Indexed = true
		default:
			return Field{}, fmt.Errorf("field %q has unknown modifier %q", parts[0], mod)
		}
	}
	return f, nil
}
