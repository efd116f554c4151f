package generate

import "testing"

func TestParseFields(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantErr bool
	}{
		{"empty", "", 0, false},
		{"single", "email:string", 1, false},
		{"multiple", "email:string name:string age:int", 3, false},
		{"with modifiers", "email:string:unique bio:text:nullable", 2, false},
		{"unknown type", "email:blob", 0, true},
		{"unknown modifier", "email:string:encrypted", 0, true},
		{"missing type", "email", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fields, err := ParseFields(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFields() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil && len(fields) != tt.want {
				t.Errorf("ParseFields() got %d fields, want %d", len(fields), tt.want)
			}
		})
	}
}

func TestParseFieldMappings(t *testing.T) {
	fields, err := ParseFields("email:string:unique total:int active:boolean placedAt:date meta:json bio:text:nullable")
	if err != nil {
		t.Fatalf("ParseFields() error = %v", err)
	}

	expected := []struct {
		name       string
		tsType     string
		columnType string
		validator  string
		nullable   bool
		unique     bool
	}{
		{"email", "string", "varchar", "IsString", false, true},
		{"total", "number", "int", "IsNumber", false, false},
		{"active", "boolean", "boolean", "IsBoolean", false, false},
		{"placedAt", "Date", "timestamp", "IsDateString", false, false},
		{"meta", "Record<string, any>", "json", "IsObject", false, false},
		{"bio", "string", "text", "IsString", true, false},
	}

	for i, exp := range expected {
		f := fields[i]
		if f.Name != exp.name {
			t.Errorf("fields[%d].Name = %q, want %q", i, f.Name, exp.name)
		}
		if f.TsType != exp.tsType {
			t.Errorf("fields[%d].TsType = %q, want %q", i, f.TsType, exp.tsType)
		}
		if f.ColumnType != exp.columnType {
			t.Errorf("fields[%d].ColumnType = %q, want %q", i, f.ColumnType, exp.columnType)
		}
		if f.Validator != exp.validator {
			t.Errorf("fields[%d].Validator = %q, want %q", i, f.Validator, exp.validator)
		}
		if f.Nullable != exp.nullable {
			t.Errorf("fields[%d].Nullable = %v, want %v", i, f.Nullable, exp.nullable)
		}
		if f.Unique != exp.unique {
			t.Errorf("fields[%d].Unique = %v, want %v", i, f.Unique, exp.unique)
		}
	}
}
