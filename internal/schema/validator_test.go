package schema

import (
	"strings"
	"testing"
)

func validSchema() *Schema {
	return &Schema{
		Version: "1",
		Modules: []Module{
			{
				Name: "users",
				Entities: []Entity{
					{Name: "User", Fields: FieldList{{Name: "email", Type: "string"}}},
					{Name: "Profile", Fields: FieldList{{Name: "bio", Type: "text"}}},
				},
			},
		},
		Relations: []Relation{
			{From: "users.Profile", To: "users.User", Type: OneToOne},
		},
	}
}

func TestValidateOK(t *testing.T) {
	result := Validate(validSchema())
	if !result.Valid {
		t.Fatalf("expected valid schema, got errors: %v", result.Errors)
	}
}

func TestValidateAccumulatesAllErrors(t *testing.T) {
	s := &Schema{
		Modules: []Module{
			{Name: "users", Entities: []Entity{{Fields: FieldList{{Name: "a", Type: "int"}}}}},
		},
		Relations: []Relation{
			{From: "orders.Order", To: "users.User", Type: ManyToOne},
		},
	}

	result := Validate(s)
	if result.Valid {
		t.Fatal("expected invalid schema")
	}
	// Missing version, missing entity name, and both dangling relation
	// endpoints must all be reported in one pass.
	if len(result.Errors) < 4 {
		t.Errorf("expected at least 4 accumulated errors, got %d: %v", len(result.Errors), result.Errors)
	}
}

func TestValidateChecks(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Schema)
		wantSub string
	}{
		{
			name:    "missing version",
			mutate:  func(s *Schema) { s.Version = "" },
			wantSub: "version",
		},
		{
			name:    "no modules",
			mutate:  func(s *Schema) { s.Modules = nil },
			wantSub: "at least one module",
		},
		{
			name: "duplicate module name",
			mutate: func(s *Schema) {
				s.Modules = append(s.Modules, Module{Name: "users", Entities: []Entity{}})
			},
			wantSub: `duplicate module name "users"`,
		},
		{
			name: "duplicate entity name",
			mutate: func(s *Schema) {
				s.Modules[0].Entities = append(s.Modules[0].Entities,
					Entity{Name: "User", Fields: FieldList{{Name: "alias", Type: "string"}}})
			},
			wantSub: `duplicate entity name "User"`,
		},
		{
			name:    "module without entities",
			mutate:  func(s *Schema) { s.Modules[0].Entities = nil },
			wantSub: "entities",
		},
		{
			name:    "entity without fields",
			mutate:  func(s *Schema) { s.Modules[0].Entities[0].Fields = nil },
			wantSub: "no fields",
		},
		{
			name: "dangling relation from",
			mutate: func(s *Schema) {
				s.Relations = []Relation{{From: "orders.Order", To: "users.User", Type: ManyToOne}}
			},
			wantSub: `unknown entity "orders.Order"`,
		},
		{
			name: "unknown relation type",
			mutate: func(s *Schema) {
				s.Relations = []Relation{{From: "users.Profile", To: "users.User", Type: "has-many"}}
			},
			wantSub: `unknown type "has-many"`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSchema()
			tt.mutate(s)
			result := Validate(s)
			if result.Valid {
				t.Fatal("expected invalid schema")
			}
			found := false
			for _, e := range result.Errors {
				if strings.Contains(e, tt.wantSub) {
					found = true
					break
				}
			}
			if !found {
				t.Errorf("errors %v do not mention %q", result.Errors, tt.wantSub)
			}
		})
	}
}

func TestValidateDuplicateEntityKeepsPlanComplete(t *testing.T) {
	// Two entities sharing a name within one module would collapse onto a
	// single scheduler key and silently drop a step from the plan, so the
	// schema must be rejected before planning.
	s := &Schema{
		Version: "1",
		Modules: []Module{
			{
				Name: "users",
				Entities: []Entity{
					{Name: "User", Fields: FieldList{{Name: "email", Type: "string"}}},
					{Name: "User", Fields: FieldList{{Name: "login", Type: "string"}}},
				},
			},
		},
	}

	result := Validate(s)
	if result.Valid {
		t.Fatal("schema with duplicate entity names must be invalid")
	}
	found := false
	for _, e := range result.Errors {
		if strings.Contains(e, `duplicate entity name "User"`) {
			found = true
		}
	}
	if !found {
		t.Errorf("errors %v do not name the duplicated entity", result.Errors)
	}
}

func TestValidateNamelessModuleStillChecksEntities(t *testing.T) {
	s := &Schema{
		Version: "1",
		Modules: []Module{
			{
				Entities: []Entity{
					{Fields: FieldList{{Name: "a", Type: "int"}}},
					{Name: "Thing"},
				},
			},
		},
	}

	result := Validate(s)
	if result.Valid {
		t.Fatal("expected invalid schema")
	}
	// Missing module name, missing entity name, and the fieldless entity
	// must all surface in the same pass.
	if len(result.Errors) != 3 {
		t.Errorf("got %d errors, want 3: %v", len(result.Errors), result.Errors)
	}
	for _, want := range []string{"missing required field 'name'", "entity #1", "Thing has no fields"} {
		found := false
		for _, e := range result.Errors {
			if strings.Contains(e, want) {
				found = true
			}
		}
		if !found {
			t.Errorf("errors %v do not mention %q", result.Errors, want)
		}
	}
}

func TestValidateBareRelationReference(t *testing.T) {
	s := validSchema()
	s.Relations = []Relation{{From: "Profile", To: "User", Type: OneToOne}}

	result := Validate(s)
	if !result.Valid {
		t.Errorf("bare entity references should resolve, got errors: %v", result.Errors)
	}
}

func TestResolveEntity(t *testing.T) {
	s := validSchema()

	tests := []struct {
		ref    string
		want   string
		wantOK bool
	}{
		{"users.User", "users.User", true},
		{"User", "users.User", true},
		{"other.User", "users.User", true}, // last segment resolves
		{"orders.Order", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		got, ok := ResolveEntity(s, tt.ref)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ResolveEntity(%q) = (%q, %v), want (%q, %v)", tt.ref, got, ok, tt.want, tt.wantOK)
		}
	}
}
