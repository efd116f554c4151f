package plan

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/example/nestforge/internal/schema"
)

func shopSchema() *schema.Schema {
	return &schema.Schema{
		Version: "1",
		Modules: []schema.Module{
			{
				Name: "users",
				Entities: []schema.Entity{
					{Name: "User", Fields: schema.FieldList{{Name: "email", Type: "string"}}},
					{Name: "Profile", Fields: schema.FieldList{{Name: "bio", Type: "text"}}},
				},
			},
			{
				Name: "orders",
				Entities: []schema.Entity{
					{Name: "Order", Fields: schema.FieldList{{Name: "total", Type: "int"}}},
				},
			},
		},
		Relations: []schema.Relation{
			{From: "users.Profile", To: "users.User", Type: schema.OneToOne},
			{From: "orders.Order", To: "users.User", Type: schema.ManyToOne},
		},
	}
}

func stepIndex(t *testing.T, p *Plan, typ StepType, qualified string) int {
	t.Helper()
	for i, s := range p.Steps {
		if s.Type == typ && s.QualifiedName() == qualified {
			return i
		}
	}
	t.Fatalf("step %s %q not found in plan", typ, qualified)
	return -1
}

func TestDependencies(t *testing.T) {
	deps := Dependencies(shopSchema())

	if got := deps["users.Profile"]; len(got) != 1 || got[0] != "users.User" {
		t.Errorf("Profile deps = %v, want [users.User]", got)
	}
	if got := deps["orders.Order"]; len(got) != 1 || got[0] != "users.User" {
		t.Errorf("Order deps = %v, want [users.User]", got)
	}
	if got := deps["users.User"]; len(got) != 0 {
		t.Errorf("User deps = %v, want none", got)
	}
}

func TestDependenciesIgnoreNonOwningRelations(t *testing.T) {
	s := shopSchema()
	s.Relations = []schema.Relation{
		{From: "users.User", To: "orders.Order", Type: schema.OneToMany},
		{From: "users.User", To: "users.Profile", Type: schema.ManyToMany},
	}

	if deps := Dependencies(s); len(deps) != 0 {
		t.Errorf("expected no dependencies, got %v", deps)
	}
}

func TestDependenciesResolveBareReferences(t *testing.T) {
	s := shopSchema()
	s.Relations = []schema.Relation{
		{From: "Profile", To: "User", Type: schema.OneToOne},
	}

	deps := Dependencies(s)
	if got := deps["users.Profile"]; len(got) != 1 || got[0] != "users.User" {
		t.Errorf("bare refs not normalized: %v", deps)
	}
}

func TestBuildOrdering(t *testing.T) {
	p, err := Build(shopSchema())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	// Scenario from the shop schema: User must be generated before Profile
	// (one-to-one) and before Order (many-to-one), all after their modules.
	usersMod := stepIndex(t, p, StepModule, "users")
	user := stepIndex(t, p, StepEntity, "users.User")
	profile := stepIndex(t, p, StepEntity, "users.Profile")
	order := stepIndex(t, p, StepEntity, "orders.Order")

	if usersMod > user {
		t.Error("users module step must precede users.User")
	}
	if user > profile {
		t.Error("users.User must be generated before users.Profile")
	}
	if user > order {
		t.Error("users.User must be generated before orders.Order")
	}
}

func TestBuildModulesPrecedeEntities(t *testing.T) {
	p, err := Build(shopSchema())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	lastModule, firstEntity := -1, len(p.Steps)
	for i, s := range p.Steps {
		if s.Type == StepModule && i > lastModule {
			lastModule = i
		}
		if s.Type == StepEntity && i < firstEntity {
			firstEntity = i
		}
	}
	if lastModule > firstEntity {
		t.Errorf("module step at %d appears after entity step at %d", lastModule, firstEntity)
	}
}

func TestBuildIsPermutation(t *testing.T) {
	p, err := Build(shopSchema())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if len(p.Steps) != 5 { // 2 modules + 3 entities
		t.Fatalf("got %d steps, want 5", len(p.Steps))
	}
	seen := make(map[string]bool)
	for _, s := range p.Steps {
		k := string(s.Type) + ":" + s.QualifiedName()
		if seen[k] {
			t.Errorf("duplicated step %s", k)
		}
		seen[k] = true
	}
}

func TestBuildCounts(t *testing.T) {
	p, err := Build(shopSchema())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	if p.TotalModules != 2 {
		t.Errorf("TotalModules = %d, want 2", p.TotalModules)
	}
	if p.TotalEntities != 3 {
		t.Errorf("TotalEntities = %d, want 3", p.TotalEntities)
	}
	if p.EstimatedFiles != 24 {
		t.Errorf("EstimatedFiles = %d, want 24 (8 per entity)", p.EstimatedFiles)
	}
}

func TestBuildStepConfig(t *testing.T) {
	s := shopSchema()
	s.Modules[0].Entities[0].Options = map[string]any{"withTests": true}

	p, err := Build(s)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	user := p.Steps[stepIndex(t, p, StepEntity, "users.User")]
	if user.Config.Fields != "email:string" {
		t.Errorf("Config.Fields = %q, want %q", user.Config.Fields, "email:string")
	}
	if v, ok := user.Config.Options["withTests"].(bool); !ok || !v {
		t.Errorf("Config.Options = %v, want withTests=true", user.Config.Options)
	}
}

func TestBuildCycleDetected(t *testing.T) {
	s := shopSchema()
	s.Relations = []schema.Relation{
		{From: "users.Profile", To: "users.User", Type: schema.OneToOne},
		{From: "users.User", To: "users.Profile", Type: schema.ManyToOne},
	}

	_, err := Build(s)
	if err == nil {
		t.Fatal("expected cycle error, got nil")
	}
	var cerr *CircularDependencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("error %T is not *CircularDependencyError", err)
	}
	if len(cerr.Chain) < 3 {
		t.Errorf("cycle chain too short: %v", cerr.Chain)
	}
	if cerr.Chain[0] != cerr.Chain[len(cerr.Chain)-1] {
		t.Errorf("cycle chain %v does not close on itself", cerr.Chain)
	}
}

func TestBuildSelfCycle(t *testing.T) {
	s := shopSchema()
	s.Relations = []schema.Relation{
		{From: "users.User", To: "users.User", Type: schema.ManyToOne},
	}

	_, err := Build(s)
	var cerr *CircularDependencyError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected *CircularDependencyError, got %v", err)
	}
}

func TestReport(t *testing.T) {
	p, err := Build(shopSchema())
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}

	var buf bytes.Buffer
	Report(&buf, p)
	out := buf.String()

	for _, want := range []string{"2 module(s)", "3 entit", "~24 files", "users.User", "after users.User"} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q:\n%s", want, out)
		}
	}
}
