// Package plan turns a validated schema into an ordered, dependency-aware
// list of generation steps.
package plan

import (
	"fmt"
	"strings"

	"github.com/example/nestforge/internal/schema"
)

// StepType discriminates the two kinds of planned work.
type StepType string

const (
	StepModule StepType = "module"
	StepEntity StepType = "entity"
)

// Files generated per entity (entity, DTOs, service, controller, module
// wiring, repository, spec). Used only for user-facing reporting.
const filesPerEntity = 8

// StepConfig carries the payload handed to the generator for one step.
type StepConfig struct {
	Fields  string         // space-joined "name:type:modifiers" tokens
	Options map[string]any // entity options passed through verbatim
}

// Step is the unit of scheduling. Order is assigned at construction time
// (modules first, then entities, in schema order) and is a tie-break/debug
// field only - the scheduler re-sequences the list.
type Step struct {
	Order     int
	Type      StepType
	Name      string
	Module    string // owning module for entity steps, empty for module steps
	Config    StepConfig
	DependsOn []string // entity identifiers only, never module steps
}

// key identifies a step for the scheduler's visited bookkeeping.
func (s Step) key() string {
	if s.Type == StepModule {
		return string(StepModule) + ":" + s.Name
	}
	return string(StepEntity) + ":" + schema.EntityKey(s.Module, s.Name)
}

// QualifiedName is the user-facing identifier: "users" for a module step,
// "users.User" for an entity step.
func (s Step) QualifiedName() string {
	if s.Type == StepModule {
		return s.Name
	}
	return schema.EntityKey(s.Module, s.Name)
}

// Plan is the immutable result of planning a schema.
type Plan struct {
	Steps          []Step
	TotalModules   int
	TotalEntities  int
	EstimatedFiles int
}

// CircularDependencyError reports a dependency cycle between entities.
// Chain holds the qualified entity names along the cycle, with the entry
// point repeated at the end.
type CircularDependencyError struct {
	Chain []string
}

func (e *CircularDependencyError) Error() string {
	return fmt.Sprintf("circular dependency detected: %s", strings.Join(e.Chain, " -> "))
}
