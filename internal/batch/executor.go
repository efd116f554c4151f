// Package batch loads a declarative schema, plans the generation steps, and
// executes them with transactional, partial-failure-aware semantics.
package batch

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"

	"github.com/example/nestforge/internal/generate"
	"github.com/example/nestforge/internal/plan"
	"github.com/example/nestforge/internal/schema"
	"github.com/example/nestforge/internal/txn"
)

// Options controls one batch run.
type Options struct {
	DryRun          bool
	ContinueOnError bool
	InstallDeps     bool
	Path            string
	SourceRoot      string // source directory under Path; empty means "src"
}

// Result summarizes a completed (non-dry) batch run. Exactly one of
// {full rollback, partial completion with skip list} happens per run:
// with ContinueOnError every failed step lands in Skipped and the run still
// succeeds, without it the first failure rolls back everything.
type Result struct {
	Plan              *plan.Plan
	ModulesGenerated  int
	EntitiesGenerated int
	Skipped           []string // qualified names of steps skipped under ContinueOnError
}

// ValidationError carries every structural defect found in the schema.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("schema validation failed with %d error(s)", len(e.Errors))
}

// Executor drives a generation plan through a Generator inside a
// transaction scope.
type Executor struct {
	gen   generate.Generator
	scope *txn.Scope
	out   io.Writer
}

// NewExecutor creates an Executor. Progress and skip messages go to out.
func NewExecutor(gen generate.Generator, scope *txn.Scope, out io.Writer) *Executor {
	return &Executor{gen: gen, scope: scope, out: out}
}

// Run loads the schema at schemaPath, validates it, builds the plan, and
// either reports it (dry run) or executes every step inside one transaction.
func (e *Executor) Run(ctx context.Context, schemaPath string, opts Options) (*Result, error) {
	s, err := schema.Load(schemaPath)
	if err != nil {
		return nil, err
	}

	if v := schema.Validate(s); !v.Valid {
		return nil, &ValidationError{Errors: v.Errors}
	}

	p, err := plan.Build(s)
	if err != nil {
		return nil, err
	}

	result := &Result{Plan: p}

	if opts.DryRun {
		plan.Report(e.out, p)
		return result, nil
	}

	err = e.scope.Run("batch-generate", func() error {
		return e.executeSteps(ctx, p, opts, result)
	})
	if err != nil {
		return nil, err
	}

	return result, nil
}

// executeSteps runs the plan in order, reporting progress per step.
func (e *Executor) executeSteps(ctx context.Context, p *plan.Plan, opts Options, result *Result) error {
	total := len(p.Steps)
	for i, step := range p.Steps {
		if err := ctx.Err(); err != nil {
			return err
		}

		if err := e.executeStep(ctx, step, opts); err != nil {
			if !opts.ContinueOnError {
				return fmt.Errorf("step %s %s failed: %w", step.Type, step.QualifiedName(), err)
			}
			result.Skipped = append(result.Skipped, step.QualifiedName())
			fmt.Fprintf(e.out, "%s skipped %s %s: %v\n",
				color.New(color.FgYellow).Sprint("!"), step.Type, step.QualifiedName(), err)
			continue
		}

		switch step.Type {
		case plan.StepModule:
			result.ModulesGenerated++
		case plan.StepEntity:
			result.EntitiesGenerated++
		}
		fmt.Fprintf(e.out, "%s %s %s (%d%%)\n",
			color.New(color.FgGreen).Sprint("✓"), step.Type, step.QualifiedName(), (i+1)*100/total)
	}
	return nil
}

// executeStep dispatches one step to the generator.
func (e *Executor) executeStep(ctx context.Context, step plan.Step, opts Options) error {
	switch step.Type {
	case plan.StepModule:
		return e.gen.GenerateModule(ctx, step.Name, generate.ModuleOptions{
			Path:       opts.Path,
			SourceRoot: opts.SourceRoot,
		})
	case plan.StepEntity:
		return e.gen.GenerateEntity(ctx, step.Name, generate.EntityOptions{
			Path:        opts.Path,
			SourceRoot:  opts.SourceRoot,
			Module:      step.Module,
			Fields:      step.Config.Fields,
			WithTests:   boolOption(step.Config.Options, "withTests"),
			WithGraphql: boolOption(step.Config.Options, "withGraphql"),
			WithEvents:  boolOption(step.Config.Options, "withEvents"),
			WithQueries: boolOption(step.Config.Options, "withQueries"),
		})
	default:
		return fmt.Errorf("unknown step type %q", step.Type)
	}
}

func boolOption(options map[string]any, key string) bool {
	v, ok := options[key].(bool)
	return ok && v
}
