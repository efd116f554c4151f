package plan

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Report renders the plan for dry-run inspection.
func Report(w io.Writer, p *Plan) {
	fmt.Fprintf(w, "Generation plan: %d module(s), %d entit(y/ies), ~%d files\n\n",
		p.TotalModules, p.TotalEntities, p.EstimatedFiles)

	moduleTag := color.New(color.FgCyan).Sprint("[module]")
	entityTag := color.New(color.FgGreen).Sprint("[entity]")
	dim := color.New(color.FgHiBlack)

	for i, s := range p.Steps {
		tag := moduleTag
		if s.Type == StepEntity {
			tag = entityTag
		}
		fmt.Fprintf(w, "  %2d. %s %s", i+1, tag, s.QualifiedName())
		if len(s.DependsOn) > 0 {
			fmt.Fprint(w, dim.Sprintf("  (after %s)", strings.Join(s.DependsOn, ", ")))
		}
		if s.Config.Fields != "" {
			fmt.Fprint(w, dim.Sprintf("  fields: %s", s.Config.Fields))
		}
		fmt.Fprintln(w)
	}
}
