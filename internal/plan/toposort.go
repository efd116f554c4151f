package plan

import "github.com/example/nestforge/internal/schema"

// sortSteps orders steps so every dependency precedes its dependents,
// using a depth-first visit with three-color marking. Module steps carry no
// dependencies and are visited first, so they keep schema order and always
// precede entity steps. The output is a permutation of the input.
//
// A dependency cycle is a hard error: the visit that re-enters a step still
// on the recursion stack returns a *CircularDependencyError naming the
// cycle, rather than degrading to an arbitrary order.
func sortSteps(steps []Step) ([]Step, error) {
	sorted := make([]Step, 0, len(steps))
	visited := make(map[string]bool, len(steps))
	visiting := make(map[string]bool, len(steps))
	var stack []string

	var visit func(s Step) error
	visit = func(s Step) error {
		k := s.key()
		if visiting[k] {
			return &CircularDependencyError{Chain: cycleChain(stack, s.QualifiedName())}
		}
		if visited[k] {
			return nil
		}
		visiting[k] = true
		stack = append(stack, s.QualifiedName())

		for _, dep := range s.DependsOn {
			for _, cand := range steps {
				// Dependencies reference entities only; match either the
				// bare name or the qualified form.
				if cand.Type != StepEntity {
					continue
				}
				if dep == cand.Name || dep == schema.EntityKey(cand.Module, cand.Name) {
					if err := visit(cand); err != nil {
						return err
					}
				}
			}
		}

		stack = stack[:len(stack)-1]
		delete(visiting, k)
		visited[k] = true
		sorted = append(sorted, s)
		return nil
	}

	for _, s := range steps {
		if s.Type == StepModule {
			if err := visit(s); err != nil {
				return nil, err
			}
		}
	}
	for _, s := range steps {
		if s.Type == StepEntity {
			if err := visit(s); err != nil {
				return nil, err
			}
		}
	}

	return sorted, nil
}

// cycleChain trims the recursion stack to the segment forming the cycle and
// closes it with the re-entered step.
func cycleChain(stack []string, repeat string) []string {
	start := 0
	for i, name := range stack {
		if name == repeat {
			start = i
			break
		}
	}
	chain := make([]string, 0, len(stack)-start+1)
	chain = append(chain, stack[start:]...)
	return append(chain, repeat)
}
