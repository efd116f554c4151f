package plan

import "github.com/example/nestforge/internal/schema"

// Build derives the ordered generation plan for a validated schema: one
// module step per module, one entity step per entity, re-sequenced so every
// dependency is generated before its dependents. Returns a
// *CircularDependencyError if the relations form a cycle.
func Build(s *schema.Schema) (*Plan, error) {
	deps := Dependencies(s)

	var steps []Step
	order := 1
	for _, m := range s.Modules {
		steps = append(steps, Step{
			Order: order,
			Type:  StepModule,
			Name:  m.Name,
		})
		order++
	}

	totalEntities := 0
	for _, m := range s.Modules {
		for _, e := range m.Entities {
			steps = append(steps, Step{
				Order:  order,
				Type:   StepEntity,
				Name:   e.Name,
				Module: m.Name,
				Config: StepConfig{
					Fields:  e.Fields.Tokens(),
					Options: e.Options,
				},
				DependsOn: deps[schema.EntityKey(m.Name, e.Name)],
			})
			order++
			totalEntities++
		}
	}

	sorted, err := sortSteps(steps)
	if err != nil {
		return nil, err
	}

	return &Plan{
		Steps:          sorted,
		TotalModules:   len(s.Modules),
		TotalEntities:  totalEntities,
		EstimatedFiles: totalEntities * filesPerEntity,
	}, nil
}
