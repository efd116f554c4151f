package plan

import "github.com/example/nestforge/internal/schema"

// Dependencies derives the directed dependency relation between entities
// from the schema's declared relations. A many-to-one or one-to-one relation
// means the owning (from) side embeds a foreign key and must be generated
// after its target, so from depends on to. one-to-many and many-to-many
// impose no ordering constraint.
//
// Keys and values are qualified "module.Entity" identifiers; bare references
// are resolved against the schema before joining, so later lookups by
// qualified key always hit.
func Dependencies(s *schema.Schema) map[string][]string {
	deps := make(map[string][]string)
	for _, r := range s.Relations {
		if r.Type != schema.ManyToOne && r.Type != schema.OneToOne {
			continue
		}
		from, ok := schema.ResolveEntity(s, r.From)
		if !ok {
			continue
		}
		to, ok := schema.ResolveEntity(s, r.To)
		if !ok {
			continue
		}
		deps[from] = append(deps[from], to)
	}
	return deps
}
