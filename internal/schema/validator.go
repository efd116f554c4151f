package schema

import "fmt"

// ValidationResult accumulates every structural defect found in a schema.
type ValidationResult struct {
	Valid  bool
	Errors []string
}

// Validate runs all structural checks over a parsed schema, accumulating
// every failure rather than stopping at the first. Callers must not build a
// plan from a schema that did not validate.
func Validate(s *Schema) ValidationResult {
	var errs []string

	if s.Version == "" {
		errs = append(errs, "schema is missing required field 'version'")
	}

	if len(s.Modules) == 0 {
		errs = append(errs, "schema must declare at least one module")
	}

	seenModules := make(map[string]bool)
	for i, m := range s.Modules {
		// Entity checks still run for a nameless module, keyed by index.
		label := fmt.Sprintf("%q", m.Name)
		if m.Name == "" {
			label = fmt.Sprintf("#%d", i+1)
			errs = append(errs, fmt.Sprintf("module %s is missing required field 'name'", label))
		} else {
			if seenModules[m.Name] {
				errs = append(errs, fmt.Sprintf("duplicate module name %q", m.Name))
			}
			seenModules[m.Name] = true
		}

		if m.Entities == nil {
			errs = append(errs, fmt.Sprintf("module %s is missing required field 'entities'", label))
			continue
		}
		seenEntities := make(map[string]bool)
		for j, e := range m.Entities {
			if e.Name == "" {
				errs = append(errs, fmt.Sprintf("module %s: entity #%d is missing required field 'name'", label, j+1))
			} else {
				// A duplicate would collapse two steps onto one scheduler
				// key and drop one from the plan.
				if seenEntities[e.Name] {
					errs = append(errs, fmt.Sprintf("module %s: duplicate entity name %q", label, e.Name))
				}
				seenEntities[e.Name] = true
			}
			if len(e.Fields) == 0 {
				name := e.Name
				if name == "" {
					name = fmt.Sprintf("#%d", j+1)
				}
				errs = append(errs, fmt.Sprintf("module %s: entity %s has no fields", label, name))
			}
		}
	}

	known := knownEntities(s)
	for i, r := range s.Relations {
		if !KnownRelationType(r.Type) {
			errs = append(errs, fmt.Sprintf("relation #%d has unknown type %q", i+1, r.Type))
		}
		if !resolves(known, r.From) {
			errs = append(errs, fmt.Sprintf("relation #%d references unknown entity %q in 'from'", i+1, r.From))
		}
		if !resolves(known, r.To) {
			errs = append(errs, fmt.Sprintf("relation #%d references unknown entity %q in 'to'", i+1, r.To))
		}
	}

	return ValidationResult{Valid: len(errs) == 0, Errors: errs}
}

// knownEntities builds the set of valid entity references: for every
// (module, entity) pair both the qualified "module.Entity" form and the bare
// "Entity" form.
func knownEntities(s *Schema) map[string]bool {
	known := make(map[string]bool)
	for _, m := range s.Modules {
		for _, e := range m.Entities {
			known[EntityKey(m.Name, e.Name)] = true
			known[e.Name] = true
		}
	}
	return known
}

// resolves reports whether ref names a known entity, either directly or by
// its last dot-segment.
func resolves(known map[string]bool, ref string) bool {
	if ref == "" {
		return false
	}
	return known[ref] || known[LastSegment(ref)]
}

// ResolveEntity returns the qualified "module.Entity" key for an entity
// reference, searching the qualified form first and then the bare name.
// The second return reports whether the reference resolved.
func ResolveEntity(s *Schema, ref string) (string, bool) {
	for _, m := range s.Modules {
		for _, e := range m.Entities {
			if ref == EntityKey(m.Name, e.Name) {
				return ref, true
			}
		}
	}
	bare := LastSegment(ref)
	for _, m := range s.Modules {
		for _, e := range m.Entities {
			if bare == e.Name {
				return EntityKey(m.Name, e.Name), true
			}
		}
	}
	return "", false
}
