// Package schema defines the declarative batch-generation schema: modules,
// entities, fields, and the relations between entities.
package schema

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Schema is the root of a single generation run. Immutable once loaded.
type Schema struct {
	Version   string     `json:"version" yaml:"version"`
	Project   string     `json:"project,omitempty" yaml:"project,omitempty"`
	Modules   []Module   `json:"modules" yaml:"modules"`
	Relations []Relation `json:"relations,omitempty" yaml:"relations,omitempty"`
}

// Module is a named grouping of entities.
type Module struct {
	Name     string   `json:"name" yaml:"name"`
	Entities []Entity `json:"entities" yaml:"entities"`
	Shared   bool     `json:"shared,omitempty" yaml:"shared,omitempty"`
}

// Entity describes one entity to generate.
type Entity struct {
	Name    string         `json:"name" yaml:"name"`
	Fields  FieldList      `json:"fields" yaml:"fields"`
	Options map[string]any `json:"options,omitempty" yaml:"options,omitempty"`
}

// Relation declares a directed relation between two entities. From and To
// are entity references, either fully qualified ("module.Entity") or bare
// ("Entity").
type Relation struct {
	From  string `json:"from" yaml:"from"`
	To    string `json:"to" yaml:"to"`
	Type  string `json:"type" yaml:"type"`
	Field string `json:"field,omitempty" yaml:"field,omitempty"`
}

// Relation types.
const (
	OneToOne   = "one-to-one"
	OneToMany  = "one-to-many"
	ManyToOne  = "many-to-one"
	ManyToMany = "many-to-many"
)

// KnownRelationType reports whether t is one of the four relation types.
func KnownRelationType(t string) bool {
	switch t {
	case OneToOne, OneToMany, ManyToOne, ManyToMany:
		return true
	}
	return false
}

// Field is the normalized form of one entity field.
type Field struct {
	Name      string
	Type      string
	Modifiers []string
}

// Token renders the field back to its "name:type:modifiers" form.
func (f Field) Token() string {
	parts := append([]string{f.Name, f.Type}, f.Modifiers...)
	return strings.Join(parts, ":")
}

// FieldList normalizes the two accepted field representations - a sequence
// of "name:type:modifiers" tokens, or a name->type mapping - into an ordered
// list of Fields at the model boundary. Mapping order is preserved because
// decoding walks the raw document nodes rather than a Go map.
type FieldList []Field

// Tokens renders the list as the space-joined token string handed to
// generators.
func (fl FieldList) Tokens() string {
	tokens := make([]string, len(fl))
	for i, f := range fl {
		tokens[i] = f.Token()
	}
	return strings.Join(tokens, " ")
}

// parseFieldToken splits "name:type:modifiers..." into a Field.
func parseFieldToken(token string) (Field, error) {
	parts := strings.Split(token, ":")
	if len(parts) < 2 || parts[0] == "" || parts[1] == "" {
		return Field{}, fmt.Errorf("invalid field token %q: expected 'name:type'", token)
	}
	f := Field{Name: parts[0], Type: parts[1]}
	if len(parts) > 2 {
		f.Modifiers = parts[2:]
	}
	return f, nil
}

// parseFieldValue parses a mapping value, which is a type optionally
// carrying modifiers ("string:unique").
func parseFieldValue(name, value string) (Field, error) {
	if name == "" || value == "" {
		return Field{}, fmt.Errorf("invalid field %q: empty name or type", name)
	}
	parts := strings.Split(value, ":")
	f := Field{Name: name, Type: parts[0]}
	if len(parts) > 1 {
		f.Modifiers = parts[1:]
	}
	return f, nil
}

// UnmarshalYAML accepts either field representation.
func (fl *FieldList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.SequenceNode:
		var tokens []string
		if err := value.Decode(&tokens); err != nil {
			return err
		}
		fields := make(FieldList, 0, len(tokens))
		for _, tok := range tokens {
			f, err := parseFieldToken(tok)
			if err != nil {
				return err
			}
			fields = append(fields, f)
		}
		*fl = fields
		return nil
	case yaml.MappingNode:
		fields := make(FieldList, 0, len(value.Content)/2)
		for i := 0; i+1 < len(value.Content); i += 2 {
			f, err := parseFieldValue(value.Content[i].Value, value.Content[i+1].Value)
			if err != nil {
				return err
			}
			fields = append(fields, f)
		}
		*fl = fields
		return nil
	default:
		return fmt.Errorf("fields must be a list of tokens or a name->type mapping (line %d)", value.Line)
	}
}

// UnmarshalJSON accepts either field representation. The mapping form is
// decoded token-by-token so declaration order survives.
func (fl *FieldList) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimLeftFunc(string(data), func(r rune) bool {
		return r == ' ' || r == '\t' || r == '\n' || r == '\r'
	})
	switch {
	case strings.HasPrefix(trimmed, "["):
		var tokens []string
		if err := json.Unmarshal(data, &tokens); err != nil {
			return err
		}
		fields := make(FieldList, 0, len(tokens))
		for _, tok := range tokens {
			f, err := parseFieldToken(tok)
			if err != nil {
				return err
			}
			fields = append(fields, f)
		}
		*fl = fields
		return nil
	case strings.HasPrefix(trimmed, "{"):
		dec := json.NewDecoder(strings.NewReader(trimmed))
		if _, err := dec.Token(); err != nil { // opening brace
			return err
		}
		var fields FieldList
		for dec.More() {
			keyTok, err := dec.Token()
			if err != nil {
				return err
			}
			name, _ := keyTok.(string)
			var value string
			if err := dec.Decode(&value); err != nil {
				return fmt.Errorf("field %q: type must be a string: %w", name, err)
			}
			f, err := parseFieldValue(name, value)
			if err != nil {
				return err
			}
			fields = append(fields, f)
		}
		*fl = fields
		return nil
	default:
		return fmt.Errorf("fields must be a list of tokens or a name->type mapping")
	}
}

// MarshalYAML writes the canonical token-list form.
func (fl FieldList) MarshalYAML() (any, error) {
	return fl.tokenSlice(), nil
}

// MarshalJSON writes the canonical token-list form.
func (fl FieldList) MarshalJSON() ([]byte, error) {
	return json.Marshal(fl.tokenSlice())
}

func (fl FieldList) tokenSlice() []string {
	tokens := make([]string, len(fl))
	for i, f := range fl {
		tokens[i] = f.Token()
	}
	return tokens
}

// EntityKey returns the qualified "module.Entity" identifier.
func EntityKey(module, entity string) string {
	return module + "." + entity
}

// LastSegment returns the final dot-segment of an entity reference.
func LastSegment(ref string) string {
	if i := strings.LastIndex(ref, "."); i >= 0 {
		return ref[i+1:]
	}
	return ref
}
