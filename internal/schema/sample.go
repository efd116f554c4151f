package schema

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Sample returns an example schema demonstrating both field forms and the
// relation types that affect generation order.
func Sample() *Schema {
	return &Schema{
		Version: "1",
		Project: "shop-api",
		Modules: []Module{
			{
				Name: "users",
				Entities: []Entity{
					{
						Name: "User",
						Fields: FieldList{
							{Name: "email", Type: "string", Modifiers: []string{"unique"}},
							{Name: "name", Type: "string"},
							{Name: "active", Type: "boolean"},
						},
						Options: map[string]any{"withTests": true},
					},
					{
						Name: "Profile",
						Fields: FieldList{
							{Name: "bio", Type: "text"},
							{Name: "avatarUrl", Type: "string", Modifiers: []string{"nullable"}},
						},
					},
				},
			},
			{
				Name: "orders",
				Entities: []Entity{
					{
						Name: "Order",
						Fields: FieldList{
							{Name: "total", Type: "int"},
							{Name: "placedAt", Type: "date"},
						},
					},
				},
			},
		},
		Relations: []Relation{
			{From: "users.Profile", To: "users.User", Type: OneToOne, Field: "user"},
			{From: "orders.Order", To: "users.User", Type: ManyToOne, Field: "customer"},
		},
	}
}

// WriteSample writes the sample schema to path in the given format
// ("json" or "yaml").
func WriteSample(path, format string) error {
	s := Sample()

	var (
		data []byte
		err  error
	)
	switch format {
	case "json":
		data, err = json.MarshalIndent(s, "", "  ")
	case "yaml", "yml":
		data, err = yaml.Marshal(s)
	default:
		return fmt.Errorf("unknown sample format %q (valid: json, yaml)", format)
	}
	if err != nil {
		return fmt.Errorf("failed to marshal sample schema: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write sample schema: %w", err)
	}
	return nil
}
