package schema

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

const jsonSchema = `{
  "version": "1",
  "modules": [
    {
      "name": "users",
      "entities": [
        {"name": "User", "fields": ["email:string:unique", "name:string"]}
      ]
    }
  ]
}`

const yamlSchema = `version: "1"
modules:
  - name: users
    entities:
      - name: User
        fields:
          email: string
          name: string
`

func TestLoadJSON(t *testing.T) {
	path := writeTemp(t, "schema.json", jsonSchema)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if s.Version != "1" {
		t.Errorf("Version = %q, want 1", s.Version)
	}
	if len(s.Modules) != 1 || s.Modules[0].Name != "users" {
		t.Fatalf("unexpected modules: %+v", s.Modules)
	}
	if got := s.Modules[0].Entities[0].Fields.Tokens(); got != "email:string:unique name:string" {
		t.Errorf("Fields.Tokens() = %q", got)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeTemp(t, "schema.yaml", yamlSchema)

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got := s.Modules[0].Entities[0].Fields.Tokens(); got != "email:string name:string" {
		t.Errorf("Fields.Tokens() = %q", got)
	}
}

func TestLoadUnknownExtensionFallsBack(t *testing.T) {
	// YAML content under an unknown extension parses via the YAML attempt.
	yamlPath := writeTemp(t, "schema.conf", yamlSchema)
	if _, err := Load(yamlPath); err != nil {
		t.Errorf("Load(.conf with YAML) failed: %v", err)
	}

	// JSON is a YAML subset, so the fallback chain still lands on a parse.
	jsonPath := writeTemp(t, "schema.txt", jsonSchema)
	if _, err := Load(jsonPath); err != nil {
		t.Errorf("Load(.txt with JSON) failed: %v", err)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.json"))
	if err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestLoadMalformed(t *testing.T) {
	path := writeTemp(t, "bad.json", `{"version": `)
	if _, err := Load(path); err == nil {
		t.Fatal("expected parse error, got nil")
	}
}
