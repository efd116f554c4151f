package generate

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"
	"text/template"

	"github.com/go-openapi/inflect"

	"github.com/example/nestforge/internal/templates/nest"
)

// NestGenerator generates NestJS/TypeORM code from embedded templates,
// writing through an injected FileWriter.
type NestGenerator struct {
	fs    FileWriter
	funcs template.FuncMap
}

// NewNestGenerator creates a new NestGenerator writing through fs.
func NewNestGenerator(fs FileWriter) *NestGenerator {
	return &NestGenerator{
		fs:    fs,
		funcs: nest.TemplateFuncs(),
	}
}

// entityModel is the data handed to entity templates.
type entityModel struct {
	ClassName   string // PascalCase: "UserProfile"
	FileBase    string // kebab-case: "user-profile"
	VarName     string // camelCase: "userProfile"
	PluralVar   string // "userProfiles"
	PluralClass string // "UserProfiles"
	Route       string // REST route: "user-profiles"
	TableName   string // snake_case plural: "user_profiles"
	Fields      []Field
}

func buildEntityModel(name string, fields []Field) entityModel {
	snake := inflect.Underscore(name)
	kebab := inflect.Dasherize(snake)
	return entityModel{
		ClassName:   inflect.Camelize(snake),
		FileBase:    kebab,
		VarName:     inflect.CamelizeDownFirst(snake),
		PluralVar:   inflect.Pluralize(inflect.CamelizeDownFirst(snake)),
		PluralClass: inflect.Pluralize(inflect.Camelize(snake)),
		Route:       inflect.Pluralize(kebab),
		TableName:   inflect.Pluralize(snake),
		Fields:      fields,
	}
}

// sourceRoot returns the configured source directory, defaulting to "src".
func sourceRoot(root string) string {
	if root == "" {
		return "src"
	}
	return root
}

// GenerateModule emits the module file under <path>/<sourceRoot>/<module>/.
func (g *NestGenerator) GenerateModule(ctx context.Context, name string, opts ModuleOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("module name is required")
	}

	base := inflect.Dasherize(inflect.Underscore(name))
	dir := filepath.Join(opts.Path, sourceRoot(opts.SourceRoot), base)
	if err := g.fs.MkdirAll(dir, 0755); err != nil {
		return err
	}

	data := struct{ ClassName string }{ClassName: inflect.Camelize(inflect.Underscore(name))}
	content, err := g.render("module", data)
	if err != nil {
		return err
	}
	return g.fs.WriteFile(filepath.Join(dir, base+".module.ts"), []byte(content), 0644)
}

// GenerateEntity emits the full entity stack under
// <path>/<sourceRoot>/<module>/<entity>/: entity, DTOs, service, controller,
// repository, module wiring, plus the optional spec/resolver/events/queries
// files.
func (g *NestGenerator) GenerateEntity(ctx context.Context, name string, opts EntityOptions) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if name == "" {
		return fmt.Errorf("entity name is required")
	}

	fields, err := ParseFields(opts.Fields)
	if err != nil {
		return fmt.Errorf("entity %s: %w", name, err)
	}
	model := buildEntityModel(name, fields)

	moduleDir := opts.Module
	if moduleDir == "" {
		moduleDir = model.Route
	} else {
		moduleDir = inflect.Dasherize(inflect.Underscore(moduleDir))
	}
	base := filepath.Join(opts.Path, sourceRoot(opts.SourceRoot), moduleDir, model.FileBase)

	for _, dir := range []string{base, filepath.Join(base, "entities"), filepath.Join(base, "dto")} {
		if err := g.fs.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}

	files := []struct {
		template string
		path     string
		enabled  bool
	}{
		{"entity", filepath.Join(base, "entities", model.FileBase+".entity.ts"), true},
		{"dto-create", filepath.Join(base, "dto", "create-"+model.FileBase+".dto.ts"), true},
		{"dto-update", filepath.Join(base, "dto", "update-"+model.FileBase+".dto.ts"), true},
		{"service", filepath.Join(base, model.FileBase+".service.ts"), true},
		{"controller", filepath.Join(base, model.FileBase+".controller.ts"), true},
		{"repository", filepath.Join(base, model.FileBase+".repository.ts"), true},
		{"entity-module", filepath.Join(base, model.FileBase+".module.ts"), true},
		{"service.spec", filepath.Join(base, model.FileBase+".service.spec.ts"), opts.WithTests},
		{"resolver", filepath.Join(base, model.FileBase+".resolver.ts"), opts.WithGraphql},
		{"events", filepath.Join(base, model.FileBase+".events.ts"), opts.WithEvents},
		{"queries", filepath.Join(base, model.FileBase+".queries.ts"), opts.WithQueries},
	}

	for _, f := range files {
		if !f.enabled {
			continue
		}
		content, err := g.render(f.template, model)
		if err != nil {
			return fmt.Errorf("entity %s: %w", name, err)
		}
		if err := g.fs.WriteFile(f.path, []byte(content), 0644); err != nil {
			return err
		}
	}

	return nil
}

// render parses and executes a named nest template.
func (g *NestGenerator) render(name string, data any) (string, error) {
	tmplContent, err := nest.GetTemplate(name)
	if err != nil {
		return "", fmt.Errorf("failed to load template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(g.funcs).Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to render template %s: %w", name, err)
	}
	return buf.String(), nil
}
