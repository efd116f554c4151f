// Package generate renders NestJS/TypeORM boilerplate from embedded
// templates. The executor drives it through the Generator interface and
// never sees template details.
package generate

import (
	"context"
	"os"
)

// Generator is the closed dispatch surface for planned steps: one method per
// step kind.
type Generator interface {
	GenerateModule(ctx context.Context, name string, opts ModuleOptions) error
	GenerateEntity(ctx context.Context, name string, opts EntityOptions) error
}

// FileWriter is the filesystem capability generators write through. A
// *txn.Scope satisfies it, giving batch runs rollback semantics.
type FileWriter interface {
	WriteFile(path string, data []byte, perm os.FileMode) error
	MkdirAll(path string, perm os.FileMode) error
}

// ModuleOptions configures module generation.
type ModuleOptions struct {
	Path       string // project root
	SourceRoot string // source directory under Path; defaults to "src"
}

// EntityOptions configures entity generation.
type EntityOptions struct {
	Path        string
	SourceRoot  string // source directory under Path; defaults to "src"
	Module      string // owning module; defaults to the pluralized entity name
	Fields      string // space-joined "name:type:modifiers" tokens
	WithTests   bool
	WithGraphql bool
	WithEvents  bool
	WithQueries bool
}

// Field is one parsed entity field with its TypeScript/TypeORM mapping.
type Field struct {
	Name       string // camelCase property name
	TsType     string
	ColumnType string
	Validator  string // class-validator decorator name
	Nullable   bool
	Unique     bool
	Indexed    bool
}
