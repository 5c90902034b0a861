// Package targetast is the language-neutral presentation of generated
// code that codegen produces and emitter consumes. Names retain the
// cpp_* vocabulary of the IR this was modeled on as internal tags; the
// emitter renders them as Go regardless of the literal tag names.
package targetast

// FileKind distinguishes a declaring file from a defining one, mirroring
// the header/source split codegen's split output mode uses.
type FileKind int

const (
	FileHeader FileKind = iota
	FileSource
)

// File is a cpp_file: one emitted compilation unit.
type File struct {
	Name       string
	Kind       FileKind
	Includes   []string
	Namespaces []*Namespace
}

// Namespace is a cpp_namespace: a dotted/nested module path holding an
// ordered list of declarations.
type Namespace struct {
	Name         string
	Declarations []Declaration
}

// Declaration is implemented by every declaration variant: Record,
// Enum, Alias, Forward, Procedure.
type Declaration interface {
	declName() string
}

// Record is a struct-shaped declaration with an ordered field list.
type Record struct {
	Name           string
	Fields         []Field
	GenerateEquals bool
}

func (r *Record) declName() string { return r.Name }

// EnumVariant pairs a Go-identifier variant name with the external
// string it marshals to/from.
type EnumVariant struct {
	Name     string
	External string
}

// Enum is a sum type over a fixed set of named string variants.
type Enum struct {
	Name     string
	Variants []EnumVariant
}

func (e *Enum) declName() string { return e.Name }

// Alias is a type alias: Name = TargetExpr.
type Alias struct {
	Name       string
	TargetExpr string
}

func (a *Alias) declName() string { return a.Name }

// Forward is a forward reference to a type declared elsewhere in the
// same file. The emitter accepts it; codegen's depth-first ordering
// pass does not produce one.
type Forward struct {
	Name string
}

func (f *Forward) declName() string { return f.Name }

// Procedure is a function/method declaration. Inline procedures are
// rendered with a body in header-only mode; Inline=false procedures
// split their declaration and definition across header/source files.
type Procedure struct {
	Name       string
	ReturnExpr string
	ParamsExpr string
	Receiver   string
	Body       string
	Inline     bool
	Doc        string
}

func (p *Procedure) declName() string { return p.Name }

// Field is one struct field: a type expression, a name, and an
// optional default-value expression copied verbatim from the schema.
type Field struct {
	TypeExpr string
	Name     string
	Default  string
	Tag      string
}
