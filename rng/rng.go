// Package rng defines the RELAX NG pattern IR (§4.4): the common tree
// that both the XML-syntax parser (rngx) and the compact-syntax parser
// (rngc) build, and that Simplify rewrites into the reduced form
// rngtranslate projects onto the Schema IR.
package rng

// PatternKind discriminates the variants of a Pattern.
type PatternKind int

const (
	PatternEmpty PatternKind = iota
	PatternNotAllowed
	PatternText
	PatternData
	PatternValue
	PatternList
	PatternAttribute
	PatternElement
	PatternGroup
	PatternInterleave
	PatternChoice
	PatternOptional
	PatternZeroOrMore
	PatternOneOrMore
	PatternMixed
	PatternRef
	PatternParentRef
	PatternExternalRef
	PatternGrammar
)

// DataParam is a <param name="…">value</param> child of a data pattern.
type DataParam struct {
	Name  string
	Value string
}

// CombineMethod is how a grammar merges multiple defines (or starts)
// sharing one name.
type CombineMethod int

const (
	CombineNone CombineMethod = iota
	CombineChoice
	CombineInterleave
)

// Define is a single grammar production: "name = body" (or "name |=
// body" / "name &= body" when Combine is set).
type Define struct {
	Name    string
	Combine CombineMethod
	Body    *Pattern
}

// IncludeDirective is a grammar's <include href="…"> directive: the
// referenced file's grammar with this grammar's defines/start
// overriding the included ones. The parsers record it as written;
// Simplify does not fetch or merge the referenced grammar (its Resolver
// expands externalRef only), and the grammar it returns has no Includes.
type IncludeDirective struct {
	Href      string
	NS        string
	Overrides []Define
	Start     *Pattern
}

// Pattern is a node in the RELAX NG pattern tree. Only the fields
// relevant to Kind are populated; this mirrors the schema package's
// Particle/Wildcard tagged-union style rather than a Go type switch
// over distinct concrete types, since every front-end and the
// simplifier need to rewrite nodes in place.
type Pattern struct {
	Kind PatternKind

	// PatternAttribute / PatternElement
	Name    NameClass
	Content *Pattern

	// PatternGroup / PatternInterleave / PatternChoice
	Left, Right *Pattern

	// PatternData
	DatatypeLibrary string
	DataType        string
	Params          []DataParam
	Except          *Pattern

	// PatternValue
	Value   string
	ValueNS string

	// PatternRef / PatternParentRef
	RefName string

	// PatternExternalRef
	Href string
	NS   string

	// PatternGrammar
	Start    *Pattern
	Defines  []Define
	Includes []IncludeDirective
}

// NameClassKind discriminates the variants of a NameClass.
type NameClassKind int

const (
	NameSpecific NameClassKind = iota
	NameAny
	NameNsName
	NameChoice
)

// NameClass is a RELAX NG name class: a specific qname, anyName
// (optionally excepting a nested class), nsName (optionally
// excepting), or a choice between two name classes.
type NameClass struct {
	Kind NameClassKind

	// NameSpecific
	NS, Local string

	// NameAny / NameNsName
	Except *NameClass

	// NameChoice
	Left, Right *NameClass
}
