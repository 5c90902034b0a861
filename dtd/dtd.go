// Package dtd implements §4.5: parsing a DTD document into its own
// small IR and translating that IR onto the Schema IR (schema.Set), the
// same target codegen consumes regardless of which front-end produced
// it. Grounded on original_source/src/lib/dtd_parser.cpp.
package dtd

// ContentKind classifies an <!ELEMENT ...> declaration's content spec.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentAny
	ContentMixed
	ContentChildren
)

// ParticleKind discriminates a children content model's particle tree.
type ParticleKind int

const (
	ParticleName ParticleKind = iota
	ParticleSequence
	ParticleChoice
)

// Quantifier is a content particle's trailing */+/? operator.
type Quantifier int

const (
	QuantifierOne Quantifier = iota
	QuantifierZeroOrMore
	QuantifierOneOrMore
	QuantifierOptional
)

// ContentParticle is a node in a children content model: either a leaf
// element-name reference or a sequence/choice group of children.
type ContentParticle struct {
	Kind       ParticleKind
	Name       string
	Children   []ContentParticle
	Quantifier Quantifier
}

// ContentSpec is an <!ELEMENT ...> declaration's content model.
type ContentSpec struct {
	Kind       ContentKind
	Particle   *ContentParticle // set when Kind == ContentChildren
	MixedNames []string         // set when Kind == ContentMixed
}

// ElementDecl is a single <!ELEMENT name content-spec> declaration.
type ElementDecl struct {
	Name    string
	Content ContentSpec
}

// AttributeType is an ATTLIST attribute's declared type.
type AttributeType int

const (
	AttributeCDATA AttributeType = iota
	AttributeID
	AttributeIDREF
	AttributeIDREFS
	AttributeEntity
	AttributeEntities
	AttributeNMToken
	AttributeNMTokens
	AttributeNotation
	AttributeEnumeration
)

// DefaultKind is an ATTLIST attribute's default-value declaration.
type DefaultKind int

const (
	DefaultImplied DefaultKind = iota
	DefaultRequired
	DefaultFixed
	DefaultValue
)

// AttributeDef is a single attribute definition inside an <!ATTLIST ...>
// declaration.
type AttributeDef struct {
	Name         string
	Type         AttributeType
	EnumValues   []string // set when Type is Notation or Enumeration
	DefaultKind  DefaultKind
	DefaultValue string // set when DefaultKind is Fixed or Value
}

// AttlistDecl is a single <!ATTLIST element-name attribute-def+> block.
type AttlistDecl struct {
	ElementName string
	Attributes  []AttributeDef
}

// EntityDecl is a single <!ENTITY ...> declaration, general or
// parameter.
type EntityDecl struct {
	Name        string
	IsParameter bool
	Value       string
	SystemID    string
	PublicID    string
}

// Document is a fully-parsed DTD: the element, attribute-list, and
// entity declarations it contains, in declaration order.
type Document struct {
	Elements []ElementDecl
	Attlists []AttlistDecl
	Entities []EntityDecl
}
