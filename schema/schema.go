// Package schema defines the Schema IR: the single normalized
// representation that every front-end (XSD, RELAX NG, DTD) translates
// into, and that codegen consumes. Nothing in this package knows about
// XSD, RELAX NG, or DTD syntax.
package schema

// QName is a namespace-qualified name. The empty Namespace denotes no
// namespace, distinct from the target namespace of the defining schema.
type QName struct {
	Namespace string
	Local     string
}

func (q QName) String() string {
	if q.Namespace == "" {
		return q.Local
	}
	return "{" + q.Namespace + "}" + q.Local
}

// Occurs describes a particle's minOccurs/maxOccurs. Unbounded is
// represented by MaxUnbounded.
type Occurs struct {
	Min uint32
	Max uint32
}

// MaxUnbounded marks an Occurs.Max value as unbounded.
const MaxUnbounded = ^uint32(0)

// Unbounded reports whether o has no upper bound.
func (o Occurs) Unbounded() bool { return o.Max == MaxUnbounded }

// Derivation distinguishes extension from restriction when flattening a
// complex type against its base.
type Derivation int

const (
	DerivationNone Derivation = iota
	DerivationExtension
	DerivationRestriction
)

// ContentKind classifies the content model of a complex type.
type ContentKind int

const (
	ContentEmpty ContentKind = iota
	ContentSimple
	ContentElementOnly
	ContentMixed
)

// ContentType is the content model portion of a ComplexType.
type ContentType struct {
	Kind        ContentKind
	SimpleType  *SimpleType // set when Kind == ContentSimple
	Particle    *Particle   // root particle when Kind is ElementOnly or Mixed
	OpenContent *OpenContent
}

// OpenContentMode is the xs:openContent mode (none/interleave/suffix).
type OpenContentMode int

const (
	OpenContentNone OpenContentMode = iota
	OpenContentInterleave
	OpenContentSuffix
)

// OpenContent captures xs:openContent / xs:defaultOpenContent.
type OpenContent struct {
	Mode     OpenContentMode
	Wildcard *Wildcard
}

// ProcessContents is the xs:anyAttribute/xs:any processContents value.
type ProcessContents int

const (
	ProcessStrict ProcessContents = iota
	ProcessLax
	ProcessSkip
)

// Wildcard represents xs:any / xs:anyAttribute.
type Wildcard struct {
	Namespaces      []string // "##any", "##other", "##local", "##targetNamespace", or explicit URIs
	NotQName        []QName
	ProcessContents ProcessContents
}

// ParticleKind discriminates the variants of a Particle.
type ParticleKind int

const (
	ParticleElement ParticleKind = iota
	ParticleGroup
	ParticleWildcard
)

// Particle is a node in a content model tree: either a single element
// reference, a model group (sequence/choice/all), or a wildcard.
type Particle struct {
	Kind     ParticleKind
	Occurs   Occurs
	Element  *ElementDecl // set when Kind == ParticleElement
	Group    *ModelGroup  // set when Kind == ParticleGroup
	Wildcard *Wildcard    // set when Kind == ParticleWildcard
}

// GroupCompositor is the sequence/choice/all/interleave discipline of a
// ModelGroup. Interleave only arises from RELAX NG translation.
type GroupCompositor int

const (
	CompositorSequence GroupCompositor = iota
	CompositorChoice
	CompositorAll
	CompositorInterleave
)

// ModelGroup is an ordered collection of child particles under a
// compositor.
type ModelGroup struct {
	Compositor GroupCompositor
	Particles  []*Particle
}

// TypeAlternative is an XSD 1.1 conditional type alternative (CTA): a
// narrow XPath test paired with the type to use when it matches.
type TypeAlternative struct {
	Test    *Assertion // nil for the final, unconditional alternative
	Type    QName
	Inline  *ComplexType // set when the alternative names an anonymous type
}

// AssertionKind distinguishes the role an assertion plays.
type AssertionKind int

const (
	AssertionComplexType AssertionKind = iota
	AssertionSimpleType
)

// Assertion is an XSD 1.1 xs:assert or xs:assertion: a narrow XPath
// boolean test evaluated against the element or its value.
type Assertion struct {
	Kind AssertionKind
	Test string // narrow XPath source, e.g. "@currency = 'USD'"
}

// ElementDecl is a top-level or local element declaration.
type ElementDecl struct {
	Name             QName
	Type             QName
	InlineType       *ComplexType // set for an anonymous complex type
	InlineSimpleType *SimpleType  // set for an anonymous simple type
	Nillable         bool
	Abstract         bool
	SubstitutionHead *QName
	Alternatives     []TypeAlternative
	Fixed            *string
	Default          *string
}

// AttributeUseKind is how an attribute participates in a complex type:
// required, optional, or prohibited.
type AttributeUseKind int

const (
	UseOptional AttributeUseKind = iota
	UseRequired
	UseProhibited
)

// AttributeDecl is a top-level or local attribute declaration.
type AttributeDecl struct {
	Name    QName
	Type    QName
	Use     AttributeUseKind
	Fixed   *string
	Default *string
}

// AttributeParticle is one entry of a complex type's attribute list:
// either a declaration (Attribute) or an attribute wildcard (Wildcard).
// It has no attribute-group form; xsdparse expands an attributeGroup
// reference into the group's own entries.
type AttributeParticle struct {
	Attribute *AttributeDecl
	Wildcard  *Wildcard
}

// SimpleTypeVariety distinguishes atomic, list, and union simple types.
type SimpleTypeVariety int

const (
	VarietyAtomic SimpleTypeVariety = iota
	VarietyList
	VarietyUnion
)

// SimpleType is an XSD simple type: atomic (restricting a builtin or
// another simple type), list (items of ItemType), or union (one of
// Members).
type SimpleType struct {
	Name        QName
	Variety     SimpleTypeVariety
	Base        QName   // atomic: the type being restricted
	ItemType    QName   // list: the member item type
	Members     []QName // union: the candidate member types
	Enumeration []string
	Pattern     []string
	MinInclusive, MaxInclusive *string
	MinExclusive, MaxExclusive *string
	TotalDigits, FractionDigits *uint32
	Length, MinLength, MaxLength *uint32
	WhiteSpace WhiteSpaceMode
}

// WhiteSpaceMode is the xs:whiteSpace facet value.
type WhiteSpaceMode int

const (
	WhiteSpacePreserve WhiteSpaceMode = iota
	WhiteSpaceReplace
	WhiteSpaceCollapse
)

// ComplexType is an XSD complex type definition, already holding its own
// local content model; flattening against Derivation/Base happens in
// codegen, not here, so the IR keeps the inheritance explicit.
type ComplexType struct {
	Name        QName
	Abstract    bool
	Mixed       bool
	Derivation  Derivation
	Base        QName
	Content     ContentType
	Attributes  []AttributeParticle
	OpenContent *OpenContent
	Asserts     []Assertion
}

// Set is a fully-parsed and resolved collection of schema components,
// the output of every front-end translator and the input to codegen.
type Set struct {
	TargetNamespace string
	Elements        map[QName]*ElementDecl
	Attributes      map[QName]*AttributeDecl
	SimpleTypes     map[QName]*SimpleType
	ComplexTypes    map[QName]*ComplexType
	ModelGroups     map[QName]*ModelGroup
	AttributeGroups map[QName][]AttributeParticle

	resolved bool
}

// New returns an empty Set ready for front-ends to populate.
func New(targetNamespace string) *Set {
	return &Set{
		TargetNamespace: targetNamespace,
		Elements:        make(map[QName]*ElementDecl),
		Attributes:      make(map[QName]*AttributeDecl),
		SimpleTypes:     make(map[QName]*SimpleType),
		ComplexTypes:    make(map[QName]*ComplexType),
		ModelGroups:     make(map[QName]*ModelGroup),
		AttributeGroups: make(map[QName][]AttributeParticle),
	}
}
