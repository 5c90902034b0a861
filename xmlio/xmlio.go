// Package xmlio defines the abstract pull-reader and event-writer
// interfaces that generated serialization/deserialization code depends
// on (§6.1/§6.2), plus a concrete encoding/xml-backed implementation of
// each. Generated code is written against Reader/Writer, not against
// encoding/xml directly, so a future binding (e.g. an expat-style
// streaming parser) can be substituted without touching codegen output.
package xmlio

import "github.com/cognitoiq/xbgen/schema"

// NodeType is the kind of the current pull-reader event.
type NodeType int

const (
	NodeNone NodeType = iota
	NodeStartElement
	NodeEndElement
	NodeCharacters
)

// Reader is the abstract XML pull reader consumed by generated
// read_<T> procedures.
type Reader interface {
	// Read advances to the next event, reporting false at EOF.
	Read() (bool, error)
	NodeType() NodeType
	// Name is valid at NodeStartElement/NodeEndElement.
	Name() schema.QName
	// Text is valid at NodeCharacters.
	Text() string
	// Depth is the nesting depth; a start element raises it, an end
	// element lowers it.
	Depth() int
	AttributeCount() int
	AttributeName(i int) schema.QName
	AttributeValue(i int) string
	// AttributeValueByName looks up an attribute by qname on the
	// current start element, returning "", false if absent.
	AttributeValueByName(name schema.QName) (string, bool)
	// NamespaceURIForPrefix resolves prefix against the scope visible
	// at the current node.
	NamespaceURIForPrefix(prefix string) (string, bool)
}

// Writer is the abstract XML event writer consumed by generated
// write_<T> procedures.
type Writer interface {
	StartElement(name schema.QName) error
	EndElement() error
	Attribute(name schema.QName, value string) error
	NamespaceDeclaration(prefix, uri string) error
	Characters(s string) error
}

// SkipElement consumes events through the matching end element for the
// start element the reader is currently positioned at, used by
// generated deserializers to discard unmatched open-content children.
func SkipElement(r Reader) error {
	depth := r.Depth()
	for {
		ok, err := r.Read()
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		if r.NodeType() == NodeEndElement && r.Depth() < depth {
			return nil
		}
	}
}
