package xmlio

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/cognitoiq/xbgen/schema"
)

// DecoderReader adapts an *xml.Decoder to the Reader interface.
type DecoderReader struct {
	dec   *xml.Decoder
	depth int
	node  NodeType
	name  schema.QName
	text  string
	attrs []xml.Attr
}

// NewDecoderReader wraps r as a pull-based xmlio.Reader.
func NewDecoderReader(r io.Reader) *DecoderReader {
	return &DecoderReader{dec: xml.NewDecoder(r)}
}

func (d *DecoderReader) Read() (bool, error) {
	for {
		tok, err := d.dec.Token()
		if err == io.EOF {
			return false, nil
		}
		if err != nil {
			return false, fmt.Errorf("xmlio: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			d.depth++
			d.node = NodeStartElement
			d.name = schema.QName{Namespace: t.Name.Space, Local: t.Name.Local}
			d.attrs = t.Attr
			return true, nil
		case xml.EndElement:
			d.node = NodeEndElement
			d.name = schema.QName{Namespace: t.Name.Space, Local: t.Name.Local}
			d.depth--
			return true, nil
		case xml.CharData:
			if strings.TrimSpace(string(t)) == "" {
				continue
			}
			d.node = NodeCharacters
			d.text = string(t)
			return true, nil
		default:
			continue
		}
	}
}

func (d *DecoderReader) NodeType() NodeType { return d.node }
func (d *DecoderReader) Name() schema.QName { return d.name }
func (d *DecoderReader) Text() string       { return d.text }
func (d *DecoderReader) Depth() int         { return d.depth }
func (d *DecoderReader) AttributeCount() int { return len(d.attrs) }

func (d *DecoderReader) AttributeName(i int) schema.QName {
	return schema.QName{Namespace: d.attrs[i].Name.Space, Local: d.attrs[i].Name.Local}
}

func (d *DecoderReader) AttributeValue(i int) string { return d.attrs[i].Value }

func (d *DecoderReader) AttributeValueByName(name schema.QName) (string, bool) {
	for _, a := range d.attrs {
		if a.Name.Local == name.Local && (name.Namespace == "" || a.Name.Space == name.Namespace) {
			return a.Value, true
		}
	}
	return "", false
}

// NamespaceURIForPrefix always reports not-found: encoding/xml resolves
// prefixes into each Name's Space field as it scans, so by the time a
// StartElement or attribute is visible its namespace is already the
// resolved URI and there is no separate prefix table left to query.
func (d *DecoderReader) NamespaceURIForPrefix(prefix string) (string, bool) {
	return "", false
}

// EncoderWriter adapts an *xml.Encoder-style token stream to the Writer
// interface, queuing NamespaceDeclaration calls so they surface as
// xmlns attributes on the next StartElement.
type EncoderWriter struct {
	w        io.Writer
	enc      *xml.Encoder
	pending  []xml.Attr
	pendingNS []xml.Attr
	elements []xml.Name
}

// NewEncoderWriter wraps w as an xmlio.Writer.
func NewEncoderWriter(w io.Writer) *EncoderWriter {
	return &EncoderWriter{w: w, enc: xml.NewEncoder(w)}
}

func (e *EncoderWriter) StartElement(name schema.QName) error {
	xname := xml.Name{Space: name.Namespace, Local: name.Local}
	attrs := append([]xml.Attr{}, e.pendingNS...)
	attrs = append(attrs, e.pending...)
	e.pending = nil
	e.pendingNS = nil
	e.elements = append(e.elements, xname)
	return e.enc.EncodeToken(xml.StartElement{Name: xname, Attr: attrs})
}

func (e *EncoderWriter) EndElement() error {
	if len(e.elements) == 0 {
		return fmt.Errorf("xmlio: EndElement with no open element")
	}
	name := e.elements[len(e.elements)-1]
	e.elements = e.elements[:len(e.elements)-1]
	return e.enc.EncodeToken(xml.EndElement{Name: name})
}

func (e *EncoderWriter) Attribute(name schema.QName, value string) error {
	e.pending = append(e.pending, xml.Attr{Name: xml.Name{Space: name.Namespace, Local: name.Local}, Value: value})
	return nil
}

func (e *EncoderWriter) NamespaceDeclaration(prefix, uri string) error {
	local := "xmlns"
	if prefix != "" {
		local = "xmlns:" + prefix
	}
	e.pendingNS = append(e.pendingNS, xml.Attr{Name: xml.Name{Local: local}, Value: uri})
	return nil
}

func (e *EncoderWriter) Characters(s string) error {
	return e.enc.EncodeToken(xml.CharData([]byte(s)))
}

// Flush flushes any buffered encoder output. Callers must call Flush
// after the last Writer call to guarantee bytes reach the sink.
func (e *EncoderWriter) Flush() error {
	return e.enc.Flush()
}
