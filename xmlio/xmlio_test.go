package xmlio

import (
	"bytes"
	"strings"
	"testing"

	"github.com/cognitoiq/xbgen/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecoderReaderWalksElements(t *testing.T) {
	r := NewDecoderReader(strings.NewReader(`<order id="A1"><symbol>AAPL</symbol></order>`))

	ok, err := r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, NodeStartElement, r.NodeType())
	assert.Equal(t, "order", r.Name().Local)
	v, found := r.AttributeValueByName(schema.QName{Local: "id"})
	require.True(t, found)
	assert.Equal(t, "A1", v)

	ok, err = r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "symbol", r.Name().Local)

	ok, err = r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, NodeCharacters, r.NodeType())
	assert.Equal(t, "AAPL", r.Text())
}

func TestEncoderWriterRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	w := NewEncoderWriter(&buf)
	require.NoError(t, w.StartElement(schema.QName{Local: "order"}))
	require.NoError(t, w.Attribute(schema.QName{Local: "id"}, "A1"))
	require.NoError(t, w.StartElement(schema.QName{Local: "symbol"}))
	require.NoError(t, w.Characters("AAPL"))
	require.NoError(t, w.EndElement())
	require.NoError(t, w.EndElement())
	require.NoError(t, w.Flush())

	r := NewDecoderReader(strings.NewReader(buf.String()))
	ok, err := r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "order", r.Name().Local)
	v, found := r.AttributeValueByName(schema.QName{Local: "id"})
	require.True(t, found)
	assert.Equal(t, "A1", v)
}

func TestSkipElementConsumesChildren(t *testing.T) {
	r := NewDecoderReader(strings.NewReader(`<outer><a><b/></a><after/></outer>`))
	ok, err := r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "outer", r.Name().Local)

	ok, err = r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "a", r.Name().Local)

	require.NoError(t, SkipElement(r))

	ok, err = r.Read()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "after", r.Name().Local)
}
