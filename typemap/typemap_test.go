package typemap

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultLookup(t *testing.T) {
	m := Default()
	e, ok := m.Lookup("int")
	require.True(t, ok)
	assert.Equal(t, "int32", e.GoType)

	e, ok = m.Lookup("dayTimeDuration")
	require.True(t, ok)
	assert.Equal(t, "xtime.DayTimeDuration", e.GoType)
}

func TestLoadOverridesKnownType(t *testing.T) {
	doc := `<typemap xmlns="http://xb.dev/typemap">
		<mapping xsd-type="int" cpp-type="MyInt" cpp-header="example.com/myint"/>
	</typemap>`
	m, err := Load(strings.NewReader(doc))
	require.NoError(t, err)
	e, ok := m.Lookup("int")
	require.True(t, ok)
	assert.Equal(t, "MyInt", e.GoType)
}

func TestLoadRejectsUnknownType(t *testing.T) {
	doc := `<typemap xmlns="http://xb.dev/typemap">
		<mapping xsd-type="bogus" cpp-type="X" cpp-header=""/>
	</typemap>`
	_, err := Load(strings.NewReader(doc))
	assert.Error(t, err)
}
