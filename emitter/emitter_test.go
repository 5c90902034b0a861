package emitter_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cognitoiq/xbgen/emitter"
	"github.com/cognitoiq/xbgen/targetast"
)

func TestEmitRecordAndProcedure(t *testing.T) {
	f := &targetast.File{
		Name: "widget.go",
		Kind: targetast.FileSource,
		Namespaces: []*targetast.Namespace{{
			Name: "widget",
			Declarations: []targetast.Declaration{
				&targetast.Record{
					Name: "Widget",
					Fields: []targetast.Field{
						{Name: "Name", TypeExpr: "string", Tag: `xml:"name"`},
						{Name: "Count", TypeExpr: "int32", Tag: `xml:"count"`},
					},
				},
				&targetast.Enum{
					Name: "Color",
					Variants: []targetast.EnumVariant{
						{Name: "Red", External: "red"},
						{Name: "Blue", External: "blue"},
					},
				},
				&targetast.Procedure{
					Name:       "Describe",
					ReturnExpr: "string",
					ParamsExpr: "w Widget",
					Body:       "return w.Name\n",
				},
			},
		}},
	}

	out, err := emitter.Emit(f)
	require.NoError(t, err)
	text := string(out)

	require.Contains(t, text, "package widget")
	require.Contains(t, text, "type Widget struct")
	require.Contains(t, text, "Name  string")
	require.Contains(t, text, "type Color string")
	require.Contains(t, text, "ColorRed  Color = \"red\"")
	require.Contains(t, text, "func Describe(w Widget) string")
}
