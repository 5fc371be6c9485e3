package markdown

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"

	"github.com/platinummonkey/spokedoc/pkg/schema"
)

func samplePage() *Page {
	stringKind := schema.FieldType{Kind: descriptorpb.FieldDescriptorProto_TYPE_STRING}
	req := &schema.MessageType{
		Name:        "GetUserRequest",
		Package:     "a",
		Description: "Asks for one user.",
		Fields: []*schema.Field{
			{Name: "id", Number: 1, Type: stringKind, LeadingComments: "The user id."},
		},
	}
	resp := &schema.MessageType{
		Name:    "User",
		Package: "a",
		Fields: []*schema.Field{
			{Name: "id", Number: 1, Type: stringKind},
			{Name: "name", Number: 2, Type: stringKind},
		},
	}
	method := &schema.Method{
		Name:        "GetUser",
		CallType:    schema.Unary,
		Description: "Fetches a user.",
		Input:       req,
		Output:      resp,
	}
	svc := &schema.Service{
		Name:        "UserService",
		Package:     "a",
		Description: "Manages users.",
		Methods:     []*schema.Method{method},
	}
	return &Page{
		Source: "a/user.proto",
		Services: []*ServiceView{
			{
				Service: svc,
				Methods: []*MethodView{
					{
						Method:      method,
						InputTypes:  []schema.Type{req},
						OutputTypes: []schema.Type{resp},
					},
				},
			},
		},
	}
}

func TestRenderPage_Default(t *testing.T) {
	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.RenderPage(samplePage())
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(out, "# a/user.proto\n"), "page starts with the source heading")
	assert.Contains(t, out, "## UserService")
	assert.Contains(t, out, "Manages users.")
	assert.Contains(t, out, "### GetUser")
	assert.Contains(t, out, "`unary`")
	assert.Contains(t, out, "Fetches a user.")
	assert.Contains(t, out, "**Request:** `GetUserRequest`")
	assert.Contains(t, out, "**Response:** `User`")
	assert.Contains(t, out, "//Asks for one user.\nmessage GetUserRequest {")
	assert.Contains(t, out, "  //The user id.\n  string id = 1;")
	assert.NotContains(t, out, "(deprecated)")
}

func TestRenderPage_DeprecatedMarkers(t *testing.T) {
	page := samplePage()
	page.Services[0].Service.Deprecated = true
	old := &schema.Method{
		Name:       "OldGet",
		CallType:   schema.Unary,
		Deprecated: true,
		Input:      page.Services[0].Methods[0].Method.Input,
		Output:     page.Services[0].Methods[0].Method.Output,
	}
	page.Services[0].Deprecated = []*MethodView{
		{
			Method:      old,
			InputTypes:  []schema.Type{old.Input},
			OutputTypes: []schema.Type{old.Output},
		},
	}

	r, err := NewRenderer()
	require.NoError(t, err)

	out, err := r.RenderPage(page)
	require.NoError(t, err)

	assert.Contains(t, out, "**Deprecated.**")
	assert.Contains(t, out, "### OldGet (deprecated)")
	// Active methods render before deprecated ones.
	assert.Less(t, strings.Index(out, "### GetUser"), strings.Index(out, "### OldGet"))
}

func TestNewRendererFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("CUSTOM {{ .Source }}"), 0o644))

	r, err := NewRendererFromFile(path)
	require.NoError(t, err)

	out, err := r.RenderPage(&Page{Source: "x.proto"})
	require.NoError(t, err)
	assert.Equal(t, "CUSTOM x.proto", out)
}

func TestNewRendererFromFile_Missing(t *testing.T) {
	_, err := NewRendererFromFile(filepath.Join(t.TempDir(), "absent.tmpl"))
	assert.Error(t, err)
}

func TestNewRendererFromFile_BadTemplate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.tmpl")
	require.NoError(t, os.WriteFile(path, []byte("{{ .Source"), 0o644))

	_, err := NewRendererFromFile(path)
	assert.Error(t, err)
}
