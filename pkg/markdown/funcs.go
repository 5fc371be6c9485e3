package markdown

import (
	"fmt"
	"strings"
	"text/template"

	"github.com/platinummonkey/spokedoc/pkg/schema"
)

func funcMap() template.FuncMap {
	return template.FuncMap{
		"commentBlock": commentBlock,
		"protoBlock":   protoBlock,
	}
}

// commentBlock prefixes every line of text with "//", restoring the shape the
// comment had in the source .proto.
func commentBlock(text string) string {
	if text == "" {
		return ""
	}
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "//" + line
	}
	return strings.Join(lines, "\n")
}

// indent prefixes every line with two spaces.
func indent(text string) string {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = "  " + line
	}
	return strings.Join(lines, "\n")
}

// protoBlock renders a type as a fenced proto-style definition, comments
// restored above the declarations they document.
func protoBlock(t schema.Type) string {
	var b strings.Builder
	b.WriteString("```proto\n")
	switch v := t.(type) {
	case *schema.MessageType:
		if v.Description != "" {
			b.WriteString(commentBlock(v.Description))
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "message %s {\n", v.Name)
		for _, f := range v.Fields {
			if f.LeadingComments != "" {
				b.WriteString(indent(commentBlock(f.LeadingComments)))
				b.WriteByte('\n')
			}
			b.WriteString("  " + fieldDecl(f) + "\n")
		}
		b.WriteString("}\n")
	case *schema.EnumType:
		if v.Description != "" {
			b.WriteString(commentBlock(v.Description))
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "enum %s {\n", v.Name)
		for _, ev := range v.Values {
			if ev.LeadingComments != "" {
				b.WriteString(indent(commentBlock(ev.LeadingComments)))
				b.WriteByte('\n')
			}
			b.WriteString("  " + enumValueDecl(ev) + "\n")
		}
		b.WriteString("}\n")
	}
	b.WriteString("```")
	return b.String()
}

func fieldDecl(f *schema.Field) string {
	parts := make([]string, 0, 4)
	if f.Repeated {
		parts = append(parts, "repeated")
	}
	if f.Optional {
		parts = append(parts, "optional")
	}
	parts = append(parts, f.Type.DisplayName(), f.Name)
	decl := fmt.Sprintf("%s = %d;", strings.Join(parts, " "), f.Number)
	if f.TrailingComments != "" {
		decl += " // " + strings.ReplaceAll(f.TrailingComments, "\n", " ")
	}
	return decl
}

func enumValueDecl(v *schema.EnumValue) string {
	decl := fmt.Sprintf("%s = %d;", v.Name, v.Number)
	if v.TrailingComments != "" {
		decl += " // " + strings.ReplaceAll(v.TrailingComments, "\n", " ")
	}
	return decl
}
