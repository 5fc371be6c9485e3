package schema

import (
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// FieldType describes what a field holds: either a well-known scalar kind or
// a reference to a user-defined message or enum type. A field is custom
// exactly when its descriptor carries an explicit type_name; the wire kind
// alone never decides.
type FieldType struct {
	Kind descriptorpb.FieldDescriptorProto_Type
	Ref  *QualifiedName
}

// Custom reports whether the field references a user-defined type.
func (ft FieldType) Custom() bool { return ft.Ref != nil }

// Keyword returns the proto keyword for the field's kind. The message kind
// has no keyword of its own and yields ""; display falls back to the
// referenced type's name.
func (ft FieldType) Keyword() string {
	switch ft.Kind {
	case descriptorpb.FieldDescriptorProto_TYPE_DOUBLE:
		return "double"
	case descriptorpb.FieldDescriptorProto_TYPE_FLOAT:
		return "float"
	case descriptorpb.FieldDescriptorProto_TYPE_INT64:
		return "int64"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT64:
		return "uint64"
	case descriptorpb.FieldDescriptorProto_TYPE_INT32:
		return "int32"
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED64:
		return "fixed64"
	case descriptorpb.FieldDescriptorProto_TYPE_FIXED32:
		return "fixed32"
	case descriptorpb.FieldDescriptorProto_TYPE_BOOL:
		return "bool"
	case descriptorpb.FieldDescriptorProto_TYPE_STRING:
		return "string"
	case descriptorpb.FieldDescriptorProto_TYPE_GROUP:
		return "group"
	case descriptorpb.FieldDescriptorProto_TYPE_MESSAGE:
		return ""
	case descriptorpb.FieldDescriptorProto_TYPE_BYTES:
		return "bytes"
	case descriptorpb.FieldDescriptorProto_TYPE_UINT32:
		return "uint32"
	case descriptorpb.FieldDescriptorProto_TYPE_ENUM:
		return "enum"
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED32:
		return "sfixed32"
	case descriptorpb.FieldDescriptorProto_TYPE_SFIXED64:
		return "sfixed64"
	case descriptorpb.FieldDescriptorProto_TYPE_SINT32:
		return "sint32"
	case descriptorpb.FieldDescriptorProto_TYPE_SINT64:
		return "sint64"
	default:
		return ""
	}
}

// DisplayName is the name documentation shows for the field's type: the
// referenced type's local name for custom fields, the scalar keyword
// otherwise.
func (ft FieldType) DisplayName() string {
	if ft.Custom() {
		return ft.Ref.Name
	}
	return ft.Keyword()
}

// resolveFieldType classifies a field descriptor. Parsing a present but
// malformed type_name fails with ErrMalformedTypeReference.
func resolveFieldType(fd *descriptorpb.FieldDescriptorProto) (FieldType, error) {
	if fd.TypeName == nil {
		return FieldType{Kind: fd.GetType()}, nil
	}
	ref, err := ParseQualifiedName(fd.GetTypeName())
	if err != nil {
		return FieldType{}, err
	}
	return FieldType{Kind: fd.GetType(), Ref: &ref}, nil
}

func newField(fd *descriptorpb.FieldDescriptorProto, table *CommentTable, path []int32) (*Field, error) {
	ft, err := resolveFieldType(fd)
	if err != nil {
		return nil, err
	}
	comments := table.At(path...)
	return &Field{
		Name:             fd.GetName(),
		Type:             ft,
		Number:           fd.GetNumber(),
		Optional:         fd.GetProto3Optional(),
		Repeated:         fd.GetLabel() == descriptorpb.FieldDescriptorProto_LABEL_REPEATED,
		LeadingComments:  strings.TrimSpace(comments.Leading),
		TrailingComments: strings.TrimSpace(comments.Trailing),
	}, nil
}
