package schema

import (
	"strconv"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// Structural path tags, mirroring the field numbers of FileDescriptorProto and
// its nested descriptor messages. A comment location's path is built from
// alternating tag and index values, e.g. [4, 1, 2, 0] addresses the first
// field of the second top-level message.
const (
	messagePathTag = 4 // FileDescriptorProto.message_type
	enumPathTag    = 5 // FileDescriptorProto.enum_type
	servicePathTag = 6 // FileDescriptorProto.service

	fieldPathTag         = 2 // DescriptorProto.field
	nestedMessagePathTag = 3 // DescriptorProto.nested_type
	nestedEnumPathTag    = 4 // DescriptorProto.enum_type

	enumValuePathTag = 2 // EnumDescriptorProto.value
	methodPathTag    = 2 // ServiceDescriptorProto.method
)

// Comments holds the source comments attached to a single descriptor location.
type Comments struct {
	Leading  string
	Trailing string
}

// CommentTable indexes a file's SourceCodeInfo by structural path so that
// model construction can look comments up in constant time. A nil or empty
// SourceCodeInfo yields an empty table; lookups on it return empty comments.
type CommentTable struct {
	byPath map[string]Comments
}

// NewCommentTable builds a table from a file's source locations. When several
// locations share a path, the first one wins.
func NewCommentTable(info *descriptorpb.SourceCodeInfo) *CommentTable {
	t := &CommentTable{byPath: make(map[string]Comments, len(info.GetLocation()))}
	for _, loc := range info.GetLocation() {
		key := pathKey(loc.GetPath())
		if _, ok := t.byPath[key]; ok {
			continue
		}
		t.byPath[key] = Comments{
			Leading:  loc.GetLeadingComments(),
			Trailing: loc.GetTrailingComments(),
		}
	}
	return t
}

// At returns the comments recorded for exactly the given path. A location
// matches only when its path has the same length and the same values in the
// same positions; a path that merely extends another does not match it.
func (t *CommentTable) At(path ...int32) Comments {
	return t.byPath[pathKey(path)]
}

// Leading returns only the leading comment text for the given path.
func (t *CommentTable) Leading(path ...int32) string {
	return t.At(path...).Leading
}

func pathKey(path []int32) string {
	var b strings.Builder
	for i, p := range path {
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(strconv.Itoa(int(p)))
	}
	return b.String()
}

// childPath copies path and extends it, so that siblings never share a
// backing array while the builder descends the descriptor tree.
func childPath(path []int32, elems ...int32) []int32 {
	out := make([]int32, 0, len(path)+len(elems))
	out = append(out, path...)
	return append(out, elems...)
}
