package schema

import (
	"fmt"
	"sort"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// TypeIndex maps a protobuf package to the types declared in it, in file
// order and then declaration order. Nested messages and enums are flattened
// into their file's package bucket, so every type defined anywhere in the
// input set is reachable by (package, local name).
type TypeIndex map[string][]Type

// BuildTypeIndex walks every file in the descriptor set and indexes its
// messages and enums, with comments attached from each file's own comment
// table. Files without source code info simply contribute uncommented types;
// dependency files legitimately arrive bare.
func BuildTypeIndex(files []*descriptorpb.FileDescriptorProto) (TypeIndex, error) {
	idx := make(TypeIndex)
	for _, file := range files {
		table := NewCommentTable(file.GetSourceCodeInfo())
		pkg := file.GetPackage()
		for i, md := range file.GetMessageType() {
			if err := idx.addMessage(pkg, md, table, []int32{messagePathTag, int32(i)}, 0); err != nil {
				return nil, fmt.Errorf("indexing %s: %w", file.GetName(), err)
			}
		}
		for i, ed := range file.GetEnumType() {
			idx.addEnum(pkg, ed, table, []int32{enumPathTag, int32(i)})
		}
	}
	return idx, nil
}

// addMessage indexes one message and then, pre-order, everything declared
// inside it.
func (idx TypeIndex) addMessage(pkg string, md *descriptorpb.DescriptorProto, table *CommentTable, path []int32, depth int) error {
	msg := &MessageType{
		Name:        md.GetName(),
		Package:     pkg,
		Description: strings.TrimSpace(table.Leading(path...)),
		Depth:       depth,
		Fields:      make([]*Field, 0, len(md.GetField())),
	}
	for j, fd := range md.GetField() {
		field, err := newField(fd, table, childPath(path, fieldPathTag, int32(j)))
		if err != nil {
			return err
		}
		msg.Fields = append(msg.Fields, field)
	}
	sort.SliceStable(msg.Fields, func(a, b int) bool {
		return msg.Fields[a].Number < msg.Fields[b].Number
	})
	idx[pkg] = append(idx[pkg], msg)

	for k, nd := range md.GetNestedType() {
		if err := idx.addMessage(pkg, nd, table, childPath(path, nestedMessagePathTag, int32(k)), depth+1); err != nil {
			return err
		}
	}
	for k, ed := range md.GetEnumType() {
		idx.addEnum(pkg, ed, table, childPath(path, nestedEnumPathTag, int32(k)))
	}
	return nil
}

func (idx TypeIndex) addEnum(pkg string, ed *descriptorpb.EnumDescriptorProto, table *CommentTable, path []int32) {
	enum := &EnumType{
		Name:        ed.GetName(),
		Package:     pkg,
		Description: strings.TrimSpace(table.Leading(path...)),
		Values:      make([]*EnumValue, 0, len(ed.GetValue())),
	}
	for j, vd := range ed.GetValue() {
		comments := table.At(childPath(path, enumValuePathTag, int32(j))...)
		enum.Values = append(enum.Values, &EnumValue{
			Name:             vd.GetName(),
			Number:           vd.GetNumber(),
			LeadingComments:  strings.TrimSpace(comments.Leading),
			TrailingComments: strings.TrimSpace(comments.Trailing),
		})
	}
	// Stable so that aliased values keep their declaration order.
	sort.SliceStable(enum.Values, func(a, b int) bool {
		return enum.Values[a].Number < enum.Values[b].Number
	})
	idx[pkg] = append(idx[pkg], enum)
}

// Lookup finds a type by qualified name.
func (idx TypeIndex) Lookup(name QualifiedName) (Type, bool) {
	for _, t := range idx[name.Package] {
		if t.TypeName() == name.Name {
			return t, true
		}
	}
	return nil, false
}

// message looks a name up and requires the result to be a message.
func (idx TypeIndex) message(name QualifiedName) (*MessageType, bool) {
	t, ok := idx.Lookup(name)
	if !ok {
		return nil, false
	}
	msg, ok := t.(*MessageType)
	return msg, ok
}

// FileByName finds a descriptor file by path within the set.
func FileByName(files []*descriptorpb.FileDescriptorProto, name string) (*descriptorpb.FileDescriptorProto, error) {
	for _, file := range files {
		if file.GetName() == name {
			return file, nil
		}
	}
	return nil, fmt.Errorf("%w: %s", ErrFileNotFound, name)
}
