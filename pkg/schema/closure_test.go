package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"
)

func collectNames(types []Type) []string {
	names := make([]string, 0, len(types))
	for _, t := range types {
		names = append(names, t.TypeName())
	}
	return names
}

func indexFor(t *testing.T, source string) TypeIndex {
	t.Helper()
	file := compileFile(t, source)
	idx, err := BuildTypeIndex([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)
	return idx
}

func mustLookup(t *testing.T, idx TypeIndex, pkg, name string) Type {
	t.Helper()
	got, ok := idx.Lookup(QualifiedName{Package: pkg, Name: name})
	require.True(t, ok, "%s.%s not indexed", pkg, name)
	return got
}

func TestCollect_Chain(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

message A {
  B b = 1;
}

message B {
  C c = 1;
}

message C {
  string leaf = 1;
}
`)
	collector := NewClosureCollector(idx)

	got := collector.Collect(mustLookup(t, idx, "test", "A"))
	assert.Equal(t, []string{"B", "C"}, collectNames(got))
}

func TestCollect_CycleTerminates(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

message M {
  N n = 1;
}

message N {
  O o = 1;
}

message O {
  M m = 1;
}
`)
	collector := NewClosureCollector(idx)

	got := collector.Collect(mustLookup(t, idx, "test", "M"))
	assert.Equal(t, []string{"N", "O"}, collectNames(got))
}

func TestCollect_DiamondAppearsOnce(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

message A {
  B b = 1;
  C c = 2;
}

message B {
  D d = 1;
}

message C {
  D d = 1;
}

message D {
  string leaf = 1;
}
`)
	collector := NewClosureCollector(idx)

	// Depth first: B is descended into before C is visited, so D is
	// discovered under B and only skipped under C.
	got := collector.Collect(mustLookup(t, idx, "test", "A"))
	assert.Equal(t, []string{"B", "D", "C"}, collectNames(got))
}

func TestCollect_EnumTerminatesBranch(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

message A {
  Color color = 1;
  B b = 2;
}

message B {
  Color shade = 1;
}

enum Color {
  COLOR_UNSPECIFIED = 0;
}
`)
	collector := NewClosureCollector(idx)

	got := collector.Collect(mustLookup(t, idx, "test", "A"))
	assert.Equal(t, []string{"Color", "B"}, collectNames(got))
}

func TestCollect_SelfReferenceExcludesRoot(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

message Tree {
  Tree left = 1;
  Tree right = 2;
}
`)
	collector := NewClosureCollector(idx)

	got := collector.Collect(mustLookup(t, idx, "test", "Tree"))
	assert.Empty(t, got)
}

func TestCollect_MissingBucketSkipped(t *testing.T) {
	ref := QualifiedName{Package: "ghost", Name: "Missing"}
	root := &MessageType{
		Name:    "A",
		Package: "p",
		Fields: []*Field{
			{
				Name:   "x",
				Number: 1,
				Type: FieldType{
					Kind: descriptorpb.FieldDescriptorProto_TYPE_MESSAGE,
					Ref:  &ref,
				},
			},
		},
	}
	idx := TypeIndex{"p": {root}}
	collector := NewClosureCollector(idx)

	assert.Empty(t, collector.Collect(root))
}

func TestCollect_Memoized(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

message M {
  N n = 1;
}

message N {
  O o = 1;
}

message O {
  string leaf = 1;
}
`)
	collector := NewClosureCollector(idx)
	root := mustLookup(t, idx, "test", "M")

	first := collector.Collect(root)
	require.Equal(t, []string{"N", "O"}, collectNames(first))

	// Wipe the bucket behind the collector's back; a memoized walk still
	// answers from the completed result.
	idx["test"] = nil
	second := collector.Collect(root)
	assert.Equal(t, collectNames(first), collectNames(second))
}

func TestCollect_EnumRoot(t *testing.T) {
	idx := indexFor(t, `syntax = "proto3";

package test;

enum Color {
  COLOR_UNSPECIFIED = 0;
}
`)
	collector := NewClosureCollector(idx)

	assert.Empty(t, collector.Collect(mustLookup(t, idx, "test", "Color")))
}
