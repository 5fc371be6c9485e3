package schema

import (
	"context"
	"testing"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/protoutil"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/descriptorpb"
)

// compileSet compiles inline proto sources into file descriptors carrying
// source code info, the same shape protoc hands a plugin. The returned files
// follow the order of names.
func compileSet(t *testing.T, sources map[string]string, names ...string) []*descriptorpb.FileDescriptorProto {
	t.Helper()
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			Accessor: protocompile.SourceAccessorFromMap(sources),
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	results, err := compiler.Compile(context.Background(), names...)
	require.NoError(t, err)
	files := make([]*descriptorpb.FileDescriptorProto, 0, len(results))
	for _, fd := range results {
		files = append(files, protoutil.ProtoFromFileDescriptor(fd))
	}
	return files
}

// compileFile compiles a single source as test.proto.
func compileFile(t *testing.T, source string) *descriptorpb.FileDescriptorProto {
	t.Helper()
	return compileSet(t, map[string]string{"test.proto": source}, "test.proto")[0]
}
