package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bufbuild/protocompile"
	"github.com/bufbuild/protocompile/protoutil"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// loadDescriptorSet reads a FileDescriptorSet produced by
// `protoc --descriptor_set_out --include_imports --include_source_info`.
func loadDescriptorSet(path string) (*descriptorpb.FileDescriptorSet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read descriptor set %s: %w", path, err)
	}
	set := &descriptorpb.FileDescriptorSet{}
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, fmt.Errorf("failed to parse descriptor set %s: %w", path, err)
	}
	return set, nil
}

// rootFiles returns the files in the set that no other file imports. With a
// set built via --include_imports these are the files named on the protoc
// command line.
func rootFiles(set *descriptorpb.FileDescriptorSet) []string {
	imported := make(map[string]bool)
	for _, file := range set.GetFile() {
		for _, dep := range file.GetDependency() {
			imported[dep] = true
		}
	}
	var roots []string
	for _, file := range set.GetFile() {
		if !imported[file.GetName()] {
			roots = append(roots, file.GetName())
		}
	}
	return roots
}

// findProtoFiles walks dir and returns every .proto file as a path relative
// to dir, slash separated, the way an import resolver expects them.
func findProtoFiles(dir string) ([]string, error) {
	var protoFiles []string
	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if !info.IsDir() && strings.HasSuffix(path, ".proto") {
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return err
			}
			protoFiles = append(protoFiles, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to find proto files: %w", err)
	}
	if len(protoFiles) == 0 {
		return nil, fmt.Errorf("no proto files found in directory: %s", dir)
	}
	return protoFiles, nil
}

// compileSources compiles proto sources with full source info and returns
// the descriptors of the compiled files plus their transitive imports,
// dependencies first, along with the names of the compiled files.
func compileSources(ctx context.Context, importPaths, files []string) ([]*descriptorpb.FileDescriptorProto, []string, error) {
	compiler := protocompile.Compiler{
		Resolver: protocompile.WithStandardImports(&protocompile.SourceResolver{
			ImportPaths: importPaths,
		}),
		SourceInfoMode: protocompile.SourceInfoStandard,
	}
	linked, err := compiler.Compile(ctx, files...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to compile proto files: %w", err)
	}

	seen := make(map[string]bool)
	var descriptors []*descriptorpb.FileDescriptorProto
	names := make([]string, 0, len(linked))
	for _, fd := range linked {
		descriptors = appendFileDescriptors(fd, seen, descriptors)
		names = append(names, fd.Path())
	}
	return descriptors, names, nil
}

func appendFileDescriptors(fd protoreflect.FileDescriptor, seen map[string]bool, out []*descriptorpb.FileDescriptorProto) []*descriptorpb.FileDescriptorProto {
	if seen[fd.Path()] {
		return out
	}
	seen[fd.Path()] = true
	imports := fd.Imports()
	for i := 0; i < imports.Len(); i++ {
		out = appendFileDescriptors(imports.Get(i).FileDescriptor, seen, out)
	}
	return append(out, protoutil.ProtoFromFileDescriptor(fd))
}
