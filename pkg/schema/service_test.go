package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/descriptorpb"
)

func TestBuildServices_SingleUnaryMethod(t *testing.T) {
	file := compileFile(t, `syntax = "proto3";

package a;

message Req {
  string x = 1;
}

message Resp {
  string y = 1;
}

service S {
  // Does M.
  rpc M(Req) returns (Resp);
}
`)
	idx, err := BuildTypeIndex([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	services, err := BuildServices(file, idx)
	require.NoError(t, err)
	require.Len(t, services, 1)

	svc := services[0]
	assert.Equal(t, "S", svc.Name)
	assert.Equal(t, "a", svc.Package)
	assert.False(t, svc.Deprecated)
	require.Len(t, svc.Methods, 1)
	assert.Empty(t, svc.DeprecatedMethods)

	m := svc.Methods[0]
	assert.Equal(t, "M", m.Name)
	assert.Equal(t, Unary, m.CallType)
	assert.Equal(t, "Does M.", m.Description)

	// Input and output are the index's own nodes, not copies.
	wantReq, ok := idx.Lookup(QualifiedName{Package: "a", Name: "Req"})
	require.True(t, ok)
	assert.Same(t, wantReq, m.Input)
	wantResp, ok := idx.Lookup(QualifiedName{Package: "a", Name: "Resp"})
	require.True(t, ok)
	assert.Same(t, wantResp, m.Output)

	require.Len(t, m.Input.Fields, 1)
	assert.Equal(t, "x", m.Input.Fields[0].Name)
	require.Len(t, m.Output.Fields, 1)
	assert.Equal(t, "y", m.Output.Fields[0].Name)
}

func TestBuildServices_CallTypes(t *testing.T) {
	file := compileFile(t, `syntax = "proto3";

package test;

message Req {}
message Resp {}

service Calls {
  rpc Ask(Req) returns (Resp);
  rpc Watch(Req) returns (stream Resp);
  rpc Upload(stream Req) returns (Resp);
  rpc Chat(stream Req) returns (stream Resp);
}
`)
	idx, err := BuildTypeIndex([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	services, err := BuildServices(file, idx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	require.Len(t, services[0].Methods, 4)

	methods := services[0].Methods
	assert.Equal(t, Unary, methods[0].CallType)
	assert.Equal(t, ServerStreaming, methods[1].CallType)
	assert.Equal(t, ClientStreaming, methods[2].CallType)
	assert.Equal(t, BidiStreaming, methods[3].CallType)

	assert.Equal(t, "unary", methods[0].CallType.String())
	assert.Equal(t, "server streaming", methods[1].CallType.String())
	assert.Equal(t, "client streaming", methods[2].CallType.String())
	assert.Equal(t, "bidi streaming", methods[3].CallType.String())
}

func TestBuildServices_DeprecatedPartition(t *testing.T) {
	file := compileFile(t, `syntax = "proto3";

package test;

message Req {}
message Resp {}

service Mixed {
  rpc A(Req) returns (Resp);
  rpc B(Req) returns (Resp) {
    option deprecated = true;
  }
  rpc C(Req) returns (Resp);
  rpc D(Req) returns (Resp) {
    option deprecated = true;
  }
}

service Legacy {
  option deprecated = true;
  rpc Old(Req) returns (Resp);
}
`)
	idx, err := BuildTypeIndex([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	services, err := BuildServices(file, idx)
	require.NoError(t, err)
	require.Len(t, services, 2)

	mixed := services[0]
	require.Len(t, mixed.Methods, 2)
	require.Len(t, mixed.DeprecatedMethods, 2)
	assert.Equal(t, "A", mixed.Methods[0].Name)
	assert.Equal(t, "C", mixed.Methods[1].Name)
	assert.Equal(t, "B", mixed.DeprecatedMethods[0].Name)
	assert.Equal(t, "D", mixed.DeprecatedMethods[1].Name)
	assert.True(t, mixed.DeprecatedMethods[0].Deprecated)

	legacy := services[1]
	assert.True(t, legacy.Deprecated)
	require.Len(t, legacy.Methods, 1)
	assert.False(t, legacy.Methods[0].Deprecated)
}

func TestBuildServices_CrossPackageResolution(t *testing.T) {
	files := compileSet(t, map[string]string{
		"types.proto": `syntax = "proto3";
package common;
message Empty {}
`,
		"svc.proto": `syntax = "proto3";
package api;
import "types.proto";
service Pinger {
  rpc Ping(common.Empty) returns (common.Empty);
}
`,
	}, "types.proto", "svc.proto")

	idx, err := BuildTypeIndex(files)
	require.NoError(t, err)

	services, err := BuildServices(files[1], idx)
	require.NoError(t, err)
	require.Len(t, services, 1)
	require.Len(t, services[0].Methods, 1)

	ping := services[0].Methods[0]
	assert.Equal(t, "Empty", ping.Input.Name)
	assert.Equal(t, "common", ping.Input.Package)
	assert.Same(t, ping.Input, ping.Output)
}

func TestBuildServices_MissingSourceInfo(t *testing.T) {
	file := &descriptorpb.FileDescriptorProto{
		Name:    proto.String("bare.proto"),
		Package: proto.String("bare"),
		Service: []*descriptorpb.ServiceDescriptorProto{
			{Name: proto.String("S")},
		},
	}

	_, err := BuildServices(file, TypeIndex{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMissingSourceInfo)
	assert.Contains(t, err.Error(), "bare.proto")
}

func TestBuildServices_UnresolvedReference(t *testing.T) {
	file := compileFile(t, `syntax = "proto3";

package test;

message Req {}
message Resp {}

service S {
  rpc M(Req) returns (Resp);
}
`)

	// An empty index has no bucket for the method's input type.
	_, err := BuildServices(file, TypeIndex{})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedTypeReference)
	assert.Contains(t, err.Error(), ".test.Req")
}

func TestBuildServices_EnumAsMethodInput(t *testing.T) {
	// A hand-built descriptor whose method input names an enum. The index
	// resolves the name but not to a message, so the build must fail.
	file := compileFile(t, `syntax = "proto3";

package test;

message Resp {}

enum Code {
  CODE_UNSPECIFIED = 0;
}
`)
	idx, err := BuildTypeIndex([]*descriptorpb.FileDescriptorProto{file})
	require.NoError(t, err)

	broken := &descriptorpb.FileDescriptorProto{
		Name:           proto.String("broken.proto"),
		Package:        proto.String("test"),
		SourceCodeInfo: &descriptorpb.SourceCodeInfo{},
		Service: []*descriptorpb.ServiceDescriptorProto{
			{
				Name: proto.String("S"),
				Method: []*descriptorpb.MethodDescriptorProto{
					{
						Name:       proto.String("M"),
						InputType:  proto.String(".test.Code"),
						OutputType: proto.String(".test.Resp"),
					},
				},
			},
		},
	}

	_, err = BuildServices(broken, idx)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnresolvedTypeReference)
}
