package docgen

import (
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"
)

// FromCodeGeneratorRequest converts protoc's request into a Request.
func FromCodeGeneratorRequest(req *pluginpb.CodeGeneratorRequest) Request {
	return Request{
		Files:    req.GetProtoFile(),
		Generate: req.GetFileToGenerate(),
	}
}

// Respond wraps generated files, or a failure, in protoc's response shape.
// Failures travel in the response's error field so the host process reports
// them; the plugin itself still exits cleanly.
func Respond(files []OutputFile, err error) *pluginpb.CodeGeneratorResponse {
	resp := &pluginpb.CodeGeneratorResponse{
		SupportedFeatures: proto.Uint64(uint64(pluginpb.CodeGeneratorResponse_FEATURE_PROTO3_OPTIONAL)),
	}
	if err != nil {
		resp.Error = proto.String(err.Error())
		return resp
	}
	for _, f := range files {
		resp.File = append(resp.File, &pluginpb.CodeGeneratorResponse_File{
			Name:    proto.String(f.Name),
			Content: proto.String(f.Content),
		})
	}
	return resp
}
