package schema

import (
	"fmt"
	"strings"

	"google.golang.org/protobuf/types/descriptorpb"
)

// CallType classifies an RPC method by its streaming directions.
type CallType int

const (
	Unary CallType = iota
	ServerStreaming
	ClientStreaming
	BidiStreaming
)

func (c CallType) String() string {
	return []string{"unary", "server streaming", "client streaming", "bidi streaming"}[c]
}

// Service is a documented gRPC service. Its methods are partitioned into
// active and deprecated lists, each keeping declaration order.
type Service struct {
	Name              string
	Package           string
	Description       string
	Deprecated        bool
	Methods           []*Method
	DeprecatedMethods []*Method
}

// Method is a resolved RPC method. Input and Output point into the TypeIndex
// the service was built against; they are shared, not copies.
type Method struct {
	Name        string
	CallType    CallType
	Description string
	Deprecated  bool
	Input       *MessageType
	Output      *MessageType
}

// BuildServices resolves every service declared in the file against the
// index. The file must carry source code info; a requested file without its
// comment table fails with ErrMissingSourceInfo. A method whose input or
// output cannot be resolved to an indexed message fails the whole build with
// ErrUnresolvedTypeReference, since a dangling reference means the descriptor
// set is not self-consistent.
func BuildServices(file *descriptorpb.FileDescriptorProto, index TypeIndex) ([]*Service, error) {
	if file.GetSourceCodeInfo() == nil {
		return nil, fmt.Errorf("%w: %s", ErrMissingSourceInfo, file.GetName())
	}
	table := NewCommentTable(file.GetSourceCodeInfo())
	pkg := file.GetPackage()

	services := make([]*Service, 0, len(file.GetService()))
	for i, sd := range file.GetService() {
		path := []int32{servicePathTag, int32(i)}
		svc := &Service{
			Name:        sd.GetName(),
			Package:     pkg,
			Description: strings.TrimSpace(table.Leading(path...)),
			Deprecated:  sd.GetOptions().GetDeprecated(),
		}
		for j, md := range sd.GetMethod() {
			method, err := buildMethod(md, index, table, childPath(path, methodPathTag, int32(j)))
			if err != nil {
				return nil, fmt.Errorf("service %s: %w", sd.GetName(), err)
			}
			if method.Deprecated {
				svc.DeprecatedMethods = append(svc.DeprecatedMethods, method)
			} else {
				svc.Methods = append(svc.Methods, method)
			}
		}
		services = append(services, svc)
	}
	return services, nil
}

func buildMethod(md *descriptorpb.MethodDescriptorProto, index TypeIndex, table *CommentTable, path []int32) (*Method, error) {
	input, err := resolveMessage(index, md.GetInputType())
	if err != nil {
		return nil, fmt.Errorf("method %s input: %w", md.GetName(), err)
	}
	output, err := resolveMessage(index, md.GetOutputType())
	if err != nil {
		return nil, fmt.Errorf("method %s output: %w", md.GetName(), err)
	}
	return &Method{
		Name:        md.GetName(),
		CallType:    callTypeOf(md),
		Description: strings.TrimSpace(table.Leading(path...)),
		Deprecated:  md.GetOptions().GetDeprecated(),
		Input:       input,
		Output:      output,
	}, nil
}

// resolveMessage parses a method's type reference and finds the message it
// names.
func resolveMessage(index TypeIndex, ref string) (*MessageType, error) {
	name, err := ParseQualifiedName(ref)
	if err != nil {
		return nil, err
	}
	msg, ok := index.message(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnresolvedTypeReference, name)
	}
	return msg, nil
}

// callTypeOf maps the two streaming flags to a call type. The flags are
// independent; all four combinations are meaningful.
func callTypeOf(md *descriptorpb.MethodDescriptorProto) CallType {
	switch {
	case md.GetServerStreaming() && md.GetClientStreaming():
		return BidiStreaming
	case md.GetServerStreaming():
		return ServerStreaming
	case md.GetClientStreaming():
		return ClientStreaming
	default:
		return Unary
	}
}
