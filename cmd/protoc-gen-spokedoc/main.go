package main

import (
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/pluginpb"

	"github.com/platinummonkey/spokedoc/pkg/config"
	"github.com/platinummonkey/spokedoc/pkg/docgen"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "protoc-gen-spokedoc: %v\n", err)
		os.Exit(1)
	}
}

// run speaks the protoc plugin protocol: a CodeGeneratorRequest on stdin, a
// CodeGeneratorResponse on stdout. Only protocol failures exit non-zero;
// generation failures travel back inside the response.
func run() error {
	input, err := io.ReadAll(os.Stdin)
	if err != nil {
		return fmt.Errorf("failed to read request: %w", err)
	}

	req := &pluginpb.CodeGeneratorRequest{}
	if err := proto.Unmarshal(input, req); err != nil {
		return fmt.Errorf("failed to unmarshal request: %w", err)
	}

	resp := respond(req)

	output, err := proto.Marshal(resp)
	if err != nil {
		return fmt.Errorf("failed to marshal response: %w", err)
	}
	if _, err := os.Stdout.Write(output); err != nil {
		return fmt.Errorf("failed to write response: %w", err)
	}
	return nil
}

// respond runs one generation pass. Stdout belongs to the protocol, so the
// logger writes to stderr.
func respond(req *pluginpb.CodeGeneratorRequest) *pluginpb.CodeGeneratorResponse {
	cfg, err := config.FromParameter(req.GetParameter())
	if err != nil {
		return docgen.Respond(nil, err)
	}

	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetLevel(cfg.Level())

	generator, err := docgen.New(cfg, log)
	if err != nil {
		return docgen.Respond(nil, err)
	}

	files, err := generator.Run(docgen.FromCodeGeneratorRequest(req))
	return docgen.Respond(files, err)
}
