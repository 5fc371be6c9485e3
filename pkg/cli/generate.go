package cli

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/spokedoc/pkg/config"
	"github.com/platinummonkey/spokedoc/pkg/docgen"
)

func newGenerateCommand() *Command {
	cmd := &Command{
		Name:        "generate",
		Description: "Generate markdown documentation from protobuf schemas",
		Flags:       flag.NewFlagSet("generate", flag.ExitOnError),
		Run:         runGenerate,
	}

	cmd.Flags.String("descriptor-set", "", "Path to a compiled FileDescriptorSet (protoc --descriptor_set_out)")
	cmd.Flags.String("dir", "", "Directory containing protobuf sources to compile")
	cmd.Flags.String("proto-path", "", "Comma-separated list of additional import paths")
	cmd.Flags.String("out", "", "Output directory for generated pages")
	cmd.Flags.String("single-page", "", "Combine all requested files into one page with this name (e.g. api.md)")
	cmd.Flags.String("template", "", "Path to a custom page template")
	cmd.Flags.String("config", "", "Path to a YAML config file")
	cmd.Flags.String("log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func runGenerate(args []string) error {
	flags := flag.NewFlagSet("generate", flag.ExitOnError)
	descriptorSet := flags.String("descriptor-set", "", "Path to a compiled FileDescriptorSet (protoc --descriptor_set_out)")
	dir := flags.String("dir", "", "Directory containing protobuf sources to compile")
	protoPath := flags.String("proto-path", "", "Comma-separated list of additional import paths")
	out := flags.String("out", "", "Output directory for generated pages")
	singlePage := flags.String("single-page", "", "Combine all requested files into one page with this name (e.g. api.md)")
	templatePath := flags.String("template", "", "Path to a custom page template")
	configPath := flags.String("config", "", "Path to a YAML config file")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return err
	}

	cfg, err := commandConfig(flags, *configPath, *out, *singlePage, *templatePath, *logLevel)
	if err != nil {
		return err
	}

	req, err := buildRequest(context.Background(), flags.Args(), *descriptorSet, *dir, *protoPath)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetLevel(cfg.Level())

	generator, err := docgen.New(cfg, log)
	if err != nil {
		return err
	}
	outputs, err := generator.Run(req)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	for _, file := range outputs {
		path := filepath.Join(cfg.OutputDir, file.Name)
		if err := os.WriteFile(path, []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Printf("Wrote %s\n", path)
	}
	fmt.Printf("Generated %d documentation page(s)\n", len(outputs))
	return nil
}

// commandConfig layers flag values over the config file over the
// environment. Only flags the user actually set override the file.
func commandConfig(flags *flag.FlagSet, configPath, out, singlePage, templatePath, logLevel string) (*config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		if err := cfg.MergeFile(configPath); err != nil {
			return nil, err
		}
	}
	flags.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "out":
			cfg.OutputDir = out
		case "single-page":
			cfg.SinglePage = singlePage
		case "template":
			cfg.TemplatePath = templatePath
		case "log-level":
			cfg.LogLevel = logLevel
		}
	})
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildRequest assembles the generation input from either a pre-compiled
// descriptor set or a source directory. Positional args narrow the set of
// documented files; otherwise every root file is documented.
func buildRequest(ctx context.Context, explicit []string, descriptorSet, dir, protoPath string) (docgen.Request, error) {
	switch {
	case descriptorSet != "" && dir != "":
		return docgen.Request{}, fmt.Errorf("--descriptor-set and --dir are mutually exclusive")
	case descriptorSet != "":
		set, err := loadDescriptorSet(descriptorSet)
		if err != nil {
			return docgen.Request{}, err
		}
		generate := explicit
		if len(generate) == 0 {
			generate = rootFiles(set)
		}
		return docgen.Request{Files: set.GetFile(), Generate: generate}, nil
	case dir != "":
		importPaths := []string{dir}
		if protoPath != "" {
			for _, p := range strings.Split(protoPath, ",") {
				importPaths = append(importPaths, strings.TrimSpace(p))
			}
		}
		files := explicit
		if len(files) == 0 {
			var err error
			files, err = findProtoFiles(dir)
			if err != nil {
				return docgen.Request{}, err
			}
		}
		descriptors, names, err := compileSources(ctx, importPaths, files)
		if err != nil {
			return docgen.Request{}, err
		}
		return docgen.Request{Files: descriptors, Generate: names}, nil
	default:
		return docgen.Request{}, fmt.Errorf("either --descriptor-set or --dir is required")
	}
}
