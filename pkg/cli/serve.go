package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/platinummonkey/spokedoc/pkg/config"
	"github.com/platinummonkey/spokedoc/pkg/docgen"
	"github.com/platinummonkey/spokedoc/pkg/preview"
)

func newServeCommand() *Command {
	cmd := &Command{
		Name:        "serve",
		Description: "Serve generated documentation over HTTP with live rebuilds",
		Flags:       flag.NewFlagSet("serve", flag.ExitOnError),
		Run:         runServe,
	}

	cmd.Flags.String("addr", ":8080", "Address to listen on")
	cmd.Flags.String("descriptor-set", "", "Path to a compiled FileDescriptorSet to watch")
	cmd.Flags.String("single-page", "", "Combine all files into one page with this name (e.g. api.md)")
	cmd.Flags.String("template", "", "Path to a custom page template")
	cmd.Flags.String("config", "", "Path to a YAML config file")
	cmd.Flags.String("log-level", "", "Log level (debug, info, warn, error)")

	return cmd
}

func runServe(args []string) error {
	flags := flag.NewFlagSet("serve", flag.ExitOnError)
	addr := flags.String("addr", ":8080", "Address to listen on")
	descriptorSet := flags.String("descriptor-set", "", "Path to a compiled FileDescriptorSet to watch")
	singlePage := flags.String("single-page", "", "Combine all files into one page with this name (e.g. api.md)")
	templatePath := flags.String("template", "", "Path to a custom page template")
	configPath := flags.String("config", "", "Path to a YAML config file")
	logLevel := flags.String("log-level", "", "Log level (debug, info, warn, error)")

	if err := flags.Parse(args); err != nil {
		return err
	}
	if *descriptorSet == "" {
		return fmt.Errorf("--descriptor-set is required")
	}

	cfg, err := commandConfig(flags, *configPath, "", *singlePage, *templatePath, *logLevel)
	if err != nil {
		return err
	}

	log := logrus.New()
	log.SetLevel(cfg.Level())

	builder, err := siteBuilder(cfg, log, *descriptorSet)
	if err != nil {
		return err
	}
	server := preview.NewServer(*addr, builder, log)
	if err := server.Rebuild(); err != nil {
		return fmt.Errorf("initial build failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		if err := server.Watch(ctx, *descriptorSet); err != nil && !errors.Is(err, context.Canceled) {
			log.WithError(err).Error("watcher stopped")
		}
	}()

	errChan := make(chan error, 1)
	go func() {
		errChan <- server.ListenAndServe()
	}()

	// Wait for termination signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errChan:
		return err
	case <-sigChan:
		log.Info("shutting down")
		cancel()
		return nil
	}
}

// siteBuilder returns a Builder that reloads the descriptor set from disk
// and regenerates every page.
func siteBuilder(cfg *config.Config, log *logrus.Logger, descriptorSet string) (preview.Builder, error) {
	generator, err := docgen.New(cfg, log)
	if err != nil {
		return nil, err
	}
	return func() (*preview.Site, error) {
		set, err := loadDescriptorSet(descriptorSet)
		if err != nil {
			return nil, err
		}
		outputs, err := generator.Run(docgen.Request{Files: set.GetFile(), Generate: rootFiles(set)})
		if err != nil {
			return nil, err
		}
		pages := make(map[string]string, len(outputs))
		for _, file := range outputs {
			pages[file.Name] = file.Content
		}
		return &preview.Site{Pages: pages, BuiltAt: time.Now()}, nil
	}, nil
}
