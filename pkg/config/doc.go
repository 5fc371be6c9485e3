// Package config provides generation options resolved from environment
// variables, YAML files, and protoc plugin parameters.
//
// # Overview
//
// This package loads and validates the options shared by the protoc plugin
// and the standalone CLI. Sources are layered: built-in defaults, then
// SPOKEDOC_* environment variables, then an optional YAML config file, then
// explicit parameters or flags. Later sources win.
//
// # Configuration Structure
//
// Output settings:
//
//	SPOKEDOC_SINGLE_PAGE=""       # combine requested files into one page with this name
//	SPOKEDOC_TEMPLATE=""          # custom page template path (empty = built-in)
//	SPOKEDOC_OUTPUT_DIR="."       # CLI output directory (ignored by the plugin)
//
// Diagnostics:
//
//	SPOKEDOC_LOG_LEVEL="info"  # debug, info, warn, error
//
// # Usage Example
//
// Load configuration from a protoc parameter string:
//
//	cfg, err := config.FromParameter("single_page=api.md,log_level=debug")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	fmt.Printf("Combined page: %s\n", cfg.SinglePage)
//	fmt.Printf("Log level: %s\n", cfg.LogLevel)
//
// A bare parameter with no '=' names the combined output page:
//
//	protoc --spokedoc_out=. --spokedoc_opt=api.md api.proto
//
// # Related Packages
//
//   - pkg/docgen: Consumes the resolved options for each generation pass
//   - pkg/cli: Overlays command-line flags onto the resolved options
package config
