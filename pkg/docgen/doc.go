// Package docgen orchestrates documentation generation passes.
//
// A pass takes a complete descriptor set plus the list of files to document,
// builds the schema model once, and renders either one page per requested
// file or a single combined page. Failures abort the pass whole; a request
// never yields partial output. The protoc plugin protocol adapters live here
// too, so both entrypoints share one code path.
package docgen
