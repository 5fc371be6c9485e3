// Package cli provides the spokedoc command-line interface.
//
// # Overview
//
// This package implements the `spokedoc` CLI tool for generating markdown
// documentation from protobuf schemas and previewing it locally, without
// going through a protoc plugin invocation.
//
// # Commands
//
// generate: Render documentation pages
//
//	spokedoc generate \
//		--descriptor-set api.pb \
//		--out ./docs
//
// Compiling sources directly instead of using a descriptor set:
//
//	spokedoc generate \
//		--dir ./proto \
//		--proto-path ./vendor/proto \
//		--out ./docs \
//		--single-page api.md
//
// Positional arguments narrow generation to specific files:
//
//	spokedoc generate --dir ./proto user/v1/user.proto
//
// serve: Preview documentation with live rebuilds
//
//	spokedoc serve \
//		--descriptor-set api.pb \
//		--addr :8080
//
// The server watches the descriptor set and rebuilds the site when protoc
// rewrites it. Pages are served under /pages/, with a health endpoint at
// /healthz and Prometheus metrics at /metrics.
//
// version: Print the build version
//
//	spokedoc version
package cli
