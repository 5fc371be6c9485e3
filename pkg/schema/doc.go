// Package schema turns compiled protobuf descriptors into a cross-referenced
// documentation model.
//
// # Overview
//
// The input is a self-consistent descriptor set, the kind protoc hands a
// plugin or writes with --descriptor_set_out: every imported file is present
// and every type reference already resolved to an absolute dotted name. From
// it the package builds, in one synchronous pass:
//
//   - a TypeIndex of every message and enum, keyed by package, with nested
//     declarations flattened in and comments attached
//   - per requested file, the Service and Method models with streaming
//     classification, deprecation partitioning, and method input/output
//     resolved to shared index nodes
//   - per root type, the transitive closure of referenced custom types, for
//     self-contained per-method type listings
//
// # Comment Paths
//
// Descriptor comments live in SourceCodeInfo, addressed by structural paths
// that alternate descriptor field numbers and declaration indexes: [4, 1] is
// the second top-level message, [4, 1, 2, 0] its first field, [6, 0, 2, 3]
// the fourth method of the first service. CommentTable indexes a file's
// locations once so every model node can fetch its comments by path.
//
// # Resolution
//
// Type references are split at their first and last dot into package and
// local name and looked up in the index bucket for that package. Method
// input/output must resolve to an indexed message; anything else fails the
// build with ErrUnresolvedTypeReference. Field references inside closure
// walks are weaker: a miss is skipped, because references to nested types
// synthesize package strings that do not always name a real bucket.
//
// # Errors
//
// The package fails a generation request with one of four sentinel errors,
// all recoverable by the caller: ErrFileNotFound, ErrMissingSourceInfo,
// ErrUnresolvedTypeReference and ErrMalformedTypeReference. Comment lookups
// and closure misses are not errors; absence is their normal case.
package schema
