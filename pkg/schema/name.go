package schema

import (
	"fmt"
	"strings"
)

// QualifiedName is the parsed form of an absolute dotted type reference as it
// appears in descriptor type_name fields, e.g. ".foo.bar.Baz".
type QualifiedName struct {
	Package string
	Name    string
}

// ParseQualifiedName splits a dotted type reference into its package and local
// name. The package is everything strictly between the first and the last dot,
// the local name everything after the last dot. References carrying fewer than
// two dots cannot be split and fail with ErrMalformedTypeReference.
func ParseQualifiedName(ref string) (QualifiedName, error) {
	first := strings.Index(ref, ".")
	last := strings.LastIndex(ref, ".")
	if first < 0 || first == last {
		return QualifiedName{}, fmt.Errorf("%w: %s", ErrMalformedTypeReference, ref)
	}
	return QualifiedName{
		Package: ref[first+1 : last],
		Name:    ref[last+1:],
	}, nil
}

// String reassembles the absolute dotted form.
func (n QualifiedName) String() string {
	return "." + n.Package + "." + n.Name
}
