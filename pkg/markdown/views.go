package markdown

import (
	"github.com/platinummonkey/spokedoc/pkg/schema"
)

// Page is one documentation page ready for rendering.
type Page struct {
	Source   string
	Services []*ServiceView
}

// ServiceView pairs a resolved service with the per-method type listings the
// template renders. Methods and Deprecated mirror the service's partition.
type ServiceView struct {
	Service    *schema.Service
	Methods    []*MethodView
	Deprecated []*MethodView
}

// AllMethods returns active methods followed by deprecated ones, in the
// order pages render them.
func (v *ServiceView) AllMethods() []*MethodView {
	all := make([]*MethodView, 0, len(v.Methods)+len(v.Deprecated))
	all = append(all, v.Methods...)
	return append(all, v.Deprecated...)
}

// MethodView carries a method plus the self-contained type listings for its
// two sides: the input or output type itself followed by every custom type it
// transitively references.
type MethodView struct {
	Method      *schema.Method
	InputTypes  []schema.Type
	OutputTypes []schema.Type
}
