package schema

// Type is a documented protobuf type. It is a closed variant: the only
// implementations are *MessageType and *EnumType, and consumers dispatch on
// the concrete type. Two types are the same type exactly when their local
// names match; the model never compares types structurally.
type Type interface {
	// TypeName reports the type's local name within its package.
	TypeName() string

	isType()
}

// MessageType represents a message with its resolved fields. Nested messages
// are flattened into the declaring file's package alongside their parent,
// with Depth recording how deeply the declaration was nested (0 for
// top-level).
type MessageType struct {
	Name        string
	Package     string
	Description string
	Depth       int
	Fields      []*Field // sorted by ascending field number
}

// TypeName reports the message's local name.
func (m *MessageType) TypeName() string { return m.Name }

func (*MessageType) isType() {}

// EnumType represents an enum and its values.
type EnumType struct {
	Name        string
	Package     string
	Description string
	Values      []*EnumValue // sorted by ascending number, aliases in declaration order
}

// TypeName reports the enum's local name.
func (e *EnumType) TypeName() string { return e.Name }

func (*EnumType) isType() {}

// EnumValue is a single enum constant. Aliased values may legally share a
// number.
type EnumValue struct {
	Name             string
	Number           int32
	LeadingComments  string
	TrailingComments string
}

// Field is a resolved message field. Optional reflects proto3 explicit
// presence and Repeated the repeated label; they are independent flags.
type Field struct {
	Name             string
	Type             FieldType
	Number           int32
	Optional         bool
	Repeated         bool
	LeadingComments  string
	TrailingComments string
}
