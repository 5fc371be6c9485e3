package schema

import (
	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

// closureMemoSize bounds the per-collector memo. Eviction only costs a
// recomputation.
const closureMemoSize = 256

// ClosureCollector computes, per root type, the ordered set of custom types
// transitively reachable through message fields. One collector serves one
// generation pass and memoizes completed walks by the root's qualified name.
type ClosureCollector struct {
	index TypeIndex
	memo  *lru.LRU[string, []Type]
}

// NewClosureCollector creates a collector over the given index.
func NewClosureCollector(index TypeIndex) *ClosureCollector {
	return &ClosureCollector{
		index: index,
		memo:  lru.NewLRU[string, []Type](closureMemoSize, nil, 0),
	}
}

// Collect returns every custom type reachable from root's fields, depth
// first, each type exactly once, in the order first discovered. The root
// itself is excluded. Enum types terminate their branch; only messages
// recurse. References whose package bucket or name is absent from the index
// are skipped: nested-type references synthesize a package that does not
// always match a top-level bucket, and such misses are defined absence, not
// errors.
func (c *ClosureCollector) Collect(root Type) []Type {
	key := closureKey(root)
	if cached, ok := c.memo.Get(key); ok {
		return cached
	}
	seen := map[string]bool{root.TypeName(): true}
	var out []Type
	if msg, ok := root.(*MessageType); ok {
		out = c.walk(msg, seen, out)
	}
	c.memo.Add(key, out)
	return out
}

// walk appends each newly discovered type before descending into it, so a
// cycle back to an already seen type (including the root) ends the branch.
func (c *ClosureCollector) walk(msg *MessageType, seen map[string]bool, out []Type) []Type {
	for _, field := range msg.Fields {
		if !field.Type.Custom() {
			continue
		}
		ref := *field.Type.Ref
		if seen[ref.Name] {
			continue
		}
		t, ok := c.index.Lookup(ref)
		if !ok {
			continue
		}
		seen[ref.Name] = true
		out = append(out, t)
		if next, ok := t.(*MessageType); ok {
			out = c.walk(next, seen, out)
		}
	}
	return out
}

func closureKey(t Type) string {
	switch v := t.(type) {
	case *MessageType:
		return v.Package + "." + v.Name
	case *EnumType:
		return v.Package + "." + v.Name
	}
	return t.TypeName()
}
