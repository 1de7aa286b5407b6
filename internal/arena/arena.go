package arena

import (
	"fmt"

	"github.com/oxhq/styler/internal/diag"
)

// NullIndex is the sentinel distinguishing "no parent" / "no reference".
// Passing it to a read operation fails with an ArgumentFault.
const NullIndex = -1

// childHandle is a (offset, count) pair into the flat child-index buffer.
type childHandle struct {
	offset int
	count  int
}

// Arena is dense, index-addressed storage for parse-tree nodes: parallel
// arrays for kind/start/end/children, amortized geometric growth, and one
// side table per attribute schema.
type Arena struct {
	kinds    []NodeKind
	starts   []int
	ends     []int
	handles  []childHandle
	children []int // flat child-index buffer

	closed bool

	typeDecl     AttrTable[TypeDeclAttrs]
	parameter    AttrTable[ParameterAttrs]
	module       AttrTable[ModuleAttrs]
	requires     AttrTable[RequiresAttrs]
	exportsOpens AttrTable[ExportsOpensAttrs]
	provides     AttrTable[ProvidesAttrs]
	uses         AttrTable[UsesAttrs]
	moduleImport AttrTable[ModuleImportAttrs]
	literal      AttrTable[LiteralAttrs]
	identifier   AttrTable[IdentifierAttrs]
	modifier     AttrTable[ModifierAttrs]
}

// New constructs an Arena with the given initial node capacity. A
// zero-or-negative capacity is rejected; a default-capacity arena always
// allocates at least one node's worth of backing storage.
func New(capacity int) (*Arena, error) {
	if capacity <= 0 {
		return nil, diag.ArgumentFault{Operation: "arena.New", Reason: "capacity must be positive"}
	}
	return &Arena{
		kinds:        make([]NodeKind, 0, capacity),
		starts:       make([]int, 0, capacity),
		ends:         make([]int, 0, capacity),
		handles:      make([]childHandle, 0, capacity),
		children:     make([]int, 0, capacity*2),
		typeDecl:     newAttrTable[TypeDeclAttrs](),
		parameter:    newAttrTable[ParameterAttrs](),
		module:       newAttrTable[ModuleAttrs](),
		requires:     newAttrTable[RequiresAttrs](),
		exportsOpens: newAttrTable[ExportsOpensAttrs](),
		provides:     newAttrTable[ProvidesAttrs](),
		uses:         newAttrTable[UsesAttrs](),
		moduleImport: newAttrTable[ModuleImportAttrs](),
		literal:      newAttrTable[LiteralAttrs](),
		identifier:   newAttrTable[IdentifierAttrs](),
		modifier:     newAttrTable[ModifierAttrs](),
	}, nil
}

func (a *Arena) checkOpen(op string) error {
	if a.closed {
		return diag.ArenaClosedFault{Operation: op}
	}
	return nil
}

// Allocate reserves a new node with the given kind and byte range,
// returning its index. Negative byte offsets are rejected at allocation
// time.
func (a *Arena) Allocate(kind NodeKind, start, end int) (int, error) {
	if err := a.checkOpen("Allocate"); err != nil {
		return NullIndex, err
	}
	if start < 0 || end < 0 {
		return NullIndex, diag.ArgumentFault{Operation: "Allocate", Reason: "negative byte offset"}
	}
	if start > end {
		return NullIndex, diag.ArgumentFault{Operation: "Allocate", Reason: "start > end"}
	}
	idx := len(a.kinds)
	a.kinds = append(a.kinds, kind)
	a.starts = append(a.starts, start)
	a.ends = append(a.ends, end)
	a.handles = append(a.handles, childHandle{offset: 0, count: 0})
	return idx, nil
}

func (a *Arena) checkIndex(op string, index int) error {
	if index == NullIndex {
		return diag.ArgumentFault{Operation: op, Reason: "null sentinel index is never a valid argument"}
	}
	if index < 0 || index >= len(a.kinds) {
		return diag.ArgumentFault{Operation: op, Reason: fmt.Sprintf("index %d out of bounds [0,%d)", index, len(a.kinds))}
	}
	return nil
}

// AppendChild appends child to parent's child list, in call order. If the
// parent's existing slice is not at the tail of the flat child buffer,
// its slice is relocated to the tail (amortized O(1)).
func (a *Arena) AppendChild(parent, child int) error {
	if err := a.checkOpen("AppendChild"); err != nil {
		return err
	}
	if err := a.checkIndex("AppendChild(parent)", parent); err != nil {
		return err
	}
	if err := a.checkIndex("AppendChild(child)", child); err != nil {
		return err
	}

	h := a.handles[parent]
	tailOffset := h.offset + h.count
	if h.count > 0 && tailOffset == len(a.children) {
		// Parent's slice is already at the tail: append in place.
		a.children = append(a.children, child)
		a.handles[parent].count++
		return nil
	}
	if h.count == 0 {
		// First child: try to place at tail directly.
		a.handles[parent] = childHandle{offset: len(a.children), count: 1}
		a.children = append(a.children, child)
		return nil
	}

	// Relocate: copy the existing slice to the tail, then append.
	existing := make([]int, h.count)
	copy(existing, a.children[h.offset:h.offset+h.count])
	newOffset := len(a.children)
	a.children = append(a.children, existing...)
	a.children = append(a.children, child)
	a.handles[parent] = childHandle{offset: newOffset, count: h.count + 1}
	return nil
}

// KindOf returns the node kind at index.
func (a *Arena) KindOf(index int) (NodeKind, error) {
	if err := a.checkOpen("KindOf"); err != nil {
		return KindInvalid, err
	}
	if err := a.checkIndex("KindOf", index); err != nil {
		return KindInvalid, err
	}
	return a.kinds[index], nil
}

// RangeOf returns the (start, end) byte range at index.
func (a *Arena) RangeOf(index int) (int, int, error) {
	if err := a.checkOpen("RangeOf"); err != nil {
		return 0, 0, err
	}
	if err := a.checkIndex("RangeOf", index); err != nil {
		return 0, 0, err
	}
	return a.starts[index], a.ends[index], nil
}

// ChildrenOf returns the child indices of parent, in the order they were
// appended. The returned slice is a read-only view.
func (a *Arena) ChildrenOf(parent int) ([]int, error) {
	if err := a.checkOpen("ChildrenOf"); err != nil {
		return nil, err
	}
	if err := a.checkIndex("ChildrenOf", parent); err != nil {
		return nil, err
	}
	h := a.handles[parent]
	if h.count == 0 {
		return nil, nil
	}
	out := make([]int, h.count)
	copy(out, a.children[h.offset:h.offset+h.count])
	return out, nil
}

// NodeCount returns the number of allocated nodes.
func (a *Arena) NodeCount() int { return len(a.kinds) }

// Capacity returns the current backing-array capacity.
func (a *Arena) Capacity() int { return cap(a.kinds) }

// nodeRecordBytes approximates the per-node fixed-width record: 1 byte
// kind-class + two 4-byte offsets + one 8-byte child-handle pair, rounded
// up to a machine word boundary. Used only for memory_usage() reporting.
const nodeRecordBytes = 24

// MemoryUsage reports capacity * per-node record size
// (`memory_usage == 100 × record_bytes` for a 100-node arena).
func (a *Arena) MemoryUsage() int { return a.Capacity() * nodeRecordBytes }

// Close releases all backing storage. Reads after Close fail with
// ArenaClosedFault.
func (a *Arena) Close() {
	a.kinds = nil
	a.starts = nil
	a.ends = nil
	a.handles = nil
	a.children = nil
	a.closed = true
}

// --- Typed attribute accessors, one per attribute schema ---

func (a *Arena) SetTypeDeclAttrs(index int, v TypeDeclAttrs) error {
	if err := a.checkIndex("SetTypeDeclAttrs", index); err != nil {
		return err
	}
	a.typeDecl.Set(index, v)
	return nil
}

func (a *Arena) TypeDeclAttrsOf(index int) (TypeDeclAttrs, bool) { return a.typeDecl.Get(index) }

func (a *Arena) SetParameterAttrs(index int, v ParameterAttrs) error {
	if err := a.checkIndex("SetParameterAttrs", index); err != nil {
		return err
	}
	a.parameter.Set(index, v)
	return nil
}

func (a *Arena) ParameterAttrsOf(index int) (ParameterAttrs, bool) { return a.parameter.Get(index) }

func (a *Arena) SetModuleAttrs(index int, v ModuleAttrs) error {
	if err := a.checkIndex("SetModuleAttrs", index); err != nil {
		return err
	}
	a.module.Set(index, v)
	return nil
}

func (a *Arena) ModuleAttrsOf(index int) (ModuleAttrs, bool) { return a.module.Get(index) }

func (a *Arena) SetRequiresAttrs(index int, v RequiresAttrs) error {
	if err := a.checkIndex("SetRequiresAttrs", index); err != nil {
		return err
	}
	a.requires.Set(index, v)
	return nil
}

func (a *Arena) RequiresAttrsOf(index int) (RequiresAttrs, bool) { return a.requires.Get(index) }

func (a *Arena) SetExportsOpensAttrs(index int, v ExportsOpensAttrs) error {
	if err := a.checkIndex("SetExportsOpensAttrs", index); err != nil {
		return err
	}
	a.exportsOpens.Set(index, v)
	return nil
}

func (a *Arena) ExportsOpensAttrsOf(index int) (ExportsOpensAttrs, bool) {
	return a.exportsOpens.Get(index)
}

func (a *Arena) SetProvidesAttrs(index int, v ProvidesAttrs) error {
	if err := a.checkIndex("SetProvidesAttrs", index); err != nil {
		return err
	}
	a.provides.Set(index, v)
	return nil
}

func (a *Arena) ProvidesAttrsOf(index int) (ProvidesAttrs, bool) { return a.provides.Get(index) }

func (a *Arena) SetUsesAttrs(index int, v UsesAttrs) error {
	if err := a.checkIndex("SetUsesAttrs", index); err != nil {
		return err
	}
	a.uses.Set(index, v)
	return nil
}

func (a *Arena) UsesAttrsOf(index int) (UsesAttrs, bool) { return a.uses.Get(index) }

func (a *Arena) SetModuleImportAttrs(index int, v ModuleImportAttrs) error {
	if err := a.checkIndex("SetModuleImportAttrs", index); err != nil {
		return err
	}
	a.moduleImport.Set(index, v)
	return nil
}

func (a *Arena) ModuleImportAttrsOf(index int) (ModuleImportAttrs, bool) {
	return a.moduleImport.Get(index)
}

func (a *Arena) SetLiteralAttrs(index int, v LiteralAttrs) error {
	if err := a.checkIndex("SetLiteralAttrs", index); err != nil {
		return err
	}
	a.literal.Set(index, v)
	return nil
}

func (a *Arena) LiteralAttrsOf(index int) (LiteralAttrs, bool) { return a.literal.Get(index) }

func (a *Arena) SetIdentifierAttrs(index int, v IdentifierAttrs) error {
	if err := a.checkIndex("SetIdentifierAttrs", index); err != nil {
		return err
	}
	a.identifier.Set(index, v)
	return nil
}

func (a *Arena) IdentifierAttrsOf(index int) (IdentifierAttrs, bool) { return a.identifier.Get(index) }

func (a *Arena) SetModifierAttrs(index int, v ModifierAttrs) error {
	if err := a.checkIndex("SetModifierAttrs", index); err != nil {
		return err
	}
	a.modifier.Set(index, v)
	return nil
}

func (a *Arena) ModifierAttrsOf(index int) (ModifierAttrs, bool) { return a.modifier.Get(index) }
