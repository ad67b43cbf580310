package gosave

import (
	"cmp"
	"fmt"
)

// VariantInfo identifies the arm of a sum type that produced a node.
type VariantInfo struct {
	Name    string // Outer type name.
	Index   uint32 // Declaration index of the variant.
	Variant string // Variant name.
}

// Compare orders by (Name, Index, Variant).
func (v VariantInfo) Compare(o VariantInfo) int {
	if c := cmp.Compare(v.Name, o.Name); c != 0 {
		return c
	}
	if c := cmp.Compare(v.Index, o.Index); c != 0 {
		return c
	}
	return cmp.Compare(v.Variant, o.Variant)
}

func (v VariantInfo) String() string {
	return fmt.Sprintf("%s::%s(#%d)", v.Name, v.Variant, v.Index)
}
