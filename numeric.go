package sparse

import "golang.org/x/exp/constraints"

// Index is the family of integer types usable as a row, column, or flat
// position index into a container. Plain int is included alongside the
// fixed-width kinds since Go code overwhelmingly indexes slices with int.
// constraints.Integer already covers exactly this set (Signed | Unsigned).
type Index interface {
	constraints.Integer
}

// Numeric is the family of scalar types the collective-communication
// substrate's datatype lookup recognises: the eight fixed-width integer
// kinds plus the two floating-point kinds. A reducer can only be
// instantiated over these types because the substrate has no datatype
// handle for anything else (no complex scalars, no plain int whose width
// is platform-dependent). The floating-point half is pulled straight from
// constraints.Float; the integer half has to be spelled out by hand since
// constraints.Integer also admits plain int/uint, which this substrate
// can't carry.
type Numeric interface {
	~int8 | ~int16 | ~int32 | ~int64 |
		~uint8 | ~uint16 | ~uint32 | ~uint64 |
		constraints.Float
}
