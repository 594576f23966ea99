package comm

import (
	"fmt"
	"reflect"

	sparse "github.com/jrbaldwin/sparsereduce"
)

// datatypeNames mirrors the datatype handle lookup a real collective
// library performs before it can move a buffer of a given scalar type
// across the wire: NewTyped resolves S to a name here once, at
// construction, and Typed uses it purely for diagnostics, since the Numeric constraint
// already guarantees at compile time that no unsupported scalar type can
// ever reach a reducer.
var datatypeNames = map[reflect.Kind]string{
	reflect.Int8:    "int8",
	reflect.Int16:   "int16",
	reflect.Int32:   "int32",
	reflect.Int64:   "int64",
	reflect.Uint8:   "uint8",
	reflect.Uint16:  "uint16",
	reflect.Uint32:  "uint32",
	reflect.Uint64:  "uint64",
	reflect.Float32: "float32",
	reflect.Float64: "float64",
}

// datatypeName returns the substrate-facing name for S, or an error with
// Kind UnknownType if reflection somehow turns up a kind outside the
// lookup table (which Numeric's type set should make unreachable).
func datatypeName[S sparse.Numeric]() (string, error) {
	var zero S
	kind := reflect.TypeOf(zero).Kind()
	name, ok := datatypeNames[kind]
	if !ok {
		return "", &sparse.Error{
			Kind:    sparse.UnknownType,
			Message: fmt.Sprintf("no substrate datatype handle for kind %s", kind),
		}
	}
	return name, nil
}
