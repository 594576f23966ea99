/*
Package sparse provides the storage containers shared by a distributed
sparse-matrix reduction library: a dense vector (Dense), a sparse vector
(Vector) and a Compressed Sparse Column matrix (CSC), all parameterised by an
index type and a scalar type.

These containers are the hot path of a column-by-column reduce/all-reduce
over a CSC matrix replicated (with differing sparsity patterns and values)
across a group of cooperating processes: each reduction extracts one column
at a time into a Vector, densifies it into a Dense vector (or keeps it
sparse), exchanges it with the rest of the group via the collective wrapper
in the comm package, and appends the summed column back into an output CSC
via Insert. The reduction algorithms themselves live in the reduce package;
comm carries the collective-communication contract they depend on, and gen
produces synthetic CSC matrices for tests and benchmarks.

Vector and Dense both implement gonum's mat.Vector interface (where S is
float64) so they interoperate with the rest of the Gonum ecosystem for
diagnostics and comparisons; CSC implements mat.Matrix likewise.

A CSC matrix is built strictly column-by-column: Insert requires columns to
be supplied in non-decreasing order and, within a column, rows in strictly
ascending order, since Insert appends onto the tail of the backing storage
rather than into a column's positional slot. Any type that exposes the same three operations as
CSCView - Dims, Col and MaxColNNZ - can stand in for a native CSC in the
reduce package, whether or not it physically is one.
*/
package sparse
