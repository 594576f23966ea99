// Package reduce implements the two column-by-column distributed
// reduction algorithms over sparse.CSCView: Dense, which densifies each
// column and performs one typed reduce per column, and Gather, which
// exchanges each column's sparse entries directly and merges them on the
// receiving rank(s). Both are collective over a comm.Typed and must be
// called by every rank in the group, in the same column order.
package reduce
