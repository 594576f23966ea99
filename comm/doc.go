// Package comm provides the collective-communication substrate reduce
// builds on: a typed reduce/all-reduce and gatherv/all-gatherv surface over
// a pluggable Backend, plus LocalGroup, an in-process reference Backend
// that simulates a fixed number of ranks as goroutines rendezvousing on a
// shared barrier. Production callers supply their own Backend over a real
// transport; LocalGroup exists so reduce's algorithms can be exercised and
// tested without one.
package comm
