/*
Package blas provides the generalized sparse scatter primitive used to
move a column from its sparse (Vector) form into its dense (Dense) form.
No gather primitive is provided.

See http://www.netlib.org/blas/blast-forum/chapter3.pdf for the sparse BLAS
level 1 routines this package's Scatter generalizes beyond float64.
*/
package blas
