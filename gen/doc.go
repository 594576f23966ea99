// Package gen produces synthetic CSC matrices for exercising the
// reducers: Banded (deterministic band pattern), BandIsh (per-cell
// Bernoulli with a distance-weighted probability), and Random (uniform
// sampling, exact via rejection sampling or approximate via independent
// Bernoulli draws).
package gen
