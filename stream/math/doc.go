// Package math provides arithmetic and calculus nodes for the stream
// graph.
//
// Arithmetic nodes stamp their output with the timestamp of the latest
// contributing input, never an average. Absent inputs are skipped by Sum
// and Product, and short-circuit Difference and Quotient to the minuend
// or dividend. A failing input aborts the combination with that input's
// failure.
//
// Derivative and Integral work in seconds and need two samples before
// they produce anything.
package math
