// Package conv provides checked integer conversions for values that cross
// the snapshot format boundary (header counts and stored cluster indices).
package conv
