// Package conv provides bounds-checked integer conversions for values whose
// range is not already guaranteed by the caller, such as out-degree counts.
package conv
