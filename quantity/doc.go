// Package quantity is the dimensional-analysis boundary of the toolkit.
//
// A Quantity is a numeric value tagged with a Unit (length and time
// dimension exponents over millimeters and seconds). Multiplication and
// division combine units; addition and subtraction between mismatched units
// fail fast with errors.ErrUnitMismatch at first use rather than silently
// producing a wrongly-scaled result.
//
// Calculus and filter nodes in the stream layer accept either plain float64
// payloads or Quantity payloads; the converters in stream/converters bridge
// between the two without losing the unit tag.
package quantity
