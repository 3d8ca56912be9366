// Package weekday encodes EiBi day expressions as weekly bitmasks.
//
// EiBi schedules describe the days a broadcast is on air in several
// syntaxes:
//   - digit sequences, 1=Monday..7=Sunday ("1345")
//   - comma lists and single tokens ("Mo,We,Fr", "Sa", "SaSu", "1.Mo,We")
//   - ranges, wrapping past Sunday when needed ("Mo-Th", "Sa-Tu")
//
// Classify turns the raw field into an Expr, Expr.Mask folds it into a
// 7-bit Mask with Monday in the most significant position, and Mask.Letters
// renders the fixed-width "MTWTFSS" form used by KiwiSDR label files.
// ParseLetters is the inverse used when building the JSON label format.
//
// An empty field means the broadcast runs every day without an explicit
// restriction and yields an empty Mask.
package weekday
