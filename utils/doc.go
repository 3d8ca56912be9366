// Package utils provides small helpers shared by the converter stages.
// This package is not intended to be imported by external code.
//
// It contains:
//   - Float rendering that matches existing KiwiSDR label files
//     ("9400.0", "15070.5")
//   - Decimal rounding for the JSON label format
package utils
