// Package formatter provides serialization of KiwiSDR label files.
//
// This package is organized into:
// - kiwicsv.go: the intermediate semicolon separated label CSV (write and read back)
// - json.go: the JSON label format built from the CSV
// - percent.go: readable percent-encoding of display text
//
// All serialization is done manually for byte-exact control over the output.
package formatter
