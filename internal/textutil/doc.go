// Package textutil provides small text helpers shared across the conversion
// pipeline.
//
// FirstNonEmpty implements ordered default-if-empty selection for manifest
// string fields. It treats whitespace-only strings as empty so a manifest
// value of "  " does not mask its configured fallback.
package textutil
