// Package diagnostic provides structured warnings about how struct fields
// were mapped to record tokens.
//
// Key capabilities:
//   - Excluded field reports (bad tags, unexported or embedded fields)
//   - Unsupported value kind reports
//   - Merging diagnostics gathered across many types
package diagnostic
