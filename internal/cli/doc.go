// Package cli contains the command line interface of record-mapper.
//
// # Commands
//
//   - gen: generate a parsers_gen.go file per package holding record types
//   - inspect: print the field mapping of record types as YAML or JSON
//
// Targets of gen come from package patterns, from a manifest passed with
// --config, or both:
//
//	record-mapper gen ./examples/basic
//	record-mapper gen --config record-mapper.yaml
//	record-mapper inspect --format json ./...
//
// # Logging Options
//
//   - --log-level: Set minimum log level (trace, debug, info, warn, error)
//   - --log-format: Set log output format (text, json)
//   - --log-time-layout: Set timestamp format (RFC3339, Kitchen, etc.)
//   - --log-caller: Include caller information in log output
package cli
