// Package config loads the manifest driving parser generation.
//
// A manifest lists the packages whose record types get a generated parser
// file. It is YAML unless the file name ends in .json:
//
//	version: "1"
//	targets:
//	  - package: ./examples/basic
//	    types: [Person]          # all record types when empty
//	    output: parsers_gen.go   # file name inside the package directory
//	    register: true           # register with parser.Default from init
//
// Omitted values take their defaults: version "1", output "parsers_gen.go"
// and register true.
package config
