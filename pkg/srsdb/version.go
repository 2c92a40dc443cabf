// Package srsdb holds application-level metadata shared by the CLI.
package srsdb

var (
	// Version is overwritten by the build flags.
	Version = "v0.1.0"

	// Build is a timestamp set by the build flags.
	Build = "n/a"
)
