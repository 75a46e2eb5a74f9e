// Package pipeline wires archive reading, fingerprinting, and alignment into
// the workflows the CLI commands invoke.
package pipeline
