// Package logging wraps log/slog with pagesync conventions: typed attribute
// helpers, a compact console handler for interactive use, a JSON handler for
// machine consumption, and config-driven construction that tees output to the
// configured log directory.
package logging
