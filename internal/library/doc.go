// Package library persists the manga tracker in SQLite: which manga are in
// the collection, which chapters have been prepared in which language, and
// the statistics of each alignment run.
//
// The Store manages the database connection, schema initialization, and an
// advisory file lock so concurrent pagesync invocations do not interleave
// writes. Schema changes bump the version in schema.go; users clear the
// database to adopt the new schema.
package library
