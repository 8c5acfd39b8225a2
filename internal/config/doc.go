// Package config reads and rewrites packages.yaml, the sole persisted state
// of the toolkit.
//
// Loading produces both a typed, ordered view of the package records and the
// underlying yaml.Node tree. The version updater mutates only version and
// pkgrel scalars inside that tree, so a rewrite keeps key order, comments,
// and unmodeled fields intact. Saving is a whole-file atomic replace
// (temporary file plus rename).
package config
