// Package updater checks every configured package against its upstream and
// rewrites packages.yaml when versions moved.
//
// A single pass is sequential: one check per package, log-and-skip on any
// per-package failure, and at most one whole-file rewrite at the end. A run
// marker next to the configuration file prevents overlapping passes.
package updater
