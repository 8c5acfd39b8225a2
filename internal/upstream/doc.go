// Package upstream models the origins packages are fetched from and checks
// them for new releases.
//
// A Spec is a tagged variant over the supported kinds (GitHub release API,
// GCS bucket); NewChecker dispatches on the kind. Checkers return versions
// already in canonical form. A failed check is an error result, never a
// panic, and the sentinel ErrNoUpdate distinguishes "nothing to pick up"
// from a broken upstream.
package upstream
