package pkgver

import (
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// Change classifies the relation between a recorded version and a freshly
// checked upstream version.
type Change int

const (
	// Same means both strings denote the same version.
	Same Change = iota
	// Upgrade means the upstream version is newer than the recorded one.
	Upgrade
	// Downgrade means the upstream version is older than the recorded one.
	Downgrade
	// Unknown means at least one side could not be parsed; only plain
	// string comparison applies.
	Unknown
)

// String returns a log-friendly label for the change kind.
func (c Change) String() string {
	switch c {
	case Same:
		return "same"
	case Upgrade:
		return "upgrade"
	case Downgrade:
		return "downgrade"
	default:
		return "unknown"
	}
}

// Normalize reduces a raw upstream version string to the canonical form
// stored in packages.yaml: the tag prefix is stripped (if present), a single
// leading "v" is removed, and hyphens become dots.
//
// Normalize is pure and idempotent; any input maps to some output.
func Normalize(raw, tagPrefix string) string {
	s := raw

	if tagPrefix != "" {
		s = strings.TrimPrefix(s, tagPrefix)
	}

	if strings.HasPrefix(s, "v") {
		s = s[1:]
	}

	return strings.ReplaceAll(s, "-", ".")
}

// Compare relates the currently recorded version to the checked upstream one.
// Equal strings are Same. When both parse as versions, format-only
// differences (e.g. "1.2" vs "1.2.0") also count as Same and the remaining
// cases order as Upgrade or Downgrade. When either side does not parse,
// the relation is Unknown.
func Compare(current, next string) Change {
	if current == next {
		return Same
	}

	currentParsed, err := goversion.NewVersion(current)
	if err != nil {
		return Unknown
	}

	nextParsed, err := goversion.NewVersion(next)
	if err != nil {
		return Unknown
	}

	switch {
	case nextParsed.Equal(currentParsed):
		return Same
	case nextParsed.GreaterThan(currentParsed):
		return Upgrade
	default:
		return Downgrade
	}
}
