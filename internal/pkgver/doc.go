// Package pkgver canonicalizes upstream version strings and relates recorded
// versions to freshly checked ones.
//
// The canonical form carries no tag prefix, no leading "v", and uses dots
// instead of hyphens; it is what packages.yaml stores and what PKGBUILDs
// interpolate.
package pkgver
