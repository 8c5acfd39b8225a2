// Package generator turns package metadata into static PKGBUILD files.
//
// The template is selected by upstream kind (`github.pkgbuild.tmpl`,
// `gcs.pkgbuild.tmpl`); an unsupported kind skips only that package.
// Generated recipes fetch, verify, and install prebuilt upstream binaries;
// all version resolution happens beforehand via the updater.
package generator
