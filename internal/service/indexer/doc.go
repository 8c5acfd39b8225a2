// Package indexer regenerates the static HTML index of the repository.
//
// It pairs package metadata from packages.yaml with the artifact files
// already present in the output directory and substitutes the assembled
// table into a template at three literal tokens. The template is plain text
// to the indexer; nothing outside the tokens is interpreted.
package indexer
