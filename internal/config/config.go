package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/tetarus/arch-repo-tools/internal/upstream"
)

const (
	// DefaultFilename is the default name of the package configuration file.
	DefaultFilename = "packages.yaml"

	// DefaultFilePermissions is used when writing the configuration back.
	DefaultFilePermissions = 0o644

	// packagesKey is the top-level mapping holding all package records.
	packagesKey = "packages"
)

var (
	// errDuplicatePackage is returned when a package name appears twice.
	errDuplicatePackage = errors.New("duplicate package name")
	// errPackageNotFound is returned when mutating a package that is not in the file.
	errPackageNotFound = errors.New("package not found")
	// errNotAMapping is returned when the packages key holds something else than a mapping.
	errNotAMapping = errors.New("packages must be a mapping")
)

// Package is one record of the packages mapping.
type Package struct {
	// Name is the mapping key; it is not repeated inside the record.
	Name string `yaml:"-"`

	// Version is the currently recorded canonical version.
	Version string `yaml:"version"`
	// Release is the build-iteration counter (pkgrel), reset to 1 on version change.
	Release int `yaml:"pkgrel"`

	Description   string   `yaml:"description"`
	URL           string   `yaml:"url"`
	License       string   `yaml:"license"`
	Architectures []string `yaml:"architectures"`

	Depends     []string `yaml:"depends"`
	OptDepends  []string `yaml:"optdepends"`
	MakeDepends []string `yaml:"makedepends"`
	Provides    []string `yaml:"provides"`
	Conflicts   []string `yaml:"conflicts"`

	Upstream upstream.Spec `yaml:"upstream"`
}

// File is the parsed configuration. It keeps two views of the same document:
// a typed, ordered package list for reading, and the decoded yaml.Node tree
// so an in-place rewrite preserves key order, comments, and any fields the
// typed view does not model.
type File struct {
	// Packages lists all records in file order.
	Packages []*Package

	doc      yaml.Node
	modified bool
}

// Load reads and parses the configuration file.
// A missing or unparseable file is a fatal condition for every tool.
func Load(path string) (*File, error) {
	contents, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	file := new(File)
	if err = yaml.Unmarshal(contents, &file.doc); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err = file.decodePackages(); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	return file, nil
}

// Package returns the record with the given name, or nil.
func (f *File) Package(name string) *Package {
	for _, pkg := range f.Packages {
		if pkg.Name == name {
			return pkg
		}
	}

	return nil
}

// Modified reports whether SetVersion changed anything since loading.
func (f *File) Modified() bool {
	return f.modified
}

// SetVersion records a new version for the named package and resets its
// release counter to 1. Both the typed view and the underlying document are
// updated, so a later Save persists the change.
func (f *File) SetVersion(name, version string) error {
	pkg := f.Package(name)
	if pkg == nil {
		return fmt.Errorf("%s: %w", name, errPackageNotFound)
	}

	node := mappingValue(f.packagesNode(), name)
	if node == nil || node.Kind != yaml.MappingNode {
		return fmt.Errorf("%s: %w", name, errPackageNotFound)
	}

	setScalar(node, "version", version, "!!str")
	setScalar(node, "pkgrel", "1", "!!int")

	pkg.Version = version
	pkg.Release = 1
	f.modified = true

	return nil
}

// Save writes the whole document back atomically: encode, write to a
// temporary file in the target directory, then rename over the original.
func (f *File) Save(path string) error {
	var buffer bytes.Buffer

	encoder := yaml.NewEncoder(&buffer)
	encoder.SetIndent(2)

	if err := encoder.Encode(&f.doc); err != nil {
		return fmt.Errorf("encode packages: %w", err)
	}

	if err := encoder.Close(); err != nil {
		return fmt.Errorf("encode packages: %w", err)
	}

	directory := filepath.Dir(path)

	temporary, err := os.CreateTemp(directory, ".packages-*.yaml")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}

	temporaryName := temporary.Name()

	if _, err = temporary.Write(buffer.Bytes()); err != nil {
		_ = temporary.Close()
		_ = os.Remove(temporaryName)

		return fmt.Errorf("write %s: %w", temporaryName, err)
	}

	if err = temporary.Close(); err != nil {
		_ = os.Remove(temporaryName)

		return fmt.Errorf("close %s: %w", temporaryName, err)
	}

	if err = os.Chmod(temporaryName, DefaultFilePermissions); err != nil {
		_ = os.Remove(temporaryName)

		return fmt.Errorf("chmod %s: %w", temporaryName, err)
	}

	if err = os.Rename(temporaryName, path); err != nil {
		_ = os.Remove(temporaryName)

		return fmt.Errorf("replace %s: %w", path, err)
	}

	return nil
}

// decodePackages builds the typed view from the document tree.
func (f *File) decodePackages() error {
	node := f.packagesNode()
	if node == nil {
		return nil
	}

	if node.Kind != yaml.MappingNode {
		return errNotAMapping
	}

	seen := make(map[string]struct{}, len(node.Content)/2)

	for i := 0; i+1 < len(node.Content); i += 2 {
		name := node.Content[i].Value

		if _, ok := seen[name]; ok {
			return fmt.Errorf("%s: %w", name, errDuplicatePackage)
		}

		seen[name] = struct{}{}

		pkg := new(Package)
		if err := node.Content[i+1].Decode(pkg); err != nil {
			return fmt.Errorf("package %s: %w", name, err)
		}

		pkg.Name = name

		// pkgrel must stay a positive integer.
		if pkg.Release < 1 {
			pkg.Release = 1
		}

		f.Packages = append(f.Packages, pkg)
	}

	return nil
}

// packagesNode returns the mapping node under the top-level packages key.
func (f *File) packagesNode() *yaml.Node {
	root := &f.doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	return mappingValue(root, packagesKey)
}

// mappingValue returns the value node for key within a mapping node.
func mappingValue(node *yaml.Node, key string) *yaml.Node {
	if node == nil || node.Kind != yaml.MappingNode {
		return nil
	}

	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}

	return nil
}

// setScalar overwrites (or appends) a scalar entry in a mapping node.
func setScalar(mapping *yaml.Node, key, value, tag string) {
	if existing := mappingValue(mapping, key); existing != nil {
		existing.Kind = yaml.ScalarNode
		existing.Tag = tag
		existing.Value = value
		existing.Style = 0

		return
	}

	mapping.Content = append(mapping.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Tag: tag, Value: value},
	)
}
