package generator

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/tetarus/arch-repo-tools/internal/config"
	"github.com/tetarus/arch-repo-tools/internal/upstream"
)

// templateSuffix is appended to the upstream kind to select a template file.
const templateSuffix = ".pkgbuild.tmpl"

// templateData is the flattened view of a package handed to the template.
type templateData struct {
	PackageName   string
	Version       string
	Release       int
	Description   string
	URL           string
	License       string
	Architectures []string
	Depends       []string
	OptDepends    []string
	MakeDepends   []string
	Provides      []string
	Conflicts     []string
	GitHub        *upstream.GitHubSpec
	GCS           *upstream.GCSSpec
}

// newTemplateData flattens a package record. GCS recipes with checksum
// verification need jq at build time, so it joins makedepends here instead
// of being repeated in every package entry.
func newTemplateData(pkg *config.Package) *templateData {
	data := &templateData{
		PackageName:   pkg.Name,
		Version:       pkg.Version,
		Release:       pkg.Release,
		Description:   pkg.Description,
		URL:           pkg.URL,
		License:       pkg.License,
		Architectures: pkg.Architectures,
		Depends:       pkg.Depends,
		OptDepends:    pkg.OptDepends,
		MakeDepends:   pkg.MakeDepends,
		Provides:      pkg.Provides,
		Conflicts:     pkg.Conflicts,
		GitHub:        pkg.Upstream.GitHub,
		GCS:           pkg.Upstream.GCS,
	}

	if data.GCS != nil && data.GCS.ChecksumVerification && !contains(data.MakeDepends, "jq") {
		data.MakeDepends = append(append([]string(nil), data.MakeDepends...), "jq")
	}

	return data
}

// recipeTemplate wraps a parsed PKGBUILD template for one upstream kind.
type recipeTemplate struct {
	tmpl *template.Template
}

// loadRecipeTemplate reads and parses `<kind>.pkgbuild.tmpl` from the
// templates directory.
func loadRecipeTemplate(dir string, kind upstream.Kind) (*recipeTemplate, error) {
	name := string(kind) + templateSuffix

	raw, err := os.ReadFile(filepath.Clean(filepath.Join(dir, name)))
	if err != nil {
		return nil, fmt.Errorf("template %s: %w", name, err)
	}

	tmpl, err := template.New(name).Funcs(template.FuncMap{
		"shellArray": shellArray,
	}).Parse(string(raw))
	if err != nil {
		return nil, fmt.Errorf("parse template %s: %w", name, err)
	}

	return &recipeTemplate{tmpl: tmpl}, nil
}

// Render produces the complete PKGBUILD text for one package.
func (t *recipeTemplate) Render(data *templateData) (string, error) {
	var buffer bytes.Buffer

	if err := t.tmpl.Execute(&buffer, data); err != nil {
		return "", fmt.Errorf("execute template: %w", err)
	}

	return buffer.String(), nil
}

// shellArray renders a list as a bash array literal: an empty list is `()`,
// a single element stays inline, longer lists get one element per line.
func shellArray(elements []string) string {
	switch len(elements) {
	case 0:
		return "()"
	case 1:
		return "('" + shellQuote(elements[0]) + "')"
	default:
		var builder strings.Builder

		builder.WriteString("(")

		for _, element := range elements {
			builder.WriteString("\n  '")
			builder.WriteString(shellQuote(element))
			builder.WriteString("'")
		}

		builder.WriteString("\n)")

		return builder.String()
	}
}

// shellQuote escapes single quotes for use inside a single-quoted bash word.
func shellQuote(s string) string {
	return strings.ReplaceAll(s, "'", `'\''`)
}

// contains reports whether the slice holds the value.
func contains(elements []string, value string) bool {
	for _, element := range elements {
		if element == value {
			return true
		}
	}

	return false
}
