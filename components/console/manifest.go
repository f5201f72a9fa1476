package console

import (
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	manifestVersionV1 = "1"
	// ManifestVersion exposes the current manifest format version for tooling.
	ManifestVersion = manifestVersionV1
)

// SiteManifestDocument models a YAML/JSON manifest describing the console's
// navigation pages for a deployment.
type SiteManifestDocument struct {
	Version  string         `json:"version" yaml:"version"`
	Name     string         `json:"name,omitempty" yaml:"name,omitempty"`
	Package  string         `json:"package,omitempty" yaml:"package,omitempty"`
	Homepage string         `json:"homepage,omitempty" yaml:"homepage,omitempty"`
	Pages    []ManifestPage `json:"pages" yaml:"pages"`
	Source   string         `json:"-" yaml:"-"`
}

// ManifestPage describes a single page entry within a manifest.
type ManifestPage struct {
	Definition  PageDefinition `json:"definition" yaml:"definition"`
	Module      ManifestModule `json:"module,omitempty" yaml:"module,omitempty"`
	Maintainers []string       `json:"maintainers,omitempty" yaml:"maintainers,omitempty"`
	Tags        []string       `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// ManifestModule captures discovery metadata about the backend module a page
// talks to.
type ManifestModule struct {
	Name         string   `json:"name,omitempty" yaml:"name,omitempty"`
	Summary      string   `json:"summary,omitempty" yaml:"summary,omitempty"`
	Endpoint     string   `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Package      string   `json:"package,omitempty" yaml:"package,omitempty"`
	DocsURL      string   `json:"docs_url,omitempty" yaml:"docs_url,omitempty"`
	Capabilities []string `json:"capabilities,omitempty" yaml:"capabilities,omitempty"`
}

// LoadManifestFile reads a manifest from disk, registers it against the
// registry, and returns the document.
func (r *NavRegistry) LoadManifestFile(path string) (*SiteManifestDocument, error) {
	doc, err := ReadManifest(path)
	if err != nil {
		return nil, err
	}
	if err := r.LoadManifestDocument(doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// LoadManifestDocument registers definitions and module metadata from a
// decoded manifest.
func (r *NavRegistry) LoadManifestDocument(doc *SiteManifestDocument) error {
	if doc == nil {
		return fmt.Errorf("console: manifest document is nil")
	}
	for _, page := range doc.Pages {
		if err := r.RegisterDefinition(page.Definition); err != nil {
			return fmt.Errorf("console: register page %s from %s: %w", page.Definition.Code, doc.Source, err)
		}
		r.recordModuleMetadata(page.Definition.Code, page.Module)
	}
	return nil
}

// ReadManifest loads a manifest file from disk without registering it.
func ReadManifest(path string) (*SiteManifestDocument, error) {
	f, err := os.Open(path) //nolint:gosec
	if err != nil {
		return nil, fmt.Errorf("console: open manifest %s: %w", path, err)
	}
	defer f.Close()
	doc, err := DecodeManifest(f)
	if err != nil {
		return nil, fmt.Errorf("console: decode manifest %s: %w", path, err)
	}
	doc.Source = path
	return doc, nil
}

// DecodeManifest reads a manifest from any reader.
func DecodeManifest(r io.Reader) (*SiteManifestDocument, error) {
	decoder := yaml.NewDecoder(r)
	decoder.KnownFields(true)
	var doc SiteManifestDocument
	if err := decoder.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("console: manifest is empty")
		}
		return nil, fmt.Errorf("console: parse manifest: %w", err)
	}
	doc.applyDefaults()
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Validate ensures the manifest satisfies required fields.
func (doc *SiteManifestDocument) Validate() error {
	if doc.Version != manifestVersionV1 {
		return fmt.Errorf("console: unsupported manifest version %q", doc.Version)
	}
	seen := make(map[string]struct{}, len(doc.Pages))
	for idx, page := range doc.Pages {
		if page.Definition.Code == "" {
			return fmt.Errorf("console: manifest page at index %d is missing definition.code", idx)
		}
		if page.Definition.Title == "" {
			return fmt.Errorf("console: manifest page %s missing definition.title", page.Definition.Code)
		}
		if _, exists := seen[page.Definition.Code]; exists {
			return fmt.Errorf("console: manifest duplicates page code %s", page.Definition.Code)
		}
		seen[page.Definition.Code] = struct{}{}
	}
	return nil
}

func (doc *SiteManifestDocument) applyDefaults() {
	if doc.Version == "" {
		doc.Version = manifestVersionV1
	}
}

func (m ManifestModule) isZero() bool {
	return m.Name == "" &&
		m.Summary == "" &&
		m.Endpoint == "" &&
		m.Package == "" &&
		m.DocsURL == "" &&
		len(m.Capabilities) == 0
}
