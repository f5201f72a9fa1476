package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/ettle/strcase"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-catalog-admin/components/console"
)

type cli struct {
	Scaffold scaffoldCmd `cmd:"" help:"Add a page entry to a site manifest."`
	Validate validateCmd `cmd:"" help:"Validate one or more site manifest files."`
}

type scaffoldCmd struct {
	Code         string   `required:"" help:"Page code (e.g. inventario)."`
	Title        string   `required:"" help:"Navigation title shown in the console."`
	Icon         string   `help:"Icon name for the navigation entry."`
	Path         string   `help:"Route path (defaults to /paginas/<code>)."`
	Role         []string `help:"Roles allowed to see the page (use multiple --role flags; empty means everyone)."`
	Order        int      `help:"Navigation sort order."`
	ManifestPath string   `required:"" type:"path" help:"Path to the site manifest YAML file to update."`
	SchemaPath   string   `type:"path" help:"Optional path to a JSON schema file for the page settings."`
	Tag          []string `help:"Optional tags to include in the manifest (use multiple --tag flags)."`
	Maintainer   []string `help:"Maintainers to record in the manifest."`
	Endpoint     string   `help:"Backend endpoint the page talks to."`
	ModuleName   string   `help:"Backend module name recorded in the manifest."`
	DocsURL      string   `help:"Link to module documentation."`
	Overwrite    bool     `help:"Overwrite an existing manifest entry for the same code."`
}

type validateCmd struct {
	Paths []string `arg:"" type:"path" help:"Manifest files to validate."`
}

func main() {
	ctx := kong.Parse(&cli{},
		kong.Description("Site manifest utility for the catalog admin console."),
		kong.UsageOnError(),
	)
	err := ctx.Run(context.Background())
	ctx.FatalIfErrorf(err)
}

func (cmd *scaffoldCmd) Run(_ context.Context) error {
	if err := cmd.validate(); err != nil {
		return err
	}
	manifestPath, err := filepath.Abs(cmd.ManifestPath)
	if err != nil {
		return fmt.Errorf("consolectl: resolve manifest path: %w", err)
	}
	doc, err := loadOrInitManifest(manifestPath)
	if err != nil {
		return err
	}
	if !cmd.Overwrite {
		for _, page := range doc.Pages {
			if page.Definition.Code == cmd.Code {
				return fmt.Errorf("consolectl: manifest already defines page %s (use --overwrite to replace)", cmd.Code)
			}
		}
	}

	schema, err := cmd.loadSchema()
	if err != nil {
		return err
	}

	path := cmd.Path
	if path == "" {
		path = "/paginas/" + strcase.ToKebab(cmd.Code)
	}

	entry := console.ManifestPage{
		Definition: console.PageDefinition{
			Code:   cmd.Code,
			Title:  cmd.Title,
			Icon:   cmd.Icon,
			Path:   path,
			Roles:  cmd.Role,
			Order:  cmd.Order,
			Schema: schema,
		},
		Module: console.ManifestModule{
			Name:     cmd.ModuleName,
			Summary:  cmd.Title,
			Endpoint: cmd.Endpoint,
			DocsURL:  cmd.DocsURL,
		},
		Maintainers: cmd.Maintainer,
		Tags:        cmd.Tag,
	}

	if cmd.Overwrite {
		replaced := false
		for idx := range doc.Pages {
			if doc.Pages[idx].Definition.Code == cmd.Code {
				doc.Pages[idx] = entry
				replaced = true
				break
			}
		}
		if !replaced {
			doc.Pages = append(doc.Pages, entry)
		}
	} else {
		doc.Pages = append(doc.Pages, entry)
	}

	sort.Slice(doc.Pages, func(i, j int) bool {
		if doc.Pages[i].Definition.Order != doc.Pages[j].Definition.Order {
			return doc.Pages[i].Definition.Order < doc.Pages[j].Definition.Order
		}
		return doc.Pages[i].Definition.Code < doc.Pages[j].Definition.Code
	})

	if err := writeManifest(manifestPath, doc); err != nil {
		return err
	}

	fmt.Fprintf(os.Stdout, "✓ Added %s to %s\n", cmd.Code, manifestPath)
	return nil
}

func (cmd *scaffoldCmd) validate() error {
	code := strings.TrimSpace(cmd.Code)
	if code == "" || strings.ContainsAny(code, " /") {
		return fmt.Errorf("consolectl: page code %q must be a non-empty slug", cmd.Code)
	}
	return nil
}

func (cmd *scaffoldCmd) loadSchema() (map[string]any, error) {
	if cmd.SchemaPath == "" {
		return nil, nil
	}
	data, err := os.ReadFile(cmd.SchemaPath)
	if err != nil {
		return nil, fmt.Errorf("consolectl: read schema file: %w", err)
	}
	var schema map[string]any
	if err := json.Unmarshal(data, &schema); err != nil {
		return nil, fmt.Errorf("consolectl: parse schema JSON: %w", err)
	}
	return schema, nil
}

func (cmd *validateCmd) Run(_ context.Context) error {
	var failures int
	for _, path := range cmd.Paths {
		doc, err := console.ReadManifest(path)
		if err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			continue
		}
		registry := console.NewNavRegistry()
		if err := registry.LoadManifestDocument(doc); err != nil {
			failures++
			fmt.Fprintf(os.Stderr, "✗ %s: %v\n", path, err)
			continue
		}
		fmt.Fprintf(os.Stdout, "✓ %s (%d pages)\n", path, len(doc.Pages))
	}
	if failures > 0 {
		return fmt.Errorf("consolectl: %d manifest(s) failed validation", failures)
	}
	return nil
}

func loadOrInitManifest(path string) (*console.SiteManifestDocument, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			doc := &console.SiteManifestDocument{
				Version: console.ManifestVersion,
				Pages:   []console.ManifestPage{},
				Source:  path,
			}
			return doc, nil
		}
		return nil, fmt.Errorf("consolectl: stat manifest: %w", err)
	}
	doc, err := console.ReadManifest(path)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

func writeManifest(path string, doc *console.SiteManifestDocument) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("consolectl: mkdir %s: %w", filepath.Dir(path), err)
	}
	tmpDoc := *doc
	tmpDoc.Source = ""

	file, err := os.Create(path) //nolint:gosec
	if err != nil {
		return fmt.Errorf("consolectl: create manifest %s: %w", path, err)
	}
	defer file.Close()

	encoder := yaml.NewEncoder(file)
	encoder.SetIndent(2)
	defer encoder.Close()
	if err := encoder.Encode(tmpDoc); err != nil {
		return fmt.Errorf("consolectl: write manifest: %w", err)
	}
	return nil
}
