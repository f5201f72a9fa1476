package console

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeManifest(t *testing.T) {
	const payload = `
version: 1
name: moto-admin
pages:
  - definition:
      code: inventario
      title: Inventario
      icon: package
      path: /admin/inventario
      roles: ["admin"]
      order: 60
      schema:
        type: object
        properties:
          page_size:
            type: integer
    module:
      name: Inventory Service
      summary: Lists stock per motorcycle model.
      endpoint: /inventory
      package: github.com/example/inventory
      docs_url: https://example.com/modules/inventory
      capabilities: ["list","export"]
`
	doc, err := DecodeManifest(strings.NewReader(payload))
	require.NoError(t, err)
	require.Len(t, doc.Pages, 1)

	page := doc.Pages[0]
	assert.Equal(t, "inventario", page.Definition.Code)
	assert.Equal(t, "Inventario", page.Definition.Title)
	assert.Equal(t, []string{"admin"}, page.Definition.Roles)
	assert.Equal(t, "Inventory Service", page.Module.Name)
	assert.Equal(t, "/inventory", page.Module.Endpoint)
}

func TestRegistryLoadManifestDocument(t *testing.T) {
	doc := &SiteManifestDocument{
		Version: manifestVersionV1,
		Pages: []ManifestPage{
			{
				Definition: PageDefinition{
					Code:  "inventario",
					Title: "Inventario",
				},
				Module: ManifestModule{
					Name:     "Inventory Service",
					Summary:  "Lists stock per motorcycle model",
					Endpoint: "/inventory",
				},
			},
		},
	}
	reg := NewNavRegistry()

	err := reg.LoadManifestDocument(doc)
	require.NoError(t, err)

	def, ok := reg.Definition("inventario")
	require.True(t, ok)
	assert.Equal(t, "Inventario", def.Title)

	meta, ok := reg.ModuleMetadata("inventario")
	require.True(t, ok)
	assert.Equal(t, "Inventory Service", meta.Name)
	assert.Equal(t, "/inventory", meta.Endpoint)
}

func TestManifestDuplicateCodes(t *testing.T) {
	const payload = `
pages:
  - definition:
      code: dup
      title: First
  - definition:
      code: dup
      title: Second
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicates page code")
}

func TestManifestRejectsUnknownVersion(t *testing.T) {
	const payload = `
version: 9
pages:
  - definition:
      code: x
      title: X
`
	_, err := DecodeManifest(strings.NewReader(payload))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported manifest version")
}

func TestRegistryDefinitionsForRole(t *testing.T) {
	reg := NewNavRegistry()

	admin := reg.DefinitionsFor("admin")
	empleado := reg.DefinitionsFor("empleado")
	require.NotEmpty(t, admin)
	assert.Greater(t, len(admin), len(empleado))

	for _, def := range empleado {
		assert.NotEqual(t, "usuarios", def.Code, "empleado must not see the user admin page")
	}
	for i := 1; i < len(admin); i++ {
		assert.LessOrEqual(t, admin[i-1].Order, admin[i].Order)
	}
}

func TestDocsManifestsAreValid(t *testing.T) {
	dir := filepath.Join("..", "..", "docs", "manifests")
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	codes := map[string]string{}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		path := filepath.Join(dir, entry.Name())
		doc, err := ReadManifest(path)
		require.NoErrorf(t, err, "manifest %s should parse", path)
		for _, page := range doc.Pages {
			if prev, exists := codes[page.Definition.Code]; exists {
				t.Fatalf("page code %s defined in both %s and %s", page.Definition.Code, prev, path)
			}
			codes[page.Definition.Code] = path
		}
	}
}
