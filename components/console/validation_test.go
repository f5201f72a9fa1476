package console

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pageWithSchema() PageDefinition {
	return PageDefinition{
		Code:  "usuarios",
		Title: "Usuarios",
		Schema: map[string]any{
			"type": "object",
			"properties": map[string]any{
				"page_size": map[string]any{
					"type":    "integer",
					"minimum": float64(1),
					"maximum": float64(100),
				},
			},
			"additionalProperties": false,
		},
	}
}

func TestJSONSchemaValidatorAcceptsValidSettings(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(pageWithSchema(), map[string]any{"page_size": 20})
	require.NoError(t, err)
}

func TestJSONSchemaValidatorRejectsInvalidSettings(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(pageWithSchema(), map[string]any{"page_size": 500})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "usuarios")
}

func TestJSONSchemaValidatorRejectsUnknownKeys(t *testing.T) {
	validator := NewJSONSchemaValidator()
	err := validator.Validate(pageWithSchema(), map[string]any{"sorpresa": true})
	require.Error(t, err)
}

func TestJSONSchemaValidatorNilSettings(t *testing.T) {
	validator := NewJSONSchemaValidator()
	require.NoError(t, validator.Validate(pageWithSchema(), nil))
}

func TestJSONSchemaValidatorSkipsSchemalessPages(t *testing.T) {
	validator := NewJSONSchemaValidator()
	def := PageDefinition{Code: "crm", Title: "Solicitudes"}
	require.NoError(t, validator.Validate(def, map[string]any{"anything": "goes"}))
}

func TestServiceValidateSettings(t *testing.T) {
	svc := NewService(Options{Validator: NewJSONSchemaValidator()})
	require.NoError(t, svc.ValidateSettings("usuarios", map[string]any{"page_size": 10}))
	require.Error(t, svc.ValidateSettings("usuarios", map[string]any{"page_size": 0}))
	require.Error(t, svc.ValidateSettings("pagina-fantasma", nil))
}
