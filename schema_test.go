package multitool

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaFor(t *testing.T) {
	t.Run("generates schema from tagged struct", func(t *testing.T) {
		type args struct {
			Query string `json:"query" desc:"Search query" required:"true"`
			Limit int    `json:"limit" desc:"Max results"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(raw, &schema))

		assert.Equal(t, "object", schema["type"])

		props := schema["properties"].(map[string]any)
		query := props["query"].(map[string]any)
		assert.Equal(t, "string", query["type"])
		assert.Equal(t, "Search query", query["description"])

		limit := props["limit"].(map[string]any)
		assert.Equal(t, "integer", limit["type"])

		required := schema["required"].([]any)
		assert.Equal(t, []any{"query"}, required)
	})

	t.Run("supports enum tags", func(t *testing.T) {
		type args struct {
			Operation string `json:"operation" enum:"summarize,translate,analyze" required:"true"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(raw, &schema))

		props := schema["properties"].(map[string]any)
		op := props["operation"].(map[string]any)
		assert.ElementsMatch(t, []any{"summarize", "translate", "analyze"}, op["enum"])
	})

	t.Run("handles nested structs and slices", func(t *testing.T) {
		type inner struct {
			Name string `json:"name" required:"true"`
		}
		type args struct {
			Items []inner `json:"items"`
			Flag  bool    `json:"flag"`
		}

		raw, err := SchemaFor[args]()
		require.NoError(t, err)

		var schema map[string]any
		require.NoError(t, json.Unmarshal(raw, &schema))

		props := schema["properties"].(map[string]any)
		items := props["items"].(map[string]any)
		assert.Equal(t, "array", items["type"])

		itemSchema := items["items"].(map[string]any)
		assert.Equal(t, "object", itemSchema["type"])
		assert.Equal(t, []any{"name"}, itemSchema["required"])

		flag := props["flag"].(map[string]any)
		assert.Equal(t, "boolean", flag["type"])
	})

	t.Run("rejects non-struct types", func(t *testing.T) {
		_, err := SchemaFor[string]()
		assert.Error(t, err)
	})
}

func TestSchemaBuilder(t *testing.T) {
	t.Run("fluent refinement", func(t *testing.T) {
		type args struct {
			City  string `json:"city"`
			Units string `json:"units"`
		}

		raw := SchemaFrom[args]().
			Desc("city", "City name").
			Required("city").
			Enum("units", "metric", "imperial").
			Build()

		var schema map[string]any
		require.NoError(t, json.Unmarshal(raw, &schema))

		props := schema["properties"].(map[string]any)
		city := props["city"].(map[string]any)
		assert.Equal(t, "City name", city["description"])
		assert.Equal(t, []any{"city"}, schema["required"])

		units := props["units"].(map[string]any)
		assert.Equal(t, []any{"metric", "imperial"}, units["enum"])
	})

	t.Run("required ignores unknown fields and duplicates", func(t *testing.T) {
		type args struct {
			A string `json:"a"`
		}

		raw := SchemaFrom[args]().Required("a", "a", "missing").Build()

		var schema map[string]any
		require.NoError(t, json.Unmarshal(raw, &schema))
		assert.Equal(t, []any{"a"}, schema["required"])
	})
}
