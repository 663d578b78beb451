package document

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestNormalize(t *testing.T) {
	t.Run("DefaultTemplate", func(t *testing.T) {
		doc := Document{Profile: Profile{Name: "Jane"}}
		require.NoError(t, doc.Normalize())
		assert.Equal(t, TemplateClassic, doc.Template)
	})

	t.Run("TemplateIsCaseInsensitive", func(t *testing.T) {
		doc := Document{Template: " Modern ", Profile: Profile{Name: "Jane"}}
		require.NoError(t, doc.Normalize())
		assert.Equal(t, TemplateModern, doc.Template)
	})

	t.Run("UnknownTemplate", func(t *testing.T) {
		doc := Document{Template: "fancy", Profile: Profile{Name: "Jane"}}
		err := doc.Normalize()
		require.ErrorIs(t, err, ErrUnknownTemplate)
		assert.Contains(t, err.Error(), "classic, modern, compact")
	})

	t.Run("MissingName", func(t *testing.T) {
		doc := Document{Profile: Profile{Name: "  "}}
		require.ErrorIs(t, doc.Normalize(), ErrMissingName)
	})
}

func TestTemplate(t *testing.T) {
	doc := Template()

	require.NoError(t, doc.Normalize())
	assert.NotEmpty(t, doc.Work)
	assert.NotEmpty(t, doc.Education)
	assert.NotEmpty(t, doc.Projects)
	assert.NotEmpty(t, doc.Awards)
	assert.NotEmpty(t, doc.Skills)
	require.NotNil(t, doc.Headings)
	assert.Equal(t, DefaultHeadings(), *doc.Headings)
}

func TestHeadingsOmittedWhenUnset(t *testing.T) {
	out, err := json.Marshal(Document{Profile: Profile{Name: "Jane"}})
	require.NoError(t, err)
	assert.NotContains(t, string(out), "headings")

	var doc Document
	require.NoError(t, json.Unmarshal([]byte(`{"profile":{"name":"Jane"},"headings":{"work":"Experience"}}`), &doc))
	require.NotNil(t, doc.Headings)
	assert.Equal(t, "Experience", doc.Headings.Work)
}

func TestEncode(t *testing.T) {
	t.Run("JSON", func(t *testing.T) {
		out, err := Encode(Template(), "")
		require.NoError(t, err)
		assert.Contains(t, string(out), `"start_date": "2021-04"`)

		var decoded Document
		require.NoError(t, json.Unmarshal(out, &decoded))
		assert.Equal(t, Template(), decoded)
	})

	t.Run("YAML", func(t *testing.T) {
		out, err := Encode(Template(), "YAML")
		require.NoError(t, err)
		assert.Contains(t, string(out), "name: Jane Doe")

		var decoded Document
		require.NoError(t, yaml.Unmarshal(out, &decoded))
		assert.Equal(t, Template(), decoded)
	})

	t.Run("UnknownFormat", func(t *testing.T) {
		_, err := Encode(Template(), "xml")
		require.ErrorIs(t, err, ErrUnknownFormat)
	})
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in       string
		expected string
		hasError bool
	}{
		{"", FormatJSON, false},
		{"json", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"yaml", FormatYAML, false},
		{"yml", FormatYAML, false},
		{"toml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.hasError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestGenerateSchema(t *testing.T) {
	raw, err := GenerateSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(raw, &schema))

	assert.Equal(t, "object", schema["type"])
	assert.NotContains(t, schema, "$schema")
	assert.NotContains(t, schema, "$ref")

	properties, ok := schema["properties"].(map[string]any)
	require.True(t, ok)
	for _, key := range []string{"folder", "file_name", "template", "profile", "work", "education", "projects", "awards", "skills", "headings"} {
		assert.Contains(t, properties, key)
	}

	template, ok := properties["template"].(map[string]any)
	require.True(t, ok)
	assert.ElementsMatch(t, []any{"classic", "modern", "compact"}, template["enum"])

	assert.Equal(t, []any{"profile"}, schema["required"])
}
