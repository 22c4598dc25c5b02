package validation

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchemaValidator_ValidateFile(t *testing.T) {
	v := NewSchemaValidator()

	tmpDir := t.TempDir()
	schemaPath := filepath.Join(tmpDir, "test.schema.json")
	schemaContent := `{
		"$schema": "http://json-schema.org/draft-07/schema#",
		"type": "object",
		"properties": {
			"name": {"type": "string"},
			"age": {"type": "integer", "minimum": 0}
		},
		"required": ["name"]
	}`
	require.NoError(t, os.WriteFile(schemaPath, []byte(schemaContent), 0644))

	tests := []struct {
		name      string
		data      string
		wantError bool
		errorMsg  string
	}{
		{name: "valid data", data: `{"name": "John", "age": 30}`},
		{name: "valid data without optional field", data: `{"name": "Jane"}`},
		{name: "missing required field", data: `{"age": 25}`, wantError: true, errorMsg: "required"},
		{name: "wrong type for field", data: `{"name": "John", "age": "thirty"}`, wantError: true, errorMsg: "type"},
		{name: "negative age", data: `{"name": "John", "age": -5}`, wantError: true, errorMsg: "minimum"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataPath := filepath.Join(tmpDir, "data.json")
			require.NoError(t, os.WriteFile(dataPath, []byte(tt.data), 0644))

			err := v.ValidateFile(dataPath, schemaPath)
			if tt.wantError {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errorMsg)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestSchemaValidator_EmbeddedAchievements(t *testing.T) {
	v := NewSchemaValidator()

	valid := `{"version": "1.0", "achievements": [
		{"id": 0, "name": "Rat Catcher", "type": "kill", "mob_ids": [2], "mob_count": 10, "xp": 50},
		{"id": 1, "name": "Bare Knuckles", "type": "kill", "weaponless": true, "mob_count": 5}
	]}`
	assert.NoError(t, v.ValidateBytes([]byte(valid), SchemaAchievements))

	unknownType := `{"version": "1.0", "achievements": [{"id": 0, "name": "x", "type": "fly"}]}`
	err := v.ValidateBytes([]byte(unknownType), SchemaAchievements)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "enum")
}

func TestSchemaValidator_EmbeddedItems(t *testing.T) {
	v := NewSchemaValidator()

	valid := `{"version": "1.0", "items": [{"kind": 60, "name": "axe", "category": "weapon", "level": 4}]}`
	assert.NoError(t, v.ValidateBytes([]byte(valid), SchemaItems))

	missingKind := `{"version": "1.0", "items": [{"name": "axe", "category": "weapon"}]}`
	assert.Error(t, v.ValidateBytes([]byte(missingKind), SchemaItems))
}

func TestSchemaValidator_ReportsEveryViolation(t *testing.T) {
	v := NewSchemaValidator()

	doc := `{"version": "1.0", "items": [
		{"kind": 0, "name": "broken", "category": "weapon"},
		{"kind": 7, "name": "", "category": "hat"}
	]}`
	err := v.ValidateBytes([]byte(doc), SchemaItems)

	var verr *Error
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, SchemaItems, verr.Schema)
	assert.Len(t, verr.Violations, 3)
	assert.Contains(t, err.Error(), "at /items/0/kind: minimum")
	assert.Contains(t, err.Error(), "at /items/1/category: enum")
}

func TestSchemaValidator_BundledCatalogs(t *testing.T) {
	v := NewSchemaValidator()

	assert.NoError(t, v.ValidateFile("../../configs/achievements.json", SchemaAchievements))
	assert.NoError(t, v.ValidateFile("../../configs/items.json", SchemaItems))
}

func TestSchemaValidator_InvalidJSON(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{not json`), SchemaItems)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse JSON data")
}

func TestSchemaValidator_MissingSchema(t *testing.T) {
	v := NewSchemaValidator()

	err := v.ValidateBytes([]byte(`{}`), "does/not/exist.schema.json")

	assert.Error(t, err)
}
