package casing

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"list_id", "listId"},
		{"due_date", "dueDate"},
		{"created_at", "createdAt"},
		{"id", "id"},
		{"listId", "listId"},
		{"_private", "Private"},
		{"a__b", "a_B"},
		{"trailing_", "trailing_"},
		{"version_2", "version_2"},
		{"upper_Case", "upper_Case"},
		{"many_small_words_here", "manySmallWordsHere"},
		{"ünï_code", "ünïCode"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Key(tt.in))
		})
	}
}

func TestSnakeToCamel_TaskPayload(t *testing.T) {
	in := map[string]any{
		"id":         "t1",
		"list_id":    "L1",
		"due_date":   nil,
		"created_at": "2024-01-01",
		"done":       false,
		"order":      3,
		"checklist":  []any{"a_b", map[string]any{"item_name": "x"}},
		"meta": map[string]any{
			"owner_info": map[string]any{"display_name": "Ana"},
		},
	}

	got := SnakeToCamel(in)

	want := map[string]any{
		"id":        "t1",
		"listId":    "L1",
		"dueDate":   nil,
		"createdAt": "2024-01-01",
		"done":      false,
		"order":     3,
		"checklist": []any{"a_b", map[string]any{"itemName": "x"}},
		"meta": map[string]any{
			"ownerInfo": map[string]any{"displayName": "Ana"},
		},
	}
	assert.Equal(t, want, got)

	// Input is left untouched.
	assert.Contains(t, in, "list_id")
	assert.NotContains(t, in, "listId")
}

func TestSnakeToCamel_Passthrough(t *testing.T) {
	assert.Nil(t, SnakeToCamel(nil))
	assert.Equal(t, "snake_case", SnakeToCamel("snake_case"))
	assert.Equal(t, 42, SnakeToCamel(42))
	assert.Equal(t, true, SnakeToCamel(true))
}

func TestSnakeToCamel_ArrayOfLists(t *testing.T) {
	in := []any{
		map[string]any{"id": "a", "name": "Groceries", "order": 0},
		map[string]any{"id": "b", "name": "Work", "order": 1, "task_count": 2},
	}

	got := SnakeToCamel(in)

	want := []any{
		map[string]any{"id": "a", "name": "Groceries", "order": 0},
		map[string]any{"id": "b", "name": "Work", "order": 1, "taskCount": 2},
	}
	assert.Equal(t, want, got)
}

func TestSnakeToCamel_Idempotent(t *testing.T) {
	in := map[string]any{
		"list_id": "L1",
		"nested":  []any{map[string]any{"due_date": "2024-02-02"}},
	}

	once := SnakeToCamel(in)
	twice := SnakeToCamel(once)
	assert.Equal(t, once, twice)
}

func TestConvert_DepthBound(t *testing.T) {
	var v any = "leaf"
	for i := 0; i < 10; i++ {
		v = map[string]any{"child_node": v}
	}

	_, err := Convert(v, 5)
	assert.ErrorIs(t, err, ErrTooDeep)

	out, err := Convert(v, 10)
	require.NoError(t, err)
	assert.Contains(t, out, "childNode")
}

func TestConvert_SelfReference(t *testing.T) {
	m := map[string]any{"self_ref": nil}
	m["self_ref"] = m

	_, err := Convert(m, DefaultMaxDepth)
	assert.ErrorIs(t, err, ErrTooDeep)

	// SnakeToCamel hands back the input instead of recursing forever.
	got := SnakeToCamel(m)
	assert.Contains(t, got, "self_ref")
}

func TestNormalizeJSON(t *testing.T) {
	raw := []byte(`{"data":{"list_id":"L1","order":12345678901234,"checklist":null}}`)

	got, err := NormalizeJSON(raw)
	require.NoError(t, err)

	data := got.(map[string]any)["data"].(map[string]any)
	assert.Equal(t, "L1", data["listId"])
	assert.Equal(t, json.Number("12345678901234"), data["order"])
	assert.Nil(t, data["checklist"])
}

func TestNormalizeJSON_Invalid(t *testing.T) {
	_, err := NormalizeJSON([]byte(`{"data":`))
	assert.Error(t, err)
}
