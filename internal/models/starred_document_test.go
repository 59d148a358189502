package models

import (
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStarredDocument_Legacy(t *testing.T) {
	doc, legacy, err := ParseStarredDocument([]byte(`[{"stationuuid":"abc","name":"Test","starred":true}]`))
	require.NoError(t, err)
	assert.True(t, legacy)
	require.Len(t, doc.Stations, 1)
	assert.Equal(t, "abc", doc.Stations[0].UUID)
	assert.Empty(t, doc.Searches)
	assert.Equal(t, SchemaVersion, doc.Schema)
}

func TestParseStarredDocument_Current(t *testing.T) {
	input := `{"app":"stationd","file":"starred","schema":"2.0",
		"stations":[{"stationuuid":"a","name":"A"}],"searches":["jazz","news"]}`
	doc, legacy, err := ParseStarredDocument([]byte(input))
	require.NoError(t, err)
	assert.False(t, legacy)
	assert.Equal(t, "2.0", doc.Schema)
	assert.Equal(t, "stationd", doc.App)
	require.Len(t, doc.Stations, 1)
	assert.Equal(t, []string{"jazz", "news"}, doc.Searches)
}

func TestParseStarredDocument_NullArrays(t *testing.T) {
	doc, legacy, err := ParseStarredDocument([]byte(`{"schema":"2.0","stations":null,"searches":null}`))
	require.NoError(t, err)
	assert.False(t, legacy)
	assert.Empty(t, doc.Stations)
	assert.Empty(t, doc.Searches)
}

func TestParseStarredDocument_ObjectWithoutSchemaIsError(t *testing.T) {
	_, legacy, err := ParseStarredDocument([]byte(`{"stations":[]}`))
	assert.Error(t, err)
	assert.True(t, legacy)
}

func TestNewStarredDocument_MarshalsEnvelope(t *testing.T) {
	doc := NewStarredDocument([]*Station{{UUID: "a", Starred: true}}, nil)
	data, err := json.Marshal(doc)
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, AppID, raw["app"])
	assert.Equal(t, StarredFileID, raw["file"])
	assert.Equal(t, SchemaVersion, raw["schema"])
	assert.Len(t, raw["stations"], 1)
	assert.Equal(t, []any{}, raw["searches"])
}
