package backup

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_MinimalDocument(t *testing.T) {
	assert.NoError(t, Validate([]byte(`{}`)))
}

func TestValidate_FullDocument(t *testing.T) {
	doc := `{
		"characters": [
			{
				"name": "Mira",
				"powers": [{"name": "Mapsense", "category": "utility", "level": 4}],
				"personality_traits": ["curious"]
			}
		],
		"projects": [{"name": "Saga", "color": "#6366F1"}],
		"tags": [{"name": "lead", "color": "#10B981"}],
		"relationships": [{"character_a_id": 1, "character_b_id": 2, "relation_type": "rival"}],
		"character_projects": [{"character_id": 1, "project_id": 1}],
		"character_tags": [{"character_id": 1, "tag_id": 1}]
	}`
	assert.NoError(t, Validate([]byte(doc)))
}

func TestValidate_Rejections(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"not json", `{broken`},
		{"unknown power category", `{"characters": [{"name": "X", "powers": [{"name": "P", "category": "nuclear"}]}]}`},
		{"power level out of range", `{"characters": [{"name": "X", "powers": [{"name": "P", "level": 11}]}]}`},
		{"relationship without type", `{"relationships": [{"character_a_id": 1, "character_b_id": 2}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, Validate([]byte(tt.doc)))
		})
	}
}

func TestValidate_NamelessRecordsPass(t *testing.T) {
	// A record without a name is skipped and counted by import, not
	// rejected at the document level.
	doc := `{
		"characters": [{"alias": "nameless"}],
		"projects": [{"description": "untitled"}],
		"tags": [{"color": "#10B981"}]
	}`
	assert.NoError(t, Validate([]byte(doc)))
}

func TestDecode_ValidatesFirst(t *testing.T) {
	_, err := Decode([]byte(`{"characters": [{"name": "X", "powers": [{"name": "P", "level": 11}]}]}`))
	require.Error(t, err)

	doc, err := Decode([]byte(`{"characters": [{"name": "Ok"}]}`))
	require.NoError(t, err)
	require.Len(t, doc.Characters, 1)
	assert.Equal(t, "Ok", doc.Characters[0].Name)
}

func TestEncode_RoundTripsThroughDecode(t *testing.T) {
	doc := &Document{}
	data, err := Encode(doc)
	require.NoError(t, err)

	decoded, err := Decode(data)
	require.NoError(t, err)
	assert.Empty(t, decoded.Characters)
}
