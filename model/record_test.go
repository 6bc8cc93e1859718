package model_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/raceid/model"
)

func decodeRecord(t *testing.T, race string, idField string) *model.Record {
	t.Helper()
	doc, err := model.DecodeDocument([]byte(`{"races_women": [` + race + `]}`))
	require.NoError(t, err)
	records, err := doc.Records("races_women", idField)
	require.NoError(t, err)
	require.Len(t, records, 1)
	return records[0]
}

func TestRecord_AssignID(t *testing.T) {
	testCases := []struct {
		description    string
		race           string
		expectPrevious interface{}
		expectReplaced bool
		expectKeys     []string
	}{
		{
			description: "no id",
			race:        `{"name": "Strade Bianche"}`,
			expectKeys:  []string{"name", "id"},
		},
		{
			description:    "string id",
			race:           `{"id": "old", "name": "Strade Bianche"}`,
			expectPrevious: "old",
			expectReplaced: true,
			expectKeys:     []string{"id", "name"},
		},
		{
			description:    "numeric id",
			race:           `{"name": "Strade Bianche", "id": 7}`,
			expectPrevious: json.Number("7"),
			expectReplaced: true,
			expectKeys:     []string{"name", "id"},
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			record := decodeRecord(t, testCase.race, "id")
			previous, ok := record.Previous()
			assert.Equal(t, testCase.expectReplaced, ok)
			assert.Equal(t, testCase.expectPrevious, previous)

			replaced := record.AssignID("new")
			assert.Equal(t, testCase.expectReplaced, replaced)
			require.NotNil(t, record.ID)
			assert.Equal(t, "new", *record.ID)
			value := record.Value()
			assert.Equal(t, testCase.expectKeys, value.Keys())
			id, _ := value.Get("id")
			assert.Equal(t, "new", id)
			name, _ := value.Get("name")
			assert.Equal(t, "Strade Bianche", name)
		})
	}
}

func TestNewRecord_Shape(t *testing.T) {
	_, err := model.NewRecord([]interface{}{"A"}, "id")
	assert.ErrorIs(t, err, model.ErrShape)
	_, err = model.NewRecord(map[string]interface{}{"name": "A"}, "id")
	assert.ErrorIs(t, err, model.ErrShape)
}

func TestRecord_CustomField(t *testing.T) {
	record := decodeRecord(t, `{"uuid": "old", "id": 3}`, "uuid")
	require.NotNil(t, record.ID)
	assert.Equal(t, "old", *record.ID)
	record.AssignID("new")
	encoded, err := json.Marshal(record.Value())
	require.NoError(t, err)
	assert.Equal(t, `{"uuid":"new","id":3}`, string(encoded))
}
