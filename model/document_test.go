package model_test

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/viant/raceid/model"
)

func TestDecodeDocument(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expectErr   error
		expectKeys  int
	}{
		{description: "object", input: `{"races_women": [], "races_men": []}`, expectKeys: 2},
		{description: "empty object", input: `{}`, expectKeys: 0},
		{description: "malformed", input: `{"races_women": [`, expectErr: model.ErrMalformed},
		{description: "trailing data", input: `{} {}`, expectErr: model.ErrMalformed},
		{description: "empty input", input: ``, expectErr: model.ErrMalformed},
		{description: "top-level array", input: `[{"name": "A"}]`, expectErr: model.ErrShape},
		{description: "invalid utf-8", input: "{\"name\": \"Fl\xe8che\"}", expectErr: model.ErrMalformed},
		{description: "duplicate key", input: `{"a": 1, "b": 2, "a": 3}`, expectKeys: 2},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			doc, err := model.DecodeDocument([]byte(testCase.input))
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), "got %v", err)
				assert.Nil(t, doc)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, testCase.expectKeys, doc.Keys())
		})
	}
}

func TestDocument_Records(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		key         string
		expectErr   error
		expectPath  string
		expectCount int
	}{
		{description: "records", input: `{"races_women": [{"name": "A"}, {"name": "B"}]}`, key: "races_women", expectCount: 2},
		{description: "empty", input: `{"races_women": []}`, key: "races_women", expectCount: 0},
		{description: "missing key", input: `{"races_men": []}`, key: "races_women", expectErr: model.ErrMissingKey},
		{description: "not an array", input: `{"races_women": {"name": "A"}}`, key: "races_women", expectErr: model.ErrShape, expectPath: "$.races_women"},
		{description: "null", input: `{"races_women": null}`, key: "races_women", expectErr: model.ErrShape, expectPath: "$.races_women"},
		{description: "element not an object", input: `{"races_women": [{"name": "A"}, "B"]}`, key: "races_women", expectErr: model.ErrShape, expectPath: "$.races_women[1]"},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			doc, err := model.DecodeDocument([]byte(testCase.input))
			require.NoError(t, err)
			records, err := doc.Records(testCase.key, "id")
			if testCase.expectErr != nil {
				assert.True(t, errors.Is(err, testCase.expectErr), "got %v", err)
				if testCase.expectPath != "" {
					var shapeErr *model.ShapeError
					require.True(t, errors.As(err, &shapeErr))
					assert.Equal(t, testCase.expectPath, shapeErr.Path)
				}
				return
			}
			require.NoError(t, err)
			assert.Len(t, records, testCase.expectCount)
		})
	}
}

func TestDocument_Encode(t *testing.T) {
	input := `{"races_women": [{"name": "Tour de France Femmes avec Zwift", "country": "FR", "distance": 1.50, "stages": 8}], "notes": "Brabantse Pijl <> Flèche Wallonne & Liège–Bastogne–Liège", "big": 12345678901234567890}`
	doc, err := model.DecodeDocument([]byte(input))
	require.NoError(t, err)
	records, err := doc.Records("races_women", "id")
	require.NoError(t, err)
	records[0].AssignID("3f2b8c1e-9d4a-4b6f-8a2e-1c5d7e9f0a1b")
	doc.SetRecords("races_women", records)

	encoded, err := doc.Encode("  ")
	require.NoError(t, err)
	text := string(encoded)
	assert.Contains(t, text, "Flèche Wallonne & Liège–Bastogne–Liège")
	assert.Contains(t, text, "<>")
	assert.Contains(t, text, `"distance": 1.50`)
	assert.Contains(t, text, `"big": 12345678901234567890`)
	assert.Contains(t, text, "\n  \"races_women\": [\n    {\n")
	assert.Contains(t, text, `"id": "3f2b8c1e-9d4a-4b6f-8a2e-1c5d7e9f0a1b"`)

	var decoded map[string]interface{}
	require.NoError(t, json.Unmarshal(encoded, &decoded))
	races := decoded["races_women"].([]interface{})
	race := races[0].(map[string]interface{})
	assert.Equal(t, "FR", race["country"])
	assert.Len(t, race, 5)
}

func TestDocument_EncodeEmptyRecords(t *testing.T) {
	doc, err := model.DecodeDocument([]byte(`{"races_women": []}`))
	require.NoError(t, err)
	records, err := doc.Records("races_women", "id")
	require.NoError(t, err)
	doc.SetRecords("races_women", records)
	encoded, err := doc.Encode("  ")
	require.NoError(t, err)
	assert.Equal(t, "{\n  \"races_women\": []\n}\n", string(encoded))
}

func TestDocument_EncodeKeyOrder(t *testing.T) {
	input := `{"updated": "2025-03-01", "races_women": [{"name": "Omloop", "level": "UWT", "id": "old", "type": 1}, {"stages": 8, "name": "Vuelta"}], "races_men": []}`
	doc, err := model.DecodeDocument([]byte(input))
	require.NoError(t, err)
	records, err := doc.Records("races_women", "id")
	require.NoError(t, err)
	records[0].AssignID("a")
	records[1].AssignID("b")
	doc.SetRecords("races_women", records)

	encoded, err := doc.Encode(" ")
	require.NoError(t, err)
	expect := `{
 "updated": "2025-03-01",
 "races_women": [
  {
   "name": "Omloop",
   "level": "UWT",
   "id": "a",
   "type": 1
  },
  {
   "stages": 8,
   "name": "Vuelta",
   "id": "b"
  }
 ],
 "races_men": []
}
`
	assert.Equal(t, expect, string(encoded))
}

func TestDocument_EncodeSeparators(t *testing.T) {
	testCases := []struct {
		description string
		input       string
		expect      string
	}{
		{
			description: "line separator",
			input:       "{\"name\": \"Omloop\u2028Het Nieuwsblad\"}",
			expect:      "{\n  \"name\": \"Omloop\u2028Het Nieuwsblad\"\n}\n",
		},
		{
			description: "paragraph separator escaped in input",
			input:       `{"name": "Omloop\u2029Het Nieuwsblad"}`,
			expect:      "{\n  \"name\": \"Omloop\u2029Het Nieuwsblad\"\n}\n",
		},
		{
			description: "escaped backslash before u2028",
			input:       `{"name": "Omloop\\u2028"}`,
			expect:      "{\n  \"name\": \"Omloop\\\\u2028\"\n}\n",
		},
		{
			description: "escaped backslash before literal separator",
			input:       "{\"name\": \"\\\\\u2028\"}",
			expect:      "{\n  \"name\": \"\\\\\u2028\"\n}\n",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.description, func(t *testing.T) {
			doc, err := model.DecodeDocument([]byte(testCase.input))
			require.NoError(t, err)
			encoded, err := doc.Encode("  ")
			require.NoError(t, err)
			assert.Equal(t, testCase.expect, string(encoded))
		})
	}
}
