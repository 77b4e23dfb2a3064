package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilchouksey/discharge-parser/model"
)

func TestParseRecords_StripsFence(t *testing.T) {
	records, err := ParseRecords("```json\n[{\"name\":\"A\"}]\n```")
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "A", records[0]["name"])
	for _, f := range model.RequiredFields {
		assert.Contains(t, records[0], f)
	}
}

func TestParseRecords_FillsMissingFieldsOnly(t *testing.T) {
	content := `[{
		"name": "Jane Doe",
		"epic_id": "E-100",
		"phone_number": "555-0100",
		"attending_physician": "Dr. House",
		"date": "2024-03-01",
		"primary_care_provider": "Dr. Grey"
	}]`

	records, err := ParseRecords(content)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, model.Record{
		"name":                  "Jane Doe",
		"epic_id":               "E-100",
		"phone_number":          "555-0100",
		"attending_physician":   "Dr. House",
		"date":                  "2024-03-01",
		"primary_care_provider": "Dr. Grey",
		"insurance":             "",
		"disposition":           "",
	}, records[0])
}

func TestParseRecords_PassesExtraFieldsThrough(t *testing.T) {
	records, err := ParseRecords(`[{"name":"B","room":"12","epic_id":4411,"insurance":null}]`)
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "12", records[0]["room"])
	assert.Equal(t, float64(4411), records[0]["epic_id"])
	assert.Equal(t, "", records[0]["insurance"])
}

func TestParseRecords_EmptyArray(t *testing.T) {
	records, err := ParseRecords("[]")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestParseRecords_Rejects(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "prose", content: "not json"},
		{name: "truncated array", content: `[{"name":"A"`},
		{name: "single object", content: `{"name":"A"}`},
		{name: "array of strings", content: `["A","B"]`},
		{name: "mixed array", content: `[{"name":"A"}, 3]`},
		{name: "empty content", content: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records, err := ParseRecords(tt.content)
			assert.Error(t, err)
			assert.Nil(t, records)
		})
	}
}
