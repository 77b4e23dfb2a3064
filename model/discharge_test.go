package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromRecord_KnownAndExtraFields(t *testing.T) {
	d := FromRecord(Record{
		"name":        "Jane Doe",
		"epic_id":     float64(40012),
		"insurance":   nil,
		"ward":        "4B",
		"id":          float64(9),
		"disposition": "Home",
	})

	assert.Equal(t, "Jane Doe", d.Name)
	assert.Equal(t, "40012", d.EpicID)
	assert.Equal(t, "", d.Insurance)
	assert.Equal(t, "Home", d.Disposition)
	assert.Equal(t, "4B", d.Extra["ward"])
	assert.NotContains(t, d.Extra, "id")
	assert.Zero(t, d.ID)
}

func TestDischargeJSON_FlattensExtra(t *testing.T) {
	var d Discharge
	require.NoError(t, json.Unmarshal([]byte(`{"name":"A","ward":"4B","phone_number":"+15550100"}`), &d))

	out, err := json.Marshal(d)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(out, &got))
	assert.Equal(t, "A", got["name"])
	assert.Equal(t, "4B", got["ward"])
	assert.Equal(t, "+15550100", got["phone_number"])
	for _, f := range RequiredFields {
		assert.Contains(t, got, f)
	}
	assert.NotContains(t, got, "id")
}

func TestIsSortableField(t *testing.T) {
	assert.True(t, IsSortableField("name"))
	assert.True(t, IsSortableField("primary_care_provider"))
	assert.False(t, IsSortableField("name; drop table discharges"))
	assert.False(t, IsSortableField("created_at"))
}
