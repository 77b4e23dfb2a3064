package services

import (
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/sahilchouksey/discharge-parser/model"
	"github.com/sahilchouksey/discharge-parser/utils"
)

// recordsSchema is the only shape constraint put on model output: an array of
// objects. Field presence is repaired afterwards, not rejected.
const recordsSchema = `{
	"type": "array",
	"items": {"type": "object"}
}`

var recordsValidator = jsonschema.MustCompileString("records.json", recordsSchema)

// ParseRecords turns raw model content into records. Code fences are stripped,
// the remainder must be a JSON array of objects, and each object is completed
// with the required fields.
func ParseRecords(content string) ([]model.Record, error) {
	stripped := utils.StripCodeFence(content)

	var doc any
	if err := json.Unmarshal([]byte(stripped), &doc); err != nil {
		return nil, fmt.Errorf("decode model output: %w", err)
	}
	if err := recordsValidator.Validate(doc); err != nil {
		return nil, fmt.Errorf("model output is not an array of objects: %w", err)
	}

	items := doc.([]any)
	records := make([]model.Record, 0, len(items))
	for _, item := range items {
		records = append(records, NormalizeRecord(item.(map[string]any)))
	}
	return records, nil
}

// NormalizeRecord fills every required field that is absent or null with ""
// and leaves all other keys and values exactly as given.
func NormalizeRecord(obj map[string]any) model.Record {
	r := make(model.Record, len(obj)+len(model.RequiredFields))
	for k, v := range obj {
		r[k] = v
	}
	for _, f := range model.RequiredFields {
		if v, ok := r[f]; !ok || v == nil {
			r[f] = ""
		}
	}
	return r
}
