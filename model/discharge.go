package model

import (
	"encoding/json"
	"slices"
	"strconv"
	"time"

	"gorm.io/datatypes"
)

// Discharge record attribute names as they appear in model output, API payloads and table columns.
const (
	FieldName                = "name"
	FieldEpicID              = "epic_id"
	FieldPhoneNumber         = "phone_number"
	FieldAttendingPhysician  = "attending_physician"
	FieldDate                = "date"
	FieldPrimaryCareProvider = "primary_care_provider"
	FieldInsurance           = "insurance"
	FieldDisposition         = "disposition"
)

// RequiredFields lists every attribute a normalized record must carry, in prompt order.
var RequiredFields = []string{
	FieldName,
	FieldEpicID,
	FieldPhoneNumber,
	FieldAttendingPhysician,
	FieldDate,
	FieldPrimaryCareProvider,
	FieldInsurance,
	FieldDisposition,
}

// IsSortableField reports whether field may be used to order discharge listings
func IsSortableField(field string) bool {
	return slices.Contains(RequiredFields, field)
}

// Record is one extracted discharge entry exactly as the model returned it,
// after missing required fields were filled. Unknown keys are kept.
type Record map[string]any

// Discharge is a persisted discharge row
type Discharge struct {
	ID                  uint      `gorm:"primaryKey" json:"id,omitempty"`
	CreatedAt           time.Time `json:"created_at"`
	Name                string    `gorm:"type:text;index" json:"name"`
	EpicID              string    `gorm:"column:epic_id;type:text" json:"epic_id"`
	PhoneNumber         string    `gorm:"type:text" json:"phone_number"`
	AttendingPhysician  string    `gorm:"type:text" json:"attending_physician"`
	Date                string    `gorm:"type:text" json:"date"`
	PrimaryCareProvider string    `gorm:"type:text" json:"primary_care_provider"`
	Insurance           string    `gorm:"type:text" json:"insurance"`
	Disposition         string    `gorm:"type:text" json:"disposition"`

	// Keys the reviewer or the model supplied beyond the known attributes
	Extra datatypes.JSONMap `gorm:"type:jsonb" json:"-"`
}

// TableName pins the table name used by the hosted store
func (Discharge) TableName() string {
	return "discharges"
}

// FromRecord maps a reviewed record onto a row. Non-string values of known
// attributes are rendered as text; everything unknown lands in Extra.
func FromRecord(r Record) Discharge {
	d := Discharge{
		Name:                stringValue(r[FieldName]),
		EpicID:              stringValue(r[FieldEpicID]),
		PhoneNumber:         stringValue(r[FieldPhoneNumber]),
		AttendingPhysician:  stringValue(r[FieldAttendingPhysician]),
		Date:                stringValue(r[FieldDate]),
		PrimaryCareProvider: stringValue(r[FieldPrimaryCareProvider]),
		Insurance:           stringValue(r[FieldInsurance]),
		Disposition:         stringValue(r[FieldDisposition]),
	}

	for k, v := range r {
		if slices.Contains(RequiredFields, k) || k == "id" || k == "created_at" {
			continue
		}
		if d.Extra == nil {
			d.Extra = datatypes.JSONMap{}
		}
		d.Extra[k] = v
	}
	return d
}

// ToRecord flattens the row back into the shape the review UI works with
func (d Discharge) ToRecord() Record {
	r := make(Record, len(RequiredFields)+len(d.Extra)+2)
	for k, v := range d.Extra {
		r[k] = v
	}
	r[FieldName] = d.Name
	r[FieldEpicID] = d.EpicID
	r[FieldPhoneNumber] = d.PhoneNumber
	r[FieldAttendingPhysician] = d.AttendingPhysician
	r[FieldDate] = d.Date
	r[FieldPrimaryCareProvider] = d.PrimaryCareProvider
	r[FieldInsurance] = d.Insurance
	r[FieldDisposition] = d.Disposition
	if d.ID != 0 {
		r["id"] = d.ID
	}
	if !d.CreatedAt.IsZero() {
		r["created_at"] = d.CreatedAt
	}
	return r
}

func (d Discharge) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.ToRecord())
}

func (d *Discharge) UnmarshalJSON(data []byte) error {
	var r Record
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	*d = FromRecord(r)
	return nil
}

func stringValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		b, err := json.Marshal(t)
		if err != nil {
			return ""
		}
		return string(b)
	}
}
