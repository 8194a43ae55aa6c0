package record

import "encoding/json"

// WireRecord is the JSON shape of one Bitable record: a fields object plus
// the identifiers the server assigns.
type WireRecord struct {
	Fields   map[string]interface{} `json:"fields"`
	ID       string                 `json:"id,omitempty"`
	RecordID string                 `json:"record_id,omitempty"`
}

// WireFields serializes a FieldSet into the wire fields object. The display
// field is rendered as its human label; the wire format never carries
// internal keys. Empty optional fields are omitted.
func WireFields(f FieldSet) map[string]interface{} {
	fields := map[string]interface{}{
		"app_id":      f.AppID,
		"name":        f.Name,
		"display":     f.Display.Label(),
		"update_time": f.UpdateTime,
	}
	if f.Account != "" {
		fields["account"] = f.Account
	}
	if f.Remark != "" {
		fields["remark"] = f.Remark
	}
	return fields
}

// FromWireRecord deserializes a wire record, normalizing the display label
// back to its internal key and propagating id/record_id verbatim. Inverse of
// WireFields for the fields object.
func FromWireRecord(w WireRecord) (Record, error) {
	fields, err := NewFieldSet(FieldSetParams{
		AppID:      stringField(w.Fields, "app_id"),
		Name:       stringField(w.Fields, "name"),
		Display:    stringField(w.Fields, "display"),
		Account:    stringField(w.Fields, "account"),
		UpdateTime: intField(w.Fields, "update_time"),
		Remark:     stringField(w.Fields, "remark"),
	})
	if err != nil {
		return Record{}, err
	}

	return Record{
		Fields:   fields,
		ID:       w.ID,
		RecordID: w.RecordID,
	}, nil
}

func stringField(fields map[string]interface{}, key string) string {
	s, _ := fields[key].(string)
	return s
}

// intField tolerates the numeric types encoding/json may produce for
// update_time as well as the int64 WireFields writes directly.
func intField(fields map[string]interface{}, key string) int64 {
	switch v := fields[key].(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case float64:
		return int64(v)
	case json.Number:
		n, _ := v.Int64()
		return n
	}
	return 0
}
