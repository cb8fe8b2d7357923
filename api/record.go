package api

import "encoding/json"

// Record is the value type served over HTTP: an opaque JSON document
// identified by ID
type Record struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data,omitempty"`
}

// RecordKey extracts the key of a record
func RecordKey(r Record) string {
	return r.ID
}
