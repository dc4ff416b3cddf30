// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Mark Levitin

package models

// Reserved record fields. FieldID is assigned by the client, the two sync
// metadata fields are assigned by the remote backend on commit and are never
// read back into application logic except for conflict arbitration.
const (
	FieldID           = "id"
	FieldLastModified = "lastModified"
	FieldModifiedBy   = "modifiedBy"
)

// Record is a single item of a collection: a mapping from field name to
// value with one reserved field "id", unique within its collection.
type Record map[string]any

// ID returns the record's "id" field, or an empty string if the record has
// not been assigned one yet.
func (r Record) ID() string {
	id, _ := r[FieldID].(string)
	return id
}

// SetID sets the record's reserved "id" field.
func (r Record) SetID(id string) {
	r[FieldID] = id
}

// Clone returns a shallow copy of the record. Field values are shared;
// callers that mutate nested values must deep-copy them first.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// CloneRecords returns a new slice holding a shallow copy of every record.
func CloneRecords(records []Record) []Record {
	if records == nil {
		return nil
	}
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}
