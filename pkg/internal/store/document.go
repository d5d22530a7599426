package store

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

const (
	FieldID        = "_id"
	FieldType      = "_type"
	FieldRev       = "_rev"
	FieldCreatedAt = "_createdAt"
	FieldUpdatedAt = "_updatedAt"
	FieldKey       = "_key"
	FieldRef       = "_ref"
)

// Document is a schema-less document as the store sees it. Values are kept in
// their JSON shape: maps, slices, strings, float64 and bool.
type Document map[string]any

func (d Document) ID() string   { return d.String(FieldID) }
func (d Document) Kind() string { return d.String(FieldType) }
func (d Document) Rev() string  { return d.String(FieldRev) }

func (d Document) String(field string) string {
	val, _ := d[field].(string)
	return val
}

// Has reports whether the field is defined, like GROQ's defined().
func (d Document) Has(field string) bool {
	val, ok := d[field]
	return ok && val != nil
}

// Array returns the field as an array of entries. Entries that are not
// objects are skipped.
func (d Document) Array(field string) []map[string]any {
	raw, ok := d[field].([]any)
	if !ok {
		return nil
	}
	out := make([]map[string]any, 0, len(raw))
	for _, item := range raw {
		if entry, ok := item.(map[string]any); ok {
			out = append(out, entry)
		}
	}
	return out
}

// Decode converts the document into a typed model.
func (d Document) Decode(out any) error {
	raw, err := jsoniter.Marshal(d)
	if err != nil {
		return fmt.Errorf("unable to encode document: %v", err)
	}
	if err := jsoniter.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("unable to decode document %s: %v", d.ID(), err)
	}
	return nil
}

// Clone deep copies the document through its JSON shape.
func (d Document) Clone() Document {
	out, _ := Normalize(d)
	return out
}

// Normalize turns any JSON-encodable value into its Document shape.
func Normalize(in any) (Document, error) {
	raw, err := jsoniter.Marshal(in)
	if err != nil {
		return nil, fmt.Errorf("unable to encode document: %v", err)
	}
	var out Document
	if err := jsoniter.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("unable to decode document: %v", err)
	}
	if out == nil {
		out = Document{}
	}
	return out, nil
}

// NormalizeValue turns a patch value into its JSON shape.
func NormalizeValue(in any) (any, error) {
	raw, err := jsoniter.Marshal(in)
	if err != nil {
		return nil, err
	}
	var out any
	if err := jsoniter.Unmarshal(raw, &out); err != nil {
		return nil, err
	}
	return out, nil
}
