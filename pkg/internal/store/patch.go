package store

import (
	"fmt"
	"sort"
)

// Unset removes a whole field, or, when Ref is set, every entry of the array
// field whose _ref equals Ref.
type Unset struct {
	Field string
	Ref   string
}

// Append inserts items after the last element of an array field.
type Append struct {
	Field string
	Items []any
}

// Patch is a partial update of one document. Operations are applied in the
// order Set, SetIfMissing, Unset, Inc, Append.
type Patch struct {
	IfRevision   string
	Set          map[string]any
	SetIfMissing map[string]any
	Unset        []Unset
	Inc          map[string]int64
	Append       []Append
}

func NewPatch() *Patch {
	return &Patch{}
}

func (p *Patch) IfRevisionID(rev string) *Patch {
	p.IfRevision = rev
	return p
}

func (p *Patch) SetField(field string, value any) *Patch {
	if p.Set == nil {
		p.Set = make(map[string]any)
	}
	p.Set[field] = value
	return p
}

func (p *Patch) SetFieldIfMissing(field string, value any) *Patch {
	if p.SetIfMissing == nil {
		p.SetIfMissing = make(map[string]any)
	}
	p.SetIfMissing[field] = value
	return p
}

func (p *Patch) UnsetField(field string) *Patch {
	p.Unset = append(p.Unset, Unset{Field: field})
	return p
}

func (p *Patch) UnsetRef(field, ref string) *Patch {
	p.Unset = append(p.Unset, Unset{Field: field, Ref: ref})
	return p
}

func (p *Patch) IncField(field string, delta int64) *Patch {
	if p.Inc == nil {
		p.Inc = make(map[string]int64)
	}
	p.Inc[field] += delta
	return p
}

func (p *Patch) AppendItems(field string, items ...any) *Patch {
	p.Append = append(p.Append, Append{Field: field, Items: items})
	return p
}

func (p *Patch) IsEmpty() bool {
	return len(p.Set) == 0 &&
		len(p.SetIfMissing) == 0 &&
		len(p.Unset) == 0 &&
		len(p.Inc) == 0 &&
		len(p.Append) == 0
}

// SortedKeys returns map keys in a stable order so every backend renders
// the same patch identically.
func SortedKeys[T any](in map[string]T) []string {
	keys := make([]string, 0, len(in))
	for k := range in {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ApplyPatch applies the patch to a copy of the document. System fields are
// left to the caller.
func ApplyPatch(doc Document, p *Patch) (Document, error) {
	out := doc.Clone()

	for _, field := range SortedKeys(p.Set) {
		val, err := NormalizeValue(p.Set[field])
		if err != nil {
			return doc, fmt.Errorf("%w: set %s: %v", ErrInvalidPatch, field, err)
		}
		out[field] = val
	}

	for _, field := range SortedKeys(p.SetIfMissing) {
		if out.Has(field) {
			continue
		}
		val, err := NormalizeValue(p.SetIfMissing[field])
		if err != nil {
			return doc, fmt.Errorf("%w: setIfMissing %s: %v", ErrInvalidPatch, field, err)
		}
		out[field] = val
	}

	for _, item := range p.Unset {
		if item.Ref == "" {
			delete(out, item.Field)
			continue
		}
		if !out.Has(item.Field) {
			continue
		}
		raw, ok := out[item.Field].([]any)
		if !ok {
			return doc, fmt.Errorf("%w: unset %s: field is not an array", ErrInvalidPatch, item.Field)
		}
		kept := make([]any, 0, len(raw))
		for _, entry := range raw {
			if obj, ok := entry.(map[string]any); ok && obj[FieldRef] == item.Ref {
				continue
			}
			kept = append(kept, entry)
		}
		out[item.Field] = kept
	}

	for _, field := range SortedKeys(p.Inc) {
		if !out.Has(field) {
			return doc, fmt.Errorf("%w: inc %s: field is not defined", ErrInvalidPatch, field)
		}
		current, ok := out[field].(float64)
		if !ok {
			return doc, fmt.Errorf("%w: inc %s: field is not a number", ErrInvalidPatch, field)
		}
		out[field] = current + float64(p.Inc[field])
	}

	for _, item := range p.Append {
		if !out.Has(item.Field) {
			return doc, fmt.Errorf("%w: insert %s: field is not defined", ErrInvalidPatch, item.Field)
		}
		raw, ok := out[item.Field].([]any)
		if !ok {
			return doc, fmt.Errorf("%w: insert %s: field is not an array", ErrInvalidPatch, item.Field)
		}
		for _, entry := range item.Items {
			val, err := NormalizeValue(entry)
			if err != nil {
				return doc, fmt.Errorf("%w: insert %s: %v", ErrInvalidPatch, item.Field, err)
			}
			raw = append(raw, val)
		}
		out[item.Field] = raw
	}

	return out, nil
}
