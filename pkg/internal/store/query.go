package store

import (
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"
)

type Op int

const (
	OpEq Op = iota
	OpRefEq
	OpUndefined
	OpNonEmpty
	OpMatch
)

type Filter struct {
	Field string
	Op    Op
	Value string
}

// Eq matches documents whose field equals the value.
func Eq(field, value string) Filter { return Filter{Field: field, Op: OpEq, Value: value} }

// RefEq matches documents whose reference field points at the id.
func RefEq(field, id string) Filter { return Filter{Field: field, Op: OpRefEq, Value: id} }

// Undefined matches documents lacking the field.
func Undefined(field string) Filter { return Filter{Field: field, Op: OpUndefined} }

// NonEmpty matches documents whose array field has at least one entry.
func NonEmpty(field string) Filter { return Filter{Field: field, Op: OpNonEmpty} }

// Match is a case-insensitive text search on a string field.
func Match(field, value string) Filter { return Filter{Field: field, Op: OpMatch, Value: value} }

// Query selects documents of one kind. Filters are AND-ed together; when Any
// is not empty at least one of its filters must match too.
type Query struct {
	Kind    string
	IDs     []string
	Filters []Filter
	Any     []Filter
	Newest  bool
	Limit   int
}

func (f Filter) Matches(doc Document) bool {
	switch f.Op {
	case OpEq:
		val, ok := doc[f.Field].(string)
		return ok && val == f.Value
	case OpRefEq:
		ref, ok := doc[f.Field].(map[string]any)
		return ok && ref[FieldRef] == f.Value
	case OpUndefined:
		return !doc.Has(f.Field)
	case OpNonEmpty:
		raw, ok := doc[f.Field].([]any)
		return ok && len(raw) > 0
	case OpMatch:
		val, ok := doc[f.Field].(string)
		return ok && strings.Contains(strings.ToLower(val), strings.ToLower(f.Value))
	}
	return false
}

func (q Query) Matches(doc Document) bool {
	if q.Kind != "" && doc.Kind() != q.Kind {
		return false
	}
	if len(q.IDs) > 0 && !lo.Contains(q.IDs, doc.ID()) {
		return false
	}
	for _, filter := range q.Filters {
		if !filter.Matches(doc) {
			return false
		}
	}
	if len(q.Any) > 0 {
		return lo.SomeBy(q.Any, func(item Filter) bool {
			return item.Matches(doc)
		})
	}
	return true
}

// Select applies the query to documents given in insertion order.
func Select(docs []Document, q Query) []Document {
	out := lo.Filter(docs, func(item Document, _ int) bool {
		return q.Matches(item)
	})
	if q.Newest {
		out = lo.Reverse(out)
		sort.SliceStable(out, func(i, j int) bool {
			return createdAt(out[i]).After(createdAt(out[j]))
		})
	}
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out
}

func createdAt(doc Document) time.Time {
	t, err := time.Parse(TimeLayout, doc.String(FieldCreatedAt))
	if err != nil {
		t, _ = time.Parse(time.RFC3339Nano, doc.String(FieldCreatedAt))
	}
	return t
}
