package sanity

import (
	"fmt"
	"strings"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/goccy/go-json"
)

// RenderQuery turns a store query into a GROQ expression and its parameters.
// Values are always passed as parameters, never inlined.
func RenderQuery(q store.Query) (string, map[string]any) {
	params := make(map[string]any)
	param := func(val any) string {
		name := fmt.Sprintf("p%d", len(params))
		params[name] = val
		return "$" + name
	}

	var conds []string
	if len(q.Kind) > 0 {
		conds = append(conds, "_type == "+param(q.Kind))
	}
	if len(q.IDs) > 0 {
		conds = append(conds, "_id in "+param(q.IDs))
	}
	for _, filter := range q.Filters {
		conds = append(conds, renderFilter(filter, param))
	}
	if len(q.Any) > 0 {
		group := make([]string, 0, len(q.Any))
		for _, filter := range q.Any {
			group = append(group, renderFilter(filter, param))
		}
		conds = append(conds, "("+strings.Join(group, " || ")+")")
	}

	var sb strings.Builder
	sb.WriteString("*")
	if len(conds) > 0 {
		sb.WriteString("[" + strings.Join(conds, " && ") + "]")
	}
	if q.Newest {
		sb.WriteString(" | order(_createdAt desc)")
	} else {
		sb.WriteString(" | order(_createdAt asc)")
	}
	if q.Limit > 0 {
		sb.WriteString(fmt.Sprintf(" [0...%d]", q.Limit))
	}
	return sb.String(), params
}

func renderFilter(f store.Filter, param func(any) string) string {
	switch f.Op {
	case store.OpEq:
		return f.Field + " == " + param(f.Value)
	case store.OpRefEq:
		return f.Field + "._ref == " + param(f.Value)
	case store.OpUndefined:
		return "!defined(" + f.Field + ")"
	case store.OpNonEmpty:
		return "count(" + f.Field + ") > 0"
	case store.OpMatch:
		return f.Field + " match " + param("*"+f.Value+"*")
	}
	return "false"
}

// RefPath addresses the array entries pointing at ref, e.g. likes[_ref=="a"].
func RefPath(field, ref string) string {
	quoted, _ := json.Marshal(ref)
	return fmt.Sprintf("%s[_ref==%s]", field, quoted)
}
