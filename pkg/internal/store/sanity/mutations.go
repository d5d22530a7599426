package sanity

import (
	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
)

type mutationRequest struct {
	Mutations []map[string]any `json:"mutations"`
}

type mutationResponse struct {
	TransactionID string `json:"transactionId"`
	Results       []struct {
		ID        string         `json:"id"`
		Operation string         `json:"operation"`
		Document  store.Document `json:"document"`
	} `json:"results"`
}

type errorResponse struct {
	Error struct {
		Type        string `json:"type"`
		Description string `json:"description"`
	} `json:"error"`
}

// RenderPatch converts a patch into mutations for the mutate endpoint. The
// hosted store accepts a single insert per patch, so every extra append
// becomes its own patch in the same transaction. Only the first carries the
// revision guard.
func RenderPatch(id string, p *store.Patch) []map[string]any {
	head := map[string]any{"id": id}
	if len(p.IfRevision) > 0 {
		head["ifRevisionID"] = p.IfRevision
	}
	if len(p.Set) > 0 {
		head["set"] = p.Set
	}
	if len(p.SetIfMissing) > 0 {
		head["setIfMissing"] = p.SetIfMissing
	}
	if len(p.Unset) > 0 {
		paths := make([]string, 0, len(p.Unset))
		for _, item := range p.Unset {
			if len(item.Ref) > 0 {
				paths = append(paths, RefPath(item.Field, item.Ref))
			} else {
				paths = append(paths, item.Field)
			}
		}
		head["unset"] = paths
	}
	if len(p.Inc) > 0 {
		head["inc"] = p.Inc
	}

	out := []map[string]any{{"patch": head}}
	for idx, item := range p.Append {
		insert := map[string]any{
			"after": item.Field + "[-1]",
			"items": item.Items,
		}
		if idx == 0 {
			head["insert"] = insert
			continue
		}
		out = append(out, map[string]any{"patch": map[string]any{
			"id":     id,
			"insert": insert,
		}})
	}
	return out
}

func renderCreate(doc store.Document) map[string]any {
	body := doc.Clone()
	delete(body, store.FieldRev)
	delete(body, store.FieldCreatedAt)
	delete(body, store.FieldUpdatedAt)
	return map[string]any{"create": body}
}

func renderDelete(id string) map[string]any {
	return map[string]any{"delete": map[string]any{"id": id}}
}
