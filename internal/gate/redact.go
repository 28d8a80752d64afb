package gate

import (
	"encoding/json"

	"content-gate/internal/domain/content"
)

// Document field names, mirroring the public JSON shape.
const (
	docKeyID          = "id"
	docKeyProtected   = "protected"
	docKeyContent     = "content"
	docKeyExcerpt     = "excerpt"
	docKeyRendered    = "rendered"
	docKeyMeta        = "meta"
	docKeyFields      = "fields"
	docKeyAttachments = "attachments"
)

// Redact applies the access decision to a single document and returns a copy.
// It never fails: malformed documents come back unchanged apart from the
// top-level protected flag, and applying it twice yields the same result.
//
// Granted access over a gated entry re-injects the true rendered content and
// excerpt, bypassing whatever upstream rendering already blanked. Denied
// access removes the custom-field blob entirely, empties (but keeps) the
// metadata sub-document, drops attachments, and marks nested content
// sub-documents protected.
func (g *Gate) Redact(entry *content.Content, decision Decision, doc map[string]any) map[string]any {
	if doc == nil {
		return nil
	}

	out := cloneDocument(doc)
	isProtected := entry.Secret != "" && !decision.Granted

	if decision.Granted && entry.Secret != "" {
		setRendered(out, docKeyContent, entry.Rendered)
		setRendered(out, docKeyExcerpt, entry.Excerpt)
	}

	out[docKeyProtected] = isProtected

	if isProtected {
		delete(out, docKeyFields)
		delete(out, docKeyAttachments)
		if _, ok := out[docKeyMeta]; ok {
			out[docKeyMeta] = map[string]any{}
		}
		markProtected(out, docKeyContent)
		markProtected(out, docKeyExcerpt)
	}

	return out
}

// RedactList applies Redact independently to every resource-shaped item.
// Items without an id field, or whose id the resolver cannot match to a
// known entry, pass through unmodified.
func (g *Gate) RedactList(docs []map[string]any, resolve func(int64) *content.Content, password, token string) []map[string]any {
	out := make([]map[string]any, len(docs))
	for i, doc := range docs {
		id, ok := documentID(doc)
		if !ok {
			out[i] = doc
			continue
		}

		entry := resolve(id)
		if entry == nil {
			out[i] = doc
			continue
		}

		out[i] = g.Redact(entry, g.Decide(entry, password, token), doc)
	}
	return out
}

// documentID extracts the entry id from a document, tolerating the numeric
// types a JSON round-trip can produce.
func documentID(doc map[string]any) (int64, bool) {
	switch v := doc[docKeyID].(type) {
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	case float64:
		id := int64(v)
		return id, id > 0 && float64(id) == v
	case json.Number:
		id, err := v.Int64()
		return id, err == nil && id > 0
	default:
		return 0, false
	}
}

// cloneDocument copies the top level and the nested sub-documents redaction
// touches, so callers' documents are never mutated.
func cloneDocument(doc map[string]any) map[string]any {
	out := make(map[string]any, len(doc))
	for k, v := range doc {
		out[k] = v
	}

	for _, key := range []string{docKeyContent, docKeyExcerpt, docKeyMeta} {
		if sub, ok := out[key].(map[string]any); ok {
			subCopy := make(map[string]any, len(sub))
			for k, v := range sub {
				subCopy[k] = v
			}
			out[key] = subCopy
		}
	}

	return out
}

func setRendered(doc map[string]any, key, rendered string) {
	sub, ok := doc[key].(map[string]any)
	if !ok {
		return
	}
	sub[docKeyRendered] = rendered
	sub[docKeyProtected] = false
}

func markProtected(doc map[string]any, key string) {
	sub, ok := doc[key].(map[string]any)
	if !ok {
		return
	}
	sub[docKeyProtected] = true
}
