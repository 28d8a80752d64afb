package handler

import (
	"time"

	"content-gate/internal/domain/content"
)

// renderDocument shapes a content row into the public document form. Gated
// entries leave the renderer with blank bodies; the gate re-injects the real
// text only after a granting decision, so a rendering bug can never leak a
// protected body on its own.
func renderDocument(entry *content.Content, signer AttachmentSigner) map[string]any {
	gated := entry.IsGated()

	rendered := entry.Rendered
	excerpt := entry.Excerpt
	if gated {
		rendered = ""
		excerpt = ""
	}

	doc := map[string]any{
		"id":       entry.ID,
		"type":     entry.Type,
		"slug":     entry.Slug,
		"path":     entry.Path,
		"date":     entry.CreatedAt.Format(time.RFC3339),
		"modified": entry.UpdatedAt.Format(time.RFC3339),
		"title":    map[string]any{"rendered": entry.Title},
		"content": map[string]any{
			"rendered":  rendered,
			"protected": gated,
		},
		"excerpt": map[string]any{
			"rendered":  excerpt,
			"protected": gated,
		},
		"meta":   metaDocument(entry.Meta),
		"fields": fieldsDocument(entry.Fields),
	}

	if attachments := attachmentsDocument(entry.Attachments, signer); attachments != nil {
		doc["attachments"] = attachments
	}

	return doc
}

func metaDocument(meta map[string]string) map[string]any {
	out := make(map[string]any, len(meta))
	for k, v := range meta {
		out[k] = v
	}
	return out
}

func fieldsDocument(fields map[string]any) map[string]any {
	out := make(map[string]any, len(fields))
	for k, v := range fields {
		out[k] = v
	}
	return out
}

// attachmentsDocument signs download URLs for the entry's attachments. An
// attachment whose URL cannot be signed is listed by name only.
func attachmentsDocument(attachments []content.Attachment, signer AttachmentSigner) []any {
	if len(attachments) == 0 || signer == nil {
		return nil
	}

	out := make([]any, 0, len(attachments))
	for _, a := range attachments {
		item := map[string]any{"name": a.Name}
		if url, err := signer.PresignDownloadURL(a.S3Key); err == nil {
			item["url"] = url
		}
		out = append(out, item)
	}

	return out
}
