package handler

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"content-gate/internal/domain/content"
)

type fakeSigner struct {
	fail bool
}

func (f fakeSigner) PresignDownloadURL(key string) (string, error) {
	if f.fail {
		return "", errors.New("presign failed")
	}
	return "https://bucket.example.com/" + key + "?sig=abc", nil
}

func TestRenderDocumentBlanksGatedBodies(t *testing.T) {
	entry := &content.Content{
		ID:        7,
		Type:      "post",
		Slug:      "p",
		Title:     "T",
		Rendered:  "<p>secret body</p>",
		Excerpt:   "<p>secret excerpt</p>",
		Secret:    "pw",
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}

	doc := renderDocument(entry, nil)

	body := doc["content"].(map[string]any)
	assert.Equal(t, "", body["rendered"])
	assert.Equal(t, true, body["protected"])

	excerpt := doc["excerpt"].(map[string]any)
	assert.Equal(t, "", excerpt["rendered"])
	assert.Equal(t, true, excerpt["protected"])
}

func TestRenderDocumentOpenEntry(t *testing.T) {
	entry := &content.Content{
		ID:       8,
		Type:     "post",
		Slug:     "open",
		Title:    "Open",
		Rendered: "<p>body</p>",
		Fields:   map[string]any{"color": "blue"},
	}

	doc := renderDocument(entry, nil)

	body := doc["content"].(map[string]any)
	assert.Equal(t, "<p>body</p>", body["rendered"])
	assert.Equal(t, false, body["protected"])
	assert.Equal(t, map[string]any{"color": "blue"}, doc["fields"])
	assert.NotContains(t, doc, "attachments")
}

func TestRenderDocumentAttachments(t *testing.T) {
	entry := &content.Content{
		ID:    9,
		Type:  "post",
		Slug:  "att",
		Title: "With attachments",
		Attachments: []content.Attachment{
			{Name: "report.pdf", S3Key: "contents/9/report.pdf"},
		},
	}

	// No signer configured: attachments stay off the document.
	doc := renderDocument(entry, nil)
	assert.NotContains(t, doc, "attachments")

	doc = renderDocument(entry, fakeSigner{})
	attachments := doc["attachments"].([]any)
	item := attachments[0].(map[string]any)
	assert.Equal(t, "report.pdf", item["name"])
	assert.Equal(t, "https://bucket.example.com/contents/9/report.pdf?sig=abc", item["url"])

	// Signing failure lists the attachment by name only.
	doc = renderDocument(entry, fakeSigner{fail: true})
	attachments = doc["attachments"].([]any)
	item = attachments[0].(map[string]any)
	assert.Equal(t, "report.pdf", item["name"])
	assert.NotContains(t, item, "url")
}
