package content

import "time"

// Content is a single content entry served by the public API. A non-empty
// Secret gates the entry: Rendered, Excerpt, Fields, Meta and Attachments are
// only revealed to callers holding a matching password or a valid credential.
type Content struct {
	ID          int64
	Type        string
	Slug        string
	Path        string
	Title       string
	Rendered    string
	Excerpt     string
	Secret      string
	Meta        map[string]string
	Fields      map[string]any
	Attachments []Attachment
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Attachment references an object in the attachment bucket. The public API
// exposes it as a short-lived presigned URL, never as the raw key.
type Attachment struct {
	Name  string `json:"name"`
	S3Key string `json:"s3_key"`
}

// Locator identifies an entry by id, hierarchical path, or slug, constrained
// by an optional set of allowed type names. Resolution tries id first, then
// path, then slug; the first match wins.
type Locator struct {
	ID    int64
	Path  string
	Slug  string
	Types []string
}

// Empty reports whether the locator carries no usable identifier.
func (l Locator) Empty() bool {
	return l.ID <= 0 && l.Path == "" && l.Slug == ""
}

type ListFilter struct {
	Types  []string
	Limit  int
	Offset int
}

type CreateContentInput struct {
	Type        string
	Slug        string
	Path        string
	Title       string
	Rendered    string
	Excerpt     string
	Secret      string
	Meta        map[string]string
	Fields      map[string]any
	Attachments []Attachment
}

type UpdateContentInput struct {
	Title       *string
	Rendered    *string
	Excerpt     *string
	Secret      *string
	Meta        map[string]string
	Fields      map[string]any
	Attachments []Attachment
}

// IsGated returns true when the entry is password protected.
func (c *Content) IsGated() bool {
	return c.Secret != ""
}
