package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"

	"content-gate/internal/domain/content"
	apperrors "content-gate/pkg/errors"
)

const contentColumns = `id, type, slug, path, title, rendered, excerpt, secret, meta, fields, attachments, created_at, updated_at`

type ContentRepository struct {
	db *DB

	// publicTypes is the default type filter applied when a locator carries
	// no explicit types.
	publicTypes []string
}

func NewContentRepository(db *DB, publicTypes []string) *ContentRepository {
	return &ContentRepository{
		db:          db,
		publicTypes: publicTypes,
	}
}

// Resolve finds an entry by the locator's identifiers in fixed order: id
// first, then path, then slug. The first match wins. Every lookup is
// constrained to the locator's types, defaulting to the public types.
func (r *ContentRepository) Resolve(ctx context.Context, loc content.Locator) (*content.Content, error) {
	if loc.Empty() {
		return nil, apperrors.NotFound(errContentNotFound)
	}

	types := loc.Types
	if len(types) == 0 {
		types = r.publicTypes
	}

	lookups := []struct {
		condition string
		value     any
		skip      bool
	}{
		{"id = $1", loc.ID, loc.ID <= 0},
		{"path = $1", loc.Path, loc.Path == ""},
		{"slug = $1", loc.Slug, loc.Slug == ""},
	}

	for _, lookup := range lookups {
		if lookup.skip {
			continue
		}

		entry, err := r.getBy(ctx, lookup.condition, lookup.value, types)
		if err == nil {
			return entry, nil
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
	}

	return nil, apperrors.NotFound(errContentNotFound)
}

// GetByID fetches an entry regardless of type. The editor surface uses it;
// public reads go through Resolve so the type filter always applies.
func (r *ContentRepository) GetByID(ctx context.Context, id int64) (*content.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE id = $1`

	entry, err := scanContent(r.db.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errContentNotFound)
		}
		return nil, errFailedGetContent(err)
	}

	return entry, nil
}

func (r *ContentRepository) getBy(ctx context.Context, condition string, value any, types []string) (*content.Content, error) {
	query := `SELECT ` + contentColumns + ` FROM contents WHERE ` + condition + ` AND type = ANY($2)`

	entry, err := scanContent(r.db.Pool.QueryRow(ctx, query, value, types))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errContentNotFound)
		}
		return nil, errFailedGetContent(err)
	}

	return entry, nil
}

func (r *ContentRepository) List(ctx context.Context, filter content.ListFilter) ([]*content.Content, error) {
	types := filter.Types
	if len(types) == 0 {
		types = r.publicTypes
	}

	query := `
		SELECT ` + contentColumns + `
		FROM contents WHERE type = ANY($1)
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Pool.Query(ctx, query, types, filter.Limit, filter.Offset)
	if err != nil {
		return nil, errFailedListContents(err)
	}
	defer rows.Close()

	entries := make([]*content.Content, 0)
	for rows.Next() {
		entry, err := scanContent(rows)
		if err != nil {
			return nil, errFailedScanContent(err)
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

func (r *ContentRepository) Create(ctx context.Context, input content.CreateContentInput) (*content.Content, error) {
	query := `
		INSERT INTO contents (type, slug, path, title, rendered, excerpt, secret, meta, fields, attachments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8::jsonb, $9::jsonb, $10::jsonb)
		RETURNING ` + contentColumns

	meta, err := jsonColumn(input.Meta == nil, input.Meta, emptyJSONObject)
	if err != nil {
		return nil, err
	}
	fields, err := jsonColumn(input.Fields == nil, input.Fields, emptyJSONObject)
	if err != nil {
		return nil, err
	}
	attachments, err := jsonColumn(input.Attachments == nil, input.Attachments, emptyJSONArray)
	if err != nil {
		return nil, err
	}

	entry, err := scanContent(r.db.Pool.QueryRow(ctx, query,
		input.Type,
		input.Slug,
		input.Path,
		input.Title,
		input.Rendered,
		input.Excerpt,
		input.Secret,
		meta,
		fields,
		attachments,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("content with this slug or path already exists")
		}
		return nil, errFailedCreateContent(err)
	}

	return entry, nil
}

func (r *ContentRepository) Update(ctx context.Context, id int64, input content.UpdateContentInput) (*content.Content, error) {
	query := `
		UPDATE contents SET
			title = COALESCE($2, title),
			rendered = COALESCE($3, rendered),
			excerpt = COALESCE($4, excerpt),
			secret = COALESCE($5, secret),
			meta = COALESCE($6::jsonb, meta),
			fields = COALESCE($7::jsonb, fields),
			attachments = COALESCE($8::jsonb, attachments),
			updated_at = now()
		WHERE id = $1
		RETURNING ` + contentColumns

	meta, err := optionalJSONColumn(input.Meta == nil, input.Meta)
	if err != nil {
		return nil, err
	}
	fields, err := optionalJSONColumn(input.Fields == nil, input.Fields)
	if err != nil {
		return nil, err
	}
	attachments, err := optionalJSONColumn(input.Attachments == nil, input.Attachments)
	if err != nil {
		return nil, err
	}

	entry, err := scanContent(r.db.Pool.QueryRow(ctx, query,
		id,
		input.Title,
		input.Rendered,
		input.Excerpt,
		input.Secret,
		meta,
		fields,
		attachments,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errContentNotFound)
		}
		return nil, errFailedUpdateContent(err)
	}

	return entry, nil
}

func (r *ContentRepository) Delete(ctx context.Context, id int64) error {
	query := "DELETE FROM contents WHERE id = $1"
	result, err := r.db.Pool.Exec(ctx, query, id)
	if err != nil {
		return errFailedDeleteContent(err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.NotFound(errContentNotFound)
	}

	return nil
}

func scanContent(row pgx.Row) (*content.Content, error) {
	entry := &content.Content{}
	var meta, fields, attachments []byte

	err := row.Scan(
		&entry.ID,
		&entry.Type,
		&entry.Slug,
		&entry.Path,
		&entry.Title,
		&entry.Rendered,
		&entry.Excerpt,
		&entry.Secret,
		&meta,
		&fields,
		&attachments,
		&entry.CreatedAt,
		&entry.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(meta, &entry.Meta); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(fields, &entry.Fields); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(attachments, &entry.Attachments); err != nil {
		return nil, err
	}

	return entry, nil
}

const (
	emptyJSONObject = "{}"
	emptyJSONArray  = "[]"
)

// jsonColumn encodes a value for a jsonb parameter, substituting the given
// empty literal for nil values.
func jsonColumn(isNil bool, v any, empty string) (string, error) {
	if isNil {
		return empty, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return "", errFailedEncodeContentJSON(err)
	}
	return string(raw), nil
}

// optionalJSONColumn encodes a value for a COALESCE'd jsonb parameter; nil
// yields SQL NULL so the existing column value is kept.
func optionalJSONColumn(isNil bool, v any) (*string, error) {
	if isNil {
		return nil, nil
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, errFailedEncodeContentJSON(err)
	}
	encoded := string(raw)
	return &encoded, nil
}
