package postgres

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"content-gate/internal/domain/apikey"
	apperrors "content-gate/pkg/errors"
)

const apiKeyColumns = `id, name, key_hash, key_prefix, permissions, expires_at, created_by, created_at, last_used_at, revoked_at, revoked_by`

type APIKeyRepository struct {
	db *DB
}

func NewAPIKeyRepository(db *DB) *APIKeyRepository {
	return &APIKeyRepository{db: db}
}

func (r *APIKeyRepository) Create(ctx context.Context, input apikey.CreateAPIKeyInput) (*apikey.APIKey, error) {
	query := `
		INSERT INTO api_keys (name, key_hash, key_prefix, permissions, expires_at, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + apiKeyColumns

	key, err := scanAPIKey(r.db.Pool.QueryRow(ctx, query,
		input.Name,
		input.KeyHash,
		input.KeyPrefix,
		permissionsToStrings(input.Permissions),
		input.ExpiresAt,
		input.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.Conflict("API key already exists")
		}
		return nil, errFailedCreateAPIKey(err)
	}

	return key, nil
}

func (r *APIKeyRepository) GetByHash(ctx context.Context, keyHash string) (*apikey.APIKey, error) {
	query := `SELECT ` + apiKeyColumns + ` FROM api_keys WHERE key_hash = $1`

	key, err := scanAPIKey(r.db.Pool.QueryRow(ctx, query, keyHash))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound(errAPIKeyNotFound)
		}
		return nil, errFailedGetAPIKey(err)
	}

	return key, nil
}

func (r *APIKeyRepository) List(ctx context.Context, createdBy string) ([]*apikey.APIKey, error) {
	query := `
		SELECT ` + apiKeyColumns + `
		FROM api_keys WHERE created_by = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Pool.Query(ctx, query, createdBy)
	if err != nil {
		return nil, errFailedListAPIKeys(err)
	}
	defer rows.Close()

	keys := make([]*apikey.APIKey, 0)
	for rows.Next() {
		key, err := scanAPIKey(rows)
		if err != nil {
			return nil, errFailedScanAPIKey(err)
		}
		keys = append(keys, key)
	}

	return keys, rows.Err()
}

// Revoke marks a key revoked. Revoking an already revoked key is a no-op so
// the operation stays idempotent.
func (r *APIKeyRepository) Revoke(ctx context.Context, input apikey.RevokeAPIKeyInput) error {
	query := `
		UPDATE api_keys SET revoked_at = now(), revoked_by = $2
		WHERE id = $1 AND revoked_at IS NULL
	`

	result, err := r.db.Pool.Exec(ctx, query, input.ID, input.RevokedBy)
	if err != nil {
		return errFailedRevokeAPIKey(err)
	}
	if result.RowsAffected() == 0 {
		exists, err := r.exists(ctx, input.ID.String())
		if err != nil {
			return err
		}
		if !exists {
			return apperrors.NotFound(errAPIKeyNotFound)
		}
	}

	return nil
}

func (r *APIKeyRepository) UpdateLastUsed(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE api_keys SET last_used_at = now() WHERE id = $1"
	if _, err := r.db.Pool.Exec(ctx, query, id); err != nil {
		return errFailedUpdateLastUsed(err)
	}

	return nil
}

func (r *APIKeyRepository) exists(ctx context.Context, id string) (bool, error) {
	var exists bool
	err := r.db.Pool.QueryRow(ctx, "SELECT EXISTS(SELECT 1 FROM api_keys WHERE id = $1)", id).Scan(&exists)
	if err != nil {
		return false, errFailedGetAPIKey(err)
	}

	return exists, nil
}

func scanAPIKey(row pgx.Row) (*apikey.APIKey, error) {
	key := &apikey.APIKey{}
	var permissions []string

	err := row.Scan(
		&key.ID,
		&key.Name,
		&key.KeyHash,
		&key.KeyPrefix,
		&permissions,
		&key.ExpiresAt,
		&key.CreatedBy,
		&key.CreatedAt,
		&key.LastUsedAt,
		&key.RevokedAt,
		&key.RevokedBy,
	)
	if err != nil {
		return nil, err
	}

	key.Permissions = stringsToPermissions(permissions)
	return key, nil
}

func permissionsToStrings(perms []apikey.Permission) []string {
	out := make([]string, len(perms))
	for i, p := range perms {
		out[i] = string(p)
	}
	return out
}

func stringsToPermissions(values []string) []apikey.Permission {
	out := make([]apikey.Permission, len(values))
	for i, v := range values {
		out[i] = apikey.Permission(v)
	}
	return out
}
