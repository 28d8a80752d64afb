package handler

import (
	"context"

	"github.com/google/uuid"

	"content-gate/internal/domain/apikey"
	"content-gate/internal/domain/content"
	"content-gate/internal/domain/user"
)

// Consumer-side interfaces defined by handlers
// Each interface contains only the methods needed by the specific handler

// ContentHandler / GateHandler interfaces
type ContentResolver interface {
	Resolve(ctx context.Context, loc content.Locator) (*content.Content, error)
	List(ctx context.Context, filter content.ListFilter) ([]*content.Content, error)
}

// AdminContentHandler interfaces
type ContentGetter interface {
	GetByID(ctx context.Context, id int64) (*content.Content, error)
}

type ContentWriter interface {
	Create(ctx context.Context, input content.CreateContentInput) (*content.Content, error)
	Update(ctx context.Context, id int64, input content.UpdateContentInput) (*content.Content, error)
	Delete(ctx context.Context, id int64) error
}

// AuthHandler interfaces
type UserGetter interface {
	GetByEmail(ctx context.Context, email string) (*user.User, error)
}

type TokenGenerator interface {
	Generate(userID uuid.UUID, email string) (string, error)
}

// APIKeyHandler interfaces
type APIKeyStore interface {
	Create(ctx context.Context, input apikey.CreateAPIKeyInput) (*apikey.APIKey, error)
	List(ctx context.Context, createdBy string) ([]*apikey.APIKey, error)
	Revoke(ctx context.Context, input apikey.RevokeAPIKeyInput) error
}

// Storage interfaces
type AttachmentSigner interface {
	PresignDownloadURL(key string) (string, error)
}
