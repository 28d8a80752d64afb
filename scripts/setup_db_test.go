package main

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"content-gate/internal/domain/user"
	apperrors "content-gate/pkg/errors"
	"content-gate/pkg/password"
)

type fakeEditorCreator struct {
	created *user.CreateUserInput
	err     error
}

func (f *fakeEditorCreator) Create(_ context.Context, input user.CreateUserInput) (*user.User, error) {
	f.created = &input
	if f.err != nil {
		return nil, f.err
	}
	return &user.User{
		ID:           uuid.New(),
		Email:        input.Email,
		Name:         input.Name,
		PasswordHash: input.PasswordHash,
	}, nil
}

func TestSeedEditor(t *testing.T) {
	creator := &fakeEditorCreator{}

	u, err := seedEditor(context.Background(), creator, "editor@example.com", "Editor", "correct horse battery staple")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, "editor@example.com", u.Email)

	// Only the bcrypt hash reaches the repository, never the plaintext.
	require.NotNil(t, creator.created)
	assert.NotEqual(t, "correct horse battery staple", creator.created.PasswordHash)
	assert.True(t, password.Verify("correct horse battery staple", creator.created.PasswordHash))
}

func TestSeedEditorExistingAccountIsKept(t *testing.T) {
	creator := &fakeEditorCreator{err: apperrors.Conflict("user with this email already exists")}

	u, err := seedEditor(context.Background(), creator, "editor@example.com", "Editor", "pw-long-enough")
	require.NoError(t, err)
	assert.Nil(t, u)
}

func TestSeedEditorSurfacesRepositoryErrors(t *testing.T) {
	creator := &fakeEditorCreator{err: errors.New("connection refused")}

	_, err := seedEditor(context.Background(), creator, "editor@example.com", "Editor", "pw-long-enough")
	assert.Error(t, err)
}
