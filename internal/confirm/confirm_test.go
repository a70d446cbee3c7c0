package confirm

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/gophvault/internal/codec"
	"github.com/dmitrijs2005/gophvault/internal/common"
	"github.com/dmitrijs2005/gophvault/internal/cryptox"
	"github.com/dmitrijs2005/gophvault/internal/lockout"
	"github.com/dmitrijs2005/gophvault/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDeleter struct {
	deleted []string
	err     error
}

func (f *fakeDeleter) Delete(_ context.Context, id string) error {
	if f.err != nil {
		return f.err
	}
	f.deleted = append(f.deleted, id)
	return nil
}

func sealed(t *testing.T) (*models.Folder, cryptox.Secret) {
	t.Helper()
	key, err := cryptox.GenerateSecret()
	require.NoError(t, err)
	blob, err := codec.New().Seal(models.NewContent(time.Now()), key)
	require.NoError(t, err)
	return &models.Folder{ID: "f1", Name: "docs", Ciphertext: blob}, key
}

func otherKey(t *testing.T) string {
	t.Helper()
	k, err := cryptox.GenerateSecret()
	require.NoError(t, err)
	return k.Hex()
}

func TestConfirmAndDelete_CorrectKeyDeletes(t *testing.T) {
	store := &fakeDeleter{}
	folder, key := sealed(t)

	require.NoError(t, New(store).ConfirmAndDelete(context.Background(), folder, key.Hex()))
	assert.Equal(t, []string{"f1"}, store.deleted)
}

func TestConfirmAndDelete_WrongKeyRefuses(t *testing.T) {
	store := &fakeDeleter{}
	folder, _ := sealed(t)
	c := New(store)

	for i := 0; i < 5; i++ {
		err := c.ConfirmAndDelete(context.Background(), folder, otherKey(t))
		assert.ErrorIs(t, err, common.ErrInvalidKey)
	}
	err := c.ConfirmAndDelete(context.Background(), folder, "garbage")
	assert.ErrorIs(t, err, common.ErrInvalidKey)
	assert.Empty(t, store.deleted)
}

func TestConfirmAndDelete_NeverSealed(t *testing.T) {
	store := &fakeDeleter{}
	err := New(store).ConfirmAndDelete(context.Background(), &models.Folder{ID: "x"}, otherKey(t))
	assert.ErrorIs(t, err, common.ErrInvalidKey)
	assert.Empty(t, store.deleted)
}

func TestConfirmAndDelete_StorageErrorPropagates(t *testing.T) {
	boom := errors.New("db down")
	store := &fakeDeleter{err: boom}
	folder, key := sealed(t)

	err := New(store).ConfirmAndDelete(context.Background(), folder, key.Hex())
	assert.Same(t, boom, err)
}

func TestConfirmAndDelete_IndependentBudgetByDefault(t *testing.T) {
	store := &fakeDeleter{}
	folder, key := sealed(t)
	g := lockout.New()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_ = g.Attempt(ctx, folder.ID, func() error { return common.ErrInvalidKey })
	}

	require.NoError(t, New(store).ConfirmAndDelete(ctx, folder, key.Hex()))
	assert.Equal(t, []string{"f1"}, store.deleted)
}

func TestConfirmAndDelete_SharedGuard(t *testing.T) {
	store := &fakeDeleter{}
	folder, key := sealed(t)
	g := lockout.New()
	c := New(store, WithGuard(g))
	ctx := context.Background()

	require.ErrorIs(t, c.ConfirmAndDelete(ctx, folder, otherKey(t)), common.ErrInvalidKey)
	require.ErrorIs(t, c.ConfirmAndDelete(ctx, folder, otherKey(t)), common.ErrInvalidKey)
	require.ErrorIs(t, c.ConfirmAndDelete(ctx, folder, otherKey(t)), common.ErrLockedOut)

	err := c.ConfirmAndDelete(ctx, folder, key.Hex())
	assert.ErrorIs(t, err, common.ErrLocked)
	assert.Empty(t, store.deleted)
}
