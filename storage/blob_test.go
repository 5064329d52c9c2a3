package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"chatroom/errors"
)

func TestDiskStore_Put_And_Get(t *testing.T) {
	req := require.New(t)
	store, err := NewDiskStore(t.TempDir())
	req.NoError(err)

	id, err := store.Put(context.Background(), []byte("payload"))
	req.NoError(err)
	req.NotEmpty(id)

	data, err := store.Get(id)
	req.NoError(err)
	req.Equal([]byte("payload"), data)
	req.Equal("/api/files/"+id, store.URLFor(id))
}

func TestDiskStore_Get_Unknown_Id(t *testing.T) {
	req := require.New(t)
	store, err := NewDiskStore(t.TempDir())
	req.NoError(err)

	_, err = store.Get("missing")

	req.ErrorIs(err, errors.ErrNotFound)
}

func TestDiskStore_Get_Rejects_Path_Traversal(t *testing.T) {
	req := require.New(t)
	store, err := NewDiskStore(t.TempDir())
	req.NoError(err)

	_, err = store.Get("../../etc/passwd")

	req.ErrorIs(err, errors.ErrNotFound)
}

func TestDiskStore_Put_Honors_Cancellation(t *testing.T) {
	req := require.New(t)
	store, err := NewDiskStore(t.TempDir())
	req.NoError(err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Put(ctx, []byte("late"))

	req.ErrorIs(err, context.Canceled)
}
