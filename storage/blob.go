// Package storage implements the content store consumed by the attachment
// gateway: opaque bytes in, id out, retrieval URL derived from the id.
package storage

import (
	"context"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"chatroom/errors"
)

type IBlobStore interface {
	Put(ctx context.Context, data []byte) (string, error)
	Get(id string) ([]byte, error)
	URLFor(id string) string
}

// DiskStore writes each blob to a uuid-named file under root. Ids are minted
// here, never reused: repeated uploads of identical bytes yield distinct
// ids (no dedup).
type DiskStore struct {
	root string
}

func NewDiskStore(root string) (*DiskStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskStore{root: root}, nil
}

func (s *DiskStore) Put(ctx context.Context, data []byte) (string, error) {
	// Large transfers may run long; honor upload cancellation before the
	// bytes hit the disk so no orphan blob is left behind.
	if err := ctx.Err(); err != nil {
		return "", err
	}
	id := uuid.NewString()
	if err := os.WriteFile(filepath.Join(s.root, id), data, 0o644); err != nil {
		return "", err
	}
	return id, nil
}

func (s *DiskStore) Get(id string) ([]byte, error) {
	// Reject path separators so a crafted id cannot escape the root.
	if id != filepath.Base(id) {
		return nil, errors.ErrNotFound
	}
	data, err := os.ReadFile(filepath.Join(s.root, id))
	if os.IsNotExist(err) {
		return nil, errors.ErrNotFound
	}
	return data, err
}

func (s *DiskStore) URLFor(id string) string {
	return "/api/files/" + id
}
