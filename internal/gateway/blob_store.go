package gateway

import (
	"context"
	"fmt"

	"sporton/internal/apperrors"

	"github.com/google/uuid"
)

const blobCollection = "proof"

// BlobStore keeps payment proof images in the same Slots backend as the collections.
// Each blob gets its own slot and is addressed by an opaque reference.
type BlobStore struct {
	slots Slots
}

// NewBlobStore creates a new BlobStore.
func NewBlobStore(slots Slots) *BlobStore {
	return &BlobStore{slots: slots}
}

func blobKey(ref string) string {
	return blobCollection + ":" + ref
}

// Save stores data and returns its reference, e.g. "proof_<uuid>.png".
func (s *BlobStore) Save(ctx context.Context, ext string, data []byte) (string, error) {
	ref := "proof_" + uuid.New().String() + ext
	if err := s.slots.Put(ctx, blobKey(ref), data); err != nil {
		return "", &apperrors.StorageError{Op: "write", Collection: blobCollection, Err: err}
	}
	return ref, nil
}

// Load returns the blob stored under ref.
func (s *BlobStore) Load(ctx context.Context, ref string) ([]byte, error) {
	data, ok, err := s.slots.Get(ctx, blobKey(ref))
	if err != nil {
		return nil, &apperrors.StorageError{Op: "read", Collection: blobCollection, Err: err}
	}
	if !ok {
		return nil, apperrors.NewNotFound("payment proof", ref)
	}
	return data, nil
}

// Delete removes the blob stored under ref.
func (s *BlobStore) Delete(ctx context.Context, ref string) error {
	if err := s.slots.Delete(ctx, blobKey(ref)); err != nil {
		return &apperrors.StorageError{Op: "delete", Collection: blobCollection, Err: fmt.Errorf("%s: %w", ref, err)}
	}
	return nil
}
