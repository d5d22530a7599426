package services

import (
	"context"
	"fmt"

	"git.solsynth.dev/hypernet/arcade/pkg/internal/store"
	"github.com/google/uuid"
)

const kindStoreCheck = "storeCheck"

// CheckStore reads, creates and deletes a throwaway document to verify the store
// is reachable and the credential may write.
func (v *Service) CheckStore(ctx context.Context) error {
	if _, err := v.store.Fetch(ctx, store.Query{Kind: kindStoreCheck, Limit: 1}); err != nil {
		return fmt.Errorf("unable to read from store: %w", err)
	}

	doc, err := v.store.Create(ctx, store.Document{
		store.FieldID:   "check-" + uuid.NewString(),
		store.FieldType: kindStoreCheck,
	})
	if err != nil {
		return fmt.Errorf("unable to write to store: %w", err)
	}
	if err := v.store.Delete(ctx, doc.ID()); err != nil {
		return fmt.Errorf("unable to delete from store: %w", err)
	}
	return nil
}
