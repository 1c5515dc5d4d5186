package store

import (
	"context"

	"FIC_Backend/models"
)

// ListQuery filters the read-only pending listing.
type ListQuery struct {
	FormType  string
	Processed *bool
	Page      int
	Size      int
}

// PendingStore is the pending-update table as the reconciler and the
// endpoints see it. Claim is the consumption gate: it flips processed
// false→true conditionally and reports whether this caller won, so two
// consumers observing the same record can never both apply it.
type PendingStore interface {
	Insert(ctx context.Context, rec *models.PendingUpdate) error
	FetchUnprocessed(ctx context.Context, formType string) ([]models.PendingUpdate, error)
	Claim(ctx context.Context, id string) (bool, error)
	List(ctx context.Context, q ListQuery) ([]models.PendingUpdate, int64, error)

	// Subscribe delivers records inserted after the call, scoped to one
	// form type. The cancel func unregisters the subscriber and closes the
	// channel. Delivery is best-effort: a missed notification leaves the
	// record unprocessed for the next catch-up fetch.
	Subscribe(formType string) (<-chan models.PendingUpdate, func(), error)
}
