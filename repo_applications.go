package admissions

import (
	"context"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Applications is the store for teacher application intake records.
type Applications interface {
	repository.Repository[*Application]

	// MarkReviewedTx merge-updates the review fields of an application
	// inside the given transaction. Only non-zero fields on record are
	// written.
	MarkReviewedTx(ctx context.Context, tx bun.IDB, id string, record *Application) (*Application, error)

	// Purge hard-deletes an application record. Deleting an id that does
	// not exist is a no-op success, matching the underlying store's delete
	// semantics. It never cascades to profiles or identities.
	Purge(ctx context.Context, id string) error
}

type applications struct {
	repository.Repository[*Application]
	db *bun.DB
}

var _ Applications = (*applications)(nil)

// NewApplicationsRepository builds the applications store on top of db.
func NewApplicationsRepository(db *bun.DB) Applications {
	repo := repository.NewRepository[*Application](db, repository.ModelHandlers[*Application]{
		NewRecord: func() *Application { return &Application{} },
		GetID: func(a *Application) uuid.UUID {
			if a == nil {
				return uuid.Nil
			}
			return a.ID
		},
		SetID: func(a *Application, id uuid.UUID) {
			if a != nil {
				a.ID = id
			}
		},
		GetIdentifier: func() string {
			return "email"
		},
	})

	return &applications{
		Repository: repo,
		db:         db,
	}
}

func (a *applications) MarkReviewedTx(ctx context.Context, tx bun.IDB, id string, record *Application) (*Application, error) {
	return a.Repository.UpdateTx(ctx, tx, record,
		repository.UpdateByID(id),
		repository.UpdateSkipZeroValues(),
	)
}

func (a *applications) Purge(ctx context.Context, id string) error {
	_, err := a.db.NewDelete().
		Model((*Application)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	return err
}
