package admissions

import (
	"context"
	"database/sql"
	"errors"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// TeacherProfiles is the store for authoritative active-teacher records.
// Only the approval workflow writes to it.
type TeacherProfiles interface {
	GetByUID(ctx context.Context, uid uuid.UUID) (*TeacherProfile, error)
	GetByUIDTx(ctx context.Context, tx bun.IDB, uid uuid.UUID) (*TeacherProfile, error)

	// UpsertTx writes the profile keyed by uid with merge semantics:
	// non-empty incoming fields win, empty incoming fields keep whatever is
	// already stored, and the original created_at is preserved. Exactly one
	// profile per uid, never a duplicate row.
	UpsertTx(ctx context.Context, tx bun.IDB, record *TeacherProfile) (*TeacherProfile, error)
}

type teacherProfiles struct {
	db *bun.DB
}

var _ TeacherProfiles = (*teacherProfiles)(nil)

// NewTeacherProfilesRepository builds the teacher profile store on top of db.
func NewTeacherProfilesRepository(db *bun.DB) TeacherProfiles {
	return &teacherProfiles{db: db}
}

func (t *teacherProfiles) GetByUID(ctx context.Context, uid uuid.UUID) (*TeacherProfile, error) {
	return t.GetByUIDTx(ctx, t.db, uid)
}

func (t *teacherProfiles) GetByUIDTx(ctx context.Context, tx bun.IDB, uid uuid.UUID) (*TeacherProfile, error) {
	record := &TeacherProfile{}
	err := tx.NewSelect().
		Model(record).
		Where("uid = ?", uid).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.NewRecordNotFound().WithMetadata(map[string]any{
				"uid": uid.String(),
			})
		}
		return nil, err
	}
	return record, nil
}

func (t *teacherProfiles) UpsertTx(ctx context.Context, tx bun.IDB, record *TeacherProfile) (*TeacherProfile, error) {
	existing, err := t.GetByUIDTx(ctx, tx, record.UID)
	if err != nil {
		if !repository.IsRecordNotFound(err) {
			return nil, err
		}
		existing = nil
	}

	if existing == nil {
		if _, err := tx.NewInsert().Model(record).Exec(ctx); err != nil {
			return nil, err
		}
		return record, nil
	}

	merged := mergeProfile(existing, record)
	if _, err := tx.NewUpdate().Model(merged).WherePK().Exec(ctx); err != nil {
		return nil, err
	}
	return merged, nil
}

// mergeProfile applies merge-update semantics on top of the stored profile.
// The caller has already resolved override-vs-application precedence on the
// incoming record; here an empty incoming field keeps the stored value and
// created_at survives re-approval.
func mergeProfile(existing, incoming *TeacherProfile) *TeacherProfile {
	merged := *incoming

	merged.Email = firstNonEmpty(incoming.Email, existing.Email)
	merged.FullName = firstNonEmpty(incoming.FullName, existing.FullName)
	merged.SchoolName = firstNonEmpty(incoming.SchoolName, existing.SchoolName)
	merged.Country = firstNonEmpty(incoming.Country, existing.Country)
	merged.Phone = firstNonEmpty(incoming.Phone, existing.Phone)

	if existing.CreatedAt != nil {
		merged.CreatedAt = existing.CreatedAt
	}

	return &merged
}
