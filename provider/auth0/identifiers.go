package auth0

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// IdentifierModel is the Bun model mapping provider identifiers to uuids.
type IdentifierModel struct {
	bun.BaseModel `bun:"table:identity_identifiers"`

	ID         uuid.UUID `bun:"id,pk,nullzero,type:uuid"`
	UserID     uuid.UUID `bun:"user_id,notnull,type:uuid"`
	Provider   string    `bun:"provider,notnull"`
	Identifier string    `bun:"identifier,notnull"`
	CreatedAt  time.Time `bun:"created_at,default:current_timestamp"`
	UpdatedAt  time.Time `bun:"updated_at,default:current_timestamp"`
}

// BunIdentifierStore implements IdentifierStore using Bun.
type BunIdentifierStore struct {
	db *bun.DB
}

var _ IdentifierStore = (*BunIdentifierStore)(nil)

// NewIdentifierStore creates a new Bun identifier store.
func NewIdentifierStore(db *bun.DB) *BunIdentifierStore {
	return &BunIdentifierStore{db: db}
}

// FindUserID resolves the local uuid owning the given provider identifier.
func (s *BunIdentifierStore) FindUserID(ctx context.Context, provider, identifier string) (string, error) {
	provider = strings.TrimSpace(provider)
	identifier = strings.TrimSpace(identifier)
	if provider == "" || identifier == "" {
		return "", repository.NewRecordNotFound()
	}

	var model IdentifierModel
	err := s.db.NewSelect().
		Model(&model).
		Where("provider = ? AND identifier = ?", provider, identifier).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return "", repository.NewRecordNotFound().WithMetadata(map[string]any{
				"provider":   provider,
				"identifier": identifier,
			})
		}
		return "", err
	}

	return model.UserID.String(), nil
}

// FindIdentifier resolves the provider identifier owned by a local uuid.
func (s *BunIdentifierStore) FindIdentifier(ctx context.Context, provider, userID string) (string, error) {
	provider = strings.TrimSpace(provider)
	userID = strings.TrimSpace(userID)
	if provider == "" || userID == "" {
		return "", repository.NewRecordNotFound()
	}

	var model IdentifierModel
	err := s.db.NewSelect().
		Model(&model).
		Where("provider = ? AND user_id = ?", provider, userID).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if repository.IsRecordNotFound(err) || errors.Is(err, sql.ErrNoRows) {
			return "", repository.NewRecordNotFound().WithMetadata(map[string]any{
				"provider": provider,
				"user_id":  userID,
			})
		}
		return "", err
	}

	return model.Identifier, nil
}

// Upsert records the mapping between a local uuid and a provider identifier.
func (s *BunIdentifierStore) Upsert(ctx context.Context, userID, provider, identifier string) error {
	provider = strings.TrimSpace(provider)
	identifier = strings.TrimSpace(identifier)
	if provider == "" || identifier == "" {
		return fmt.Errorf("identifier store: provider and identifier are required")
	}

	parsedID, err := uuid.Parse(strings.TrimSpace(userID))
	if err != nil {
		return fmt.Errorf("identifier store: invalid user ID: %w", err)
	}

	model := &IdentifierModel{
		ID:         uuid.New(),
		UserID:     parsedID,
		Provider:   provider,
		Identifier: identifier,
		UpdatedAt:  time.Now(),
	}

	_, err = s.db.NewInsert().
		Model(model).
		On("CONFLICT (provider, identifier) DO UPDATE").
		Set("user_id = EXCLUDED.user_id").
		Set("updated_at = EXCLUDED.updated_at").
		Exec(ctx)
	return err
}
