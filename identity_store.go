package admissions

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Identity is the Bun model for locally managed credentials. It backs
// LocalIdentityStore; deployments that delegate credentials to an external
// provider (see provider/auth0) never create this table.
type Identity struct {
	bun.BaseModel `bun:"table:identities,alias:idn"`
	UID           uuid.UUID  `bun:"uid,pk,type:uuid" json:"uid,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash,notnull" json:"-"`
	DisplayName   string     `bun:"display_name" json:"display_name,omitempty"`
	Disabled      bool       `bun:"disabled" json:"disabled,omitempty"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

func (i *Identity) record() *IdentityRecord {
	return &IdentityRecord{
		UID:         i.UID,
		Email:       i.Email,
		DisplayName: i.DisplayName,
		Disabled:    i.Disabled,
	}
}

// LocalIdentityStore is a Bun-backed IdentityProvider. Identity uids are
// minted deterministically from the email so repeated provisioning of the
// same address converges on one uid.
type LocalIdentityStore struct {
	db     *bun.DB
	now    Clock
	logger Logger
}

var _ IdentityProvider = (*LocalIdentityStore)(nil)

// LocalIdentityStoreOption customizes store construction.
type LocalIdentityStoreOption func(*LocalIdentityStore)

// WithIdentityClock injects a custom clock (useful for tests).
func WithIdentityClock(clock Clock) LocalIdentityStoreOption {
	return func(s *LocalIdentityStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

// WithIdentityLogger overrides the store logger.
func WithIdentityLogger(logger Logger) LocalIdentityStoreOption {
	return func(s *LocalIdentityStore) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewLocalIdentityStore creates a local identity provider backed by db.
func NewLocalIdentityStore(db *bun.DB, opts ...LocalIdentityStoreOption) *LocalIdentityStore {
	s := &LocalIdentityStore{
		db:     db,
		now:    time.Now,
		logger: defLogger{},
	}

	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}

	return s
}

// CreateIdentity provisions a new credential. It fails with
// ErrIdentityEmailTaken when the email is already registered.
func (s *LocalIdentityStore) CreateIdentity(ctx context.Context, email, password, displayName string) (*IdentityRecord, error) {
	email = normalizeEmail(email)

	if existing, err := s.findByEmail(ctx, email); err == nil && existing != nil {
		return nil, IdentityEmailTaken(email)
	} else if err != nil && !goerrors.IsNotFound(err) {
		return nil, err
	}

	hash, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	identity := &Identity{
		UID:          mintIdentityUID(email),
		Email:        email,
		PasswordHash: hash,
		DisplayName:  strings.TrimSpace(displayName),
	}

	now := s.now()
	identity.CreatedAt = &now
	identity.UpdatedAt = &now

	if _, err := s.db.NewInsert().Model(identity).Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to persist identity")
	}

	return identity.record(), nil
}

// FindIdentityByEmail looks up a credential by email.
func (s *LocalIdentityStore) FindIdentityByEmail(ctx context.Context, email string) (*IdentityRecord, error) {
	identity, err := s.findByEmail(ctx, normalizeEmail(email))
	if err != nil {
		return nil, err
	}
	return identity.record(), nil
}

// UpdateIdentity applies a partial update to an existing credential.
func (s *LocalIdentityStore) UpdateIdentity(ctx context.Context, uid uuid.UUID, update IdentityUpdate) (*IdentityRecord, error) {
	identity := &Identity{}
	err := s.db.NewSelect().
		Model(identity).
		Where("uid = ?", uid).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, IdentityNotFound(map[string]any{"uid": uid.String()})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity")
	}

	if update.Password != nil {
		hash, err := HashPassword(*update.Password)
		if err != nil {
			return nil, err
		}
		identity.PasswordHash = hash
	}

	if update.DisplayName != nil {
		identity.DisplayName = strings.TrimSpace(*update.DisplayName)
	}

	if update.Disabled != nil {
		identity.Disabled = *update.Disabled
	}

	now := s.now()
	identity.UpdatedAt = &now

	if _, err := s.db.NewUpdate().Model(identity).WherePK().Exec(ctx); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to update identity")
	}

	return identity.record(), nil
}

func (s *LocalIdentityStore) findByEmail(ctx context.Context, email string) (*Identity, error) {
	identity := &Identity{}
	err := s.db.NewSelect().
		Model(identity).
		Where("email = ?", email).
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, IdentityNotFound(map[string]any{"email": email})
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "failed to retrieve identity")
	}
	return identity, nil
}

// mintIdentityUID derives a deterministic uid from the email so the same
// address always provisions the same identity.
func mintIdentityUID(email string) uuid.UUID {
	if id, err := hashid.NewUUID(email); err == nil {
		return id
	}
	return uuid.New()
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
