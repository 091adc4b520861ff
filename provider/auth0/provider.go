package auth0

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/auth0/go-auth0/management"
	admissions "github.com/goliatone/go-admissions"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/hashid/pkg/hashid"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Provider implements admissions.IdentityProvider on top of the Auth0
// Management API.
type Provider struct {
	config      Config
	mgmt        *management.Management
	identifiers IdentifierStore
	connection  string
}

var _ admissions.IdentityProvider = (*Provider)(nil)

// NewProvider creates an Auth0-backed identity provider.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	mgmt, err := cfg.managementClient(ctx)
	if err != nil {
		return nil, err
	}

	return &Provider{
		config:      cfg,
		mgmt:        mgmt,
		identifiers: cfg.Identifiers,
		connection:  cfg.connection(),
	}, nil
}

// NewProviderWithDB creates the provider with a bun-backed identifier store.
func NewProviderWithDB(ctx context.Context, cfg Config, db *bun.DB) (*Provider, error) {
	if cfg.Identifiers == nil {
		cfg.Identifiers = NewIdentifierStore(db)
	}
	return NewProvider(ctx, cfg)
}

// CreateIdentity provisions a new Auth0 user. A duplicate email surfaces as
// admissions.ErrIdentityEmailTaken so callers can fall back to reuse.
func (p *Provider) CreateIdentity(ctx context.Context, email, password, displayName string) (*admissions.IdentityRecord, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user := &management.User{
		Connection: admissions.StringPtr(p.connection),
		Email:      admissions.StringPtr(email),
		Password:   admissions.StringPtr(password),
		Blocked:    admissions.BoolPtr(false),
	}
	if name := strings.TrimSpace(displayName); name != "" {
		user.Name = admissions.StringPtr(name)
	}

	if err := p.mgmt.User.Create(ctx, user); err != nil {
		if isConflict(err) {
			return nil, admissions.IdentityEmailTaken(email)
		}
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth0: failed to create user")
	}

	return p.record(ctx, user)
}

// FindIdentityByEmail resolves an Auth0 user by email.
func (p *Provider) FindIdentityByEmail(ctx context.Context, email string) (*admissions.IdentityRecord, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	users, err := p.mgmt.User.ListByEmail(ctx, email)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth0: failed to list users by email")
	}

	if len(users) == 0 {
		return nil, admissions.IdentityNotFound(map[string]any{
			"email": email,
		})
	}

	return p.record(ctx, users[0])
}

// UpdateIdentity applies a partial update to an existing Auth0 user.
func (p *Provider) UpdateIdentity(ctx context.Context, uid uuid.UUID, update admissions.IdentityUpdate) (*admissions.IdentityRecord, error) {
	auth0ID, err := p.auth0ID(ctx, uid)
	if err != nil {
		return nil, err
	}

	user := &management.User{}

	if update.Password != nil {
		user.Connection = admissions.StringPtr(p.connection)
		user.Password = update.Password
	}
	if update.DisplayName != nil {
		user.Name = update.DisplayName
	}
	if update.Disabled != nil {
		user.Blocked = update.Disabled
	}

	if err := p.mgmt.User.Update(ctx, auth0ID, user); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth0: failed to update user")
	}

	updated, err := p.mgmt.User.Read(ctx, auth0ID)
	if err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth0: failed to read updated user")
	}

	return p.record(ctx, updated)
}

// record maps a management user onto the local IdentityRecord, resolving or
// minting its stable uuid.
func (p *Provider) record(ctx context.Context, user *management.User) (*admissions.IdentityRecord, error) {
	if user == nil {
		return nil, fmt.Errorf("auth0: user is required")
	}

	uid, err := p.localUID(ctx, user.GetID(), user.GetEmail())
	if err != nil {
		return nil, err
	}

	return &admissions.IdentityRecord{
		UID:         uid,
		Email:       user.GetEmail(),
		DisplayName: user.GetName(),
		Disabled:    user.GetBlocked(),
	}, nil
}

// localUID resolves the stable uuid for an Auth0 user id, minting and storing
// one on first sight. The uid derives from the email so re-provisioning the
// same address converges on one uuid even without an identifier store.
func (p *Provider) localUID(ctx context.Context, auth0ID, email string) (uuid.UUID, error) {
	if p.identifiers != nil && auth0ID != "" {
		if localID, err := p.identifiers.FindUserID(ctx, IdentifierProviderAuth0, auth0ID); err == nil && localID != "" {
			if parsed, parseErr := uuid.Parse(localID); parseErr == nil {
				return parsed, nil
			}
		}
	}

	uid := mintUID(email)

	if p.identifiers != nil && auth0ID != "" {
		if err := p.identifiers.Upsert(ctx, uid.String(), IdentifierProviderAuth0, auth0ID); err != nil {
			return uuid.Nil, goerrors.Wrap(err, goerrors.CategoryInternal, "auth0: failed to store identifier mapping")
		}
	}

	return uid, nil
}

func (p *Provider) auth0ID(ctx context.Context, uid uuid.UUID) (string, error) {
	if p.identifiers == nil {
		return "", fmt.Errorf("auth0: identifier store is required to resolve uids")
	}

	auth0ID, err := p.identifiers.FindIdentifier(ctx, IdentifierProviderAuth0, uid.String())
	if err != nil || auth0ID == "" {
		return "", admissions.IdentityNotFound(map[string]any{
			"uid": uid.String(),
		})
	}

	return auth0ID, nil
}

func mintUID(email string) uuid.UUID {
	if id, err := hashid.NewUUID(email); err == nil {
		return id
	}
	return uuid.New()
}

func isConflict(err error) bool {
	mgmtErr, ok := err.(management.Error)
	return ok && mgmtErr.Status() == http.StatusConflict
}
