package admissions

import (
	"context"

	"github.com/google/uuid"
)

// IdentityRecord is the credential record owned by the external identity
// provider. The uid is a stable foreign key shared with TeacherProfile; this
// package provisions and reuses identities but never owns their lifecycle.
type IdentityRecord struct {
	UID         uuid.UUID
	Email       string
	DisplayName string
	Disabled    bool
}

// IdentityUpdate describes a partial identity update. Nil fields are left
// untouched.
type IdentityUpdate struct {
	Password    *string
	DisplayName *string
	Disabled    *bool
}

// IdentityProvider is the capability interface the approval workflow needs
// from the host environment's identity system.
//
// CreateIdentity fails with an IDENTITY_EMAIL_TAKEN conflict (see
// IsIdentityEmailTaken) when the email is already registered; the approval
// workflow recovers by falling back to FindIdentityByEmail + UpdateIdentity.
type IdentityProvider interface {
	CreateIdentity(ctx context.Context, email, password, displayName string) (*IdentityRecord, error)
	FindIdentityByEmail(ctx context.Context, email string) (*IdentityRecord, error)
	UpdateIdentity(ctx context.Context, uid uuid.UUID, update IdentityUpdate) (*IdentityRecord, error)
}

// StringPtr is a convenience for building IdentityUpdate values.
func StringPtr(s string) *string { return &s }

// BoolPtr is a convenience for building IdentityUpdate values.
func BoolPtr(b bool) *bool { return &b }
