package admissions

import (
	goerrors "github.com/goliatone/go-errors"
)

const (
	// TextCodeUnauthenticated marks requests with no verified caller identity.
	TextCodeUnauthenticated = "UNAUTHENTICATED"
	// TextCodePermissionDenied marks verified callers outside the admin allow-list.
	TextCodePermissionDenied = "PERMISSION_DENIED"
	// TextCodeInvalidArgument marks payloads that fail sanitizer rules.
	TextCodeInvalidArgument = "INVALID_ARGUMENT"
	// TextCodeApplicationNotFound marks lookups for unknown application ids.
	TextCodeApplicationNotFound = "APPLICATION_NOT_FOUND"
	// TextCodeIdentityEmailTaken marks identity creation hitting a registered email.
	TextCodeIdentityEmailTaken = "IDENTITY_EMAIL_TAKEN"
	// TextCodeIdentityNotFound marks identity lookups that matched no record.
	TextCodeIdentityNotFound = "IDENTITY_NOT_FOUND"
	// TextCodeReviewNotAllowed marks transitions rejected by the review policy.
	TextCodeReviewNotAllowed = "REVIEW_NOT_ALLOWED"
)

// ErrUnauthenticated is returned when no verified identity is attached to the request.
var ErrUnauthenticated = goerrors.New("authentication required", goerrors.CategoryAuth).
	WithTextCode(TextCodeUnauthenticated).
	WithCode(goerrors.CodeUnauthorized)

// ErrPermissionDenied is returned when the verified caller is not a configured administrator.
var ErrPermissionDenied = goerrors.New("administrator access required", goerrors.CategoryAuthz).
	WithTextCode(TextCodePermissionDenied).
	WithCode(goerrors.CodeForbidden)

// ErrApplicationNotFound is returned when the application id matches no record.
var ErrApplicationNotFound = goerrors.New("application not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeApplicationNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrIdentityEmailTaken is the recoverable conflict for identity creation
// against an already registered email. The approval workflow handles it by
// falling back to update-in-place; it only surfaces to callers of
// IdentityProvider implementations directly.
var ErrIdentityEmailTaken = goerrors.New("identity email already registered", goerrors.CategoryConflict).
	WithTextCode(TextCodeIdentityEmailTaken).
	WithCode(goerrors.CodeConflict)

// ErrIdentityNotFound is returned by identity lookups that matched no record.
var ErrIdentityNotFound = goerrors.New("identity not found", goerrors.CategoryNotFound).
	WithTextCode(TextCodeIdentityNotFound).
	WithCode(goerrors.CodeNotFound)

// ErrReviewNotAllowed is returned when the review policy forbids a transition.
var ErrReviewNotAllowed = goerrors.New("application review not allowed", goerrors.CategoryConflict).
	WithTextCode(TextCodeReviewNotAllowed).
	WithCode(goerrors.CodeConflict)

// The sentinels above are matched, never mutated. WithMetadata writes into
// the receiver, so enriched errors are always built fresh by the constructors
// below; each call returns its own *goerrors.Error.

// InvalidArgument builds the validation error for a payload field.
func InvalidArgument(field, reason string) *goerrors.Error {
	return goerrors.New(field+": "+reason, goerrors.CategoryValidation).
		WithTextCode(TextCodeInvalidArgument).
		WithCode(goerrors.CodeBadRequest).
		WithMetadata(map[string]any{"field": field})
}

// PermissionDenied builds the authorization error for a rejected actor.
func PermissionDenied(actorEmail string) *goerrors.Error {
	return goerrors.New("administrator access required", goerrors.CategoryAuthz).
		WithTextCode(TextCodePermissionDenied).
		WithCode(goerrors.CodeForbidden).
		WithMetadata(map[string]any{"actor_email": actorEmail})
}

// ApplicationNotFound builds the not-found error for an application id.
func ApplicationNotFound(applicationID string) *goerrors.Error {
	return goerrors.New("application not found", goerrors.CategoryNotFound).
		WithTextCode(TextCodeApplicationNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(map[string]any{"application_id": applicationID})
}

// IdentityEmailTaken builds the duplicate-email conflict for identity creation.
func IdentityEmailTaken(email string) *goerrors.Error {
	return goerrors.New("identity email already registered", goerrors.CategoryConflict).
		WithTextCode(TextCodeIdentityEmailTaken).
		WithCode(goerrors.CodeConflict).
		WithMetadata(map[string]any{"email": email})
}

// IdentityNotFound builds the not-found error for an identity lookup. The
// metadata names whatever key the lookup used (email or uid).
func IdentityNotFound(metadata map[string]any) *goerrors.Error {
	return goerrors.New("identity not found", goerrors.CategoryNotFound).
		WithTextCode(TextCodeIdentityNotFound).
		WithCode(goerrors.CodeNotFound).
		WithMetadata(metadata)
}

// ReviewNotAllowed builds the policy error for a forbidden status transition.
func ReviewNotAllowed(metadata map[string]any) *goerrors.Error {
	return goerrors.New("application review not allowed", goerrors.CategoryConflict).
		WithTextCode(TextCodeReviewNotAllowed).
		WithCode(goerrors.CodeConflict).
		WithMetadata(metadata)
}

// IsIdentityEmailTaken reports whether err is the duplicate-email conflict.
func IsIdentityEmailTaken(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeIdentityEmailTaken
}

// IsInvalidArgument reports whether err carries the sanitizer text code.
func IsInvalidArgument(err error) bool {
	var richErr *goerrors.Error
	if !goerrors.As(err, &richErr) {
		return false
	}
	return richErr.TextCode == TextCodeInvalidArgument
}
