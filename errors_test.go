package admissions_test

import (
	"errors"
	"testing"

	admissions "github.com/goliatone/go-admissions"
	goerrors "github.com/goliatone/go-errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		category goerrors.Category
		textCode string
	}{
		{"unauthenticated", admissions.ErrUnauthenticated, goerrors.CategoryAuth, admissions.TextCodeUnauthenticated},
		{"permission denied", admissions.ErrPermissionDenied, goerrors.CategoryAuthz, admissions.TextCodePermissionDenied},
		{"application not found", admissions.ErrApplicationNotFound, goerrors.CategoryNotFound, admissions.TextCodeApplicationNotFound},
		{"identity email taken", admissions.ErrIdentityEmailTaken, goerrors.CategoryConflict, admissions.TextCodeIdentityEmailTaken},
		{"identity not found", admissions.ErrIdentityNotFound, goerrors.CategoryNotFound, admissions.TextCodeIdentityNotFound},
		{"review not allowed", admissions.ErrReviewNotAllowed, goerrors.CategoryConflict, admissions.TextCodeReviewNotAllowed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.category, tt.err.Category)
			assert.Equal(t, tt.textCode, tt.err.TextCode)
		})
	}
}

func TestInvalidArgumentCarriesField(t *testing.T) {
	err := admissions.InvalidArgument("email", "must contain @")

	assert.True(t, admissions.IsInvalidArgument(err))
	assert.Equal(t, "email", err.Metadata["field"])
	assert.Contains(t, err.Message, "email")
}

func TestIsIdentityEmailTaken(t *testing.T) {
	assert.True(t, admissions.IsIdentityEmailTaken(admissions.ErrIdentityEmailTaken))
	assert.True(t, admissions.IsIdentityEmailTaken(admissions.IdentityEmailTaken("a@b.c")))
	assert.False(t, admissions.IsIdentityEmailTaken(admissions.ErrIdentityNotFound))
	assert.False(t, admissions.IsIdentityEmailTaken(errors.New("plain error")))
	assert.False(t, admissions.IsIdentityEmailTaken(nil))
}

func TestErrorConstructorsMatchSentinelTaxonomy(t *testing.T) {
	tests := []struct {
		name     string
		err      *goerrors.Error
		sentinel *goerrors.Error
		metadata map[string]any
	}{
		{
			"permission denied",
			admissions.PermissionDenied("mallory@school.example"),
			admissions.ErrPermissionDenied,
			map[string]any{"actor_email": "mallory@school.example"},
		},
		{
			"application not found",
			admissions.ApplicationNotFound("app-1"),
			admissions.ErrApplicationNotFound,
			map[string]any{"application_id": "app-1"},
		},
		{
			"identity email taken",
			admissions.IdentityEmailTaken("a@b.c"),
			admissions.ErrIdentityEmailTaken,
			map[string]any{"email": "a@b.c"},
		},
		{
			"identity not found",
			admissions.IdentityNotFound(map[string]any{"email": "a@b.c"}),
			admissions.ErrIdentityNotFound,
			map[string]any{"email": "a@b.c"},
		},
		{
			"review not allowed",
			admissions.ReviewNotAllowed(map[string]any{"from": "approved", "to": "approved"}),
			admissions.ErrReviewNotAllowed,
			map[string]any{"from": "approved", "to": "approved"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.sentinel.Category, tt.err.Category)
			assert.Equal(t, tt.sentinel.TextCode, tt.err.TextCode)
			assert.Equal(t, tt.metadata, tt.err.Metadata)
		})
	}
}

func TestErrorConstructorsLeaveSentinelsUntouched(t *testing.T) {
	first := admissions.PermissionDenied("mallory1@school.example")
	second := admissions.PermissionDenied("mallory2@school.example")

	assert.Equal(t, "mallory1@school.example", first.Metadata["actor_email"])
	assert.Equal(t, "mallory2@school.example", second.Metadata["actor_email"])
	assert.Nil(t, admissions.ErrPermissionDenied.Metadata)

	_ = admissions.ApplicationNotFound("app-1")
	assert.Nil(t, admissions.ErrApplicationNotFound.Metadata)

	_ = admissions.IdentityEmailTaken("a@b.c")
	assert.Nil(t, admissions.ErrIdentityEmailTaken.Metadata)

	_ = admissions.IdentityNotFound(map[string]any{"uid": "u-1"})
	assert.Nil(t, admissions.ErrIdentityNotFound.Metadata)

	_ = admissions.ReviewNotAllowed(map[string]any{"from": "approved"})
	assert.Nil(t, admissions.ErrReviewNotAllowed.Metadata)
}

func TestNotFoundErrorsSatisfyIsNotFound(t *testing.T) {
	require.True(t, goerrors.IsNotFound(admissions.ErrApplicationNotFound))
	require.True(t, goerrors.IsNotFound(admissions.ErrIdentityNotFound))
}
