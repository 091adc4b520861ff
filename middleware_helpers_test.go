package admissions_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	admissions "github.com/goliatone/go-admissions"
	"github.com/goliatone/go-router"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func sessionToken(claims jwt.MapClaims) *jwt.Token {
	return &jwt.Token{Claims: claims, Valid: true}
}

func TestActorFromRouterContext(t *testing.T) {
	t.Run("builds actor from claims", func(t *testing.T) {
		ctx := new(MockContext)
		ctx.On("Locals", "user").Return(sessionToken(jwt.MapClaims{
			"sub":   "admin-uid",
			"email": " admin@school.example ",
		})).Once()

		actor, ok := admissions.ActorFromRouterContext(ctx, "")
		require.True(t, ok)
		assert.Equal(t, "admin-uid", actor.UID)
		assert.Equal(t, "admin@school.example", actor.Email)
	})

	t.Run("honors custom session key", func(t *testing.T) {
		ctx := new(MockContext)
		ctx.On("Locals", "session").Return(sessionToken(jwt.MapClaims{
			"email": "admin@school.example",
		})).Once()

		actor, ok := admissions.ActorFromRouterContext(ctx, "session")
		require.True(t, ok)
		assert.Equal(t, "admin@school.example", actor.Email)
	})

	t.Run("missing token", func(t *testing.T) {
		ctx := new(MockContext)
		ctx.On("Locals", "user").Return(nil).Once()

		_, ok := admissions.ActorFromRouterContext(ctx, "")
		assert.False(t, ok)
	})

	t.Run("claims without identity", func(t *testing.T) {
		ctx := new(MockContext)
		ctx.On("Locals", "user").Return(sessionToken(jwt.MapClaims{})).Once()

		_, ok := admissions.ActorFromRouterContext(ctx, "")
		assert.False(t, ok)
	})
}

func TestActorMiddlewarePropagatesActor(t *testing.T) {
	ctx := new(MockContext)
	base := context.Background()

	ctx.On("Locals", "user").Return(sessionToken(jwt.MapClaims{
		"sub":   "admin-uid",
		"email": "admin@school.example",
	})).Once()
	ctx.On("Context").Return(base).Once()
	ctx.On("SetContext", mock.MatchedBy(func(c context.Context) bool {
		actor, ok := admissions.ActorFromContext(c)
		return ok && actor.Email == "admin@school.example"
	})).Once()

	var nextCalled bool
	next := router.HandlerFunc(func(router.Context) error {
		nextCalled = true
		return nil
	})

	require.NoError(t, admissions.ActorMiddleware("")(next)(ctx))
	assert.True(t, nextCalled)
	ctx.AssertExpectations(t)
}

func TestActorMiddlewarePassesThroughAnonymous(t *testing.T) {
	ctx := new(MockContext)
	ctx.On("Locals", "user").Return(nil).Once()

	var nextCalled bool
	next := router.HandlerFunc(func(router.Context) error {
		nextCalled = true
		return nil
	})

	require.NoError(t, admissions.ActorMiddleware("")(next)(ctx))
	assert.True(t, nextCalled)
	ctx.AssertNotCalled(t, "SetContext", mock.Anything)
}
