package admissions

import (
	"context"
	"strings"
)

var actorCtxKey = &contextKey{"actor"}

type contextKey struct {
	name string
}

// Actor is the verified caller identity attached to a request. The email is
// the one asserted by the upstream authentication layer; the guard only
// trusts actors that reached the context through WithActor.
type Actor struct {
	UID   string
	Email string
}

// NormalizedEmail returns the actor email lower-cased and trimmed.
func (a Actor) NormalizedEmail() string {
	return strings.ToLower(strings.TrimSpace(a.Email))
}

// WithActor sets the verified Actor in the given context
func WithActor(ctx context.Context, actor Actor) context.Context {
	return context.WithValue(ctx, actorCtxKey, actor)
}

// ActorFromContext finds the verified actor from the context.
func ActorFromContext(ctx context.Context) (Actor, bool) {
	raw, ok := ctx.Value(actorCtxKey).(Actor)
	return raw, ok
}
