package admissions

import (
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/goliatone/go-router"
)

// DefaultSessionContextKey is the router locals key where the JWT middleware
// stores the verified token.
const DefaultSessionContextKey = "user"

// ActorFromRouterContext reads the verified JWT stored in router locals and
// builds an Actor from its claims. Token verification happens upstream; this
// only extracts identity attributes.
func ActorFromRouterContext(ctx router.Context, key string) (Actor, bool) {
	if key == "" {
		key = DefaultSessionContextKey
	}

	token, ok := ctx.Locals(key).(*jwt.Token)
	if token == nil || !ok {
		return Actor{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if claims == nil || !ok {
		return Actor{}, false
	}

	actor := Actor{}

	if sub, err := claims.GetSubject(); err == nil {
		actor.UID = sub
	}

	if email, ok := claims["email"].(string); ok {
		actor.Email = strings.TrimSpace(email)
	}

	if actor.UID == "" && actor.Email == "" {
		return Actor{}, false
	}

	return actor, true
}

// ActorMiddleware copies the verified JWT identity from router locals into the
// standard context so guards downstream can read it. Requests without a token
// pass through untouched; the guard rejects them as unauthenticated.
func ActorMiddleware(sessionContextKey string) router.MiddlewareFunc {
	return func(next router.HandlerFunc) router.HandlerFunc {
		return func(ctx router.Context) error {
			if actor, ok := ActorFromRouterContext(ctx, sessionContextKey); ok {
				ctx.SetContext(WithActor(ctx.Context(), actor))
			}
			return next(ctx)
		}
	}
}
