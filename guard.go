package admissions

import (
	"context"
	"strings"
)

// AdminGuard is the sole authorization boundary for the review workflows.
// It is constructed with an administrator email allow-list; every workflow
// runs Authorize before any other logic.
type AdminGuard struct {
	admins map[string]struct{}
	logger Logger
}

// AdminGuardOption customizes guard construction.
type AdminGuardOption func(*AdminGuard)

// WithGuardLogger overrides the guard logger.
func WithGuardLogger(logger Logger) AdminGuardOption {
	return func(g *AdminGuard) {
		if logger != nil {
			g.logger = logger
		}
	}
}

// NewAdminGuard creates a guard for the given administrator emails. The
// allow-list is matched case-insensitively; empty entries are ignored.
func NewAdminGuard(adminEmails []string, opts ...AdminGuardOption) *AdminGuard {
	g := &AdminGuard{
		admins: make(map[string]struct{}, len(adminEmails)),
		logger: defLogger{},
	}

	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			g.admins[email] = struct{}{}
		}
	}

	for _, opt := range opts {
		if opt != nil {
			opt(g)
		}
	}

	return g
}

// Authorize verifies the caller attached to ctx. It fails with
// ErrUnauthenticated when no verified actor is present and with
// ErrPermissionDenied when the actor email is outside the allow-list. On
// success it returns the normalized administrator email for attribution.
// No side effects.
func (g *AdminGuard) Authorize(ctx context.Context) (string, error) {
	actor, ok := ActorFromContext(ctx)
	if !ok {
		return "", ErrUnauthenticated
	}

	email := actor.NormalizedEmail()
	if email == "" {
		return "", ErrUnauthenticated
	}

	if _, ok := g.admins[email]; !ok {
		g.logger.Debug("admissions guard rejected actor %s", email)
		return "", PermissionDenied(email)
	}

	return email, nil
}
