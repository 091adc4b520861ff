package auth0

import (
	"context"
	"fmt"
	"strings"

	"github.com/auth0/go-auth0/management"
)

const (
	// IdentifierProviderAuth0 is the provider name used for Auth0 identifiers.
	IdentifierProviderAuth0 = "auth0"

	// DefaultConnection is the Auth0 database connection used for credentials.
	DefaultConnection = "Username-Password-Authentication"
)

// Config configures the Auth0 identity provider.
type Config struct {
	// Domain is the Auth0 tenant domain (e.g., "example.us.auth0.com").
	Domain string

	// ClientID is the M2M application client ID.
	ClientID string

	// ClientSecret is the M2M application client secret.
	ClientSecret string

	// Connection is the database connection holding the credentials.
	// Default: "Username-Password-Authentication".
	Connection string

	// Client overrides the management client (useful for tests).
	Client *management.Management

	// Identifiers maps Auth0 user ids to stable local uuids.
	Identifiers IdentifierStore
}

// IdentifierStore maps external identifiers (Auth0 user ids) to local uuids.
type IdentifierStore interface {
	FindUserID(ctx context.Context, provider, identifier string) (string, error)
	FindIdentifier(ctx context.Context, provider, userID string) (string, error)
	Upsert(ctx context.Context, userID, provider, identifier string) error
}

func (c Config) managementClient(ctx context.Context) (*management.Management, error) {
	if c.Client != nil {
		return c.Client, nil
	}

	domain := strings.TrimSpace(c.Domain)
	if domain == "" {
		return nil, fmt.Errorf("auth0: domain is required")
	}

	client, err := management.New(
		domain,
		management.WithClientCredentials(ctx, c.ClientID, c.ClientSecret),
	)
	if err != nil {
		return nil, fmt.Errorf("auth0: failed to create management client: %w", err)
	}

	return client, nil
}

func (c Config) connection() string {
	if conn := strings.TrimSpace(c.Connection); conn != "" {
		return conn
	}
	return DefaultConnection
}
