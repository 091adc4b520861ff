// Package auth0 provides an IdentityProvider backed by the Auth0 Management
// API.
//
// Auth0 user ids are opaque strings (e.g. "auth0|abc123"); the provider keeps
// them mapped to stable local uuids through an IdentifierStore so the rest of
// the system only ever sees uuids.
package auth0
