// Package common contains constants shared by the client packages.
package common

const (
	// AuthorizationHeaderName is the HTTP header carrying the bearer token on
	// outbound requests.
	AuthorizationHeaderName = "Authorization"

	// BearerScheme prefixes the token in the Authorization header value.
	BearerScheme = "Bearer"

	// TokenMetadataKey is the fixed name under which the raw session token is
	// persisted locally. Absence of the key means logged out.
	TokenMetadataKey = "token"

	// TokenSavedAtMetadataKey records when the persisted token was written.
	TokenSavedAtMetadataKey = "token_saved_at"
)
