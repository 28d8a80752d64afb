package auth

const (
	ContextKeyUserID   = "user_id"
	ContextKeyAuthType = "auth_type"
	ContextKeyAPIKey   = "api_key"

	jsonKeyError = "error"

	headerAuthorization = "Authorization"
	headerAPIKey        = "X-API-Key"

	bearerScheme    = "bearer"
	apiKeyPrefix    = "ck_"
	authHeaderParts = 2
)

const (
	msgMissingAuthorization    = "missing authorization token"
	msgInvalidOrExpiredToken   = "invalid or expired token"
	msgMissingAPIKey           = "missing API key"
	msgInvalidAPIKey           = "invalid API key"
	msgInvalidAPIKeyFormat     = "invalid API key format"
	msgAPIKeyRevoked           = "API key has been revoked"
	msgAPIKeyExpired           = "API key has expired"
	msgAPIKeyPermissionDenied  = "API key lacks required permission"
	msgUserNotAuthenticated    = "user not authenticated"
	msgInvalidUserIDCtx        = "invalid user ID in context"
	msgUnexpectedSigningMethod = "unexpected signing method: %v"
	msgTokenParseFailed        = "failed to parse token: %w"
	msgInvalidTokenClaims      = "invalid token claims"
)

type AuthType string

const (
	AuthTypeJWT    AuthType = "jwt"
	AuthTypeAPIKey AuthType = "api_key"
)
