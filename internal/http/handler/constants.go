package handler

const (
	jsonKeyError   = "error"
	jsonKeyMessage = "message"

	paramID       = "id"
	queryPath     = "path"
	querySlug     = "slug"
	queryType     = "type"
	queryPassword = "password"
	queryPage     = "page"

	msgContentTypeJSONRequired = "Content-Type must be application/json"
	msgInvalidRequestBody      = "invalid request body"
	msgInvalidContentID        = "invalid content id"
	msgContentNotFound         = "content not found"
	msgIncorrectPassword       = "incorrect password"
	msgLocatorRequired         = "one of id, path or slug is required"
	msgInvalidCredentials      = "invalid email or password"
	msgGenerateTokenFail       = "failed to generate token"
	msgGenerateKeyFail         = "failed to generate API key"
	msgKeyNameRequired         = "name is required"
	msgPermissionsRequired     = "at least one permission is required"
	msgInvalidKeyID            = "invalid API key id"
	msgAPIKeyRevoked           = "API key revoked"
	msgTitleRequired           = "title is required"
	msgTypeRequired            = "type is required"
	msgSlugRequired            = "slug is required"
)
