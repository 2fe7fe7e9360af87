// Package common contains constants and sentinel errors shared by the desk
// client and the development backend.
package common

// RefreshCookieName is the cookie that carries the opaque refresh token.
// The backend sets it on login and the client's cookie jar sends it back on
// /auth/refresh.
const RefreshCookieName = "refresh_token"

// IdentityHintKey is the metadata key holding the last authenticated username.
const IdentityHintKey = "username"

// CookiesKey is the metadata key holding the serialized cookie jar.
const CookiesKey = "cookies"

// MessageFallback is reported when an error body carries no usable message.
const MessageFallback = "Request failed"
