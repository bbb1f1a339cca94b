package common

// AccessTokenCookieName is the cookie that may carry the access token when
// no Authorization header is sent.
const AccessTokenCookieName = "prisynced_token"

// AuthorizationScheme prefixes the token in the Authorization header.
const AuthorizationScheme = "Bearer "
