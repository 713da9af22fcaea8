package common

// AuthorizationHeaderName carries the bearer token on inbound requests.
const AuthorizationHeaderName = "Authorization"

// BearerScheme is the scheme prefix expected in AuthorizationHeaderName.
const BearerScheme = "Bearer"
