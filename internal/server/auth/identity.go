package auth

// Identity is the authenticated caller recovered from a verified token.
// A nil *Identity means the caller is anonymous.
type Identity struct {
	UserID int64
	Email  string
}

// IdentityFromClaims extracts the caller identity from verified claims.
func IdentityFromClaims(c *Claims) *Identity {
	return &Identity{UserID: c.UserID, Email: c.Email}
}
