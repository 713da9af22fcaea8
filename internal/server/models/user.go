package models

import "time"

// User is a registered account. PasswordHash is a bcrypt digest carrying
// its own salt and cost.
type User struct {
	ID           int64
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}

// Clone returns a deep copy, including the password hash bytes.
func (u *User) Clone() *User {
	c := *u
	c.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &c
}
