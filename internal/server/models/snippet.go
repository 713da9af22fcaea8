// Package models defines the records held by the server's stores.
package models

import "time"

// Snippet is a stored code snippet. Body holds the encrypted envelope,
// never plaintext. A nil OwnerID marks the snippet public.
type Snippet struct {
	ID        int64
	Language  string
	Body      string
	OwnerID   *int64
	CreatedAt time.Time
}

// IsPublic reports whether the snippet has no owner.
func (s *Snippet) IsPublic() bool {
	return s.OwnerID == nil
}

// OwnedBy reports whether userID owns the snippet.
func (s *Snippet) OwnedBy(userID int64) bool {
	return s.OwnerID != nil && *s.OwnerID == userID
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (s *Snippet) Clone() *Snippet {
	c := *s
	if s.OwnerID != nil {
		owner := *s.OwnerID
		c.OwnerID = &owner
	}
	return &c
}

// SnippetView is the decrypted, caller-facing form of a Snippet.
type SnippetView struct {
	ID         int64  `json:"id"`
	Language   string `json:"language"`
	Code       string `json:"code"`
	Private    bool   `json:"private"`
	OwnerID    *int64 `json:"owner_id,omitempty"`
	Unreadable bool   `json:"unreadable,omitempty"`
}
