package models

import "time"

// RefreshToken is a server-stored opaque refresh credential. UserName is
// joined in on lookup so a new access token can be minted without a second
// query.
type RefreshToken struct {
	ID        string
	UserID    string
	UserName  string
	Token     string
	Expires   time.Time
	CreatedAt time.Time
}
