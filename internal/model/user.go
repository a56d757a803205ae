// Package model defines the data structures shared by the repository,
// service, and handler layers. These are plain value structs — all loading
// of related rows is explicit in the repository, never triggered by field
// access.
package model

import "time"

// User is a registered account. Usernames are stored lowercased; uniqueness
// is enforced case-insensitively by normalizing before every store and lookup.
//
// PasswordHash is empty for accounts created through GitHub sign-in; those
// are keyed by GitHubID instead and can never pass password login.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	GitHubID     int64     `json:"-"` // 0 unless the account was created via GitHub OAuth
	CreatedAt    time.Time `json:"createdAt"`
}
