package models

import "time"

// User is a registered storefront account.
type User struct {
	ID           string    `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"createdAt"`
}

// Profile holds editable account details, one row per user.
type Profile struct {
	ID        string    `db:"id" json:"id"`
	FullName  *string   `db:"full_name" json:"fullName,omitempty"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// Session is the authenticated identity attached to a store. A nil
// *Session means an anonymous guest.
type Session struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name,omitempty"`
}
